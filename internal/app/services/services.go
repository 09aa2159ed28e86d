package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eminekt/campuslib/internal/app/models"
	"github.com/eminekt/campuslib/internal/app/models/dto"
	"github.com/eminekt/campuslib/internal/db"
)

// The services depend on narrow store interfaces rather than the concrete
// repositories so the workflow rules can be exercised without a database.
// The repositories package satisfies all of them.

// BookStore is the book data access needed by the services
type BookStore interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	ExistsByISBN(ctx context.Context, isbn string, excludeID int64) (bool, error)
	GetAll(ctx context.Context, filter dto.BookFilter, page, limit int) ([]models.Book, int64, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id int64) error
	AdjustAvailableCopies(ctx context.Context, tx pgx.Tx, bookID int64, delta int) error
}

// StudentStore is the student data access needed by the services
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	ExistsByUniqueFields(ctx context.Context, rollNumber, phone, email string, excludeID int64) (bool, error)
	GetAll(ctx context.Context, filter dto.StudentFilter) ([]models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	HasIssueRecords(ctx context.Context, studentID int64) (bool, error)
}

// IssueStore is the book issue data access needed by the services
type IssueStore interface {
	Create(ctx context.Context, tx pgx.Tx, issue *models.BookIssue) error
	HasActiveIssue(ctx context.Context, bookID, studentID int64) (bool, error)
	GetActiveByID(ctx context.Context, id int64) (*models.BookIssue, error)
	GetByID(ctx context.Context, id int64) (*models.BookIssue, error)
	MarkReturned(ctx context.Context, tx pgx.Tx, issueID int64, returnedAt time.Time) error
	ListByStudent(ctx context.Context, studentID int64) ([]models.BookIssue, error)
	ListActive(ctx context.Context, page, limit int) ([]models.BookIssue, int64, error)
	ListOverdue(ctx context.Context, now time.Time, page, limit int) ([]models.BookIssue, int64, error)
	ListOverdueByStudent(ctx context.Context, studentID int64, now time.Time) ([]models.BookIssue, error)
}

// ReportStore is the aggregation data access behind the chat answers
type ReportStore interface {
	OverdueBooks(ctx context.Context, now time.Time) ([]dto.OverdueBookEntry, error)
	DepartmentBorrows(ctx context.Context) ([]dto.DepartmentBorrows, error)
	NewBooks(ctx context.Context, since time.Time) ([]dto.NewBookEntry, error)
	ActiveStudents(ctx context.Context) ([]dto.ActiveStudentEntry, error)
	PopularBooks(ctx context.Context) ([]dto.PopularBookEntry, error)
}

// TxRunner runs a function inside a database transaction
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}
