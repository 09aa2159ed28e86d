package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eminekt/campuslib/internal/app/models"
	"github.com/eminekt/campuslib/internal/pkg/apperrors"
)

// issueSelectColumns is the joined column list shared by every detail query.
const issueSelectColumns = `
	bi.id, bi.book_id, bi.student_id, bi.issue_date, bi.return_date,
	bi.actual_return_date, bi.status, bi.created_at, bi.updated_at,
	b.id, b.title, b.author, b.isbn, b.total_copies, b.available_copies,
	b.category, b.created_at, b.updated_at,
	s.id, s.name, s.roll_number, s.department, s.semester, s.phone,
	s.email, s.created_at, s.updated_at
`

const issueFromJoin = `
	FROM book_issues bi
	JOIN books b ON bi.book_id = b.id
	JOIN students s ON bi.student_id = s.id
`

// IssueRepository handles database operations for book issues
type IssueRepository struct {
	db *pgxpool.Pool
}

// NewIssueRepository creates a new issue repository
func NewIssueRepository(db *pgxpool.Pool) *IssueRepository {
	return &IssueRepository{
		db: db,
	}
}

// scanIssueRow scans one joined issue row with its book and student snapshot
func scanIssueRow(row pgx.Row) (*models.BookIssue, error) {
	var issue models.BookIssue
	var book models.Book
	var student models.Student

	err := row.Scan(
		&issue.ID,
		&issue.BookID,
		&issue.StudentID,
		&issue.IssueDate,
		&issue.ReturnDate,
		&issue.ActualReturnDate,
		&issue.Status,
		&issue.CreatedAt,
		&issue.UpdatedAt,
		&book.ID,
		&book.Title,
		&book.Author,
		&book.ISBN,
		&book.TotalCopies,
		&book.AvailableCopies,
		&book.Category,
		&book.CreatedAt,
		&book.UpdatedAt,
		&student.ID,
		&student.Name,
		&student.RollNumber,
		&student.Department,
		&student.Semester,
		&student.Phone,
		&student.Email,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	issue.Book = &book
	issue.Student = &student
	return &issue, nil
}

// collectIssueRows drains a joined result set into a slice
func collectIssueRows(rows pgx.Rows) ([]models.BookIssue, error) {
	defer rows.Close()

	var issues []models.BookIssue
	for rows.Next() {
		issue, err := scanIssueRow(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, *issue)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return issues, nil
}

// Create inserts a new issue row inside the given transaction. The caller
// decrements the book's available copies in the same transaction.
func (r *IssueRepository) Create(ctx context.Context, tx pgx.Tx, issue *models.BookIssue) error {
	query := `
		INSERT INTO book_issues (book_id, student_id, issue_date, return_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		issue.BookID, issue.StudentID, issue.IssueDate, issue.ReturnDate, issue.Status,
	).Scan(&issue.ID, &issue.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating book issue: %w", err)
	}

	return nil
}

// HasActiveIssue reports whether the student currently has this book out
func (r *IssueRepository) HasActiveIssue(ctx context.Context, bookID, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM book_issues
			WHERE book_id = $1 AND student_id = $2 AND status = $3
		)`,
		bookID, studentID, models.IssueStatusIssued).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking active issue: %w", err)
	}

	return exists, nil
}

// GetActiveByID retrieves an issue by id only while it is still ISSUED.
// A returned issue is not found on purpose; that makes a second return fail.
func (r *IssueRepository) GetActiveByID(ctx context.Context, id int64) (*models.BookIssue, error) {
	query := `SELECT ` + issueSelectColumns + issueFromJoin + `
		WHERE bi.id = $1 AND bi.status = $2`

	issue, err := scanIssueRow(r.db.QueryRow(ctx, query, id, models.IssueStatusIssued))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrIssueNotFound
		}
		return nil, fmt.Errorf("error retrieving active issue: %w", err)
	}

	return issue, nil
}

// GetByID retrieves an issue with its book and student snapshot
func (r *IssueRepository) GetByID(ctx context.Context, id int64) (*models.BookIssue, error) {
	query := `SELECT ` + issueSelectColumns + issueFromJoin + `
		WHERE bi.id = $1`

	issue, err := scanIssueRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrIssueNotFound
		}
		return nil, fmt.Errorf("error retrieving issue: %w", err)
	}

	return issue, nil
}

// MarkReturned flips an ISSUED row to RETURNED and stamps the actual return
// time, inside the given transaction. Returns ErrIssueNotFound when the row
// is absent or already returned.
func (r *IssueRepository) MarkReturned(ctx context.Context, tx pgx.Tx, issueID int64, returnedAt time.Time) error {
	query := `
		UPDATE book_issues
		SET status = $1, actual_return_date = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	cmdTag, err := tx.Exec(ctx, query,
		models.IssueStatusReturned, returnedAt, issueID, models.IssueStatusIssued)
	if err != nil {
		return fmt.Errorf("error marking issue returned: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrIssueNotFound
	}

	return nil
}

// ListByStudent retrieves every issue for a student, most recent first
func (r *IssueRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.BookIssue, error) {
	query := `SELECT ` + issueSelectColumns + issueFromJoin + `
		WHERE bi.student_id = $1
		ORDER BY bi.created_at DESC`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student issues: %w", err)
	}

	return collectIssueRows(rows)
}

// ListActive retrieves ISSUED issues ordered soonest-due first, paginated
func (r *IssueRepository) ListActive(ctx context.Context, page, limit int) ([]models.BookIssue, int64, error) {
	var totalItems int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM book_issues WHERE status = $1`,
		models.IssueStatusIssued).Scan(&totalItems)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting active issues: %w", err)
	}

	if totalItems == 0 {
		return []models.BookIssue{}, 0, nil
	}

	query := `SELECT ` + issueSelectColumns + issueFromJoin + `
		WHERE bi.status = $1
		ORDER BY bi.return_date ASC
		LIMIT $2 OFFSET $3`

	offset := (page - 1) * limit
	rows, err := r.db.Query(ctx, query, models.IssueStatusIssued, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing active issues: %w", err)
	}

	issues, err := collectIssueRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return issues, totalItems, nil
}

// ListOverdue retrieves ISSUED issues whose due date lies strictly before
// now, ordered soonest-due first, paginated. Overdue is never persisted.
func (r *IssueRepository) ListOverdue(ctx context.Context, now time.Time, page, limit int) ([]models.BookIssue, int64, error) {
	var totalItems int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM book_issues WHERE status = $1 AND return_date < $2`,
		models.IssueStatusIssued, now).Scan(&totalItems)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting overdue issues: %w", err)
	}

	if totalItems == 0 {
		return []models.BookIssue{}, 0, nil
	}

	query := `SELECT ` + issueSelectColumns + issueFromJoin + `
		WHERE bi.status = $1 AND bi.return_date < $2
		ORDER BY bi.return_date ASC
		LIMIT $3 OFFSET $4`

	offset := (page - 1) * limit
	rows, err := r.db.Query(ctx, query, models.IssueStatusIssued, now, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing overdue issues: %w", err)
	}

	issues, err := collectIssueRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return issues, totalItems, nil
}

// ListOverdueByStudent retrieves one student's overdue issues
func (r *IssueRepository) ListOverdueByStudent(ctx context.Context, studentID int64, now time.Time) ([]models.BookIssue, error) {
	query := `SELECT ` + issueSelectColumns + issueFromJoin + `
		WHERE bi.student_id = $1 AND bi.status = $2 AND bi.return_date < $3
		ORDER BY bi.return_date ASC`

	rows, err := r.db.Query(ctx, query, studentID, models.IssueStatusIssued, now)
	if err != nil {
		return nil, fmt.Errorf("error listing student overdue issues: %w", err)
	}

	return collectIssueRows(rows)
}

// CountActiveByBook returns the number of currently ISSUED rows for a book.
// Used by tests and consistency checks against available_copies.
func (r *IssueRepository) CountActiveByBook(ctx context.Context, bookID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM book_issues WHERE book_id = $1 AND status = $2`,
		bookID, models.IssueStatusIssued).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting active issues for book: %w", err)
	}

	return count, nil
}
