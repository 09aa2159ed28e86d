package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eminekt/campuslib/internal/app/models"
	"github.com/eminekt/campuslib/internal/pkg/apperrors"
	"github.com/eminekt/campuslib/internal/pkg/helpers"
)

// IssueService defines the interface for the book issue workflow
type IssueService interface {
	CreateIssue(ctx context.Context, bookID, studentID int64, issueDate, returnDate time.Time) (*models.BookIssue, error)
	ReturnIssue(ctx context.Context, issueID int64) (*models.BookIssue, error)
	ListForStudent(ctx context.Context, studentID int64) ([]models.BookIssue, error)
	ListActive(ctx context.Context, page, limit int) ([]models.BookIssue, int64, error)
	ListOverdue(ctx context.Context, page, limit int) ([]models.BookIssue, int64, error)
	ListStudentOverdue(ctx context.Context, studentID int64) ([]models.BookIssue, error)
}

// issueServiceImpl implements the IssueService interface
type issueServiceImpl struct {
	bookRepo    BookStore
	studentRepo StudentStore
	issueRepo   IssueStore
	txRunner    TxRunner
	now         func() time.Time
}

// NewIssueService creates a new issue service instance
func NewIssueService(bookRepo BookStore, studentRepo StudentStore, issueRepo IssueStore, txRunner TxRunner) IssueService {
	return &issueServiceImpl{
		bookRepo:    bookRepo,
		studentRepo: studentRepo,
		issueRepo:   issueRepo,
		txRunner:    txRunner,
		now:         time.Now,
	}
}

// CreateIssue issues a book to a student. Preconditions are checked in a
// fixed order so each failure is distinct: book exists, copies available,
// student exists, no duplicate active issue. The issue insert and the copy
// decrement land in one transaction.
func (s *issueServiceImpl) CreateIssue(ctx context.Context, bookID, studentID int64, issueDate, returnDate time.Time) (*models.BookIssue, error) {
	if bookID <= 0 || studentID <= 0 {
		return nil, fmt.Errorf("%w: invalid book or student ID", apperrors.ErrValidationFailed)
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrBookNotFound) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("error retrieving book: %w", err)
	}

	if book.AvailableCopies <= 0 {
		return nil, apperrors.ErrNoCopiesAvailable
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	alreadyIssued, err := s.issueRepo.HasActiveIssue(ctx, bookID, studentID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing issue: %w", err)
	}
	if alreadyIssued {
		return nil, apperrors.ErrBookAlreadyIssued
	}

	issue := &models.BookIssue{
		BookID:     bookID,
		StudentID:  studentID,
		IssueDate:  issueDate,
		ReturnDate: returnDate,
		Status:     models.IssueStatusIssued,
	}

	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.issueRepo.Create(ctx, tx, issue); err != nil {
			return err
		}
		return s.bookRepo.AdjustAvailableCopies(ctx, tx, bookID, -1)
	})
	if err != nil {
		return nil, fmt.Errorf("error creating issue: %w", err)
	}

	// Attach snapshots reflecting the committed state
	book.AvailableCopies--
	issue.Book = book
	issue.Student = student

	return issue, nil
}

// ReturnIssue marks an active issue returned and gives the copy back. The
// lookup filters on status ISSUED, so returning the same issue twice fails
// with not found on the second call; that is intentional.
func (s *issueServiceImpl) ReturnIssue(ctx context.Context, issueID int64) (*models.BookIssue, error) {
	if issueID <= 0 {
		return nil, fmt.Errorf("%w: invalid issue ID", apperrors.ErrValidationFailed)
	}

	issue, err := s.issueRepo.GetActiveByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, apperrors.ErrIssueNotFound) {
			return nil, apperrors.ErrIssueNotFound
		}
		return nil, fmt.Errorf("error retrieving active issue: %w", err)
	}

	returnedAt := s.now()

	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.issueRepo.MarkReturned(ctx, tx, issueID, returnedAt); err != nil {
			return err
		}
		return s.bookRepo.AdjustAvailableCopies(ctx, tx, issue.BookID, 1)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrIssueNotFound) {
			return nil, apperrors.ErrIssueNotFound
		}
		return nil, fmt.Errorf("error returning issue: %w", err)
	}

	issue.Status = models.IssueStatusReturned
	issue.ActualReturnDate = &returnedAt
	if issue.Book != nil {
		issue.Book.AvailableCopies++
	}

	return issue, nil
}

// ListForStudent returns every issue for a student, most recent first
func (s *issueServiceImpl) ListForStudent(ctx context.Context, studentID int64) ([]models.BookIssue, error) {
	if err := s.ensureStudentExists(ctx, studentID); err != nil {
		return nil, err
	}

	issues, err := s.issueRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student issues: %w", err)
	}

	return issues, nil
}

// ListActive returns ISSUED issues ordered soonest-due first
func (s *issueServiceImpl) ListActive(ctx context.Context, page, limit int) ([]models.BookIssue, int64, error) {
	page, limit = normalizePage(page, limit)

	issues, total, err := s.issueRepo.ListActive(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing active issues: %w", err)
	}

	return issues, total, nil
}

// ListOverdue returns ISSUED issues past their due date. The reference time
// is taken once per call; overdue status is never written back.
func (s *issueServiceImpl) ListOverdue(ctx context.Context, page, limit int) ([]models.BookIssue, int64, error) {
	page, limit = normalizePage(page, limit)

	issues, total, err := s.issueRepo.ListOverdue(ctx, s.now(), page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing overdue issues: %w", err)
	}

	return issues, total, nil
}

// ListStudentOverdue returns one student's overdue issues
func (s *issueServiceImpl) ListStudentOverdue(ctx context.Context, studentID int64) ([]models.BookIssue, error) {
	if err := s.ensureStudentExists(ctx, studentID); err != nil {
		return nil, err
	}

	issues, err := s.issueRepo.ListOverdueByStudent(ctx, studentID, s.now())
	if err != nil {
		return nil, fmt.Errorf("error listing student overdue issues: %w", err)
	}

	return issues, nil
}

func (s *issueServiceImpl) ensureStudentExists(ctx context.Context, studentID int64) error {
	if studentID <= 0 {
		return fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}

	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error retrieving student: %w", err)
	}

	return nil
}

// normalizePage clamps pagination to 1-based pages and the capped page size
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = helpers.DefaultPage
	}
	if limit <= 0 || limit > helpers.MaxPageSize {
		limit = helpers.DefaultPageSize
	}
	return page, limit
}
