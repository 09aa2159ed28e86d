package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/eminekt/campuslib/internal/app/models"
	"github.com/eminekt/campuslib/internal/app/models/dto"
	"github.com/eminekt/campuslib/internal/pkg/apperrors"
)

// BookService defines the interface for book catalog operations
type BookService interface {
	CreateBook(ctx context.Context, req *dto.CreateBookRequest) (*models.Book, error)
	GetBookByID(ctx context.Context, id int64) (*models.Book, error)
	ListBooks(ctx context.Context, filter dto.BookFilter, page, limit int) ([]models.Book, int64, error)
	UpdateBook(ctx context.Context, id int64, req *dto.UpdateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

// bookServiceImpl implements the BookService interface
type bookServiceImpl struct {
	bookRepo BookStore
}

// NewBookService creates a new book service instance
func NewBookService(bookRepo BookStore) BookService {
	return &bookServiceImpl{
		bookRepo: bookRepo,
	}
}

// CreateBook adds a book to the catalog. Every copy starts available.
func (s *bookServiceImpl) CreateBook(ctx context.Context, req *dto.CreateBookRequest) (*models.Book, error) {
	exists, err := s.bookRepo.ExistsByISBN(ctx, req.ISBN, 0)
	if err != nil {
		return nil, fmt.Errorf("error checking ISBN: %w", err)
	}
	if exists {
		return nil, apperrors.ErrISBNAlreadyExists
	}

	book := &models.Book{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.TotalCopies,
		Category:        req.Category,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		if errors.Is(err, apperrors.ErrISBNAlreadyExists) {
			return nil, apperrors.ErrISBNAlreadyExists
		}
		return nil, fmt.Errorf("error creating book: %w", err)
	}

	return book, nil
}

// GetBookByID retrieves a book by ID
func (s *bookServiceImpl) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid book ID", apperrors.ErrValidationFailed)
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrBookNotFound) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("error retrieving book: %w", err)
	}

	return book, nil
}

// ListBooks retrieves books with optional filters and pagination
func (s *bookServiceImpl) ListBooks(ctx context.Context, filter dto.BookFilter, page, limit int) ([]models.Book, int64, error) {
	page, limit = normalizePage(page, limit)

	books, total, err := s.bookRepo.GetAll(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing books: %w", err)
	}

	return books, total, nil
}

// UpdateBook applies a partial update. Changing total_copies shifts
// available_copies by the same delta so the derived counter stays
// consistent; a reduction below the number of outstanding copies is
// rejected.
func (s *bookServiceImpl) UpdateBook(ctx context.Context, id int64, req *dto.UpdateBookRequest) (*models.Book, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid book ID", apperrors.ErrValidationFailed)
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrBookNotFound) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("error retrieving book: %w", err)
	}

	if req.ISBN != nil && *req.ISBN != book.ISBN {
		exists, err := s.bookRepo.ExistsByISBN(ctx, *req.ISBN, id)
		if err != nil {
			return nil, fmt.Errorf("error checking ISBN: %w", err)
		}
		if exists {
			return nil, apperrors.ErrISBNAlreadyExists
		}
		book.ISBN = *req.ISBN
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Category != nil {
		book.Category = *req.Category
	}
	if req.TotalCopies != nil {
		delta := *req.TotalCopies - book.TotalCopies
		if book.AvailableCopies+delta < 0 {
			return nil, apperrors.NewInvalidOperationError("cannot reduce total copies below the number currently issued")
		}
		book.TotalCopies = *req.TotalCopies
		book.AvailableCopies += delta
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		if apperrors.Is(err, apperrors.ErrBookNotFound, apperrors.ErrISBNAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating book: %w", err)
	}

	return book, nil
}

// DeleteBook removes a book unless copies are still checked out
func (s *bookServiceImpl) DeleteBook(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid book ID", apperrors.ErrValidationFailed)
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrBookNotFound) {
			return apperrors.ErrBookNotFound
		}
		return fmt.Errorf("error retrieving book: %w", err)
	}

	if book.AvailableCopies < book.TotalCopies {
		return apperrors.ErrBookHasIssues
	}

	if err := s.bookRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrBookNotFound) {
			return apperrors.ErrBookNotFound
		}
		return fmt.Errorf("error deleting book: %w", err)
	}

	return nil
}
