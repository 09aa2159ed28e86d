package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eminekt/campuslib/internal/app/models"
	"github.com/eminekt/campuslib/internal/app/models/dto"
	"github.com/eminekt/campuslib/internal/pkg/apperrors"
	"github.com/eminekt/campuslib/internal/pkg/dberrors"
	"github.com/eminekt/campuslib/internal/pkg/logger"
)

// BookRepository handles database operations for the book catalog
type BookRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *pgxpool.Pool) *BookRepository {
	return &BookRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new book. AvailableCopies starts equal to TotalCopies.
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO books (title, author, isbn, total_copies, available_copies, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		book.Title, book.Author, book.ISBN, book.TotalCopies, book.AvailableCopies, book.Category,
	).Scan(&book.ID, &book.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "books_isbn_key") {
			return apperrors.ErrISBNAlreadyExists
		}
		return fmt.Errorf("error creating book: %w", err)
	}

	return nil
}

// GetByID retrieves a book by ID
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	query := `
		SELECT id, title, author, isbn, total_copies, available_copies, category, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	var book models.Book
	err := r.db.QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.ISBN,
		&book.TotalCopies,
		&book.AvailableCopies,
		&book.Category,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("error retrieving book: %w", err)
	}

	return &book, nil
}

// ExistsByISBN checks whether a book with this ISBN exists, excluding the
// given id (pass 0 to check all rows).
func (r *BookRepository) ExistsByISBN(ctx context.Context, isbn string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM books WHERE isbn = $1 AND id != $2)`,
		isbn, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking ISBN existence: %w", err)
	}

	return exists, nil
}

// GetAll retrieves books with optional filters and pagination
func (r *BookRepository) GetAll(ctx context.Context, filter dto.BookFilter, page, limit int) ([]models.Book, int64, error) {
	offset := uint64((page - 1) * limit)

	baseSelect := r.sb.Select(
		"id", "title", "author", "isbn", "total_copies", "available_copies",
		"category", "created_at", "updated_at",
	).From("books")

	countSelect := r.sb.Select("COUNT(*)").From("books")

	whereCondition := squirrel.And{}
	if filter.Title != "" {
		whereCondition = append(whereCondition, squirrel.ILike{"title": "%" + strings.TrimSpace(filter.Title) + "%"})
	}
	if filter.Author != "" {
		whereCondition = append(whereCondition, squirrel.ILike{"author": "%" + strings.TrimSpace(filter.Author) + "%"})
	}
	if filter.Category != "" {
		whereCondition = append(whereCondition, squirrel.ILike{"category": "%" + strings.TrimSpace(filter.Category) + "%"})
	}

	if len(whereCondition) > 0 {
		baseSelect = baseSelect.Where(whereCondition)
		countSelect = countSelect.Where(whereCondition)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count books SQL")
		return nil, 0, fmt.Errorf("failed to build count books query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	if totalItems == 0 {
		return []models.Book{}, 0, nil
	}

	listSql, listArgs, err := baseSelect.
		OrderBy("id ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list books SQL")
		return nil, 0, fmt.Errorf("failed to build list books query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSql, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var book models.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.ISBN,
			&book.TotalCopies,
			&book.AvailableCopies,
			&book.Category,
			&book.CreatedAt,
			&book.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return books, totalItems, nil
}

// Update writes the full book row. Callers apply partial-update semantics
// before calling.
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, isbn = $3, total_copies = $4,
		    available_copies = $5, category = $6, updated_at = NOW()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		book.Title, book.Author, book.ISBN, book.TotalCopies,
		book.AvailableCopies, book.Category, book.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "books_isbn_key") {
			return apperrors.ErrISBNAlreadyExists
		}
		return fmt.Errorf("error updating book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}

	return nil
}

// Delete deletes a book by ID
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}

	return nil
}

// AdjustAvailableCopies shifts available_copies by delta inside the given
// transaction. Used by the issue workflow so the counter and the issue row
// change atomically.
func (r *BookRepository) AdjustAvailableCopies(ctx context.Context, tx pgx.Tx, bookID int64, delta int) error {
	query := `
		UPDATE books
		SET available_copies = available_copies + $1, updated_at = NOW()
		WHERE id = $2
	`

	cmdTag, err := tx.Exec(ctx, query, delta, bookID)
	if err != nil {
		return fmt.Errorf("error adjusting available copies: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}

	return nil
}
