package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eminekt/campuslib/internal/app/models"
	"github.com/eminekt/campuslib/internal/app/models/dto"
	"github.com/eminekt/campuslib/internal/pkg/helpers"
)

// ReportRepository runs the read-only aggregations behind the chat answers
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		db: db,
	}
}

// OverdueBooks lists every overdue issue with its whole-day overdue count.
// now is evaluated once by the caller so all day counts share one reference.
func (r *ReportRepository) OverdueBooks(ctx context.Context, now time.Time) ([]dto.OverdueBookEntry, error) {
	query := `
		SELECT b.title, s.name, bi.return_date
		FROM book_issues bi
		JOIN books b ON bi.book_id = b.id
		JOIN students s ON bi.student_id = s.id
		WHERE bi.status = $1 AND bi.return_date < $2
	`

	rows, err := r.db.Query(ctx, query, models.IssueStatusIssued, now)
	if err != nil {
		return nil, fmt.Errorf("error querying overdue books: %w", err)
	}
	defer rows.Close()

	var entries []dto.OverdueBookEntry
	for rows.Next() {
		var entry dto.OverdueBookEntry
		var dueDate time.Time
		if err := rows.Scan(&entry.BookTitle, &entry.StudentName, &dueDate); err != nil {
			return nil, err
		}
		entry.DaysOverdue = helpers.WholeDaysSince(now, dueDate)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// DepartmentBorrows counts issues per department, busiest first
func (r *ReportRepository) DepartmentBorrows(ctx context.Context) ([]dto.DepartmentBorrows, error) {
	query := `
		SELECT s.department, COUNT(bi.id) AS total_borrows
		FROM students s
		JOIN book_issues bi ON s.id = bi.student_id
		GROUP BY s.department
		ORDER BY total_borrows DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying department borrows: %w", err)
	}
	defer rows.Close()

	var entries []dto.DepartmentBorrows
	for rows.Next() {
		var entry dto.DepartmentBorrows
		if err := rows.Scan(&entry.Department, &entry.TotalBorrows); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// NewBooks lists books added since the given time, newest first
func (r *ReportRepository) NewBooks(ctx context.Context, since time.Time) ([]dto.NewBookEntry, error) {
	query := `
		SELECT title, author, created_at
		FROM books
		WHERE created_at >= $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("error querying new books: %w", err)
	}
	defer rows.Close()

	var entries []dto.NewBookEntry
	for rows.Next() {
		var entry dto.NewBookEntry
		var addedAt time.Time
		if err := rows.Scan(&entry.Title, &entry.Author, &addedAt); err != nil {
			return nil, err
		}
		entry.AddedDate = addedAt.Format("2006-01-02")
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ActiveStudents lists the top five students by issue count
func (r *ReportRepository) ActiveStudents(ctx context.Context) ([]dto.ActiveStudentEntry, error) {
	query := `
		SELECT s.name, s.department, COUNT(bi.id) AS total_borrows
		FROM students s
		JOIN book_issues bi ON s.id = bi.student_id
		GROUP BY s.id
		ORDER BY total_borrows DESC
		LIMIT 5
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying active students: %w", err)
	}
	defer rows.Close()

	var entries []dto.ActiveStudentEntry
	for rows.Next() {
		var entry dto.ActiveStudentEntry
		if err := rows.Scan(&entry.Name, &entry.Department, &entry.TotalBorrows); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// PopularBooks lists the top five books by issue count
func (r *ReportRepository) PopularBooks(ctx context.Context) ([]dto.PopularBookEntry, error) {
	query := `
		SELECT b.title, b.author, COUNT(bi.id) AS borrow_count
		FROM books b
		JOIN book_issues bi ON b.id = bi.book_id
		GROUP BY b.id
		ORDER BY borrow_count DESC
		LIMIT 5
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying popular books: %w", err)
	}
	defer rows.Close()

	var entries []dto.PopularBookEntry
	for rows.Next() {
		var entry dto.PopularBookEntry
		if err := rows.Scan(&entry.Title, &entry.Author, &entry.TimesBorrowed); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
