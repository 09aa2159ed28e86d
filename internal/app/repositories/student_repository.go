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

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (name, roll_number, department, semester, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		student.Name, student.RollNumber, student.Department,
		student.Semester, student.Phone, student.Email,
	).Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrStudentAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, name, roll_number, department, semester, phone, email, created_at, updated_at
		FROM students
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// ExistsByUniqueFields checks whether another student already holds any of
// the given roll number, phone, or email. excludeID is skipped (pass 0 to
// check all rows).
func (r *StudentRepository) ExistsByUniqueFields(ctx context.Context, rollNumber, phone, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM students
			WHERE (roll_number = $1 OR phone = $2 OR email = $3) AND id != $4
		)`,
		rollNumber, phone, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}

	return exists, nil
}

// GetAll retrieves students with optional filters
func (r *StudentRepository) GetAll(ctx context.Context, filter dto.StudentFilter) ([]models.Student, error) {
	baseSelect := r.sb.Select(
		"id", "name", "roll_number", "department", "semester", "phone",
		"email", "created_at", "updated_at",
	).From("students")

	whereCondition := squirrel.And{}
	if filter.Department != "" {
		whereCondition = append(whereCondition, squirrel.ILike{"department": "%" + strings.TrimSpace(filter.Department) + "%"})
	}
	if filter.Semester > 0 {
		whereCondition = append(whereCondition, squirrel.Eq{"semester": filter.Semester})
	}
	if filter.Search != "" {
		search := "%" + strings.TrimSpace(filter.Search) + "%"
		whereCondition = append(whereCondition, squirrel.Or{
			squirrel.ILike{"name": search},
			squirrel.ILike{"roll_number": search},
			squirrel.ILike{"phone": search},
		})
	}

	if len(whereCondition) > 0 {
		baseSelect = baseSelect.Where(whereCondition)
	}

	listSql, listArgs, err := baseSelect.OrderBy("id ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSql, listArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.RollNumber,
			&student.Department,
			&student.Semester,
			&student.Phone,
			&student.Email,
			&student.CreatedAt,
			&student.UpdatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update writes the full student row. Callers apply partial-update semantics
// before calling.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, roll_number = $2, department = $3, semester = $4,
		    phone = $5, email = $6, updated_at = NOW()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.Name, student.RollNumber, student.Department,
		student.Semester, student.Phone, student.Email, student.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrStudentAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete deletes a student by ID
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// HasIssueRecords reports whether any book issue rows reference the student,
// returned ones included. The deletion guard checks full history on purpose.
func (r *StudentRepository) HasIssueRecords(ctx context.Context, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM book_issues WHERE student_id = $1)`,
		studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student issue records: %w", err)
	}

	return exists, nil
}
