package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/eminekt/campuslib/internal/app/models"
	"github.com/eminekt/campuslib/internal/app/models/dto"
	"github.com/eminekt/campuslib/internal/pkg/apperrors"
)

// StudentService defines the interface for student operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	ListStudents(ctx context.Context, filter dto.StudentFilter) ([]models.Student, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo StudentStore
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentStore) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
	}
}

// CreateStudent registers a student. Roll number, phone, and email must all
// be unused.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	exists, err := s.studentRepo.ExistsByUniqueFields(ctx, req.RollNumber, req.Phone, req.Email, 0)
	if err != nil {
		return nil, fmt.Errorf("error checking student uniqueness: %w", err)
	}
	if exists {
		return nil, apperrors.ErrStudentAlreadyExists
	}

	student := &models.Student{
		Name:       req.Name,
		RollNumber: req.RollNumber,
		Department: req.Department,
		Semester:   req.Semester,
		Phone:      req.Phone,
		Email:      req.Email,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrStudentAlreadyExists) {
			return nil, apperrors.ErrStudentAlreadyExists
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	return student, nil
}

// GetStudentByID retrieves a student by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// ListStudents retrieves students with optional filters
func (s *studentServiceImpl) ListStudents(ctx context.Context, filter dto.StudentFilter) ([]models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	return students, nil
}

// UpdateStudent applies a partial update. When any unique field changes,
// uniqueness is re-checked against the merged values, excluding this row.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	if req.RollNumber != nil || req.Phone != nil || req.Email != nil {
		rollNumber := student.RollNumber
		phone := student.Phone
		email := student.Email
		if req.RollNumber != nil {
			rollNumber = *req.RollNumber
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}

		exists, err := s.studentRepo.ExistsByUniqueFields(ctx, rollNumber, phone, email, id)
		if err != nil {
			return nil, fmt.Errorf("error checking student uniqueness: %w", err)
		}
		if exists {
			return nil, apperrors.ErrStudentAlreadyExists
		}
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.RollNumber != nil {
		student.RollNumber = *req.RollNumber
	}
	if req.Department != nil {
		student.Department = *req.Department
	}
	if req.Semester != nil {
		student.Semester = *req.Semester
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Email != nil {
		student.Email = *req.Email
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		if apperrors.Is(err, apperrors.ErrStudentNotFound, apperrors.ErrStudentAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	return student, nil
}

// DeleteStudent removes a student unless any issue rows reference them.
// Returned issues block deletion too; the guard checks full history, unlike
// the book guard which only looks at outstanding copies.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}

	if _, err := s.studentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error retrieving student: %w", err)
	}

	hasIssues, err := s.studentRepo.HasIssueRecords(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking student issue records: %w", err)
	}
	if hasIssues {
		return apperrors.ErrStudentHasIssues
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error deleting student: %w", err)
	}

	return nil
}
