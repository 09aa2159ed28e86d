package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eminekt/campuslib/internal/app/models/dto"
	"github.com/eminekt/campuslib/internal/pkg/apperrors"
)

func createStudentRequest() *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		Name:       "Grace Hopper",
		RollNumber: "CS2024007",
		Department: "Computer Science",
		Semester:   5,
		Phone:      "5551234567",
		Email:      "grace@example.com",
	}
}

func TestCreateStudent_DuplicateUniqueFields(t *testing.T) {
	store := newFakeStudentStore()
	service := NewStudentService(store)
	ctx := context.Background()

	_, err := service.CreateStudent(ctx, createStudentRequest())
	require.NoError(t, err)

	// Same phone, everything else fresh
	dup := createStudentRequest()
	dup.RollNumber = "CS2024008"
	dup.Email = "other@example.com"
	_, err = service.CreateStudent(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrStudentAlreadyExists)
}

func TestUpdateStudent_UniquenessExcludesSelf(t *testing.T) {
	store := newFakeStudentStore()
	service := NewStudentService(store)
	ctx := context.Background()

	student, err := service.CreateStudent(ctx, createStudentRequest())
	require.NoError(t, err)

	// Re-submitting the student's own phone must not conflict
	updated, err := service.UpdateStudent(ctx, student.ID, &dto.UpdateStudentRequest{Phone: &student.Phone})
	require.NoError(t, err)
	assert.Equal(t, student.Phone, updated.Phone)
}

func TestUpdateStudent_ConflictWithOtherStudent(t *testing.T) {
	store := newFakeStudentStore()
	service := NewStudentService(store)
	ctx := context.Background()

	first, err := service.CreateStudent(ctx, createStudentRequest())
	require.NoError(t, err)

	second := createStudentRequest()
	second.RollNumber = "EE2024009"
	second.Phone = "5559876543"
	second.Email = "second@example.com"
	secondStudent, err := service.CreateStudent(ctx, second)
	require.NoError(t, err)

	_, err = service.UpdateStudent(ctx, secondStudent.ID, &dto.UpdateStudentRequest{Email: &first.Email})
	assert.ErrorIs(t, err, apperrors.ErrStudentAlreadyExists)
}

func TestDeleteStudent_BlockedByIssueHistory(t *testing.T) {
	store := newFakeStudentStore()
	service := NewStudentService(store)
	ctx := context.Background()

	student, err := service.CreateStudent(ctx, createStudentRequest())
	require.NoError(t, err)

	// Any issue row blocks deletion, returned ones included
	store.issueRefs[student.ID] = true

	err = service.DeleteStudent(ctx, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentHasIssues)

	store.issueRefs[student.ID] = false
	require.NoError(t, service.DeleteStudent(ctx, student.ID))

	_, err = service.GetStudentByID(ctx, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDeleteStudent_NotFound(t *testing.T) {
	service := NewStudentService(newFakeStudentStore())

	err := service.DeleteStudent(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
