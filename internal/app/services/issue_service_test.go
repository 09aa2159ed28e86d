package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eminekt/campuslib/internal/app/models"
	"github.com/eminekt/campuslib/internal/pkg/apperrors"
)

type issueServiceFixture struct {
	books    *fakeBookStore
	students *fakeStudentStore
	issues   *fakeIssueStore
	tx       *fakeTxRunner
	service  IssueService
}

func newIssueServiceFixture(t *testing.T) *issueServiceFixture {
	t.Helper()

	f := &issueServiceFixture{
		books:    newFakeBookStore(),
		students: newFakeStudentStore(),
		issues:   newFakeIssueStore(),
		tx:       &fakeTxRunner{},
	}
	f.service = NewIssueService(f.books, f.students, f.issues, f.tx)
	return f
}

func (f *issueServiceFixture) addBook(t *testing.T, copies int) *models.Book {
	t.Helper()

	book := &models.Book{
		Title:           "The Pragmatic Programmer",
		Author:          "Hunt and Thomas",
		ISBN:            "9780201616224",
		TotalCopies:     copies,
		AvailableCopies: copies,
		Category:        "Technology",
	}
	require.NoError(t, f.books.Create(context.Background(), book))
	return book
}

func (f *issueServiceFixture) addStudent(t *testing.T) *models.Student {
	t.Helper()

	student := &models.Student{
		Name:       "Ada Lovelace",
		RollNumber: "CS2024042",
		Department: "Computer Science",
		Semester:   3,
		Phone:      "9876543210",
		Email:      "ada@example.com",
	}
	require.NoError(t, f.students.Create(context.Background(), student))
	return student
}

func TestCreateIssue_DecrementsAvailableCopies(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()
	book := f.addBook(t, 3)
	student := f.addStudent(t)

	issueDate := time.Now()
	returnDate := issueDate.AddDate(0, 0, 14)

	issue, err := f.service.CreateIssue(ctx, book.ID, student.ID, issueDate, returnDate)
	require.NoError(t, err)

	assert.Equal(t, models.IssueStatusIssued, issue.Status)
	assert.Equal(t, book.ID, issue.BookID)
	assert.Equal(t, student.ID, issue.StudentID)
	require.NotNil(t, issue.Book)
	assert.Equal(t, 2, issue.Book.AvailableCopies)
	require.NotNil(t, issue.Student)
	assert.Equal(t, student.Name, issue.Student.Name)

	stored, err := f.books.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.AvailableCopies)
	assert.Equal(t, 3, stored.TotalCopies)
	assert.Equal(t, 1, f.tx.calls)
}

func TestCreateIssue_NoCopiesAvailable(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()
	book := f.addBook(t, 1)
	student := f.addStudent(t)

	// Exhaust the only copy with a direct store mutation
	require.NoError(t, f.books.AdjustAvailableCopies(ctx, nil, book.ID, -1))

	_, err := f.service.CreateIssue(ctx, book.ID, student.ID, time.Now(), time.Now().AddDate(0, 0, 7))
	assert.ErrorIs(t, err, apperrors.ErrNoCopiesAvailable)

	// The failed attempt must leave no issue row and no counter change
	stored, err := f.books.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.AvailableCopies)
	assert.Empty(t, f.issues.issues)
	assert.Zero(t, f.tx.calls)
}

func TestCreateIssue_BookNotFound(t *testing.T) {
	f := newIssueServiceFixture(t)
	student := f.addStudent(t)

	_, err := f.service.CreateIssue(context.Background(), 999, student.ID, time.Now(), time.Now().AddDate(0, 0, 7))
	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
}

func TestCreateIssue_StudentNotFound(t *testing.T) {
	f := newIssueServiceFixture(t)
	book := f.addBook(t, 2)

	_, err := f.service.CreateIssue(context.Background(), book.ID, 999, time.Now(), time.Now().AddDate(0, 0, 7))
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestCreateIssue_DuplicateActiveIssueRejected(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()
	book := f.addBook(t, 5)
	student := f.addStudent(t)

	_, err := f.service.CreateIssue(ctx, book.ID, student.ID, time.Now(), time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)

	_, err = f.service.CreateIssue(ctx, book.ID, student.ID, time.Now(), time.Now().AddDate(0, 0, 7))
	assert.ErrorIs(t, err, apperrors.ErrBookAlreadyIssued)

	// Only the first issue consumed a copy
	stored, err := f.books.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.AvailableCopies)
}

func TestCreateIssue_AllowedAgainAfterReturn(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()
	book := f.addBook(t, 2)
	student := f.addStudent(t)

	issue, err := f.service.CreateIssue(ctx, book.ID, student.ID, time.Now(), time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)

	_, err = f.service.ReturnIssue(ctx, issue.ID)
	require.NoError(t, err)

	// A returned issue no longer blocks a fresh one for the same pair
	_, err = f.service.CreateIssue(ctx, book.ID, student.ID, time.Now(), time.Now().AddDate(0, 0, 7))
	assert.NoError(t, err)
}

func TestReturnIssue_RoundTripRestoresAvailability(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()
	book := f.addBook(t, 3)
	student := f.addStudent(t)

	issue, err := f.service.CreateIssue(ctx, book.ID, student.ID, time.Now(), time.Now().AddDate(0, 0, 14))
	require.NoError(t, err)

	returned, err := f.service.ReturnIssue(ctx, issue.ID)
	require.NoError(t, err)

	assert.Equal(t, models.IssueStatusReturned, returned.Status)
	require.NotNil(t, returned.ActualReturnDate)

	stored, err := f.books.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.AvailableCopies)
}

func TestReturnIssue_SecondReturnFailsWithoutDoubleIncrement(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()
	book := f.addBook(t, 3)
	student := f.addStudent(t)

	issue, err := f.service.CreateIssue(ctx, book.ID, student.ID, time.Now(), time.Now().AddDate(0, 0, 14))
	require.NoError(t, err)

	_, err = f.service.ReturnIssue(ctx, issue.ID)
	require.NoError(t, err)

	// The active lookup filters on status, so the second return misses
	_, err = f.service.ReturnIssue(ctx, issue.ID)
	assert.ErrorIs(t, err, apperrors.ErrIssueNotFound)

	stored, err := f.books.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.AvailableCopies)
}

func TestReturnIssue_UnknownIssue(t *testing.T) {
	f := newIssueServiceFixture(t)

	_, err := f.service.ReturnIssue(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrIssueNotFound)
}

func TestListStudentOverdue_ClassifiesAtReadTime(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()
	book := f.addBook(t, 3)
	student := f.addStudent(t)

	svc := f.service.(*issueServiceImpl)
	now := time.Now()

	// One overdue issue and one still within its window
	_, err := f.service.CreateIssue(ctx, book.ID, student.ID, now.AddDate(0, 0, -20), now.AddDate(0, 0, -5))
	require.NoError(t, err)

	secondBook := &models.Book{Title: "Clean Code", Author: "Robert Martin", ISBN: "9780132350884", TotalCopies: 1, AvailableCopies: 1, Category: "Technology"}
	require.NoError(t, f.books.Create(ctx, secondBook))
	_, err = f.service.CreateIssue(ctx, secondBook.ID, student.ID, now, now.AddDate(0, 0, 14))
	require.NoError(t, err)

	svc.now = func() time.Time { return now }

	overdue, err := f.service.ListStudentOverdue(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, book.ID, overdue[0].BookID)
	// Persisted status stays ISSUED even when the due date has passed
	assert.Equal(t, models.IssueStatusIssued, overdue[0].Status)
	assert.True(t, overdue[0].IsOverdue(now))
}

func TestListActive_PaginationClamped(t *testing.T) {
	f := newIssueServiceFixture(t)
	ctx := context.Background()

	_, _, err := f.service.ListActive(ctx, -3, 0)
	require.NoError(t, err)

	_, _, err = f.service.ListActive(ctx, 1, 5000)
	require.NoError(t, err)
}

func TestListForStudent_UnknownStudent(t *testing.T) {
	f := newIssueServiceFixture(t)

	_, err := f.service.ListForStudent(context.Background(), 77)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
