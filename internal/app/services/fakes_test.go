package services

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eminekt/campuslib/internal/app/models"
	"github.com/eminekt/campuslib/internal/app/models/dto"
	"github.com/eminekt/campuslib/internal/db"
	"github.com/eminekt/campuslib/internal/pkg/apperrors"
)

// In-memory stores backing the service tests. They honor the same error
// contracts as the SQL repositories so the workflow rules can be exercised
// without a database.

type fakeBookStore struct {
	books  map[int64]*models.Book
	nextID int64
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{books: map[int64]*models.Book{}, nextID: 1}
}

func (f *fakeBookStore) Create(_ context.Context, book *models.Book) error {
	for _, existing := range f.books {
		if existing.ISBN == book.ISBN {
			return apperrors.ErrISBNAlreadyExists
		}
	}
	book.ID = f.nextID
	f.nextID++
	book.CreatedAt = time.Now()
	copied := *book
	f.books[book.ID] = &copied
	return nil
}

func (f *fakeBookStore) GetByID(_ context.Context, id int64) (*models.Book, error) {
	book, ok := f.books[id]
	if !ok {
		return nil, apperrors.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (f *fakeBookStore) ExistsByISBN(_ context.Context, isbn string, excludeID int64) (bool, error) {
	for _, book := range f.books {
		if book.ISBN == isbn && book.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookStore) GetAll(_ context.Context, _ dto.BookFilter, page, limit int) ([]models.Book, int64, error) {
	ids := make([]int64, 0, len(f.books))
	for id := range f.books {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	all := make([]models.Book, 0, len(ids))
	for _, id := range ids {
		all = append(all, *f.books[id])
	}

	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Book{}, int64(len(all)), nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (f *fakeBookStore) Update(_ context.Context, book *models.Book) error {
	if _, ok := f.books[book.ID]; !ok {
		return apperrors.ErrBookNotFound
	}
	copied := *book
	f.books[book.ID] = &copied
	return nil
}

func (f *fakeBookStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.books[id]; !ok {
		return apperrors.ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

func (f *fakeBookStore) AdjustAvailableCopies(_ context.Context, _ pgx.Tx, bookID int64, delta int) error {
	book, ok := f.books[bookID]
	if !ok {
		return apperrors.ErrBookNotFound
	}
	book.AvailableCopies += delta
	return nil
}

type fakeStudentStore struct {
	students  map[int64]*models.Student
	issueRefs map[int64]bool
	nextID    int64
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{
		students:  map[int64]*models.Student{},
		issueRefs: map[int64]bool{},
		nextID:    1,
	}
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	for _, existing := range f.students {
		if existing.RollNumber == student.RollNumber ||
			existing.Phone == student.Phone ||
			existing.Email == student.Email {
			return apperrors.ErrStudentAlreadyExists
		}
	}
	student.ID = f.nextID
	f.nextID++
	student.CreatedAt = time.Now()
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

func (f *fakeStudentStore) ExistsByUniqueFields(_ context.Context, rollNumber, phone, email string, excludeID int64) (bool, error) {
	for _, student := range f.students {
		if student.ID == excludeID {
			continue
		}
		if student.RollNumber == rollNumber || student.Phone == phone || student.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudentStore) GetAll(_ context.Context, _ dto.StudentFilter) ([]models.Student, error) {
	ids := make([]int64, 0, len(f.students))
	for id := range f.students {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	all := make([]models.Student, 0, len(ids))
	for _, id := range ids {
		all = append(all, *f.students[id])
	}
	return all, nil
}

func (f *fakeStudentStore) Update(_ context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStudentStore) HasIssueRecords(_ context.Context, studentID int64) (bool, error) {
	return f.issueRefs[studentID], nil
}

type fakeIssueStore struct {
	issues map[int64]*models.BookIssue
	nextID int64
}

func newFakeIssueStore() *fakeIssueStore {
	return &fakeIssueStore{issues: map[int64]*models.BookIssue{}, nextID: 1}
}

func (f *fakeIssueStore) Create(_ context.Context, _ pgx.Tx, issue *models.BookIssue) error {
	issue.ID = f.nextID
	f.nextID++
	issue.CreatedAt = time.Now()
	copied := *issue
	f.issues[issue.ID] = &copied
	return nil
}

func (f *fakeIssueStore) HasActiveIssue(_ context.Context, bookID, studentID int64) (bool, error) {
	for _, issue := range f.issues {
		if issue.BookID == bookID && issue.StudentID == studentID && issue.Status == models.IssueStatusIssued {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeIssueStore) GetActiveByID(_ context.Context, id int64) (*models.BookIssue, error) {
	issue, ok := f.issues[id]
	if !ok || issue.Status != models.IssueStatusIssued {
		return nil, apperrors.ErrIssueNotFound
	}
	copied := *issue
	return &copied, nil
}

func (f *fakeIssueStore) GetByID(_ context.Context, id int64) (*models.BookIssue, error) {
	issue, ok := f.issues[id]
	if !ok {
		return nil, apperrors.ErrIssueNotFound
	}
	copied := *issue
	return &copied, nil
}

func (f *fakeIssueStore) MarkReturned(_ context.Context, _ pgx.Tx, issueID int64, returnedAt time.Time) error {
	issue, ok := f.issues[issueID]
	if !ok || issue.Status != models.IssueStatusIssued {
		return apperrors.ErrIssueNotFound
	}
	issue.Status = models.IssueStatusReturned
	issue.ActualReturnDate = &returnedAt
	return nil
}

func (f *fakeIssueStore) ListByStudent(_ context.Context, studentID int64) ([]models.BookIssue, error) {
	result := []models.BookIssue{}
	for _, issue := range f.issues {
		if issue.StudentID == studentID {
			result = append(result, *issue)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (f *fakeIssueStore) ListActive(_ context.Context, page, limit int) ([]models.BookIssue, int64, error) {
	active := []models.BookIssue{}
	for _, issue := range f.issues {
		if issue.Status == models.IssueStatusIssued {
			active = append(active, *issue)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ReturnDate.Before(active[j].ReturnDate) })

	total := int64(len(active))
	start := (page - 1) * limit
	if start >= len(active) {
		return []models.BookIssue{}, total, nil
	}
	end := start + limit
	if end > len(active) {
		end = len(active)
	}
	return active[start:end], total, nil
}

func (f *fakeIssueStore) ListOverdue(ctx context.Context, now time.Time, page, limit int) ([]models.BookIssue, int64, error) {
	active, _, err := f.ListActive(ctx, 1, len(f.issues)+1)
	if err != nil {
		return nil, 0, err
	}

	overdue := []models.BookIssue{}
	for _, issue := range active {
		if issue.ReturnDate.Before(now) {
			overdue = append(overdue, issue)
		}
	}

	total := int64(len(overdue))
	start := (page - 1) * limit
	if start >= len(overdue) {
		return []models.BookIssue{}, total, nil
	}
	end := start + limit
	if end > len(overdue) {
		end = len(overdue)
	}
	return overdue[start:end], total, nil
}

func (f *fakeIssueStore) ListOverdueByStudent(_ context.Context, studentID int64, now time.Time) ([]models.BookIssue, error) {
	result := []models.BookIssue{}
	for _, issue := range f.issues {
		if issue.StudentID == studentID && issue.Status == models.IssueStatusIssued && issue.ReturnDate.Before(now) {
			result = append(result, *issue)
		}
	}
	return result, nil
}

// fakeTxRunner invokes the function directly with a nil transaction. The
// fake stores mutate synchronously, so there is nothing to roll back.
type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	f.calls++
	return fn(ctx, nil)
}

type fakeReportStore struct {
	overdue     []dto.OverdueBookEntry
	departments []dto.DepartmentBorrows
	newBooks    []dto.NewBookEntry
	active      []dto.ActiveStudentEntry
	popular     []dto.PopularBookEntry
}

func (f *fakeReportStore) OverdueBooks(context.Context, time.Time) ([]dto.OverdueBookEntry, error) {
	return f.overdue, nil
}

func (f *fakeReportStore) DepartmentBorrows(context.Context) ([]dto.DepartmentBorrows, error) {
	return f.departments, nil
}

func (f *fakeReportStore) NewBooks(context.Context, time.Time) ([]dto.NewBookEntry, error) {
	return f.newBooks, nil
}

func (f *fakeReportStore) ActiveStudents(context.Context) ([]dto.ActiveStudentEntry, error) {
	return f.active, nil
}

func (f *fakeReportStore) PopularBooks(context.Context) ([]dto.PopularBookEntry, error) {
	return f.popular, nil
}
