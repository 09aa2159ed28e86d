package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eminekt/campuslib/internal/app/models"
	"github.com/eminekt/campuslib/internal/app/models/dto"
	"github.com/eminekt/campuslib/internal/pkg/apperrors"
)

func newBookServiceFixture() (*fakeBookStore, BookService) {
	store := newFakeBookStore()
	return store, NewBookService(store)
}

func createBookRequest() *dto.CreateBookRequest {
	return &dto.CreateBookRequest{
		Title:       "The Go Programming Language",
		Author:      "Donovan and Kernighan",
		ISBN:        "9780134190440",
		TotalCopies: 4,
		Category:    "Technology",
	}
}

func TestCreateBook_AllCopiesStartAvailable(t *testing.T) {
	_, service := newBookServiceFixture()

	book, err := service.CreateBook(context.Background(), createBookRequest())
	require.NoError(t, err)

	assert.Equal(t, 4, book.TotalCopies)
	assert.Equal(t, 4, book.AvailableCopies)
	assert.NotZero(t, book.ID)
}

func TestCreateBook_DuplicateISBN(t *testing.T) {
	_, service := newBookServiceFixture()
	ctx := context.Background()

	_, err := service.CreateBook(ctx, createBookRequest())
	require.NoError(t, err)

	dup := createBookRequest()
	dup.Title = "A different title, same ISBN"
	_, err = service.CreateBook(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrISBNAlreadyExists)
}

func TestUpdateBook_TotalCopiesShiftsAvailable(t *testing.T) {
	store, service := newBookServiceFixture()
	ctx := context.Background()

	book, err := service.CreateBook(ctx, createBookRequest())
	require.NoError(t, err)

	// Two copies out
	require.NoError(t, store.AdjustAvailableCopies(ctx, nil, book.ID, -2))

	newTotal := 6
	updated, err := service.UpdateBook(ctx, book.ID, &dto.UpdateBookRequest{TotalCopies: &newTotal})
	require.NoError(t, err)

	assert.Equal(t, 6, updated.TotalCopies)
	assert.Equal(t, 4, updated.AvailableCopies)
}

func TestUpdateBook_CannotReduceBelowOutstanding(t *testing.T) {
	store, service := newBookServiceFixture()
	ctx := context.Background()

	book, err := service.CreateBook(ctx, createBookRequest())
	require.NoError(t, err)

	// Three of four copies out
	require.NoError(t, store.AdjustAvailableCopies(ctx, nil, book.ID, -3))

	newTotal := 2
	_, err = service.UpdateBook(ctx, book.ID, &dto.UpdateBookRequest{TotalCopies: &newTotal})
	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)

	// The rejected update must not change the stored row
	stored, err := store.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.TotalCopies)
	assert.Equal(t, 1, stored.AvailableCopies)
}

func TestUpdateBook_ISBNChangeCheckedAgainstOthers(t *testing.T) {
	_, service := newBookServiceFixture()
	ctx := context.Background()

	first, err := service.CreateBook(ctx, createBookRequest())
	require.NoError(t, err)

	second := createBookRequest()
	second.ISBN = "9780201616224"
	secondBook, err := service.CreateBook(ctx, second)
	require.NoError(t, err)

	// Taking the first book's ISBN is a conflict
	_, err = service.UpdateBook(ctx, secondBook.ID, &dto.UpdateBookRequest{ISBN: &first.ISBN})
	assert.ErrorIs(t, err, apperrors.ErrISBNAlreadyExists)

	// Re-submitting its own ISBN is fine
	_, err = service.UpdateBook(ctx, secondBook.ID, &dto.UpdateBookRequest{ISBN: &secondBook.ISBN})
	assert.NoError(t, err)
}

func TestDeleteBook_BlockedWhileCopiesAreOut(t *testing.T) {
	store, service := newBookServiceFixture()
	ctx := context.Background()

	book, err := service.CreateBook(ctx, createBookRequest())
	require.NoError(t, err)

	require.NoError(t, store.AdjustAvailableCopies(ctx, nil, book.ID, -1))

	err = service.DeleteBook(ctx, book.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookHasIssues)

	// Once every copy is back the delete goes through
	require.NoError(t, store.AdjustAvailableCopies(ctx, nil, book.ID, 1))
	require.NoError(t, service.DeleteBook(ctx, book.ID))

	_, err = service.GetBookByID(ctx, book.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
}

func TestGetBookByID_InvalidID(t *testing.T) {
	_, service := newBookServiceFixture()

	_, err := service.GetBookByID(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestListBooks_ReturnsTotalAcrossPages(t *testing.T) {
	store, service := newBookServiceFixture()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		book := &models.Book{
			Title:           "Volume",
			Author:          "Author",
			ISBN:            string(rune('0'+i)) + "780134190440",
			TotalCopies:     1,
			AvailableCopies: 1,
			Category:        "Fiction",
		}
		require.NoError(t, store.Create(ctx, book))
	}

	books, total, err := service.ListBooks(ctx, dto.BookFilter{}, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, books, 2)
}
