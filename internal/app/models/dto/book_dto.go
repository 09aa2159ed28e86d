package dto

import "github.com/eminekt/campuslib/internal/app/models"

// CreateBookRequest represents the request to add a book to the catalog
type CreateBookRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Author      string `json:"author" binding:"required,min=1,max=255"`
	ISBN        string `json:"isbn" binding:"required,min=10,max=13"`
	TotalCopies int    `json:"totalCopies" binding:"required,gt=0"`
	Category    string `json:"category" binding:"required,min=1,max=100"`
}

// UpdateBookRequest represents a partial book update; only non-nil fields are applied
type UpdateBookRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Author      *string `json:"author,omitempty" binding:"omitempty,min=1,max=255"`
	ISBN        *string `json:"isbn,omitempty" binding:"omitempty,min=10,max=13"`
	TotalCopies *int    `json:"totalCopies,omitempty" binding:"omitempty,gt=0"`
	Category    *string `json:"category,omitempty" binding:"omitempty,min=1,max=100"`
}

// BookFilter carries the optional list filters for the book catalog
type BookFilter struct {
	Title    string
	Author   string
	Category string
}

// BookListResponse represents a paginated book listing
type BookListResponse struct {
	Books      []models.Book  `json:"books"`
	Pagination PaginationInfo `json:"pagination"`
}
