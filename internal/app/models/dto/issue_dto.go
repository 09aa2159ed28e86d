package dto

import (
	"time"

	"github.com/eminekt/campuslib/internal/app/models"
)

// CreateIssueRequest represents the request to issue a book to a student.
// ReturnDate is the due date, not the actual return.
type CreateIssueRequest struct {
	BookID     int64     `json:"bookId" binding:"required,gt=0"`
	StudentID  int64     `json:"studentId" binding:"required,gt=0"`
	IssueDate  time.Time `json:"issueDate" binding:"required"`
	ReturnDate time.Time `json:"returnDate" binding:"required"`
}

// IssueListResponse represents a paginated issue listing
type IssueListResponse struct {
	Issues     []models.BookIssue `json:"issues"`
	Pagination PaginationInfo     `json:"pagination"`
}
