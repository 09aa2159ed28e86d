package models

import "time"

// IssueStatus defines the lifecycle state of a book issue
type IssueStatus string

const (
	IssueStatusIssued   IssueStatus = "ISSUED"
	IssueStatusReturned IssueStatus = "RETURNED"
	// IssueStatusOverdue exists in the schema but no transition writes it;
	// overdue is classified at read time from return_date (see IsOverdue).
	IssueStatusOverdue IssueStatus = "OVERDUE"
)

// BookIssue defines the book issue model based on the 'book_issues' table.
// ReturnDate is the due date; ActualReturnDate is stamped when the book
// comes back. At most one ISSUED row may exist per (book, student) pair.
type BookIssue struct {
	ID               int64       `json:"id" db:"id" example:"1"`
	BookID           int64       `json:"bookId" db:"book_id" example:"1"`
	StudentID        int64       `json:"studentId" db:"student_id" example:"1"`
	IssueDate        time.Time   `json:"issueDate" db:"issue_date"`
	ReturnDate       time.Time   `json:"returnDate" db:"return_date"`
	ActualReturnDate *time.Time  `json:"actualReturnDate,omitempty" db:"actual_return_date"`
	Status           IssueStatus `json:"status" db:"status" example:"ISSUED"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt        *time.Time  `json:"updatedAt,omitempty" db:"updated_at"`

	// Relations (populated when needed)
	Book    *Book    `json:"book,omitempty"`
	Student *Student `json:"student,omitempty"`
}

// IsOverdue reports whether the issue is still out past its due date at the
// given time. Returned issues are never overdue.
func (i *BookIssue) IsOverdue(now time.Time) bool {
	return i.Status == IssueStatusIssued && i.ReturnDate.Before(now)
}
