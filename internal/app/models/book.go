package models

import "time"

// Book defines the book model based on the 'books' table.
// AvailableCopies is derived state: it always equals TotalCopies minus the
// number of issues in status ISSUED that reference this book. Every mutation
// path that changes issue status adjusts it inside the same transaction.
type Book struct {
	ID              int64      `json:"id" db:"id" example:"1"`
	Title           string     `json:"title" db:"title" example:"The Great Gatsby"`
	Author          string     `json:"author" db:"author" example:"F. Scott Fitzgerald"`
	ISBN            string     `json:"isbn" db:"isbn" example:"9780743273565"`
	TotalCopies     int        `json:"totalCopies" db:"total_copies" example:"5"`
	AvailableCopies int        `json:"availableCopies" db:"available_copies" example:"3"`
	Category        string     `json:"category" db:"category" example:"Fiction"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}
