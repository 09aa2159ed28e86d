package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID         int64      `json:"id" db:"id" example:"1"`                          // Unique identifier for the student record
	Name       string     `json:"name" db:"name" example:"John Doe"`               // Full name
	RollNumber string     `json:"rollNumber" db:"roll_number" example:"CS2021001"` // Unique roll number
	Department string     `json:"department" db:"department" example:"Computer Science"`
	Semester   int        `json:"semester" db:"semester" example:"3"` // Current semester (1-8)
	Phone      string     `json:"phone" db:"phone" example:"1234567890"`
	Email      string     `json:"email" db:"email" example:"john@university.edu"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}
