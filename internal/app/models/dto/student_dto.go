package dto

// CreateStudentRequest represents the request to register a student
type CreateStudentRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=255"`
	RollNumber string `json:"rollNumber" binding:"required,min=1,max=50"`
	Department string `json:"department" binding:"required,min=1,max=100"`
	Semester   int    `json:"semester" binding:"required,gt=0,lte=8"`
	Phone      string `json:"phone" binding:"required,min=10,max=20"`
	Email      string `json:"email" binding:"required,email"`
}

// UpdateStudentRequest represents a partial student update; only non-nil fields are applied
type UpdateStudentRequest struct {
	Name       *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	RollNumber *string `json:"rollNumber,omitempty" binding:"omitempty,min=1,max=50"`
	Department *string `json:"department,omitempty" binding:"omitempty,min=1,max=100"`
	Semester   *int    `json:"semester,omitempty" binding:"omitempty,gt=0,lte=8"`
	Phone      *string `json:"phone,omitempty" binding:"omitempty,min=10,max=20"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
}

// StudentFilter carries the optional list filters for students.
// Search matches name, roll number, or phone.
type StudentFilter struct {
	Department string
	Semester   int
	Search     string
}
