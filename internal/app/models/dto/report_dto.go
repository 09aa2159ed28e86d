package dto

// OverdueBookEntry is one overdue record with its whole-day overdue count
type OverdueBookEntry struct {
	BookTitle   string `json:"bookTitle"`
	StudentName string `json:"studentName"`
	DaysOverdue int    `json:"daysOverdue"`
}

// DepartmentBorrows is the issue count for one department
type DepartmentBorrows struct {
	Department   string `json:"department"`
	TotalBorrows int64  `json:"totalBorrows"`
}

// NewBookEntry is a book added within the report window
type NewBookEntry struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	AddedDate string `json:"addedDate"`
}

// ActiveStudentEntry is one of the top borrowers
type ActiveStudentEntry struct {
	Name         string `json:"name"`
	Department   string `json:"department"`
	TotalBorrows int64  `json:"totalBorrows"`
}

// PopularBookEntry is one of the most borrowed books
type PopularBookEntry struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	TimesBorrowed int64  `json:"timesBorrowed"`
}
