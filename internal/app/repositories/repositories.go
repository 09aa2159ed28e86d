package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	BookRepository    *BookRepository
	StudentRepository *StudentRepository
	IssueRepository   *IssueRepository
	ReportRepository  *ReportRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		BookRepository:    NewBookRepository(db),
		StudentRepository: NewStudentRepository(db),
		IssueRepository:   NewIssueRepository(db),
		ReportRepository:  NewReportRepository(db),
	}
}
