package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eminekt/campuslib/internal/app/models"
	"github.com/eminekt/campuslib/internal/app/models/dto"
	"github.com/eminekt/campuslib/internal/app/repositories"
	"github.com/eminekt/campuslib/internal/db"
	"github.com/eminekt/campuslib/internal/pkg/logger"
)

// sampleBooks is the starter catalog inserted into an empty database.
var sampleBooks = []models.Book{
	{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: "9780743273565", TotalCopies: 5, AvailableCopies: 5, Category: "Fiction"},
	{Title: "To Kill a Mockingbird", Author: "Harper Lee", ISBN: "9780446310789", TotalCopies: 3, AvailableCopies: 3, Category: "Fiction"},
	{Title: "1984", Author: "George Orwell", ISBN: "9780451524935", TotalCopies: 4, AvailableCopies: 4, Category: "Science Fiction"},
	{Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: "9780547928227", TotalCopies: 6, AvailableCopies: 6, Category: "Fantasy"},
	{Title: "Pride and Prejudice", Author: "Jane Austen", ISBN: "9780141439518", TotalCopies: 3, AvailableCopies: 3, Category: "Romance"},
	{Title: "The Catcher in the Rye", Author: "J.D. Salinger", ISBN: "9780316769488", TotalCopies: 4, AvailableCopies: 4, Category: "Fiction"},
	{Title: "Lord of the Flies", Author: "William Golding", ISBN: "9780399501487", TotalCopies: 5, AvailableCopies: 5, Category: "Fiction"},
	{Title: "The Alchemist", Author: "Paulo Coelho", ISBN: "9780062315007", TotalCopies: 3, AvailableCopies: 3, Category: "Fiction"},
}

var sampleStudents = []models.Student{
	{Name: "John Smith", RollNumber: "CS2024001", Department: "Computer Science", Semester: 4, Phone: "1234567890", Email: "john.smith@example.com"},
	{Name: "Emma Johnson", RollNumber: "CS2024002", Department: "Computer Science", Semester: 4, Phone: "2345678901", Email: "emma.j@example.com"},
	{Name: "Michael Brown", RollNumber: "EE2024001", Department: "Electrical Engineering", Semester: 6, Phone: "3456789012", Email: "michael.b@example.com"},
	{Name: "Sarah Davis", RollNumber: "ME2024001", Department: "Mechanical Engineering", Semester: 2, Phone: "4567890123", Email: "sarah.d@example.com"},
	{Name: "David Wilson", RollNumber: "CS2024003", Department: "Computer Science", Semester: 4, Phone: "5678901234", Email: "david.w@example.com"},
}

// CreateDefaultData inserts the starter catalog, a handful of students and two
// overdue issues for the first student. It is a no-op when the database
// already holds books or students.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, repos *repositories.Repositories) error {
	_, bookCount, err := repos.BookRepository.GetAll(ctx, dto.BookFilter{}, 1, 1)
	if err != nil {
		return fmt.Errorf("failed to check existing books: %w", err)
	}

	students, err := repos.StudentRepository.GetAll(ctx, dto.StudentFilter{})
	if err != nil {
		return fmt.Errorf("failed to check existing students: %w", err)
	}

	if bookCount > 0 || len(students) > 0 {
		logger.Debug().Msg("Database already contains data, skipping seed")
		return nil
	}

	logger.Info().Msg("Seeding default library data")

	books := make([]*models.Book, 0, len(sampleBooks))
	for i := range sampleBooks {
		book := sampleBooks[i]
		if err := repos.BookRepository.Create(ctx, &book); err != nil {
			return fmt.Errorf("failed to seed book %q: %w", book.Title, err)
		}
		books = append(books, &book)
	}

	seededStudents := make([]*models.Student, 0, len(sampleStudents))
	for i := range sampleStudents {
		student := sampleStudents[i]
		if err := repos.StudentRepository.Create(ctx, &student); err != nil {
			return fmt.Errorf("failed to seed student %q: %w", student.Name, err)
		}
		seededStudents = append(seededStudents, &student)
	}

	// Two issues for the first student, both past their due date.
	now := time.Now()
	firstStudent := seededStudents[0]
	err = database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for i := 0; i < 2; i++ {
			issue := &models.BookIssue{
				BookID:     books[i].ID,
				StudentID:  firstStudent.ID,
				IssueDate:  now.AddDate(0, 0, -20),
				ReturnDate: now.AddDate(0, 0, -5),
				Status:     models.IssueStatusIssued,
			}
			if err := repos.IssueRepository.Create(ctx, tx, issue); err != nil {
				return err
			}
			if err := repos.BookRepository.AdjustAvailableCopies(ctx, tx, books[i].ID, -1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed issues: %w", err)
	}

	logger.Info().
		Int("books", len(books)).
		Int("students", len(seededStudents)).
		Msg("Default library data created")
	return nil
}
