package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eminekt/campuslib/internal/pkg/chat"
)

// unknownIntentReply is the canned help text listing the supported topics
const unknownIntentReply = "I'm sorry, I don't understand that question. I can help you with:\n" +
	"- Overdue books\n" +
	"- Department borrowing statistics\n" +
	"- New books added\n" +
	"- Most active students\n" +
	"- Most popular books"

// ChatService maps free-text questions to library reports
type ChatService interface {
	Ask(ctx context.Context, question string) (string, error)
}

// chatServiceImpl implements the ChatService interface
type chatServiceImpl struct {
	reports ReportService
	logger  zerolog.Logger
}

// NewChatService creates a new chat service instance
func NewChatService(reports ReportService, logger zerolog.Logger) ChatService {
	return &chatServiceImpl{
		reports: reports,
		logger:  logger,
	}
}

// Ask detects the question's intent and renders the matching report as
// plain text. The full answer is produced synchronously; streaming is a
// transport concern handled by the controller.
func (s *chatServiceImpl) Ask(ctx context.Context, question string) (string, error) {
	intent := chat.DetectIntent(question)

	s.logger.Debug().
		Str("intent", string(intent)).
		Msg("Resolved chat question intent")

	switch intent {
	case chat.IntentOverdueBooks:
		return s.renderOverdueBooks(ctx)
	case chat.IntentDepartmentBorrows:
		return s.renderDepartmentBorrows(ctx)
	case chat.IntentNewBooks:
		return s.renderNewBooks(ctx)
	case chat.IntentActiveStudents:
		return s.renderActiveStudents(ctx)
	case chat.IntentPopularBooks:
		return s.renderPopularBooks(ctx)
	default:
		return unknownIntentReply, nil
	}
}

func (s *chatServiceImpl) renderOverdueBooks(ctx context.Context) (string, error) {
	overdue, err := s.reports.OverdueBooks(ctx)
	if err != nil {
		return "", err
	}

	if len(overdue) == 0 {
		return "There are no overdue books at the moment.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d overdue books:\n", len(overdue))
	for _, entry := range overdue {
		fmt.Fprintf(&b, "- %s (borrowed by %s, %d days overdue)\n",
			entry.BookTitle, entry.StudentName, entry.DaysOverdue)
	}
	return b.String(), nil
}

func (s *chatServiceImpl) renderDepartmentBorrows(ctx context.Context) (string, error) {
	stats, err := s.reports.DepartmentBorrows(ctx)
	if err != nil {
		return "", err
	}

	if len(stats) == 0 {
		return "No borrowing data available.", nil
	}

	var b strings.Builder
	b.WriteString("Department borrowing statistics:\n")
	for _, entry := range stats {
		fmt.Fprintf(&b, "- %s: %d books borrowed\n", entry.Department, entry.TotalBorrows)
	}
	return b.String(), nil
}

func (s *chatServiceImpl) renderNewBooks(ctx context.Context) (string, error) {
	books, err := s.reports.NewBooks(ctx)
	if err != nil {
		return "", err
	}

	if len(books) == 0 {
		return "No new books have been added in the last week.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Added %d new books this week:\n", len(books))
	for _, entry := range books {
		fmt.Fprintf(&b, "- %s by %s (added on %s)\n", entry.Title, entry.Author, entry.AddedDate)
	}
	return b.String(), nil
}

func (s *chatServiceImpl) renderActiveStudents(ctx context.Context) (string, error) {
	students, err := s.reports.ActiveStudents(ctx)
	if err != nil {
		return "", err
	}

	if len(students) == 0 {
		return "No borrowing data available.", nil
	}

	var b strings.Builder
	b.WriteString("Top 5 most active students:\n")
	for _, entry := range students {
		fmt.Fprintf(&b, "- %s (%s): %d books borrowed\n", entry.Name, entry.Department, entry.TotalBorrows)
	}
	return b.String(), nil
}

func (s *chatServiceImpl) renderPopularBooks(ctx context.Context) (string, error) {
	books, err := s.reports.PopularBooks(ctx)
	if err != nil {
		return "", err
	}

	if len(books) == 0 {
		return "No borrowing data available.", nil
	}

	var b strings.Builder
	b.WriteString("Top 5 most popular books:\n")
	for _, entry := range books {
		fmt.Fprintf(&b, "- %s by %s: borrowed %d times\n", entry.Title, entry.Author, entry.TimesBorrowed)
	}
	return b.String(), nil
}
