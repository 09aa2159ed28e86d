package services

import (
	"context"
	"fmt"
	"time"

	"github.com/eminekt/campuslib/internal/app/models/dto"
)

// newBooksWindow is how far back the "new books" report looks
const newBooksWindow = 7 * 24 * time.Hour

// ReportService defines the interface for the read-only library reports
type ReportService interface {
	OverdueBooks(ctx context.Context) ([]dto.OverdueBookEntry, error)
	DepartmentBorrows(ctx context.Context) ([]dto.DepartmentBorrows, error)
	NewBooks(ctx context.Context) ([]dto.NewBookEntry, error)
	ActiveStudents(ctx context.Context) ([]dto.ActiveStudentEntry, error)
	PopularBooks(ctx context.Context) ([]dto.PopularBookEntry, error)
}

// reportServiceImpl implements the ReportService interface
type reportServiceImpl struct {
	reportRepo ReportStore
	now        func() time.Time
}

// NewReportService creates a new report service instance
func NewReportService(reportRepo ReportStore) ReportService {
	return &reportServiceImpl{
		reportRepo: reportRepo,
		now:        time.Now,
	}
}

// OverdueBooks lists overdue issues with day counts. The reference time is
// taken once so every record is measured against the same instant.
func (s *reportServiceImpl) OverdueBooks(ctx context.Context) ([]dto.OverdueBookEntry, error) {
	entries, err := s.reportRepo.OverdueBooks(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("error retrieving overdue books report: %w", err)
	}
	return entries, nil
}

// DepartmentBorrows counts issues per department, busiest first
func (s *reportServiceImpl) DepartmentBorrows(ctx context.Context) ([]dto.DepartmentBorrows, error) {
	entries, err := s.reportRepo.DepartmentBorrows(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving department borrows report: %w", err)
	}
	return entries, nil
}

// NewBooks lists books added in the last week, newest first
func (s *reportServiceImpl) NewBooks(ctx context.Context) ([]dto.NewBookEntry, error) {
	entries, err := s.reportRepo.NewBooks(ctx, s.now().Add(-newBooksWindow))
	if err != nil {
		return nil, fmt.Errorf("error retrieving new books report: %w", err)
	}
	return entries, nil
}

// ActiveStudents lists the top five students by issue count
func (s *reportServiceImpl) ActiveStudents(ctx context.Context) ([]dto.ActiveStudentEntry, error) {
	entries, err := s.reportRepo.ActiveStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving active students report: %w", err)
	}
	return entries, nil
}

// PopularBooks lists the top five books by issue count
func (s *reportServiceImpl) PopularBooks(ctx context.Context) ([]dto.PopularBookEntry, error) {
	entries, err := s.reportRepo.PopularBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving popular books report: %w", err)
	}
	return entries, nil
}
