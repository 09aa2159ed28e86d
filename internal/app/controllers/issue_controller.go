package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eminekt/campuslib/internal/app/models/dto"
	"github.com/eminekt/campuslib/internal/app/services"
	"github.com/eminekt/campuslib/internal/middleware"
	"github.com/eminekt/campuslib/internal/pkg/helpers"
)

// IssueController handles the book issue workflow
type IssueController struct {
	issueService services.IssueService
}

// NewIssueController creates a new IssueController
func NewIssueController(issueService services.IssueService) *IssueController {
	return &IssueController{
		issueService: issueService,
	}
}

// CreateIssue issues a book to a student
// @Summary Issue a book
// @Description Issues a book to a student and decrements the book's available copies atomically
// @Tags issues
// @Accept json
// @Produce json
// @Param request body dto.CreateIssueRequest true "Issue information"
// @Success 201 {object} dto.APIResponse{data=models.BookIssue} "Book issued successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or no copies available"
// @Failure 404 {object} dto.ErrorResponse "Book or student not found"
// @Failure 409 {object} dto.ErrorResponse "Student already has this book issued"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /issues [post]
func (c *IssueController) CreateIssue(ctx *gin.Context) {
	var req dto.CreateIssueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	issue, err := c.issueService.CreateIssue(ctx, req.BookID, req.StudentID, req.IssueDate, req.ReturnDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      issue,
		Timestamp: time.Now(),
	})
}

// ReturnIssue marks an active issue returned
// @Summary Return a book
// @Description Marks an active issue returned and increments the book's available copies atomically
// @Tags issues
// @Accept json
// @Produce json
// @Param id path int true "Issue ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.BookIssue} "Book returned successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid issue ID format"
// @Failure 404 {object} dto.ErrorResponse "Active issue not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /issues/{id}/return [put]
func (c *IssueController) ReturnIssue(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	issue, err := c.issueService.ReturnIssue(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      issue,
		Timestamp: time.Now(),
	})
}

// ListStudentIssues lists every issue for one student
// @Summary List a student's issues
// @Description Lists all issues for a student, most recent first, with book and student details
// @Tags issues
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.BookIssue} "Issues retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /issues/student/{id} [get]
func (c *IssueController) ListStudentIssues(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	issues, err := c.issueService.ListForStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      issues,
		Timestamp: time.Now(),
	})
}

// ListActiveIssues lists currently issued books
// @Summary List active issues
// @Description Lists ISSUED issues ordered soonest-due first, paginated
// @Tags issues
// @Accept json
// @Produce json
// @Param page query int false "1-based page number" default(1)
// @Param limit query int false "Page size (1-100)" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.IssueListResponse} "Issues retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /issues/active [get]
func (c *IssueController) ListActiveIssues(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)

	issues, total, err := c.issueService.ListActive(ctx, page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.IssueListResponse{
			Issues:     issues,
			Pagination: helpers.NewPaginationInfo(total, page, limit),
		},
		Timestamp: time.Now(),
	})
}

// ListOverdueIssues lists issues past their due date
// @Summary List overdue issues
// @Description Lists ISSUED issues whose due date has passed, ordered soonest-due first, paginated
// @Tags issues
// @Accept json
// @Produce json
// @Param page query int false "1-based page number" default(1)
// @Param limit query int false "Page size (1-100)" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.IssueListResponse} "Issues retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /issues/overdue [get]
func (c *IssueController) ListOverdueIssues(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)

	issues, total, err := c.issueService.ListOverdue(ctx, page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.IssueListResponse{
			Issues:     issues,
			Pagination: helpers.NewPaginationInfo(total, page, limit),
		},
		Timestamp: time.Now(),
	})
}

// ListStudentOverdueIssues lists one student's overdue issues
// @Summary List a student's overdue issues
// @Description Lists a student's ISSUED issues whose due date has passed
// @Tags issues
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.BookIssue} "Issues retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /issues/student/{id}/overdue [get]
func (c *IssueController) ListStudentOverdueIssues(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	issues, err := c.issueService.ListStudentOverdue(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      issues,
		Timestamp: time.Now(),
	})
}
