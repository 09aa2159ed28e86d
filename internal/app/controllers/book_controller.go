package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eminekt/campuslib/internal/app/models/dto"
	"github.com/eminekt/campuslib/internal/app/services"
	"github.com/eminekt/campuslib/internal/middleware"
	"github.com/eminekt/campuslib/internal/pkg/helpers"
)

// BookController handles book catalog operations
type BookController struct {
	bookService services.BookService
}

// NewBookController creates a new BookController
func NewBookController(bookService services.BookService) *BookController {
	return &BookController{
		bookService: bookService,
	}
}

// CreateBook handles book creation
// @Summary Add a new book
// @Description Adds a book to the catalog; all copies start available
// @Tags books
// @Accept json
// @Produce json
// @Param request body dto.CreateBookRequest true "Book information"
// @Success 201 {object} dto.APIResponse{data=models.Book} "Book created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "ISBN already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books [post]
func (c *BookController) CreateBook(ctx *gin.Context) {
	var req dto.CreateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	book, err := c.bookService.CreateBook(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      book,
		Timestamp: time.Now(),
	})
}

// GetBookByID retrieves a book by ID
// @Summary Get book details
// @Description Retrieves a specific book by its ID
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Book} "Book retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid book ID format"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books/{id} [get]
func (c *BookController) GetBookByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	book, err := c.bookService.GetBookByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      book,
		Timestamp: time.Now(),
	})
}

// ListBooks retrieves books with optional filters
// @Summary List books
// @Description Lists books filtered by title, author, and category, paginated
// @Tags books
// @Accept json
// @Produce json
// @Param title query string false "Filter by title (substring)"
// @Param author query string false "Filter by author (substring)"
// @Param category query string false "Filter by category (substring)"
// @Param page query int false "1-based page number" default(1)
// @Param limit query int false "Page size (1-100)" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.BookListResponse} "Books retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books [get]
func (c *BookController) ListBooks(ctx *gin.Context) {
	filter := dto.BookFilter{
		Title:    ctx.Query("title"),
		Author:   ctx.Query("author"),
		Category: ctx.Query("category"),
	}
	page, limit := helpers.ParsePaginationParams(ctx)

	books, total, err := c.bookService.ListBooks(ctx, filter, page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.BookListResponse{
			Books:      books,
			Pagination: helpers.NewPaginationInfo(total, page, limit),
		},
		Timestamp: time.Now(),
	})
}

// UpdateBook applies a partial book update
// @Summary Update a book
// @Description Updates the provided fields; changing total copies shifts available copies by the same delta
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID" Format(int64) minimum(1)
// @Param request body dto.UpdateBookRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Book} "Book updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 409 {object} dto.ErrorResponse "ISBN already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books/{id} [put]
func (c *BookController) UpdateBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	book, err := c.bookService.UpdateBook(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      book,
		Timestamp: time.Now(),
	})
}

// DeleteBook deletes a book
// @Summary Delete a book
// @Description Deletes a book; blocked while any copies are checked out
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID" Format(int64) minimum(1)
// @Success 200 {object} dto.SuccessResponse "Book deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Book has active issues"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books/{id} [delete]
func (c *BookController) DeleteBook(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.bookService.DeleteBook(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Book deleted successfully",
	})
}

// parseIDParam parses a path parameter as a positive int64 id, writing the
// 400 response itself when the value is malformed.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	idStr := ctx.Param(name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
