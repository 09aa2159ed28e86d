package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/eminekt/campuslib/internal/app/models/dto"
	"github.com/eminekt/campuslib/internal/pkg/apperrors"
	"github.com/eminekt/campuslib/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrBookNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageOr(err, "Book not found")),
		})
	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageOr(err, "Student not found")),
		})
	case errors.Is(err, apperrors.ErrIssueNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageOr(err, "Active issue not found")),
		})
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageOr(err, "Resource not found")),
		})
	case errors.Is(err, apperrors.ErrISBNAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, messageOr(err, "A book with this ISBN already exists")),
		})
	case errors.Is(err, apperrors.ErrStudentAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, messageOr(err, "A student with this roll number, phone or email already exists")),
		})
	case errors.Is(err, apperrors.ErrBookAlreadyIssued):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, messageOr(err, "Student already has this book issued")),
		})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, messageOr(err, "Resource already exists")),
		})
	case errors.Is(err, apperrors.ErrNoCopiesAvailable):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeOperationBlocked, messageOr(err, "No copies of this book are available")),
		})
	case errors.Is(err, apperrors.ErrBookHasIssues):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeOperationBlocked, messageOr(err, "Book has copies currently issued and cannot be deleted")),
		})
	case errors.Is(err, apperrors.ErrStudentHasIssues):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeOperationBlocked, messageOr(err, "Student has issue records and cannot be deleted")),
		})
	case errors.Is(err, apperrors.ErrInvalidOperation):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeOperationBlocked, messageOr(err, "Operation not allowed")),
		})
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOr(err, "Validation failed")),
		})
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, messageOr(err, "Invalid request")),
		})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}

// messageOr returns the wrapped CustomError message when one is present
func messageOr(err error, fallback string) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	return fallback
}
