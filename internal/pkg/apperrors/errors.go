package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Business rule errors
	ErrInvalidOperation = errors.New("operation not allowed")
)

// Book errors
var (
	ErrBookNotFound      = errors.New("book not found")
	ErrISBNAlreadyExists = errors.New("ISBN already exists")
	ErrNoCopiesAvailable = errors.New("no copies available for this book")
	ErrBookHasIssues     = errors.New("cannot delete book with active issues")
)

// Student errors
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrStudentAlreadyExists = errors.New("student with this roll number, phone, or email already exists")
	ErrStudentHasIssues     = errors.New("cannot delete student with book issue records")
)

// Issue errors
var (
	ErrIssueNotFound     = errors.New("active book issue not found")
	ErrBookAlreadyIssued = errors.New("student already has this book issued")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewInvalidOperationError creates a new custom error for blocked business operations
func NewInvalidOperationError(message string) error {
	return &CustomError{
		Err:     ErrInvalidOperation,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
