package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eminekt/campuslib/internal/app/models/dto"
	"github.com/eminekt/campuslib/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, dto.APIResponse) {
	t.Helper()

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder, body
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"book not found", apperrors.ErrBookNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"student not found", apperrors.ErrStudentNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"issue not found", apperrors.ErrIssueNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"generic not found", apperrors.ErrResourceNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"duplicate isbn", apperrors.ErrISBNAlreadyExists, 409, dto.ErrorCodeResourceAlreadyExists},
		{"duplicate student", apperrors.ErrStudentAlreadyExists, 409, dto.ErrorCodeResourceAlreadyExists},
		{"duplicate issue", apperrors.ErrBookAlreadyIssued, 409, dto.ErrorCodeResourceAlreadyExists},
		{"generic conflict", apperrors.ErrConflict, 409, dto.ErrorCodeResourceAlreadyExists},
		{"no copies", apperrors.ErrNoCopiesAvailable, 400, dto.ErrorCodeOperationBlocked},
		{"book has issues", apperrors.ErrBookHasIssues, 400, dto.ErrorCodeOperationBlocked},
		{"student has issues", apperrors.ErrStudentHasIssues, 400, dto.ErrorCodeOperationBlocked},
		{"invalid operation", apperrors.ErrInvalidOperation, 400, dto.ErrorCodeOperationBlocked},
		{"validation failed", apperrors.ErrValidationFailed, 400, dto.ErrorCodeValidationFailed},
		{"bad request", apperrors.ErrBadRequest, 400, dto.ErrorCodeResourceInvalid},
		{"unknown error", errors.New("connection refused"), 500, dto.ErrorCodeInternalServer},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder, body := handleError(t, tc.err)

			assert.Equal(t, tc.wantStatus, recorder.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.wantCode, body.Error.Code)
		})
	}
}

func TestHandleAPIError_WrappedErrorsStillMatch(t *testing.T) {
	wrapped := fmt.Errorf("error retrieving book: %w", apperrors.ErrBookNotFound)

	recorder, body := handleError(t, wrapped)

	assert.Equal(t, 404, recorder.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, body.Error.Code)
}

func TestHandleAPIError_CustomErrorMessageSurfaced(t *testing.T) {
	err := apperrors.NewInvalidOperationError("cannot reduce total copies below the number currently issued")

	recorder, body := handleError(t, err)

	assert.Equal(t, 400, recorder.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "cannot reduce total copies below the number currently issued", body.Error.Message)
}

func TestHandleAPIError_InternalDetailsNotLeaked(t *testing.T) {
	_, body := handleError(t, errors.New("pq: password authentication failed"))

	require.NotNil(t, body.Error)
	assert.Equal(t, "Internal server error", body.Error.Message)
}
