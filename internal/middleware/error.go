package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/ada/backend/internal/models"
	"github.com/pageza/ada/backend/internal/service"
	"github.com/pageza/ada/backend/internal/storage"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// BadRequest wraps a binding or parsing failure
func BadRequest(err error) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
}

// messageError replaces the user-facing message of a domain error
type messageError struct {
	err     error
	message string
}

func (e *messageError) Error() string { return e.err.Error() }
func (e *messageError) Unwrap() error { return e.err }

// WithMessage keeps err for status mapping but shows message to the user
func WithMessage(err error, message string) error {
	if message == "" {
		return err
	}
	return &messageError{err: err, message: message}
}

// MapErrorToHTTP maps domain errors to HTTP errors
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	mapped := mapDomainError(err)
	var msgErr *messageError
	if errors.As(err, &msgErr) {
		mapped.Message = msgErr.message
	}
	return mapped
}

func mapDomainError(err error) *HTTPError {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		return NewHTTPError(http.StatusConflict, service.MsgDuplicateEmail, "DUPLICATE_EMAIL")
	case errors.Is(err, service.ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, service.MsgInvalidCredentials, "INVALID_CREDENTIALS")
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrSessionNotFound):
		return NewHTTPError(http.StatusUnauthorized, "invalid or expired session", "UNAUTHORIZED")
	case errors.Is(err, service.ErrMissingFields):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_FIELDS")
	case errors.Is(err, models.ErrInvalidProfile):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PROFILE")
	case errors.Is(err, service.ErrNoProfile):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NO_PROFILE")
	case errors.Is(err, service.ErrNoPlan):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NO_PLAN")
	case errors.Is(err, service.ErrSchemaMismatch):
		return NewHTTPError(http.StatusBadGateway, service.MsgGenerationFailed, "SCHEMA_MISMATCH")
	case errors.Is(err, service.ErrGenerationFailed):
		return NewHTTPError(http.StatusBadGateway, service.MsgGenerationFailed, "GENERATION_FAILED")
	case errors.Is(err, service.ErrExportNotConfigured):
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "EXPORT_DISABLED")
	case errors.Is(err, storage.ErrCorruptRecord):
		return NewHTTPError(http.StatusInternalServerError, "stored data is corrupt", "CORRUPT_RECORD")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// ErrorHandler renders the last error attached with c.Error as JSON
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		httpErr := MapErrorToHTTP(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			log.Printf("[ErrorHandler] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
}
