package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidRequest is returned when a request body is malformed.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrTitleRequired is returned when a task title is empty after trimming.
	ErrTitleRequired = errors.New("title must not be empty")
	// ErrTitleTooLong is returned when a task title exceeds the column limit.
	ErrTitleTooLong = errors.New("title exceeds maximum length")
	// ErrNoUpdateFields is returned when an update payload carries no recognized fields.
	ErrNoUpdateFields = errors.New("no valid fields to update")
	// ErrEmptyBatch is returned when a bulk create request has no tasks.
	ErrEmptyBatch = errors.New("tasks list must not be empty")
	// ErrInvalidTopic is returned when a generation topic is empty or too long.
	ErrInvalidTopic = errors.New("topic must be between 1 and 200 characters")
	// ErrInvalidToken is returned when a bearer credential fails verification.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTaskNotFound is returned when a task is absent or owned by someone else.
	// The two cases are deliberately indistinguishable.
	ErrTaskNotFound = errors.New("task not found")
	// ErrUserNotFound is returned when a user record is missing.
	ErrUserNotFound = errors.New("user not found")
	// ErrGenerationUnavailable is returned when no generation API key is configured.
	ErrGenerationUnavailable = errors.New("task generation is not configured")
	// ErrGenerationFailed is returned when the generation call errors or times out.
	ErrGenerationFailed = errors.New("task generation failed")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Internal detail from
// wrapped causes is never copied into the response body.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidRequest.Error(), "INVALID_REQUEST")
	case errors.Is(err, ErrTitleRequired):
		return NewHTTPError(http.StatusBadRequest, ErrTitleRequired.Error(), "TITLE_REQUIRED")
	case errors.Is(err, ErrTitleTooLong):
		return NewHTTPError(http.StatusBadRequest, ErrTitleTooLong.Error(), "TITLE_TOO_LONG")
	case errors.Is(err, ErrNoUpdateFields):
		return NewHTTPError(http.StatusBadRequest, ErrNoUpdateFields.Error(), "NO_UPDATE_FIELDS")
	case errors.Is(err, ErrEmptyBatch):
		return NewHTTPError(http.StatusBadRequest, ErrEmptyBatch.Error(), "EMPTY_BATCH")
	case errors.Is(err, ErrInvalidTopic):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidTopic.Error(), "INVALID_TOPIC")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, ErrTaskNotFound.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrGenerationUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, ErrGenerationUnavailable.Error(), "GENERATION_UNAVAILABLE")
	case errors.Is(err, ErrGenerationFailed):
		return NewHTTPError(http.StatusInternalServerError, ErrGenerationFailed.Error(), "GENERATION_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
