package errors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Domain sentinels. Services return these (usually wrapped); the HTTP layer
// maps them to status codes with FromError.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("time range not available")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// FromError maps a service error onto an HTTPError. Unknown errors become 500.
func FromError(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

// WriteError serializes err as a JSON error response.
func WriteError(w http.ResponseWriter, err error) {
	httpErr := FromError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.Code)
	json.NewEncoder(w).Encode(map[string]string{"error": httpErr.Message})
}
