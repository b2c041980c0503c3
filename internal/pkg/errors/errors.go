package errors

import (
	"encoding/json"
	"net/http"

	"billingform/internal/engine/transparent"
)

type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeUnprocessable     = "UNPROCESSABLE"
	ErrCodeMisconfigured     = "MISCONFIGURED"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

func WriteError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    code,
		Details: details,
	})
}

// Status maps a signing error to an HTTP status and error code.
func Status(err error) (int, string) {
	switch transparent.KindOf(err) {
	case transparent.KindConfiguration:
		return http.StatusServiceUnavailable, ErrCodeMisconfigured
	case transparent.KindInvalidArgument:
		return http.StatusBadRequest, ErrCodeInvalidInput
	case transparent.KindEncoding:
		return http.StatusUnprocessableEntity, ErrCodeUnprocessable
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}

// WriteDomainError writes err using the status from Status. Configuration
// and internal failures are reported without their details.
func WriteDomainError(w http.ResponseWriter, err error) {
	status, code := Status(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	WriteError(w, status, code, message, nil)
}
