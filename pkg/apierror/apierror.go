package apierror

import (
	"fmt"
	"net/http"
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

// Validation covers bad or missing input, duplicate identities and invalid enums.
func Validation(message string, details string) *APIError {
	return New("VALIDATION", message, details, http.StatusBadRequest)
}

func Unauthorized(message string) *APIError {
	return New("UNAUTHORIZED", message, "", http.StatusUnauthorized)
}

func NotFound(message string, details string) *APIError {
	return New("NOT_FOUND", message, details, http.StatusNotFound)
}

func NotConnected(message string) *APIError {
	return New("NOT_CONNECTED", message, "", http.StatusBadRequest)
}

func InvalidState(message string) *APIError {
	return New("INVALID_STATE", message, "", http.StatusBadRequest)
}

// Upstream wraps a non-2xx response from an external provider. The raw
// provider body travels in Details so it reaches the caller.
func Upstream(message string, body string) *APIError {
	return New("UPSTREAM_ERROR", message, body, http.StatusInternalServerError)
}
