package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"pinspire/internal/middleware"
	"pinspire/internal/model"
	"pinspire/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "User not found"
	case errors.Is(err, model.ErrPostNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Post not found"
	case errors.Is(err, model.ErrInvalidCredentials), errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Authentication required"
	case errors.Is(err, model.ErrNotConnected):
		status = http.StatusBadRequest
		body.Code = "NOT_CONNECTED"
		body.Message = "Pinterest is not connected"
	case errors.Is(err, model.ErrInvalidOAuthState):
		status = http.StatusBadRequest
		body.Code = "INVALID_STATE"
		body.Message = "OAuth state does not match"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		body.Code = "VALIDATION"
		body.Message = "Invalid input"
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}

func currentUserID(r *http.Request) (string, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return "", apierror.Unauthorized("authentication required")
	}
	return claims.UserID, nil
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierror.Validation("invalid JSON body", "")
	}
	return nil
}
