package handler

import (
	"net/http"

	"pinspire/internal/model"
	"pinspire/internal/service"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload model.SignupRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	auth, err := h.service.Signup(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, auth)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	auth, err := h.service.Login(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, auth)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.service.Me(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, profile)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateProfileRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, profile)
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdatePasswordRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.UpdatePassword(r.Context(), userID, payload); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"updated": true})
}
