package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pinspire/internal/model"
	"pinspire/internal/service"
)

type PinterestHandler struct {
	service *service.PinterestService
}

func NewPinterestHandler(service *service.PinterestService) *PinterestHandler {
	return &PinterestHandler{service: service}
}

func (h *PinterestHandler) Mode(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	info, err := h.service.Mode(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, info)
}

func (h *PinterestHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := h.service.Connect(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, data)
}

func (h *PinterestHandler) Callback(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.OAuthCallbackRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.service.Callback(r.Context(), userID, payload.Code, payload.State)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, profile)
}

func (h *PinterestHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Disconnect(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"disconnected": true})
}

func (h *PinterestHandler) GetCredentials(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	creds, err := h.service.Credentials(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, creds)
}

func (h *PinterestHandler) SaveCredentials(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.PinterestCredentialsRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	creds, err := h.service.SaveCredentials(r.Context(), userID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, creds)
}

func (h *PinterestHandler) DeleteCredentials(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.DeleteCredentials(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *PinterestHandler) Boards(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	boards, err := h.service.ListBoards(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"boards": boards})
}

func (h *PinterestHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.PublishRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	data, err := h.service.Publish(r.Context(), userID, chi.URLParam(r, "post_id"), payload.BoardIDs)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, data)
}
