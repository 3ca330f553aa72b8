package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pinspire/internal/model"
	"pinspire/internal/service"
)

type PostHandler struct {
	service *service.PostService
}

func NewPostHandler(service *service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	posts, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.PostListData{Posts: posts})
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.CreatePostRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.service.Create(r.Context(), userID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, model.PostData{Post: post})
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	post, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "post_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.PostData{Post: post})
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdatePostRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "post_id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.PostData{Post: post})
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "post_id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}
