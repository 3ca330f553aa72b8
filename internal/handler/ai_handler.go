package handler

import (
	"net/http"

	"pinspire/internal/model"
	"pinspire/internal/service"
)

type AIHandler struct {
	service *service.AIService
}

func NewAIHandler(service *service.AIService) *AIHandler {
	return &AIHandler{service: service}
}

func (h *AIHandler) GenerateCaption(w http.ResponseWriter, r *http.Request) {
	var payload model.CaptionRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	caption, err := h.service.GenerateCaption(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, caption)
}

func (h *AIHandler) SuggestHashtags(w http.ResponseWriter, r *http.Request) {
	var payload model.HashtagRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	hashtags, err := h.service.SuggestHashtags(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, hashtags)
}

func (h *AIHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var payload model.ImageGenerationRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	image, err := h.service.GenerateImage(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, image)
}
