package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"pinspire/internal/ai"
	"pinspire/internal/model"
	"pinspire/pkg/apierror"
)

const (
	defaultCaptionTone = "engaging"
	defaultImageStyle  = "professional"
	defaultImageSize   = "1024x1024"
	defaultImageQual   = "standard"
)

var imageSizes = map[string]bool{
	"1024x1024": true,
	"1024x1792": true,
	"1792x1024": true,
}

var imageQualities = map[string]bool{
	"standard": true,
	"hd":       true,
}

type AIService struct {
	generator ai.Generator
}

func NewAIService(generator ai.Generator) *AIService {
	return &AIService{generator: generator}
}

// GenerateCaption asks the provider for a caption. The 500-character limit
// is a prompt instruction, not a hard server-side bound.
func (s *AIService) GenerateCaption(ctx context.Context, req model.CaptionRequest) (model.CaptionData, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return model.CaptionData{}, apierror.Validation("topic is required", "")
	}

	tone := strings.TrimSpace(req.Tone)
	if tone == "" {
		tone = defaultCaptionTone
	}

	caption, err := s.generator.GenerateCaption(ctx, topic, tone, req.Keywords)
	if err != nil {
		return model.CaptionData{}, err
	}

	return model.CaptionData{Caption: caption}, nil
}

func (s *AIService) SuggestHashtags(ctx context.Context, req model.HashtagRequest) (model.HashtagsData, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return model.HashtagsData{}, apierror.Validation("topic is required", "")
	}

	hashtags, err := s.generator.SuggestHashtags(ctx, topic)
	if err != nil {
		return model.HashtagsData{}, err
	}

	return model.HashtagsData{Hashtags: hashtags}, nil
}

// GenerateImage validates the request and returns a synthesized image URL.
// No image-generation provider is wired; the URL encodes the prompt so the
// frontend can render a stand-in.
func (s *AIService) GenerateImage(ctx context.Context, req model.ImageGenerationRequest) (model.GeneratedImageData, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return model.GeneratedImageData{}, apierror.Validation("prompt is required", "")
	}

	style := strings.TrimSpace(req.Style)
	if style == "" {
		style = defaultImageStyle
	}

	size := strings.TrimSpace(req.Size)
	if size == "" {
		size = defaultImageSize
	}
	if !imageSizes[size] {
		return model.GeneratedImageData{}, apierror.Validation("invalid image size", size)
	}

	quality := strings.TrimSpace(req.Quality)
	if quality == "" {
		quality = defaultImageQual
	}
	if !imageQualities[quality] {
		return model.GeneratedImageData{}, apierror.Validation("invalid image quality", quality)
	}

	label := truncateRunes(prompt, 48)
	imageURL := fmt.Sprintf("https://placehold.co/%s?text=%s", size, url.QueryEscape(label))

	return model.GeneratedImageData{
		ImageURL: imageURL,
		Prompt:   prompt,
		Style:    style,
		Size:     size,
		Quality:  quality,
	}, nil
}
