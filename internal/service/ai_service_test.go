package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinspire/internal/ai"
	"pinspire/internal/model"
	"pinspire/pkg/apierror"
)

func newAIFixture() *AIService {
	return NewAIService(ai.NewMockGenerator())
}

func TestGenerateCaptionRequiresTopic(t *testing.T) {
	svc := newAIFixture()

	_, err := svc.GenerateCaption(context.Background(), model.CaptionRequest{Topic: "  "})
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "VALIDATION", apiErr.Code)
}

func TestGenerateCaptionMock(t *testing.T) {
	svc := newAIFixture()

	data, err := svc.GenerateCaption(context.Background(), model.CaptionRequest{
		Topic:    "home office decor",
		Keywords: []string{"minimal", "cozy"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, data.Caption)
	assert.Contains(t, data.Caption, "home office decor")
	assert.Contains(t, data.Caption, "minimal")
}

func TestSuggestHashtagsMock(t *testing.T) {
	svc := newAIFixture()

	data, err := svc.SuggestHashtags(context.Background(), model.HashtagRequest{Topic: "Fall Recipes"})
	require.NoError(t, err)
	require.NotEmpty(t, data.Hashtags)
	for _, tag := range data.Hashtags {
		assert.True(t, strings.HasPrefix(tag, "#"), "hashtag %q must start with #", tag)
	}
	assert.Contains(t, data.Hashtags, "#fallrecipes")
}

func TestGenerateImageDefaults(t *testing.T) {
	svc := newAIFixture()

	data, err := svc.GenerateImage(context.Background(), model.ImageGenerationRequest{Prompt: "cozy reading nook"})
	require.NoError(t, err)
	assert.Equal(t, "1024x1024", data.Size)
	assert.Equal(t, "standard", data.Quality)
	assert.Equal(t, "professional", data.Style)
	assert.Contains(t, data.ImageURL, "1024x1024")
}

func TestGenerateImageEnumValidation(t *testing.T) {
	svc := newAIFixture()

	tests := []struct {
		name string
		req  model.ImageGenerationRequest
	}{
		{name: "missing prompt", req: model.ImageGenerationRequest{}},
		{name: "bad size", req: model.ImageGenerationRequest{Prompt: "p", Size: "512x512"}},
		{name: "bad quality", req: model.ImageGenerationRequest{Prompt: "p", Quality: "ultra"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.GenerateImage(context.Background(), tc.req)
			var apiErr *apierror.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "VALIDATION", apiErr.Code)
		})
	}
}

func TestKeyValid(t *testing.T) {
	assert.False(t, ai.KeyValid(""))
	assert.False(t, ai.KeyValid("   "))
	assert.False(t, ai.KeyValid("MOCK_api_key"))
	assert.True(t, ai.KeyValid("real-key-123"))
}
