package ai

import (
	"context"
	"fmt"
	"strings"
)

// PlaceholderPrefix marks an AI provider key that was never replaced with a
// real one; it forces the mock generator.
const PlaceholderPrefix = "MOCK_"

// Generator produces Pinterest marketing copy. The Gemini implementation
// calls the provider; the mock one is deterministic and never errors.
type Generator interface {
	GenerateCaption(ctx context.Context, topic string, tone string, keywords []string) (string, error)
	SuggestHashtags(ctx context.Context, topic string) ([]string, error)
	IsMock() bool
}

// KeyValid reports whether the configured provider key can drive real calls.
func KeyValid(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && !strings.HasPrefix(key, PlaceholderPrefix)
}

// MockGenerator synthesizes captions and hashtags locally.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (g *MockGenerator) IsMock() bool { return true }

func (g *MockGenerator) GenerateCaption(_ context.Context, topic string, tone string, keywords []string) (string, error) {
	caption := fmt.Sprintf("Discover the magic of %s! ✨ A %s take to inspire your next idea.", topic, tone)
	if len(keywords) > 0 {
		caption += " Featuring " + strings.Join(keywords, ", ") + "."
	}
	caption += " " + strings.Join(mockHashtags(topic), " ")
	return caption, nil
}

func (g *MockGenerator) SuggestHashtags(_ context.Context, topic string) ([]string, error) {
	return mockHashtags(topic), nil
}

func mockHashtags(topic string) []string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(topic)), " ", "")
	tags := []string{}
	if slug != "" {
		tags = append(tags, "#"+slug)
	}
	return append(tags,
		"#pinspiration",
		"#pinterestideas",
		"#creative",
		"#trending",
		"#discover",
	)
}
