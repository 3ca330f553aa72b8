package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"pinspire/pkg/apierror"
)

const captionSystemInstruction = "You are a creative Pinterest caption writer. " +
	"Create engaging, scroll-stopping captions that drive engagement."

const hashtagSystemInstruction = "You are a Pinterest hashtag expert. " +
	"Suggest relevant, trending hashtags."

// GeminiGenerator produces captions and hashtags through the Gemini API.
type GeminiGenerator struct {
	client       *genai.Client
	captionModel *genai.GenerativeModel
	hashtagModel *genai.GenerativeModel
}

func NewGeminiGenerator(ctx context.Context, apiKey string, modelName string) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("AI provider key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	captionModel := client.GenerativeModel(modelName)
	captionModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(captionSystemInstruction)},
	}
	captionModel.GenerationConfig = genai.GenerationConfig{
		Temperature:     genai.Ptr[float32](0.8),
		MaxOutputTokens: genai.Ptr[int32](400),
	}

	hashtagModel := client.GenerativeModel(modelName)
	hashtagModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(hashtagSystemInstruction)},
	}
	hashtagModel.GenerationConfig = genai.GenerationConfig{
		Temperature:     genai.Ptr[float32](0.5),
		MaxOutputTokens: genai.Ptr[int32](200),
	}

	return &GeminiGenerator{
		client:       client,
		captionModel: captionModel,
		hashtagModel: hashtagModel,
	}, nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

func (g *GeminiGenerator) IsMock() bool { return false }

func (g *GeminiGenerator) GenerateCaption(ctx context.Context, topic string, tone string, keywords []string) (string, error) {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Create a compelling Pinterest caption about: %s\n", topic)
	fmt.Fprintf(&prompt, "Tone: %s\n", tone)
	if len(keywords) > 0 {
		fmt.Fprintf(&prompt, "Include these keywords naturally: %s\n", strings.Join(keywords, ", "))
	}
	prompt.WriteString("\nThe caption should be engaging, include relevant hashtags, " +
		"and be optimized for Pinterest. Keep it under 500 characters.")

	text, err := g.generate(ctx, g.captionModel, prompt.String())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (g *GeminiGenerator) SuggestHashtags(ctx context.Context, topic string) ([]string, error) {
	prompt := fmt.Sprintf("Suggest 10-15 relevant Pinterest hashtags for a post about: %s\n", topic) +
		"Return only the hashtags, one per line, with the # symbol."

	text, err := g.generate(ctx, g.hashtagModel, prompt)
	if err != nil {
		return nil, err
	}

	hashtags := make([]string, 0, 15)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			hashtags = append(hashtags, line)
		}
	}
	return hashtags, nil
}

func (g *GeminiGenerator) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", apierror.Upstream("AI provider request failed", err.Error())
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", apierror.Upstream("AI provider returned an empty response", "")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", apierror.Upstream("AI provider returned an unexpected response type", "")
	}
	return string(text), nil
}
