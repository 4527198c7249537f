package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"CompetitorScout/internal/ports"
)

// GeminiReasoner implements ports.Reasoner on Google Gemini.
type GeminiReasoner struct {
	client *genai.Client
	model  string
}

var _ ports.Reasoner = (*GeminiReasoner)(nil)

// NewGeminiReasoner dials the Gemini API.
func NewGeminiReasoner(ctx context.Context, apiKey, model string) (*GeminiReasoner, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiReasoner{client: client, model: model}, nil
}

// Complete sends the prompt and returns the raw text of the first candidate.
// Temperature stays low for consistent structured output; callers still own
// parsing, since responses may wrap JSON in prose.
func (r *GeminiReasoner) Complete(ctx context.Context, prompt string) (string, error) {
	model := r.client.GenerativeModel(r.model)
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return textFromResponse(resp)
}

// Close releases the underlying API connection.
func (r *GeminiReasoner) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
