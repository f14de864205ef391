package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements Provider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey, defaultModel string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  defaultModel,
	}, nil
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

// Complete sends one generation request and returns the concatenated text parts.
func (p *GeminiProvider) Complete(ctx context.Context, req Request) (string, error) {
	id := req.Model
	if id == "" {
		id = p.model
	}
	model := p.client.GenerativeModel(id)
	model.SetTemperature(req.Temperature)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.JSON {
		// Force JSON response for structured parsing.
		model.ResponseMIMEType = "application/json"
	}

	// While Gemini supports SystemInstruction, appending instructions directly
	// to the prompt is more flexible for per-request context binding.
	prompt := req.Prompt
	if req.System != "" {
		prompt = fmt.Sprintf("%s\n\n%s", req.System, req.Prompt)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}
	if responseText.Len() == 0 {
		return "", fmt.Errorf("empty completion from Gemini")
	}

	return responseText.String(), nil
}
