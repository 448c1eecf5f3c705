// Package llm generates personalized application messages and short
// company/role summaries with Gemini.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when the config does not name one.
const DefaultModel = "gemini-2.5-flash"

// Client is an abstraction over text-generation providers.
type Client interface {
	// GenerateText generates plain text from a prompt.
	GenerateText(ctx context.Context, system, prompt string) (string, error)
	// GenerateJSON generates a JSON document from a prompt.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// GenerateText generates plain text with an optional system instruction.
func (c *GeminiClient) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.7)
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return extractTextFromResponse(resp)
}

// GenerateJSON generates JSON output in response MIME-type mode.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.1) // low temperature for consistent structure
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
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

// CleanJSONBlock removes markdown code block wrappers from JSON output.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
