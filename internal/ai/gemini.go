package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiCompleter implements Completer using Google's Gemini API.
type GeminiCompleter struct {
	client  *genai.Client
	modelID string
	botName string
}

// NewGeminiCompleter creates a new Gemini completion client.
func NewGeminiCompleter(ctx context.Context, apiKey, modelID, botName string) (*GeminiCompleter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ai: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("ai: failed to create gemini client: %w", err)
	}

	return &GeminiCompleter{
		client:  client,
		modelID: modelID,
		botName: botName,
	}, nil
}

// Complete sends the raw inbound text to Gemini and returns the reply text.
func (c *GeminiCompleter) Complete(ctx context.Context, userText string) (string, error) {
	model := c.client.GenerativeModel(c.modelID)
	model.SystemInstruction = genai.NewUserContent(genai.Text(fmt.Sprintf(
		"You are %s, a friendly scheduling assistant. Keep replies short and conversational. "+
			"If the user seems interested in a meeting, suggest they say \"appointment\" to start booking.",
		c.botName,
	)))

	resp, err := model.GenerateContent(ctx, genai.Text(userText))
	if err != nil {
		return "", fmt.Errorf("ai: gemini completion failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("ai: gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("ai: gemini returned empty content")
	}

	var reply strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			reply.WriteString(string(text))
		}
	}
	return strings.TrimSpace(reply.String()), nil
}

// Close releases the underlying client.
func (c *GeminiCompleter) Close() error {
	return c.client.Close()
}
