package server

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// GeminiReplier answers with a Gemini model
type GeminiReplier struct {
	client       *genai.Client
	model        string
	systemPrompt string
}

// NewGeminiReplier creates a replier backed by the Gemini API
func NewGeminiReplier(ctx context.Context, apiKey, model, systemPrompt string) (*GeminiReplier, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}

	return &GeminiReplier{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
	}, nil
}

func (g *GeminiReplier) Reply(ctx context.Context, message string) (string, error) {
	var cfg *genai.GenerateContentConfig
	if g.systemPrompt != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(g.systemPrompt, genai.RoleUser),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(message), cfg)
	if err != nil {
		return "", errors.Wrapf(err, "generate content with %s", g.model)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}
