package models

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini serves the gemini-1.5 family through the Gemini API backend.
type Gemini struct {
	client  *genai.Client
	initErr error
}

// NewGemini creates a Gemini provider. Client construction errors are kept
// and reported by every Generate call so the service can start without credentials.
func NewGemini(ctx context.Context, cfg ProviderConfig) *Gemini {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return &Gemini{initErr: fmt.Errorf("initialize gemini client: %w", err)}
	}

	return &Gemini{client: client}
}

func (p *Gemini) Name() string {
	return ProviderGemini
}

func (p *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	if p.initErr != nil {
		return "", p.initErr
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	resp, err := p.client.Models.GenerateContent(ctx, string(req.Model), contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}
