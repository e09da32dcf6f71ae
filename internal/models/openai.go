package models

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JaimeStill/go-agents/pkg/agent"
	agtconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// DefaultOpenAIBaseURL is the public endpoint. The provider appends /v1.
const DefaultOpenAIBaseURL = "https://api.openai.com"

// OpenAI serves the gpt-4o family through the OpenAI-compatible chat
// completions protocol of go-agents. One agent is kept per model.
type OpenAI struct {
	base agtconfig.AgentConfig

	mu     sync.Mutex
	agents map[ID]agent.Agent
}

// NewOpenAI creates an OpenAI provider. An empty BaseURL keeps the public endpoint.
func NewOpenAI(cfg ProviderConfig) *OpenAI {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}

	return &OpenAI{
		base: agtconfig.AgentConfig{
			Name: ProviderOpenAI,
			Provider: &agtconfig.ProviderConfig{
				Name:    "ollama",
				BaseURL: baseURL,
				Options: map[string]any{
					"auth_type": "bearer",
					"token":     cfg.APIKey,
				},
			},
			// Retries belong to the Invoker; the client makes a single attempt.
			Client: &agtconfig.ClientConfig{
				Retry:              agtconfig.RetryConfig{MaxRetries: 0},
				ConnectionPoolSize: 10,
				ConnectionTimeout:  agtconfig.Duration(90 * time.Second),
			},
		},
		agents: make(map[ID]agent.Agent),
	}
}

func (p *OpenAI) Name() string {
	return ProviderOpenAI
}

func (p *OpenAI) Generate(ctx context.Context, req Request) (string, error) {
	a, err := p.agent(req.Model)
	if err != nil {
		return "", err
	}

	resp, err := a.Chat(ctx, req.Prompt, map[string]any{"temperature": req.Temperature})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := resp.Content()
	if resp.Choices[0].FinishReason == "length" {
		tokens := 0
		if resp.Usage != nil {
			tokens = resp.Usage.CompletionTokens
		}
		return content, fmt.Errorf("chat completion truncated at %d tokens", tokens)
	}

	return content, nil
}

func (p *OpenAI) agent(model ID) (agent.Agent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if a, ok := p.agents[model]; ok {
		return a, nil
	}

	cfg := p.base
	cfg.Model = &agtconfig.ModelConfig{Name: string(model)}

	a, err := agent.New(&cfg)
	if err != nil {
		return nil, fmt.Errorf("create agent for %s: %w", model, err)
	}
	p.agents[model] = a
	return a, nil
}
