package models

import "context"

// Request is a single chat-style generation request.
type Request struct {
	Model       ID
	Prompt      string
	Temperature float64
}

// Provider generates text for a request. Implementations may return partial
// text alongside an error when a response was cut short.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}
