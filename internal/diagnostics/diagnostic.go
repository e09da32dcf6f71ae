// Package diagnostics runs an owner's prompt agents against a transcript,
// one model call per agent, and records every call in history.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/scribe/internal/models"
	"github.com/google/uuid"
)

// Request is the input to Diagnose. FreeContext is optional text appended
// to every agent's resolved context.
type Request struct {
	OwnerIdentity  string `json:"ownerIdentity"`
	TranscriptText string `json:"transcriptText"`
	FreeContext    string `json:"freeContext,omitempty"`
}

// Validate rejects requests without an owner or transcript.
func (r Request) Validate() error {
	if strings.TrimSpace(r.OwnerIdentity) == "" {
		return fmt.Errorf("%w: ownerIdentity is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.TranscriptText) == "" {
		return fmt.Errorf("%w: transcriptText is required", ErrInvalidRequest)
	}
	return nil
}

// Response is the HTTP body returned by the diagnose endpoint.
type Response struct {
	Responses []string `json:"responses"`
}

// Step describes one model call made during a run.
type Step struct {
	Index       int        `json:"index"`
	AgentID     *uuid.UUID `json:"agent_id,omitempty"`
	AgentName   string     `json:"agent_name,omitempty"`
	Model       models.ID  `json:"model"`
	Temperature float64    `json:"temperature"`
	Prompt      string     `json:"prompt"`
	Output      string     `json:"output"`
	Degraded    bool       `json:"degraded"`
	Attempts    int        `json:"attempts"`
}

// Result holds the outputs of a run in agent order. Degraded steps
// contribute their partial output, possibly empty.
type Result struct {
	RunID     uuid.UUID `json:"run_id"`
	Responses []string  `json:"responses"`
	Steps     []Step    `json:"steps"`
}
