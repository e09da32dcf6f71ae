// Package agents stores the prompt agents the diagnostic pipeline runs, in
// the order each owner arranged them.
package agents

import (
	"time"

	"github.com/JaimeStill/scribe/internal/models"
	"github.com/google/uuid"
)

// DefaultTemperature applies when a command omits the temperature.
const DefaultTemperature = 0.3

// Agent is a named prompt bound to a model. Names are unique across all
// owners. ContextDocs and ConnectedAgents hold names resolved at run time,
// so deleting a referenced document or agent leaves a dangling name.
type Agent struct {
	ID                uuid.UUID `json:"id"`
	Owner             string    `json:"owner"`
	Name              string    `json:"name"`
	Prompt            string    `json:"prompt"`
	Model             models.ID `json:"model"`
	Temperature       float64   `json:"temperature"`
	ContextDocs       []string  `json:"context_docs"`
	ConnectedAgents   []string  `json:"connected_agents"`
	IncludeTranscript bool      `json:"include_transcript"`
	Order             int       `json:"order"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to create or save an agent.
type CreateCommand struct {
	Owner             string   `json:"owner"`
	Name              string   `json:"name"`
	Prompt            string   `json:"prompt"`
	Model             string   `json:"model"`
	Temperature       *float64 `json:"temperature,omitempty"`
	ContextDocs       []string `json:"context_docs"`
	ConnectedAgents   []string `json:"connected_agents"`
	IncludeTranscript bool     `json:"include_transcript"`
}

// UpdateCommand replaces the editable fields of an agent. Ownership and
// order are not changed by updates.
type UpdateCommand struct {
	Name              string   `json:"name"`
	Prompt            string   `json:"prompt"`
	Model             string   `json:"model"`
	Temperature       *float64 `json:"temperature,omitempty"`
	ContextDocs       []string `json:"context_docs"`
	ConnectedAgents   []string `json:"connected_agents"`
	IncludeTranscript bool     `json:"include_transcript"`
}

// ReorderCommand assigns position i to IDs[i] for the owner's agents.
type ReorderCommand struct {
	Owner string      `json:"owner"`
	IDs   []uuid.UUID `json:"ids"`
}
