// Package history records every model invocation made by the diagnostic
// pipeline and keeps each owner's log within a fixed retention cap.
package history

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one immutable record of a model invocation.
type Entry struct {
	ID         uuid.UUID  `json:"id"`
	Owner      string     `json:"owner"`
	InputText  string     `json:"input_text"`
	OutputText string     `json:"output_text"`
	Model      string     `json:"model"`
	AgentID    *uuid.UUID `json:"agent_id,omitempty"`
	Degraded   bool       `json:"degraded"`
	Attempts   int        `json:"attempts"`
	CreatedAt  time.Time  `json:"created_at"`
}

// RecordCommand carries the data for a new entry. InputText is the fully
// composed prompt sent to the model.
type RecordCommand struct {
	Owner      string
	InputText  string
	OutputText string
	Model      string
	AgentID    *uuid.UUID
	Degraded   bool
	Attempts   int
}
