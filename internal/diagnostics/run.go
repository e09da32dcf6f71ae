package diagnostics

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
	StatusTimedOut  RunStatus = "timeout"
)

type StageStatus string

const (
	StageStarted   StageStatus = "started"
	StageCompleted StageStatus = "completed"
	StageFailed    StageStatus = "failed"
)

// Run is the audit record of one Diagnose call.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Owner       string     `json:"owner"`
	Status      RunStatus  `json:"status"`
	AgentCount  int        `json:"agent_count"`
	Error       *string    `json:"error,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Stage is one executed node of a run.
type Stage struct {
	ID         uuid.UUID   `json:"id"`
	RunID      uuid.UUID   `json:"run_id"`
	Node       string      `json:"node"`
	Iteration  int         `json:"iteration"`
	Status     StageStatus `json:"status"`
	DurationMs *int        `json:"duration_ms,omitempty"`
	Error      *string     `json:"error,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

type nodeEvent struct {
	Node         string `json:"node"`
	Iteration    int    `json:"iteration"`
	Error        bool   `json:"error"`
	ErrorMessage string `json:"error_message"`
}

type edgeEvent struct {
	From            string `json:"from"`
	To              string `json:"to"`
	PredicateName   string `json:"predicate_name"`
	PredicateResult *bool  `json:"predicate_result"`
}
