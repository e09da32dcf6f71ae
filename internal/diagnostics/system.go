package diagnostics

import (
	"context"

	"github.com/JaimeStill/scribe/internal/agents"
	"github.com/JaimeStill/scribe/internal/history"
	"github.com/JaimeStill/scribe/internal/models"
	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/google/uuid"
)

// System runs diagnostics and exposes the run audit trail.
type System interface {
	// Diagnose executes the owner's agents in order against the transcript.
	// Model failures degrade individual steps; persistence failures abort the run.
	Diagnose(ctx context.Context, req Request) (*Result, error)

	// Configure replaces the configuration used by subsequent runs.
	// Runs already in flight keep the value they started with.
	Configure(cfg Config)
	Config() Config

	ListRuns(ctx context.Context, page pagination.PageRequest, filters RunFilters) (*pagination.PageResult[Run], error)
	FindRun(ctx context.Context, id uuid.UUID) (*Run, error)
	Stages(ctx context.Context, runID uuid.UUID) ([]Stage, error)
}

// AgentSource lists an owner's agents in execution order.
type AgentSource interface {
	ListByOwner(ctx context.Context, owner string) ([]agents.Agent, error)
}

// ContextResolver turns document references into context text.
type ContextResolver interface {
	Resolve(ctx context.Context, names []string) (string, error)
}

// Invoker calls a model. It reports failures through a degraded result.
type Invoker interface {
	Invoke(ctx context.Context, prompt string, id models.ID, temperature float64) models.Result
}

// Recorder appends invocations to an owner's history.
type Recorder interface {
	Record(ctx context.Context, cmd history.RecordCommand) (*history.Entry, error)
}

// Deps are the collaborators of the orchestrator. A nil Tracker keeps no audit trail.
type Deps struct {
	Agents    AgentSource
	Documents ContextResolver
	Invoker   Invoker
	History   Recorder
	Tracker   Tracker
}
