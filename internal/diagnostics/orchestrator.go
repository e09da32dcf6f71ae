package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/JaimeStill/scribe/internal/agents"
	"github.com/JaimeStill/scribe/internal/history"
	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/google/uuid"
)

type orchestrator struct {
	agents    AgentSource
	documents ContextResolver
	invoker   Invoker
	history   Recorder
	tracker   Tracker
	cfg       atomic.Pointer[Config]
	logger    *slog.Logger
}

// New creates the diagnostics System. cfg must already be finalized.
func New(cfg Config, deps Deps, logger *slog.Logger) System {
	tracker := deps.Tracker
	if tracker == nil {
		tracker = NoopTracker()
	}

	o := &orchestrator{
		agents:    deps.Agents,
		documents: deps.Documents,
		invoker:   deps.Invoker,
		history:   deps.History,
		tracker:   tracker,
		logger:    logger.With("system", "diagnostics"),
	}
	o.cfg.Store(&cfg)
	return o
}

func (o *orchestrator) Configure(cfg Config) {
	o.cfg.Store(&cfg)
	o.logger.Info(
		"configuration updated",
		"default_model", cfg.DefaultModel,
		"timeout", cfg.Timeout,
		"concurrent", cfg.IsConcurrent(),
	)
}

func (o *orchestrator) Config() Config {
	return *o.cfg.Load()
}

// execution carries the state of a single Diagnose call.
type execution struct {
	id     uuid.UUID
	req    Request
	cfg    Config
	agents []agents.Agent
	steps  []Step
}

func (x *execution) result() *Result {
	responses := make([]string, len(x.steps))
	for i, s := range x.steps {
		responses[i] = s.Output
	}
	return &Result{RunID: x.id, Responses: responses, Steps: x.steps}
}

func (x *execution) degraded() int {
	n := 0
	for _, s := range x.steps {
		if s.Degraded {
			n++
		}
	}
	return n
}

func (o *orchestrator) Diagnose(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.OwnerIdentity = strings.TrimSpace(req.OwnerIdentity)

	cfg := o.Config()
	ctx, cancel := context.WithTimeout(ctx, cfg.TimeoutDuration())
	defer cancel()

	list, err := o.agents.ListByOwner(ctx, req.OwnerIdentity)
	if err != nil {
		return nil, deadline(ctx, fmt.Errorf("list agents: %w", err))
	}

	runID, err := o.tracker.Begin(ctx, req.OwnerIdentity, len(list))
	if err != nil {
		return nil, deadline(ctx, fmt.Errorf("begin run: %w", err))
	}

	logger := o.logger.With("run_id", runID, "owner", req.OwnerIdentity)
	x := &execution{
		id:     runID,
		req:    req,
		cfg:    cfg,
		agents: list,
		steps:  make([]Step, 0, max(len(list), 1)),
	}

	if cfg.IsConcurrent() && len(list) > 1 {
		err = o.runConcurrent(ctx, x)
	} else {
		err = o.runGraph(ctx, x)
	}
	err = deadline(ctx, err)

	status := StatusCompleted
	switch {
	case errors.Is(err, ErrTimeout):
		status = StatusTimedOut
	case err != nil:
		status = StatusFailed
	}

	if terr := o.tracker.Complete(context.WithoutCancel(ctx), runID, status, err); terr != nil {
		logger.Error("failed to complete run", "error", terr)
	}

	if err != nil {
		logger.Error("diagnostic run failed", "error", err, "status", status)
		return nil, err
	}

	logger.Info(
		"diagnostic run completed",
		"agents", len(list),
		"steps", len(x.steps),
		"degraded", x.degraded(),
	)
	return x.result(), nil
}

func (o *orchestrator) ListRuns(ctx context.Context, page pagination.PageRequest, filters RunFilters) (*pagination.PageResult[Run], error) {
	return o.tracker.ListRuns(ctx, page, filters)
}

func (o *orchestrator) FindRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	return o.tracker.FindRun(ctx, id)
}

func (o *orchestrator) Stages(ctx context.Context, runID uuid.UUID) ([]Stage, error) {
	return o.tracker.Stages(ctx, runID)
}

// defaultStep composes the prompt used when the owner has no agents.
func (o *orchestrator) defaultStep(x *execution) Step {
	return Step{
		Index:       0,
		Model:       x.cfg.Model(),
		Temperature: x.cfg.Temperature(),
		Prompt:      DefaultPrompt(x.req.TranscriptText),
	}
}

// agentStep resolves the agent's context documents and composes its prompt.
func (o *orchestrator) agentStep(ctx context.Context, x *execution, i int) (Step, error) {
	a := x.agents[i]

	contextText, err := o.documents.Resolve(ctx, a.ContextDocs)
	if err != nil {
		return Step{}, fmt.Errorf("resolve context for agent %q: %w", a.Name, err)
	}

	id := a.ID
	return Step{
		Index:       i,
		AgentID:     &id,
		AgentName:   a.Name,
		Model:       a.Model,
		Temperature: agentTemperature(a),
		Prompt:      AgentPrompt(i, a, contextText, x.req.TranscriptText, x.req.FreeContext),
	}, nil
}

func (o *orchestrator) invoke(ctx context.Context, step Step) Step {
	res := o.invoker.Invoke(ctx, step.Prompt, step.Model, step.Temperature)
	step.Model = res.Model
	step.Output = res.Text
	step.Degraded = res.Degraded
	step.Attempts = res.Attempts
	return step
}

func (o *orchestrator) record(ctx context.Context, owner string, step Step) error {
	_, err := o.history.Record(ctx, history.RecordCommand{
		Owner:      owner,
		InputText:  step.Prompt,
		OutputText: step.Output,
		Model:      string(step.Model),
		AgentID:    step.AgentID,
		Degraded:   step.Degraded,
		Attempts:   step.Attempts,
	})
	if err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

// deadline marks err as a timeout when the run's context expired.
func deadline(ctx context.Context, err error) error {
	if err == nil || errors.Is(err, ErrTimeout) {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}
