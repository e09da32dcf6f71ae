package main

import (
	"context"
	"fmt"

	"github.com/JaimeStill/scribe/internal/agents"
	"github.com/JaimeStill/scribe/internal/config"
	"github.com/JaimeStill/scribe/internal/diagnostics"
	"github.com/JaimeStill/scribe/internal/documents"
	"github.com/JaimeStill/scribe/internal/history"
	"github.com/JaimeStill/scribe/internal/models"
)

// Domain holds the business systems built on the runtime.
type Domain struct {
	Agents      agents.System
	Documents   documents.System
	History     history.System
	Diagnostics diagnostics.System
}

func NewDomain(ctx context.Context, runtime *Runtime, cfg *config.Config) *Domain {
	db := runtime.Database.Connection()

	invoker := models.NewInvoker(
		cfg.Models.Policy(),
		runtime.Logger,
		models.NewOpenAI(cfg.Models.OpenAI),
		models.NewGemini(ctx, cfg.Models.Gemini),
	)

	agentSys := agents.New(db, runtime.Logger, runtime.Pagination)
	documentSys := documents.New(db, runtime.Logger, runtime.Pagination, cfg.Documents)
	historySys := history.New(db, runtime.Logger, runtime.Pagination, cfg.History)

	diagnosticSys := diagnostics.New(cfg.Diagnostics, diagnostics.Deps{
		Agents:    agentSys,
		Documents: documentSys,
		Invoker:   invoker,
		History:   historySys,
		Tracker:   diagnostics.NewTracker(db, runtime.Logger, runtime.Pagination),
	}, runtime.Logger)

	return &Domain{
		Agents:      agentSys,
		Documents:   documentSys,
		History:     historySys,
		Diagnostics: diagnosticSys,
	}
}

// Start registers background work owned by domain systems.
func (d *Domain) Start(runtime *Runtime) error {
	if err := d.History.Start(runtime.Lifecycle); err != nil {
		return fmt.Errorf("history start failed: %w", err)
	}
	return nil
}
