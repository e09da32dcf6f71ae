package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/JaimeStill/scribe/internal/agents"
	"github.com/JaimeStill/scribe/internal/models"
)

func init() {
	registerSeeder(&AgentSeeder{})
}

type AgentSeedData struct {
	Agents []agents.CreateCommand `json:"agents"`
}

// AgentSeeder saves agents keyed by name, appending new ones to the end of
// their owner's order.
type AgentSeeder struct {
	file string
}

func (s *AgentSeeder) Name() string { return "agents" }

func (s *AgentSeeder) Description() string {
	return "Seeds default prompt agents"
}

func (s *AgentSeeder) SetFile(path string) { s.file = path }

func (s *AgentSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	data, err := readSeed[AgentSeedData](s.file, "seeds/agents.json")
	if err != nil {
		return err
	}

	for _, a := range data.Agents {
		if err := s.save(ctx, tx, a); err != nil {
			return fmt.Errorf("save agent %s: %w", a.Name, err)
		}
	}
	return nil
}

func (s *AgentSeeder) save(ctx context.Context, tx *sql.Tx, a agents.CreateCommand) error {
	if a.Owner == "" || a.Name == "" {
		return errors.New("owner and name are required")
	}

	model := models.Default
	if a.Model != "" {
		model = models.ID(a.Model)
		if err := model.Validate(); err != nil {
			return err
		}
	}

	temperature := agents.DefaultTemperature
	if a.Temperature != nil {
		temperature = *a.Temperature
	}
	if temperature < 0 || temperature > 2 {
		return fmt.Errorf("temperature %v outside [0, 2]", temperature)
	}

	docs, err := json.Marshal(nonNil(a.ContextDocs))
	if err != nil {
		return err
	}
	connected, err := json.Marshal(nonNil(a.ConnectedAgents))
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO agents (owner, name, prompt, model, temperature, context_docs, connected_agents, include_transcript, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM agents WHERE owner = $1))
		ON CONFLICT (name) DO UPDATE SET
			prompt = EXCLUDED.prompt,
			model = EXCLUDED.model,
			temperature = EXCLUDED.temperature,
			context_docs = EXCLUDED.context_docs,
			connected_agents = EXCLUDED.connected_agents,
			include_transcript = EXCLUDED.include_transcript,
			updated_at = NOW()
		WHERE agents.owner = EXCLUDED.owner
		RETURNING id`

	var id string
	err = tx.QueryRowContext(ctx, q,
		a.Owner, a.Name, a.Prompt, string(model), temperature,
		string(docs), string(connected), a.IncludeTranscript,
	).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("name is held by another owner")
	}
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
