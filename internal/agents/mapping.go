package agents

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/JaimeStill/scribe/internal/models"
	"github.com/JaimeStill/scribe/pkg/query"
	"github.com/JaimeStill/scribe/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "agents", "a").
	Project("id", "ID").
	Project("owner", "Owner").
	Project("name", "Name").
	Project("prompt", "Prompt").
	Project("model", "Model").
	Project("temperature", "Temperature").
	Project("context_docs", "ContextDocs").
	Project("connected_agents", "ConnectedAgents").
	Project("include_transcript", "IncludeTranscript").
	Project("position", "Order").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var (
	defaultSort = query.SortField{Field: "Name"}
	ownerOrder  = []query.SortField{{Field: "Order"}, {Field: "CreatedAt"}}
)

const agentColumns = `id, owner, name, prompt, model, temperature, context_docs,
		connected_agents, include_transcript, position, created_at, updated_at`

func scanAgent(s repository.Scanner) (Agent, error) {
	var (
		a         Agent
		model     string
		docs      []byte
		connected []byte
	)

	err := s.Scan(
		&a.ID, &a.Owner, &a.Name, &a.Prompt, &model, &a.Temperature,
		&docs, &connected, &a.IncludeTranscript, &a.Order,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}

	a.Model = models.ID(model)

	if a.ContextDocs, err = decodeNames(docs); err != nil {
		return a, fmt.Errorf("decode context_docs: %w", err)
	}
	if a.ConnectedAgents, err = decodeNames(connected); err != nil {
		return a, fmt.Errorf("decode connected_agents: %w", err)
	}

	return a, nil
}

func decodeNames(data []byte) ([]string, error) {
	names := []string{}
	if len(data) == 0 {
		return names, nil
	}
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func encodeNames(names []string) ([]byte, error) {
	return json.Marshal(nonNil(names))
}

// Filters contains optional filtering criteria for agent queries.
type Filters struct {
	Owner *string
	Name  *string
	Model *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if o := values.Get("owner"); o != "" {
		f.Owner = &o
	}
	if n := values.Get("name"); n != "" {
		f.Name = &n
	}
	if m := values.Get("model"); m != "" {
		f.Model = &m
	}
	return f
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Owner", f.Owner).
		WhereContains("Name", f.Name).
		WhereEquals("Model", f.Model)
}
