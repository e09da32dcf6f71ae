package history

import (
	"net/url"

	"github.com/JaimeStill/scribe/pkg/query"
	"github.com/JaimeStill/scribe/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "history", "h").
	Project("id", "ID").
	Project("owner", "Owner").
	Project("input_text", "InputText").
	Project("output_text", "OutputText").
	Project("model", "Model").
	Project("agent_id", "AgentID").
	Project("degraded", "Degraded").
	Project("attempts", "Attempts").
	Project("created_at", "CreatedAt").
	Sortable("seq", "Seq")

var (
	newestFirst = []query.SortField{
		{Field: "CreatedAt", Descending: true},
		{Field: "Seq", Descending: true},
	}
	oldestFirst = []query.SortField{
		{Field: "CreatedAt"},
		{Field: "Seq"},
	}
)

const entryColumns = "id, owner, input_text, output_text, model, agent_id, degraded, attempts, created_at"

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.ID, &e.Owner, &e.InputText, &e.OutputText, &e.Model,
		&e.AgentID, &e.Degraded, &e.Attempts, &e.CreatedAt,
	)
	return e, err
}

// Filters narrows history listings.
type Filters struct {
	Owner *string
	Model *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if o := values.Get("owner"); o != "" {
		f.Owner = &o
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
		WhereEquals("Model", f.Model)
}
