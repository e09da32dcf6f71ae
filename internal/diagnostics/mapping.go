package diagnostics

import (
	"net/url"

	"github.com/JaimeStill/scribe/pkg/query"
	"github.com/JaimeStill/scribe/pkg/repository"
)

var runProjection = query.
	NewProjectionMap("public", "diagnostic_runs", "r").
	Project("id", "ID").
	Project("owner", "Owner").
	Project("status", "Status").
	Project("agent_count", "AgentCount").
	Project("error", "Error").
	Project("started_at", "StartedAt").
	Project("completed_at", "CompletedAt")

var runDefaultSort = query.SortField{Field: "StartedAt", Descending: true}

func scanRun(s repository.Scanner) (Run, error) {
	var r Run
	err := s.Scan(&r.ID, &r.Owner, &r.Status, &r.AgentCount, &r.Error, &r.StartedAt, &r.CompletedAt)
	return r, err
}

var stageProjection = query.
	NewProjectionMap("public", "diagnostic_stages", "s").
	Project("id", "ID").
	Project("run_id", "RunID").
	Project("node", "Node").
	Project("iteration", "Iteration").
	Project("status", "Status").
	Project("duration_ms", "DurationMs").
	Project("error", "Error").
	Project("created_at", "CreatedAt")

var stageDefaultSort = query.SortField{Field: "CreatedAt"}

func scanStage(s repository.Scanner) (Stage, error) {
	var st Stage
	err := s.Scan(&st.ID, &st.RunID, &st.Node, &st.Iteration, &st.Status, &st.DurationMs, &st.Error, &st.CreatedAt)
	return st, err
}

// RunFilters narrows run listings.
type RunFilters struct {
	Owner  *string
	Status *string
}

// RunFiltersFromQuery extracts filter values from URL query parameters.
func RunFiltersFromQuery(values url.Values) RunFilters {
	var f RunFilters
	if o := values.Get("owner"); o != "" {
		f.Owner = &o
	}
	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	return f
}

// Apply adds filter conditions to a query builder.
func (f RunFilters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Owner", f.Owner).
		WhereEquals("Status", f.Status)
}
