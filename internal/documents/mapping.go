package documents

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/scribe/pkg/query"
	"github.com/JaimeStill/scribe/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "context_documents", "d").
	Project("id", "ID").
	Project("owner", "Owner").
	Project("name", "Name").
	Project("text", "Text").
	Project("active", "Active").
	Project("user_selected", "UserSelected").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "CreatedAt"}

const documentColumns = "id, owner, name, text, active, user_selected, created_at, updated_at"

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID, &d.Owner, &d.Name, &d.Text,
		&d.Active, &d.UserSelected, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

func scanText(s repository.Scanner) (string, error) {
	var text string
	err := s.Scan(&text)
	return text, err
}

// Filters contains optional filtering criteria for document queries.
type Filters struct {
	Owner  *string
	Name   *string
	Active *bool
}

// FiltersFromQuery extracts filter values from URL query parameters.
// An unparseable active value is ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if o := values.Get("owner"); o != "" {
		f.Owner = &o
	}
	if n := values.Get("name"); n != "" {
		f.Name = &n
	}
	if a := values.Get("active"); a != "" {
		if b, err := strconv.ParseBool(a); err == nil {
			f.Active = &b
		}
	}
	return f
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Owner", f.Owner).
		WhereContains("Name", f.Name).
		WhereEquals("Active", f.Active)
}
