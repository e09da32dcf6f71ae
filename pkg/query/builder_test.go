package query_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/scribe/pkg/query"
)

func newTestProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "agents", "a").
		Project("id", "ID").
		Project("name", "Name").
		Project("owner", "Owner").
		Project("position", "Order")
}

func TestBuilder_BuildCount_NoConditions(t *testing.T) {
	b := query.NewBuilder(newTestProjection(), query.SortField{Field: "Name"})

	sql, args := b.BuildCount()

	want := "SELECT COUNT(*) FROM public.agents a"
	if sql != want {
		t.Errorf("BuildCount() sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("BuildCount() args = %v, want empty", args)
	}
}

func TestBuilder_BuildPage_NoConditions(t *testing.T) {
	b := query.NewBuilder(newTestProjection(), query.SortField{Field: "Name"})

	sql, args := b.BuildPage(1, 20)

	if !strings.Contains(sql, "SELECT a.id, a.name, a.owner, a.position FROM public.agents a") {
		t.Errorf("BuildPage() missing select clause, got %q", sql)
	}
	if !strings.Contains(sql, "ORDER BY a.name ASC") {
		t.Errorf("BuildPage() missing order by, got %q", sql)
	}
	if !strings.Contains(sql, "LIMIT 20 OFFSET 0") {
		t.Errorf("BuildPage() missing limit/offset, got %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("BuildPage() args = %v, want empty", args)
	}
}

func TestBuilder_BuildPage_Offset(t *testing.T) {
	tests := []struct {
		page     int
		pageSize int
		want     string
	}{
		{1, 10, "LIMIT 10 OFFSET 0"},
		{2, 10, "LIMIT 10 OFFSET 10"},
		{5, 25, "LIMIT 25 OFFSET 100"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			sql, _ := query.NewBuilder(newTestProjection()).BuildPage(tt.page, tt.pageSize)
			if !strings.Contains(sql, tt.want) {
				t.Errorf("BuildPage(%d, %d) = %q, want %q", tt.page, tt.pageSize, sql, tt.want)
			}
		})
	}
}

func TestBuilder_ParameterNumbering(t *testing.T) {
	owner := "u1"
	search := "triage"

	b := query.NewBuilder(newTestProjection()).
		WhereEquals("Owner", &owner).
		WhereSearch(&search, "Name", "Owner").
		WhereIn("ID", []any{"x", "y"})

	sql, args := b.BuildCount()

	want := "SELECT COUNT(*) FROM public.agents a WHERE a.owner = $1 AND (a.name ILIKE $2 OR a.owner ILIKE $3) AND a.id IN ($4, $5)"
	if sql != want {
		t.Errorf("sql = %q\nwant %q", sql, want)
	}
	if len(args) != 5 {
		t.Fatalf("len(args) = %d, want 5", len(args))
	}
	if args[0] != "u1" {
		t.Errorf("args[0] = %v, want dereferenced owner", args[0])
	}
	if args[1] != "%triage%" {
		t.Errorf("args[1] = %v, want %q", args[1], "%triage%")
	}
}

func TestBuilder_IgnoresEmptyConditions(t *testing.T) {
	var nilOwner *string
	empty := ""

	b := query.NewBuilder(newTestProjection()).
		WhereEquals("Owner", nil).
		WhereEquals("Owner", nilOwner).
		WhereContains("Name", &empty).
		WhereSearch(nil, "Name").
		WhereIn("ID", nil)

	sql, args := b.BuildCount()

	if strings.Contains(sql, "WHERE") {
		t.Errorf("sql = %q, want no WHERE clause", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilder_OrderByFields(t *testing.T) {
	b := query.NewBuilder(newTestProjection(), query.SortField{Field: "Name"}).
		OrderByFields([]query.SortField{
			{Field: "Order"},
			{Field: "Name", Descending: true},
		})

	sql, _ := b.BuildList()

	if !strings.HasSuffix(sql, "ORDER BY a.position ASC, a.name DESC") {
		t.Errorf("BuildList() = %q, want explicit ordering", sql)
	}
}

func TestBuilder_OrderByFields_UnknownDropped(t *testing.T) {
	b := query.NewBuilder(newTestProjection(), query.SortField{Field: "Name"}).
		OrderByFields([]query.SortField{{Field: "name; DROP TABLE agents"}})

	sql, _ := b.BuildList()

	if !strings.HasSuffix(sql, "ORDER BY a.name ASC") {
		t.Errorf("BuildList() = %q, want default ordering", sql)
	}
}

func TestBuilder_OrderByFields_ColumnNames(t *testing.T) {
	pm := newTestProjection().Sortable("created_at", "CreatedAt")
	b := query.NewBuilder(pm).
		OrderByFields(query.ParseSortFields("-created_at,position"))

	sql, _ := b.BuildList()

	if !strings.HasSuffix(sql, "ORDER BY a.created_at DESC, a.position ASC") {
		t.Errorf("BuildList() = %q", sql)
	}
	if strings.Contains(sql, "SELECT a.id, a.name, a.owner, a.position, a.created_at") {
		t.Error("sortable-only column should not be selected")
	}
}

func TestBuilder_BuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection()).BuildSingle("ID", "abc")

	want := "SELECT a.id, a.name, a.owner, a.position FROM public.agents a WHERE a.id = $1"
	if sql != want {
		t.Errorf("BuildSingle() = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("args = %v, want [abc]", args)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		in   string
		want []query.SortField
	}{
		{"", nil},
		{"name", []query.SortField{{Field: "name"}}},
		{"-created_at", []query.SortField{{Field: "created_at", Descending: true}}},
		{"name, -order,", []query.SortField{{Field: "name"}, {Field: "order", Descending: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := query.ParseSortFields(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
