package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view field names to qualified SQL columns for a single table.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns []string
	fields  map[string]string
	sorts   map[string]string
}

// NewProjectionMap creates a projection over schema.table with the given alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
		sorts:  make(map[string]string),
	}
}

// Project registers a column under a view field name. Column order follows registration order.
func (p *ProjectionMap) Project(column, view string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.columns = append(p.columns, qualified)
	p.fields[view] = qualified
	p.registerSort(column, view, qualified)
	return p
}

// Sortable registers a column that can be ordered by without appearing in the select list.
func (p *ProjectionMap) Sortable(column, view string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.fields[view] = qualified
	p.registerSort(column, view, qualified)
	return p
}

// SortColumn resolves a client-supplied sort name, matching either the view
// field or the column name without regard to case.
func (p *ProjectionMap) SortColumn(name string) (string, bool) {
	col, ok := p.sorts[strings.ToLower(name)]
	return col, ok
}

func (p *ProjectionMap) registerSort(column, view, qualified string) {
	p.sorts[strings.ToLower(view)] = qualified
	p.sorts[strings.ToLower(column)] = qualified
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the aliased table reference used in FROM clauses.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column resolves a view field name to its qualified column.
// Unknown names are returned unchanged.
func (p *ProjectionMap) Column(view string) string {
	if col, ok := p.fields[view]; ok {
		return col
	}
	return view
}

// Columns returns the comma-separated select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

// ColumnList returns a copy of the qualified columns in registration order.
func (p *ProjectionMap) ColumnList() []string {
	list := make([]string, len(p.columns))
	copy(list, p.columns)
	return list
}
