// Package pagination parses page requests from query strings and shapes paged results.
package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/scribe/pkg/query"
)

// PageRequest is a normalized request for one page of a list endpoint.
type PageRequest struct {
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Search   *string           `json:"search,omitempty"`
	Sort     []query.SortField `json:"sort,omitempty"`
}

// Normalize clamps Page to at least 1 and PageSize to [1, cfg.MaxPageSize],
// substituting cfg.DefaultPageSize when no size was requested.
func (r *PageRequest) Normalize(cfg Config) {
	r.Page = max(r.Page, 1)
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	r.PageSize = min(r.PageSize, cfg.MaxPageSize)
}

// Offset is the number of rows preceding the requested page.
func (r *PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// PageRequestFromQuery reads page, page_size (or pageSize), search and sort
// from values. Unparseable numbers fall back to the configured defaults.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	req := PageRequest{
		Page:     intParam(values, "page"),
		PageSize: intParam(values, "page_size", "pageSize"),
		Sort:     query.ParseSortFields(values.Get("sort")),
	}

	if s := strings.TrimSpace(values.Get("search")); s != "" {
		req.Search = &s
	}

	req.Normalize(cfg)
	return req
}

func intParam(values url.Values, keys ...string) int {
	for _, key := range keys {
		if v := values.Get(key); v != "" {
			n, _ := strconv.Atoi(v)
			return n
		}
	}
	return 0
}

// PageResult is one page of T plus the totals a client needs to page further.
type PageResult[T any] struct {
	Data       []T  `json:"data"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// NewPageResult builds a PageResult. Data is never nil and TotalPages is at least 1.
func NewPageResult[T any](data []T, total, page, pageSize int) PageResult[T] {
	if data == nil {
		data = []T{}
	}

	totalPages := 1
	if pageSize > 0 && total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}
