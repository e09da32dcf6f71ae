package repository

import (
	"context"
	"fmt"

	"github.com/JaimeStill/scribe/pkg/pagination"
	"github.com/JaimeStill/scribe/pkg/query"
)

// QueryPage counts the rows matched by qb, then fetches the requested page with
// the request's sort applied. Unknown sort fields fall back to qb's default order.
func QueryPage[T any](ctx context.Context, q Querier, qb *query.Builder, page pagination.PageRequest, scan ScanFunc[T]) (*pagination.PageResult[T], error) {
	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := q.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := QueryMany(ctx, q, pageSQL, pageArgs, scan)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}
