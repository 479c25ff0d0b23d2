package pagination

import (
	"github.com/uptrace/bun"
)

// Apply limits q to the page requested by cmd.
func Apply(q *bun.SelectQuery, cmd PagingCommand) *bun.SelectQuery {
	return q.Offset(Skip(cmd)).Limit(Take(cmd))
}

// ApplySorted limits q to the requested page and orders it by the requested property.
// columns maps accepted sort properties to column names. An unknown property falls back
// to fallback in ascending order, ignoring req.Descending; an empty fallback leaves the
// order untouched.
func ApplySorted(q *bun.SelectQuery, req SortableRequest, columns map[string]string, fallback string) *bun.SelectQuery {
	column, ok := columns[req.SortProperty]
	descending := ok && req.Descending
	if !ok {
		column = fallback
	}

	if column != "" {
		if descending {
			q = q.OrderExpr("? DESC", bun.Ident(column))
		} else {
			q = q.OrderExpr("? ASC", bun.Ident(column))
		}
	}
	return Apply(q, req)
}
