package http

import (
	"net/url"
	"strconv"
	"strings"

	"expensenote/internal/core"
)

// parseTransactionQuery builds a query from URL parameters. It returns nil
// when no criterion is present so stores can skip filtering entirely.
func parseTransactionQuery(params url.Values) *core.TransactionQuery {
	q := &core.TransactionQuery{
		Text: strings.TrimSpace(params.Get("text")),
	}

	if typ := strings.TrimSpace(params.Get("type")); typ != "" {
		q.Type = core.TransactionType(strings.ToUpper(typ))
	}

	if raw := strings.TrimSpace(params.Get("categoryIds")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil {
				q.CategoryIDs = append(q.CategoryIDs, id)
			}
		}
	}

	if r := parseDateRange(params); r != nil {
		q.DateRange = r
	}

	if q.IsEmpty() {
		return nil
	}
	return q
}

// parseDateRange reads the optional from/to bounds. Unparseable bounds are
// ignored rather than rejected, consistent with fail-open date handling.
func parseDateRange(params url.Values) *core.DateRange {
	var r core.DateRange
	if from := strings.TrimSpace(params.Get("from")); from != "" {
		if day, ok := core.ParseDate(from); ok {
			r.From = day
		}
	}
	if to := strings.TrimSpace(params.Get("to")); to != "" {
		if day, ok := core.ParseDate(to); ok {
			r.To = day
		}
	}
	if r.IsEmpty() {
		return nil
	}
	return &r
}
