package core

import "strings"

// Filter applies q to txs conjunctively and returns the matching subset in
// input order. Each criterion is skipped entirely when its field is absent.
// categories supplies the id→name join for the category filter: transactions
// reference categories by name, so filtering by identifier matches whatever
// name each selected category carries at filter time.
func Filter(txs []Transaction, categories []Category, q *TransactionQuery) []Transaction {
	if q.IsEmpty() {
		return append([]Transaction(nil), txs...)
	}

	text := strings.ToLower(strings.TrimSpace(q.Text))

	var names map[string]struct{}
	if len(q.CategoryIDs) > 0 {
		wanted := make(map[int64]struct{}, len(q.CategoryIDs))
		for _, id := range q.CategoryIDs {
			wanted[id] = struct{}{}
		}
		names = make(map[string]struct{}, len(q.CategoryIDs))
		for _, c := range categories {
			if _, ok := wanted[c.ID]; ok {
				names[c.Name] = struct{}{}
			}
		}
	}

	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if text != "" && !matchesText(tx, text) {
			continue
		}
		if q.Type != "" && tx.Type != q.Type {
			continue
		}
		if names != nil {
			if _, ok := names[tx.Category]; !ok {
				continue
			}
		}
		if q.DateRange != nil && !q.DateRange.IsEmpty() {
			// Unparseable dates pass through: a range filter must never
			// silently drop a record it cannot interpret.
			if day, ok := ParseDate(tx.Date); ok && !q.DateRange.InRange(day) {
				continue
			}
		}
		out = append(out, tx)
	}
	return out
}

func matchesText(tx Transaction, lowered string) bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(tx.Note)), lowered) ||
		strings.Contains(strings.ToLower(strings.TrimSpace(tx.Category)), lowered)
}
