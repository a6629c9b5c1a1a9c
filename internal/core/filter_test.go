package core

import (
	"testing"
	"time"
)

var filterCats = []Category{
	{ID: 1, Name: "Food"},
	{ID: 2, Name: "Transport"},
	{ID: 3, Name: "Salary"},
}

func filterTxs() []Transaction {
	return []Transaction{
		{ID: 4, Amount: Money{Cents: -1200}, Category: "Transport", Type: Expense, Date: "2025-01-20"},
		{ID: 3, Amount: Money{Cents: 850000}, Category: "Salary", Type: Income, Date: "2025-01-15", Note: "January pay"},
		{ID: 2, Amount: Money{Cents: -6500}, Category: "Food", Type: Expense, Date: "14 Jan 2025", Note: "Grocery FOOD run"},
		{ID: 1, Amount: Money{Cents: -3000}, Category: "Food", Type: Expense, Date: "someday"},
	}
}

func ids(txs []Transaction) []int64 {
	out := make([]int64, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}
	return out
}

func assertIDs(t *testing.T, got []Transaction, want ...int64) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got ids %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got ids %v, want %v", g, want)
		}
	}
}

func TestFilterNilQueryReturnsSnapshot(t *testing.T) {
	txs := filterTxs()
	got := Filter(txs, filterCats, nil)
	assertIDs(t, got, 4, 3, 2, 1)
	// Snapshot, not alias: mutating the result must not touch the input.
	got[0].Note = "mutated"
	if txs[0].Note == "mutated" {
		t.Fatal("filter result aliases input slice")
	}
}

func TestFilterTextCaseInsensitive(t *testing.T) {
	got := Filter(filterTxs(), filterCats, &TransactionQuery{Text: "food"})
	assertIDs(t, got, 2, 1) // matches note "Grocery FOOD run" and category "Food"
}

func TestFilterTextBlankIsAbsent(t *testing.T) {
	got := Filter(filterTxs(), filterCats, &TransactionQuery{Text: "   "})
	assertIDs(t, got, 4, 3, 2, 1)
}

func TestFilterByType(t *testing.T) {
	got := Filter(filterTxs(), filterCats, &TransactionQuery{Type: Income})
	assertIDs(t, got, 3)
}

func TestFilterByCategoryIDs(t *testing.T) {
	got := Filter(filterTxs(), filterCats, &TransactionQuery{CategoryIDs: []int64{1, 2}})
	assertIDs(t, got, 4, 2, 1)
}

func TestFilterCategoryJoinUsesCurrentName(t *testing.T) {
	// Rename category 1: transactions still carrying the old name no longer
	// match its identifier.
	cats := []Category{{ID: 1, Name: "Groceries"}, {ID: 2, Name: "Transport"}}
	got := Filter(filterTxs(), cats, &TransactionQuery{CategoryIDs: []int64{1}})
	assertIDs(t, got)
}

func TestFilterDateRange(t *testing.T) {
	q := &TransactionQuery{DateRange: &DateRange{
		From: time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}}
	// ID 1 has an unparseable date and is retained fail-open.
	got := Filter(filterTxs(), filterCats, q)
	assertIDs(t, got, 3, 2, 1)
}

func TestFilterConjunctive(t *testing.T) {
	q := &TransactionQuery{
		Text: "food",
		Type: Expense,
		DateRange: &DateRange{
			From: time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
		},
	}
	got := Filter(filterTxs(), filterCats, q)
	assertIDs(t, got, 2, 1) // 1 kept fail-open on date, matches text+type
}
