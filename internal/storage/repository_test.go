package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"expensenote/internal/core"
	"expensenote/internal/ledger"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteInsertGetRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	stored, err := repo.InsertTransaction(ctx, core.Transaction{
		Amount:   core.Money{Cents: 6500},
		Category: "Food",
		Type:     core.Expense,
		Date:     "2025-01-14",
		Note:     "groceries",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if stored.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if stored.Amount.Cents != -6500 {
		t.Fatalf("expected normalized sign, got %d", stored.Amount.Cents)
	}

	got, err := repo.GetTransaction(ctx, stored.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != stored {
		t.Fatalf("got %+v, want %+v", got, stored)
	}
}

func TestSQLiteListOrderAndFilter(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, _ := repo.InsertTransaction(ctx, core.Transaction{
		Amount: core.Money{Cents: 100}, Category: "Food", Type: core.Expense, Date: "2025-01-01"})
	second, _ := repo.InsertTransaction(ctx, core.Transaction{
		Amount: core.Money{Cents: 850000}, Category: "Salary", Type: core.Income, Date: "2025-01-02"})

	all, err := repo.ListTransactions(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != second.ID || all[1].ID != first.ID {
		t.Fatalf("expected most-recent-first, got %+v", all)
	}

	incomes, err := repo.ListTransactions(ctx, &core.TransactionQuery{Type: core.Income})
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(incomes) != 1 || incomes[0].ID != second.ID {
		t.Fatalf("type filter wrong: %+v", incomes)
	}
}

func TestSQLiteSeedCategoriesAndJoinFilter(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cats, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	var food core.Category
	for _, c := range cats {
		if c.Name == "Food" {
			food = c
		}
	}
	if food.ID == 0 {
		t.Fatalf("seed categories missing Food: %+v", cats)
	}

	repo.InsertTransaction(ctx, core.Transaction{
		Amount: core.Money{Cents: 100}, Category: "Food", Type: core.Expense, Date: "2025-01-01"})
	repo.InsertTransaction(ctx, core.Transaction{
		Amount: core.Money{Cents: 200}, Category: "Transport", Type: core.Expense, Date: "2025-01-01"})

	got, err := repo.ListTransactions(ctx, &core.TransactionQuery{CategoryIDs: []int64{food.ID}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Category != "Food" {
		t.Fatalf("category filter wrong: %+v", got)
	}
}

func TestSQLiteUpdateDeleteSemantics(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	stored, _ := repo.InsertTransaction(ctx, core.Transaction{
		Amount: core.Money{Cents: 100}, Category: "Food", Type: core.Expense, Date: "2025-01-01"})

	missing := stored
	missing.ID = stored.ID + 7
	if ok, err := repo.UpdateTransaction(ctx, missing); err != nil || ok {
		t.Fatalf("update unknown: expected (false, nil), got (%v, %v)", ok, err)
	}

	stored.Note = "edited"
	if ok, err := repo.UpdateTransaction(ctx, stored); err != nil || !ok {
		t.Fatalf("update: (%v, %v)", ok, err)
	}
	got, _ := repo.GetTransaction(ctx, stored.ID)
	if got.Note != "edited" {
		t.Fatalf("update not applied: %+v", got)
	}

	if ok, err := repo.DeleteTransaction(ctx, stored.ID); err != nil || !ok {
		t.Fatalf("first delete: (%v, %v)", ok, err)
	}
	if ok, err := repo.DeleteTransaction(ctx, stored.ID); err != nil || ok {
		t.Fatalf("second delete: expected (false, nil), got (%v, %v)", ok, err)
	}
	if _, err := repo.GetTransaction(ctx, stored.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteMirrorMappingSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	if err := repo.SetMirrorID(ctx, 7, 4242); err != nil {
		t.Fatalf("set mapping: %v", err)
	}
	if err := repo.SetMirrorID(ctx, 7, 4243); err != nil {
		t.Fatalf("overwrite mapping: %v", err)
	}
	repo.Close()

	reopened, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("reopen repository: %v", err)
	}
	t.Cleanup(func() { reopened.Close() })

	mirrorID, known, err := reopened.MirrorID(ctx, 7)
	if err != nil || !known || mirrorID != 4243 {
		t.Fatalf("mapping after reopen: (%d, %v, %v)", mirrorID, known, err)
	}

	if err := reopened.DeleteMirrorID(ctx, 7); err != nil {
		t.Fatalf("delete mapping: %v", err)
	}
	if _, known, _ := reopened.MirrorID(ctx, 7); known {
		t.Fatal("deleted mapping still present")
	}
}

func TestSQLiteTotals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	repo.InsertTransaction(ctx, core.Transaction{
		Amount: core.Money{Cents: 6500}, Category: "Food", Type: core.Expense, Date: "2025-01-14"})
	repo.InsertTransaction(ctx, core.Transaction{
		Amount: core.Money{Cents: 850000}, Category: "Salary", Type: core.Income, Date: "2025-01-15"})

	totals, err := repo.Totals(ctx, nil)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Income.Cents != 850000 || totals.Expense.Cents != 6500 || totals.Balance.Cents != 843500 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}
