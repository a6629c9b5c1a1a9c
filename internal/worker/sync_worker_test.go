package worker

import (
	"context"
	"testing"

	"expensenote/internal/amqp"
	"expensenote/internal/core"
	"expensenote/internal/ledger/memory"
)

func seed(t *testing.T, s *memory.Store) core.Transaction {
	t.Helper()
	tx, err := s.InsertTransaction(context.Background(), core.Transaction{
		Amount: core.Money{Cents: 6500}, Category: "Food", Type: core.Expense, Date: "2025-01-14"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return tx
}

func TestHandleEventCreateThenUpdateThenDelete(t *testing.T) {
	source := memory.New()
	mirror := memory.New()
	w := NewSyncWorker(source, mirror, nil)
	ctx := context.Background()

	tx := seed(t, source)

	if err := w.HandleEvent(ctx, amqp.NewTransactionEvent(tx.ID, amqp.ActionCreate)); err != nil {
		t.Fatalf("create event: %v", err)
	}
	mirrored, _ := mirror.ListTransactions(ctx, nil)
	if len(mirrored) != 1 || mirrored[0].Amount.Cents != -6500 {
		t.Fatalf("mirror after create: %+v", mirrored)
	}

	tx.Note = "edited"
	if ok, err := source.UpdateTransaction(ctx, tx); err != nil || !ok {
		t.Fatalf("source update: (%v, %v)", ok, err)
	}
	if err := w.HandleEvent(ctx, amqp.NewTransactionEvent(tx.ID, amqp.ActionUpdate)); err != nil {
		t.Fatalf("update event: %v", err)
	}
	mirrored, _ = mirror.ListTransactions(ctx, nil)
	if len(mirrored) != 1 || mirrored[0].Note != "edited" {
		t.Fatalf("mirror after update: %+v", mirrored)
	}

	if err := w.HandleEvent(ctx, amqp.NewTransactionEvent(tx.ID, amqp.ActionDelete)); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	mirrored, _ = mirror.ListTransactions(ctx, nil)
	if len(mirrored) != 0 {
		t.Fatalf("mirror after delete: %+v", mirrored)
	}
}

func TestHandleEventSkipsVanishedSource(t *testing.T) {
	source := memory.New()
	mirror := memory.New()
	w := NewSyncWorker(source, mirror, nil)

	// Event references a transaction deleted before the worker saw it.
	if err := w.HandleEvent(context.Background(), amqp.NewTransactionEvent(99, amqp.ActionCreate)); err != nil {
		t.Fatalf("expected graceful skip, got %v", err)
	}
}

func TestHandleEventUpdateWithoutMappingInserts(t *testing.T) {
	source := memory.New()
	mirror := memory.New()
	w := NewSyncWorker(source, mirror, nil)
	ctx := context.Background()

	tx := seed(t, source)
	// Update event arrives first, with no mapping recorded yet.
	if err := w.HandleEvent(ctx, amqp.NewTransactionEvent(tx.ID, amqp.ActionUpdate)); err != nil {
		t.Fatalf("update event: %v", err)
	}
	mirrored, _ := mirror.ListTransactions(ctx, nil)
	if len(mirrored) != 1 {
		t.Fatalf("expected upsert-as-insert, got %+v", mirrored)
	}
}

func TestStartupSync(t *testing.T) {
	source := memory.New()
	mirror := memory.New()
	w := NewSyncWorker(source, mirror, nil)
	ctx := context.Background()

	seed(t, source)
	seed(t, source)

	if err := w.StartupSync(ctx); err != nil {
		t.Fatalf("startup sync: %v", err)
	}
	mirrored, _ := mirror.ListTransactions(ctx, nil)
	if len(mirrored) != 2 {
		t.Fatalf("expected 2 mirrored transactions, got %d", len(mirrored))
	}
}

func TestStartupSyncAfterRestartDoesNotDuplicate(t *testing.T) {
	source := memory.New()
	mirror := memory.New()
	state := NewMemoryMappings()
	ctx := context.Background()

	tx := seed(t, source)

	if err := NewSyncWorker(source, mirror, state).StartupSync(ctx); err != nil {
		t.Fatalf("first startup sync: %v", err)
	}

	// A restarted worker is a fresh instance over the same persisted
	// mapping; the source record must become a mirror update, not a copy.
	tx.Note = "edited while worker was down"
	if ok, err := source.UpdateTransaction(ctx, tx); err != nil || !ok {
		t.Fatalf("source update: (%v, %v)", ok, err)
	}
	if err := NewSyncWorker(source, mirror, state).StartupSync(ctx); err != nil {
		t.Fatalf("second startup sync: %v", err)
	}

	mirrored, _ := mirror.ListTransactions(ctx, nil)
	if len(mirrored) != 1 {
		t.Fatalf("expected a single mirrored record across restarts, got %d", len(mirrored))
	}
	if mirrored[0].Note != "edited while worker was down" {
		t.Fatalf("offline edit not converged: %+v", mirrored[0])
	}
}

func TestDeleteMappingDroppedAfterRemove(t *testing.T) {
	source := memory.New()
	mirror := memory.New()
	state := NewMemoryMappings()
	w := NewSyncWorker(source, mirror, state)
	ctx := context.Background()

	tx := seed(t, source)
	if err := w.HandleEvent(ctx, amqp.NewTransactionEvent(tx.ID, amqp.ActionCreate)); err != nil {
		t.Fatalf("create event: %v", err)
	}
	if err := w.HandleEvent(ctx, amqp.NewTransactionEvent(tx.ID, amqp.ActionDelete)); err != nil {
		t.Fatalf("delete event: %v", err)
	}
	if _, known, _ := state.MirrorID(ctx, tx.ID); known {
		t.Fatal("mapping should be dropped with the mirrored record")
	}
}
