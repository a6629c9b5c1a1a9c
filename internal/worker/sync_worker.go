// Package worker replays local ledger changes onto a remote mirror store.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"expensenote/internal/amqp"
	"expensenote/internal/core"
	"expensenote/internal/ledger"
)

// MappingStore persists the local-id to mirror-id mapping. It must outlive
// the worker process: a mapping that only lives in memory would make every
// restart re-insert already-mirrored records.
type MappingStore interface {
	MirrorID(ctx context.Context, localID int64) (int64, bool, error)
	SetMirrorID(ctx context.Context, localID, mirrorID int64) error
	DeleteMirrorID(ctx context.Context, localID int64) error
}

// SyncWorker consumes transaction events and mirrors them to a second
// store. Identifiers differ between the two sides, so the worker tracks a
// local-id to mirror-id mapping through a MappingStore.
type SyncWorker struct {
	source ledger.TransactionStore
	mirror ledger.TransactionStore
	state  MappingStore
}

// NewSyncWorker builds a worker over source and mirror. A nil state falls
// back to an in-memory mapping, which is only suitable for tests and
// single-run tooling.
func NewSyncWorker(source, mirror ledger.TransactionStore, state MappingStore) *SyncWorker {
	if state == nil {
		state = NewMemoryMappings()
	}
	return &SyncWorker{
		source: source,
		mirror: mirror,
		state:  state,
	}
}

// HandleEvent processes a single change event. Missing source records are
// skipped, not failed: the record may have been deleted after the event was
// queued, and a later delete event will reconcile the mirror.
func (w *SyncWorker) HandleEvent(ctx context.Context, msg *amqp.TransactionEventMessage) error {
	slog.InfoContext(ctx, "Processing transaction event", "id", msg.ID, "action", msg.Action)

	switch msg.Action {
	case amqp.ActionCreate, amqp.ActionUpdate:
		tx, err := w.source.GetTransaction(ctx, msg.ID)
		if errors.Is(err, ledger.ErrNotFound) {
			slog.WarnContext(ctx, "Source transaction gone, skipping sync", "id", msg.ID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get source transaction: %w", err)
		}
		return w.upsert(ctx, msg.ID, tx)

	case amqp.ActionDelete:
		return w.remove(ctx, msg.ID)

	default:
		return fmt.Errorf("unknown event action %q", msg.Action)
	}
}

func (w *SyncWorker) upsert(ctx context.Context, localID int64, tx core.Transaction) error {
	mirrorID, known, err := w.state.MirrorID(ctx, localID)
	if err != nil {
		return fmt.Errorf("load mirror mapping: %w", err)
	}

	if known {
		tx.ID = mirrorID
		ok, err := w.mirror.UpdateTransaction(ctx, tx)
		if err != nil {
			return fmt.Errorf("update mirror transaction: %w", err)
		}
		if ok {
			return nil
		}
		// Mirror lost the record; fall through to a fresh insert.
	}

	stored, err := w.mirror.InsertTransaction(ctx, tx)
	if err != nil {
		return fmt.Errorf("insert mirror transaction: %w", err)
	}
	if err := w.state.SetMirrorID(ctx, localID, stored.ID); err != nil {
		return fmt.Errorf("save mirror mapping: %w", err)
	}
	return nil
}

func (w *SyncWorker) remove(ctx context.Context, localID int64) error {
	mirrorID, known, err := w.state.MirrorID(ctx, localID)
	if err != nil {
		return fmt.Errorf("load mirror mapping: %w", err)
	}
	if !known {
		slog.WarnContext(ctx, "No mirror mapping for deleted transaction", "id", localID)
		return nil
	}
	if _, err := w.mirror.DeleteTransaction(ctx, mirrorID); err != nil {
		return fmt.Errorf("delete mirror transaction: %w", err)
	}
	if err := w.state.DeleteMirrorID(ctx, localID); err != nil {
		return fmt.Errorf("drop mirror mapping: %w", err)
	}
	return nil
}

// StartupSync mirrors every source transaction once. Records with a
// persisted mapping become mirror updates, so running it on every start is
// safe and only converges drift accumulated while the worker was down.
func (w *SyncWorker) StartupSync(ctx context.Context) error {
	txs, err := w.source.ListTransactions(ctx, nil)
	if err != nil {
		return fmt.Errorf("list source transactions: %w", err)
	}
	for _, tx := range txs {
		if err := w.upsert(ctx, tx.ID, tx); err != nil {
			return err
		}
	}
	slog.InfoContext(ctx, "Startup sync complete", "count", len(txs))
	return nil
}

// MemoryMappings is a process-local MappingStore.
type MemoryMappings struct {
	mu  sync.Mutex
	ids map[int64]int64
}

func NewMemoryMappings() *MemoryMappings {
	return &MemoryMappings{ids: make(map[int64]int64)}
}

func (m *MemoryMappings) MirrorID(_ context.Context, localID int64) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.ids[localID]
	return id, ok, nil
}

func (m *MemoryMappings) SetMirrorID(_ context.Context, localID, mirrorID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[localID] = mirrorID
	return nil
}

func (m *MemoryMappings) DeleteMirrorID(_ context.Context, localID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ids, localID)
	return nil
}
