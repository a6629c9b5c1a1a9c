// Package services composes store backends with change-event publishing.
package services

import (
	"context"
	"log/slog"

	"expensenote/internal/amqp"
	"expensenote/internal/core"
	"expensenote/internal/ledger"
)

// EventPublisher is what SyncedStore needs from the AMQP client.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, id int64, action string) error
}

// SyncedStore decorates a ledger store so every applied transaction write
// publishes a change event. The local write is authoritative: a publish
// failure is logged and swallowed, never surfaced as a write failure.
type SyncedStore struct {
	ledger.Store
	publisher EventPublisher
}

func NewSyncedStore(store ledger.Store, publisher EventPublisher) *SyncedStore {
	return &SyncedStore{Store: store, publisher: publisher}
}

func (s *SyncedStore) InsertTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	stored, err := s.Store.InsertTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, err
	}
	s.publish(ctx, stored.ID, amqp.ActionCreate)
	return stored, nil
}

func (s *SyncedStore) UpdateTransaction(ctx context.Context, tx core.Transaction) (bool, error) {
	ok, err := s.Store.UpdateTransaction(ctx, tx)
	if err != nil || !ok {
		return ok, err
	}
	s.publish(ctx, tx.ID, amqp.ActionUpdate)
	return true, nil
}

func (s *SyncedStore) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	ok, err := s.Store.DeleteTransaction(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	s.publish(ctx, id, amqp.ActionDelete)
	return true, nil
}

func (s *SyncedStore) publish(ctx context.Context, id int64, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionEvent(ctx, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"id", id,
			"action", action,
			"error", err)
	}
}

var _ ledger.Store = (*SyncedStore)(nil)
