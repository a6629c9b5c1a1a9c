package ledger

import (
	"context"
	"errors"

	"expensenote/internal/core"
)

// ErrNotFound is returned by reads against an unknown identifier. Updates
// and deletes report the condition as a boolean instead.
var ErrNotFound = errors.New("not found")

// Ports for ledger store backends.
type (
	TransactionStore interface {
		// ListTransactions returns a snapshot of the ledger, filtered by q
		// when non-nil, most recent first.
		ListTransactions(ctx context.Context, q *core.TransactionQuery) ([]core.Transaction, error)
		GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
		// InsertTransaction ignores any supplied identifier, assigns the next
		// one and returns the stored, normalized record.
		InsertTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
		// UpdateTransaction replaces the record in place; false when the
		// identifier is unknown.
		UpdateTransaction(ctx context.Context, tx core.Transaction) (bool, error)
		// DeleteTransaction is idempotent; false when the identifier is unknown.
		DeleteTransaction(ctx context.Context, id int64) (bool, error)
	}

	CategoryStore interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
		GetCategory(ctx context.Context, id int64) (core.Category, error)
		InsertCategory(ctx context.Context, c core.Category) (core.Category, error)
		UpdateCategory(ctx context.Context, c core.Category) (bool, error)
		DeleteCategory(ctx context.Context, id int64) (bool, error)
	}

	// TotalsReader computes the balance summary, optionally scoped to a
	// date range.
	TotalsReader interface {
		Totals(ctx context.Context, r *core.DateRange) (core.Totals, error)
	}

	// Store is the full contract a backend must satisfy.
	Store interface {
		TransactionStore
		CategoryStore
		TotalsReader
	}
)
