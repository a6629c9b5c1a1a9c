// Package memory implements the ledger store over in-process slices.
// It is the default backend and the reference for filter semantics: every
// list operation runs the shared query evaluator over a snapshot.
package memory

import (
	"context"
	"strings"
	"sync"

	"expensenote/internal/core"
	"expensenote/internal/ledger"
)

// SeedCategories are installed by New so a fresh store is usable immediately.
var SeedCategories = []string{
	"Food",
	"Transport",
	"Health",
	"Entertainment",
	"Home",
	"Salary",
	"Other",
}

type Store struct {
	mu    sync.Mutex
	txID  int64
	catID int64
	txs   []core.Transaction
	cats  []core.Category
}

func New() *Store {
	s := &Store{}
	for _, name := range SeedCategories {
		s.catID++
		s.cats = append(s.cats, core.Category{ID: s.catID, Name: name})
	}
	return s
}

// NewEmpty returns a store without seed categories, for callers that manage
// their own taxonomy.
func NewEmpty() *Store {
	return &Store{}
}

func (s *Store) ListTransactions(_ context.Context, q *core.TransactionQuery) ([]core.Transaction, error) {
	s.mu.Lock()
	txs := append([]core.Transaction(nil), s.txs...)
	cats := append([]core.Category(nil), s.cats...)
	s.mu.Unlock()
	return core.Filter(txs, cats, q), nil
}

func (s *Store) GetTransaction(_ context.Context, id int64) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return core.Transaction{}, ledger.ErrNotFound
}

// InsertTransaction normalizes the draft, assigns the next identifier and
// stores the record at the head so the default ordering stays
// most-recent-first.
func (s *Store) InsertTransaction(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	tx, err := core.Normalize(tx)
	if err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txID++
	tx.ID = s.txID
	s.txs = append([]core.Transaction{tx}, s.txs...)
	return tx, nil
}

func (s *Store) UpdateTransaction(_ context.Context, tx core.Transaction) (bool, error) {
	tx, err := core.NormalizeUpdate(tx)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txs {
		if s.txs[i].ID == tx.ID {
			s.txs[i] = tx
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txs {
		if s.txs[i].ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Totals(ctx context.Context, r *core.DateRange) (core.Totals, error) {
	var q *core.TransactionQuery
	if r != nil && !r.IsEmpty() {
		q = &core.TransactionQuery{DateRange: r}
	}
	txs, err := s.ListTransactions(ctx, q)
	if err != nil {
		return core.Totals{}, err
	}
	return core.Sum(txs), nil
}

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.cats...), nil
}

func (s *Store) GetCategory(_ context.Context, id int64) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cats {
		if c.ID == id {
			return c, nil
		}
	}
	return core.Category{}, ledger.ErrNotFound
}

func (s *Store) InsertCategory(_ context.Context, c core.Category) (core.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catID++
	c.ID = s.catID
	s.cats = append(s.cats, c)
	return c, nil
}

func (s *Store) UpdateCategory(_ context.Context, c core.Category) (bool, error) {
	if c.ID == 0 {
		return false, core.ErrMissingID
	}
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cats {
		if s.cats[i].ID == c.ID {
			s.cats[i] = c
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) DeleteCategory(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cats {
		if s.cats[i].ID == id {
			s.cats = append(s.cats[:i], s.cats[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

var _ ledger.Store = (*Store)(nil)
