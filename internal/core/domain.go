// Package core implements the ledger's transaction model: validation,
// amount-sign normalization, query filtering and totals aggregation.
package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Expense TransactionType = "EXPENSE"
	Income  TransactionType = "INCOME"
)

type (
	TransactionType string

	// Money is a signed amount in cents. Expenses carry a negative sign,
	// incomes a positive one (see Normalize).
	Money struct {
		Cents int64
	}

	Transaction struct {
		ID       int64
		Amount   Money
		Category string // category name
		Type     TransactionType
		Date     string // free-form, parsed tolerantly (see ParseDate)
		Note     string
		PhotoRef string // opaque reference to an externally stored photo
	}

	Category struct {
		ID    int64
		Name  string
		Color int    // 0 = unset
		Icon  string // "" = unset
	}

	// DateRange bounds are inclusive; a zero time leaves that side open.
	DateRange struct {
		From time.Time
		To   time.Time
	}

	// TransactionQuery describes an optional multi-criteria filter.
	// Every field is independently optional; zero values mean "no filter".
	TransactionQuery struct {
		Text        string
		CategoryIDs []int64
		DateRange   *DateRange
		Type        TransactionType
	}

	Totals struct {
		Income  Money
		Expense Money
		Balance Money
	}
)

var (
	ErrZeroAmount    = errors.New("amount cannot be zero")
	ErrInvalidAmount = errors.New("invalid amount format")
	ErrEmptyCategory = errors.New("empty category name")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrMissingID     = errors.New("missing identifier")
)

func (t TransactionType) Valid() bool {
	return t == Expense || t == Income
}

func (m Money) Validate() error {
	if m.Cents == 0 {
		return ErrZeroAmount
	}
	return nil
}

// Abs returns the magnitude in cents.
func (m Money) Abs() int64 {
	if m.Cents < 0 {
		return -m.Cents
	}
	return m.Cents
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Normalize forces the amount sign to match the transaction type:
// expenses are stored negative, incomes positive, whatever sign the
// caller supplied. A zero amount is a validation failure, not a
// normalization case.
func Normalize(t Transaction) (Transaction, error) {
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	mag := t.Amount.Abs()
	if t.Type == Expense {
		t.Amount = Money{Cents: -mag}
	} else {
		t.Amount = Money{Cents: mag}
	}
	return t, nil
}

// NormalizeUpdate validates a draft destined for an in-place update;
// unlike create, the draft must already carry its identifier.
func NormalizeUpdate(t Transaction) (Transaction, error) {
	if t.ID == 0 {
		return Transaction{}, ErrMissingID
	}
	return Normalize(t)
}

// IsEmpty reports whether the range constrains nothing.
func (r DateRange) IsEmpty() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// IsEmpty reports whether the query would pass every transaction through.
func (q *TransactionQuery) IsEmpty() bool {
	if q == nil {
		return true
	}
	return strings.TrimSpace(q.Text) == "" &&
		len(q.CategoryIDs) == 0 &&
		(q.DateRange == nil || q.DateRange.IsEmpty()) &&
		q.Type == ""
}
