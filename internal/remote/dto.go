package remote

import (
	"math"

	"expensenote/internal/core"
)

// apiResponse is the envelope every backend endpoint wraps its payload in.
type apiResponse[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data"`
	Error   string `json:"error,omitempty"`
}

// transactionDTO mirrors the backend's wire representation: opaque string
// ids and amounts in currency units.
type transactionDTO struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Date     string  `json:"date"`
	Note     string  `json:"note"`
	PhotoURL string  `json:"photoUrl,omitempty"`
}

type categoryDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color int    `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

type totalsDTO struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

func unitsToCents(units float64) int64 {
	return int64(math.Round(units * 100))
}

func (d transactionDTO) toTransaction(id int64) core.Transaction {
	return core.Transaction{
		ID:       id,
		Amount:   core.Money{Cents: unitsToCents(d.Amount)},
		Category: d.Category,
		Type:     core.TransactionType(d.Type),
		Date:     d.Date,
		Note:     d.Note,
		PhotoRef: d.PhotoURL,
	}
}

func toTransactionDTO(ref string, tx core.Transaction) transactionDTO {
	return transactionDTO{
		ID:       ref,
		Amount:   tx.Amount.Units(),
		Category: tx.Category,
		Type:     string(tx.Type),
		Date:     tx.Date,
		Note:     tx.Note,
		PhotoURL: tx.PhotoRef,
	}
}

func (d categoryDTO) toCategory(id int64) core.Category {
	return core.Category{ID: id, Name: d.Name, Color: d.Color, Icon: d.Icon}
}

func toCategoryDTO(ref string, c core.Category) categoryDTO {
	return categoryDTO{ID: ref, Name: c.Name, Color: c.Color, Icon: c.Icon}
}
