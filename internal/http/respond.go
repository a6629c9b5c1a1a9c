package http

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"expensenote/internal/core"
)

// response is the envelope every endpoint wraps its payload in, mirroring
// what the mobile clients of this API already expect.
type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response{Success: true, Data: data}); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response{Success: false, Error: msg}); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}

// Wire payloads: identifiers travel as opaque strings and amounts in
// currency units, the shape the original clients speak.
type transactionPayload struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Date     string  `json:"date"`
	Note     string  `json:"note"`
	PhotoURL string  `json:"photoUrl,omitempty"`
}

type categoryPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color int    `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

type totalsPayload struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

func toTransactionPayload(tx core.Transaction) transactionPayload {
	return transactionPayload{
		ID:       strconv.FormatInt(tx.ID, 10),
		Amount:   tx.Amount.Units(),
		Category: tx.Category,
		Type:     string(tx.Type),
		Date:     tx.Date,
		Note:     tx.Note,
		PhotoURL: tx.PhotoRef,
	}
}

func (p transactionPayload) toTransaction() core.Transaction {
	id, _ := strconv.ParseInt(p.ID, 10, 64)
	cents := int64(math.Round(p.Amount * 100))
	return core.Transaction{
		ID:       id,
		Amount:   core.Money{Cents: cents},
		Category: p.Category,
		Type:     core.TransactionType(p.Type),
		Date:     p.Date,
		Note:     p.Note,
		PhotoRef: p.PhotoURL,
	}
}

func toCategoryPayload(c core.Category) categoryPayload {
	return categoryPayload{
		ID:    strconv.FormatInt(c.ID, 10),
		Name:  c.Name,
		Color: c.Color,
		Icon:  c.Icon,
	}
}

func (p categoryPayload) toCategory() core.Category {
	id, _ := strconv.ParseInt(p.ID, 10, 64)
	return core.Category{ID: id, Name: p.Name, Color: p.Color, Icon: p.Icon}
}

func toTotalsPayload(t core.Totals) totalsPayload {
	return totalsPayload{
		Income:  t.Income.Units(),
		Expense: t.Expense.Units(),
		Balance: t.Balance.Units(),
	}
}
