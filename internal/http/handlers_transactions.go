package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"expensenote/internal/core"
	"expensenote/internal/ledger"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := parseTransactionQuery(r.URL.Query())

	txs, err := s.store.ListTransactions(r.Context(), q)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	payload := make([]transactionPayload, len(txs))
	for i, tx := range txs {
		payload[i] = toTransactionPayload(tx)
	}
	writeData(w, http.StatusOK, payload)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	tx, err := s.store.GetTransaction(r.Context(), id)
	if errors.Is(err, ledger.ErrNotFound) {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to get transaction", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get transaction")
		return
	}
	writeData(w, http.StatusOK, toTransactionPayload(tx))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var payload transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := s.store.InsertTransaction(r.Context(), payload.toTransaction())
	if isValidationError(err) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}

	slog.InfoContext(r.Context(), "Transaction created",
		"id", stored.ID,
		"amount_cents", stored.Amount.Cents,
		"category", stored.Category,
		"transaction_type", stored.Type)

	writeData(w, http.StatusCreated, toTransactionPayload(stored))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx := payload.toTransaction()
	tx.ID = id // path wins over body

	normalized, err := core.NormalizeUpdate(tx)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	applied, err := s.store.UpdateTransaction(r.Context(), normalized)
	if isValidationError(err) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to update transaction", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update transaction")
		return
	}
	if !applied {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	writeData(w, http.StatusOK, toTransactionPayload(normalized))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	applied, err := s.store.DeleteTransaction(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete transaction", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	if !applied {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	slog.InfoContext(r.Context(), "Transaction deleted", "id", id)
	writeData(w, http.StatusOK, true)
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := s.store.Totals(r.Context(), parseDateRange(r.URL.Query()))
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute totals", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute totals")
		return
	}
	writeData(w, http.StatusOK, toTotalsPayload(totals))
}

// pathID parses the {id} path segment; a malformed id is a 404, the same
// answer as an unknown one.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrZeroAmount) ||
		errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrEmptyCategory) ||
		errors.Is(err, core.ErrInvalidType) ||
		errors.Is(err, core.ErrMissingID)
}
