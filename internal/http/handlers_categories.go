package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"expensenote/internal/ledger"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.store.ListCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	payload := make([]categoryPayload, len(cats))
	for i, c := range cats {
		payload[i] = toCategoryPayload(c)
	}
	writeData(w, http.StatusOK, payload)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := s.store.GetCategory(r.Context(), id)
	if errors.Is(err, ledger.ErrNotFound) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to get category", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get category")
		return
	}
	writeData(w, http.StatusOK, toCategoryPayload(c))
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := s.store.InsertCategory(r.Context(), payload.toCategory())
	if isValidationError(err) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create category", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create category")
		return
	}
	slog.InfoContext(r.Context(), "Category created", "id", stored.ID, "category", stored.Name)
	writeData(w, http.StatusCreated, toCategoryPayload(stored))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c := payload.toCategory()
	c.ID = id
	// Echo what the store persists, not the raw payload.
	c.Name = strings.TrimSpace(c.Name)

	applied, err := s.store.UpdateCategory(r.Context(), c)
	if isValidationError(err) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to update category", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update category")
		return
	}
	if !applied {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	writeData(w, http.StatusOK, toCategoryPayload(c))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	applied, err := s.store.DeleteCategory(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete category", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}
	if !applied {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	writeData(w, http.StatusOK, true)
}
