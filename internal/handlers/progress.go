package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/emberfall/internal/storage"
)

// ProgressHandler persists raw session snapshots keyed by user id. It is the
// save/load/delete surface; it never interprets the snapshot beyond the
// structural validation storage applies.
//
// Routes:
// GET /v1/progress/{userId}    - Load saved snapshot
// POST /v1/progress/{userId}   - Save snapshot (last write wins)
// DELETE /v1/progress/{userId} - Delete snapshot
type ProgressHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewProgressHandler(storage storage.Storage, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *ProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/progress"), "/")
	if userID == "" || strings.Contains(userID, "/") {
		respondError(w, h.logger, http.StatusBadRequest, "User ID is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleLoad(w, r, userID)
	case http.MethodPost:
		h.handleSave(w, r, userID)
	case http.MethodDelete:
		h.handleDelete(w, r, userID)
	default:
		respondError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, POST, DELETE")
	}
}

func (h *ProgressHandler) handleLoad(w http.ResponseWriter, r *http.Request, userID string) {
	snap, err := h.storage.LoadSession(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, h.logger, http.StatusNotFound, "No saved progress for user")
			return
		}
		h.logger.Error("Failed to load progress", "user", userID, "error", err)
		respondError(w, h.logger, statusForError(err), "Failed to load progress")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, snap)
}

func (h *ProgressHandler) handleSave(w http.ResponseWriter, r *http.Request, userID string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Failed to read request body")
		return
	}

	snap, err := storage.DecodeSnapshot(body)
	if err != nil {
		h.logger.Warn("Rejected malformed snapshot", "user", userID, "error", err)
		respondError(w, h.logger, http.StatusBadRequest, "Invalid snapshot: "+err.Error())
		return
	}

	if err := h.storage.SaveSession(r.Context(), userID, snap); err != nil {
		h.logger.Error("Failed to save progress", "user", userID, "error", err)
		respondError(w, h.logger, statusForError(err), "Failed to save progress")
		return
	}

	h.logger.Debug("Progress saved", "user", userID)
	respondJSON(w, h.logger, http.StatusOK, snap)
}

func (h *ProgressHandler) handleDelete(w http.ResponseWriter, r *http.Request, userID string) {
	if err := h.storage.DeleteSession(r.Context(), userID); err != nil {
		h.logger.Error("Failed to delete progress", "user", userID, "error", err)
		respondError(w, h.logger, statusForError(err), "Failed to delete progress")
		return
	}
	h.logger.Debug("Progress deleted", "user", userID)
	w.WriteHeader(http.StatusNoContent)
}
