// Package handlers exposes the game engine over HTTP. Each handler is a
// struct with injected dependencies; all responses are JSON.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/emberfall/internal/storage"
	"github.com/jwebster45206/emberfall/pkg/engine"
	"github.com/jwebster45206/emberfall/pkg/hero"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	respondJSON(w, logger, status, ErrorResponse{Error: msg})
}

// statusForError maps engine and storage errors to HTTP status codes.
func statusForError(err error) int {
	var verr *hero.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrChoiceNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrChoiceGated),
		errors.Is(err, engine.ErrGameAlreadyComplete),
		errors.Is(err, engine.ErrNoHero):
		return http.StatusConflict
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
