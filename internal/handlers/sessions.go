package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/emberfall/internal/storage"
	"github.com/jwebster45206/emberfall/pkg/campaign"
	"github.com/jwebster45206/emberfall/pkg/engine"
	"github.com/jwebster45206/emberfall/pkg/hero"
	"github.com/jwebster45206/emberfall/pkg/oracle"
)

// SessionsHandler runs the game engine over HTTP. Each request rebuilds an
// engine from the stored snapshot, applies one operation, and saves the
// result; sessions share no in-process state between requests.
//
// Routes:
// GET /v1/sessions/{userId}            - Read session snapshot
// POST /v1/sessions/{userId}/hero      - Start a playthrough (hero build)
// POST /v1/sessions/{userId}/choice    - Resolve a choice
// POST /v1/sessions/{userId}/dialogue  - Talk to an NPC
type SessionsHandler struct {
	campaign *campaign.Campaign
	storage  storage.Storage
	oracle   *oracle.Registry
	logger   *slog.Logger
}

func NewSessionsHandler(c *campaign.Campaign, s storage.Storage, o *oracle.Registry, logger *slog.Logger) *SessionsHandler {
	return &SessionsHandler{
		campaign: c,
		storage:  s,
		oracle:   o,
		logger:   logger,
	}
}

type ChoiceRequest struct {
	ChoiceID string `json:"choiceId"`
}

type DialogueRequest struct {
	NPCID  string `json:"npcId"`
	Prompt string `json:"prompt"`
}

type DialogueResponse struct {
	Reply    string           `json:"reply"`
	Snapshot *engine.Snapshot `json:"snapshot"`
}

func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions"), "/")
	userID, action, _ := strings.Cut(rest, "/")
	if userID == "" || strings.Contains(action, "/") {
		respondError(w, h.logger, http.StatusBadRequest, "User ID is required")
		return
	}

	switch {
	case r.Method == http.MethodGet && action == "":
		h.handleRead(w, r, userID)
	case r.Method == http.MethodPost && action == "hero":
		h.handleCreateHero(w, r, userID)
	case r.Method == http.MethodPost && action == "choice":
		h.handleChoice(w, r, userID)
	case r.Method == http.MethodPost && action == "dialogue":
		h.handleDialogue(w, r, userID)
	default:
		respondError(w, h.logger, http.StatusMethodNotAllowed,
			"Unsupported route. Use GET /v1/sessions/{userId} or POST .../hero, .../choice, .../dialogue")
	}
}

func (h *SessionsHandler) newEngine() *engine.Engine {
	return engine.NewEngine(h.campaign,
		engine.WithOracle(h.oracle),
		engine.WithLogger(h.logger))
}

// loadEngine rebuilds an engine from the user's stored snapshot.
func (h *SessionsHandler) loadEngine(w http.ResponseWriter, r *http.Request, userID string) (*engine.Engine, bool) {
	snap, err := h.storage.LoadSession(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, h.logger, http.StatusNotFound, "No session for user")
			return nil, false
		}
		h.logger.Error("Failed to load session", "user", userID, "error", err)
		respondError(w, h.logger, statusForError(err), "Failed to load session")
		return nil, false
	}

	eng := h.newEngine()
	if err := eng.Restore(snap); err != nil {
		h.logger.Error("Stored session is not playable", "user", userID, "error", err)
		respondError(w, h.logger, http.StatusInternalServerError, "Stored session is not playable")
		return nil, false
	}
	return eng, true
}

func (h *SessionsHandler) saveAndRespond(w http.ResponseWriter, r *http.Request, userID string, status int, eng *engine.Engine, body any) {
	snap := eng.Snapshot()
	if err := h.storage.SaveSession(r.Context(), userID, snap); err != nil {
		h.logger.Error("Failed to save session", "user", userID, "error", err)
		respondError(w, h.logger, statusForError(err), "Failed to save session")
		return
	}
	if body == nil {
		body = snap
	}
	respondJSON(w, h.logger, status, body)
}

func (h *SessionsHandler) handleRead(w http.ResponseWriter, r *http.Request, userID string) {
	eng, ok := h.loadEngine(w, r, userID)
	if !ok {
		return
	}
	respondJSON(w, h.logger, http.StatusOK, eng.Snapshot())
}

func (h *SessionsHandler) handleCreateHero(w http.ResponseWriter, r *http.Request, userID string) {
	var build hero.Build
	if err := json.NewDecoder(r.Body).Decode(&build); err != nil {
		h.logger.Warn("Invalid JSON in hero build", "user", userID, "error", err)
		respondError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	eng := h.newEngine()
	if _, err := eng.CreateHero(build); err != nil {
		h.logger.Warn("Hero creation rejected", "user", userID, "error", err)
		respondError(w, h.logger, statusForError(err), err.Error())
		return
	}

	h.logger.Info("Playthrough started", "user", userID, "hero", build.Name)
	h.saveAndRespond(w, r, userID, http.StatusCreated, eng, nil)
}

func (h *SessionsHandler) handleChoice(w http.ResponseWriter, r *http.Request, userID string) {
	var req ChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.ChoiceID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "choiceId field is required")
		return
	}

	eng, ok := h.loadEngine(w, r, userID)
	if !ok {
		return
	}

	if _, err := eng.ChooseOption(req.ChoiceID); err != nil {
		h.logger.Warn("Choice rejected", "user", userID, "choice", req.ChoiceID, "error", err)
		respondError(w, h.logger, statusForError(err), err.Error())
		return
	}

	h.saveAndRespond(w, r, userID, http.StatusOK, eng, nil)
}

func (h *SessionsHandler) handleDialogue(w http.ResponseWriter, r *http.Request, userID string) {
	var req DialogueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.NPCID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "npcId field is required")
		return
	}

	eng, ok := h.loadEngine(w, r, userID)
	if !ok {
		return
	}

	reply, err := eng.Converse(req.NPCID, req.Prompt)
	if err != nil {
		respondError(w, h.logger, statusForError(err), err.Error())
		return
	}

	h.saveAndRespond(w, r, userID, http.StatusOK, eng, DialogueResponse{
		Reply:    reply,
		Snapshot: eng.Snapshot(),
	})
}
