package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/emberfall/pkg/oracle"
)

// OracleRequest is a stateless dialogue query: the caller supplies the hero
// snapshot, nothing is persisted.
type OracleRequest struct {
	NPCID  string              `json:"npcId"`
	Prompt string              `json:"prompt"`
	Hero   oracle.HeroSnapshot `json:"hero"`
}

type OracleResponse struct {
	Reply string `json:"reply"`
}

type OracleHandler struct {
	registry *oracle.Registry
	logger   *slog.Logger
}

func NewOracleHandler(registry *oracle.Registry, logger *slog.Logger) *OracleHandler {
	return &OracleHandler{
		registry: registry,
		logger:   logger,
	}
}

func (h *OracleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	var req OracleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in oracle request", "error", err)
		respondError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.NPCID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "npcId field is required")
		return
	}

	reply := h.registry.Reply(req.NPCID, req.Prompt, req.Hero)
	respondJSON(w, h.logger, http.StatusOK, OracleResponse{Reply: reply})
}
