package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/emberfall/pkg/campaign"
)

// CampaignHandler serves the immutable campaign definition to clients.
type CampaignHandler struct {
	campaign *campaign.Campaign
	logger   *slog.Logger
}

func NewCampaignHandler(c *campaign.Campaign, logger *slog.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaign: c,
		logger:   logger,
	}
}

func (h *CampaignHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, h.campaign)
}
