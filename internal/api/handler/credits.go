package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kirnagrma/console/internal/api/middleware"
	"github.com/kirnagrma/console/internal/api/response"
	"github.com/kirnagrma/console/internal/platform"
)

// CreditsHandler proxies the credits settings panel to the platform
// backend.
type CreditsHandler struct {
	client *platform.Client
}

// NewCreditsHandler creates a new CreditsHandler.
func NewCreditsHandler(client *platform.Client) *CreditsHandler {
	return &CreditsHandler{client: client}
}

// Get handles GET /api/credits/settings.
func (h *CreditsHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	settings, err := h.client.CreditSettings(r.Context())
	if err != nil {
		slog.Error("failed to fetch credit settings", "error", err)
		response.Err(w, http.StatusBadGateway, "PLATFORM_UNAVAILABLE", "Failed to load credit settings", requestID)
		return
	}
	response.Success(w, http.StatusOK, settings, requestID)
}

// Update handles PUT /api/credits/settings.
func (h *CreditsHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var payload platform.CreditSettings
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	settings, err := h.client.UpdateCreditSettings(r.Context(), &payload)
	if err != nil {
		slog.Error("failed to update credit settings", "error", err)
		response.Err(w, http.StatusBadGateway, "PLATFORM_UNAVAILABLE", "Failed to update credit settings", requestID)
		return
	}
	response.Success(w, http.StatusOK, settings, requestID)
}
