package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kirnagrma/console/internal/api/middleware"
	"github.com/kirnagrma/console/internal/api/response"
	"github.com/kirnagrma/console/internal/platform"
)

// AICreatorHandler proxies AI-creator application reviews to the platform
// backend. Platform failures are reported as bad-gateway errors and never
// touch session or authorization state.
type AICreatorHandler struct {
	client *platform.Client
}

// NewAICreatorHandler creates a new AICreatorHandler.
func NewAICreatorHandler(client *platform.Client) *AICreatorHandler {
	return &AICreatorHandler{client: client}
}

// List handles GET /api/ai-creators.
func (h *AICreatorHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	apps, err := h.client.ListCreatorApplications(r.Context())
	if err != nil {
		slog.Error("failed to fetch creator applications", "error", err)
		response.Err(w, http.StatusBadGateway, "PLATFORM_UNAVAILABLE", "Failed to load AI creator applications", requestID)
		return
	}
	response.SuccessList(w, http.StatusOK, apps, len(apps), requestID)
}

// Approve handles POST /api/ai-creators/{id}/approve.
func (h *AICreatorHandler) Approve(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.client.ApproveCreatorApplication(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("failed to approve creator application", "error", err)
		response.Err(w, http.StatusBadGateway, "PLATFORM_UNAVAILABLE", "Failed to approve application", requestID)
		return
	}
	response.NoContent(w)
}

// Reject handles POST /api/ai-creators/{id}/reject.
func (h *AICreatorHandler) Reject(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.client.RejectCreatorApplication(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("failed to reject creator application", "error", err)
		response.Err(w, http.StatusBadGateway, "PLATFORM_UNAVAILABLE", "Failed to reject application", requestID)
		return
	}
	response.NoContent(w)
}
