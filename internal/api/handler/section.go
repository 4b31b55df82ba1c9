package handler

import (
	"net/http"

	"github.com/kirnagrma/console/internal/api/middleware"
	"github.com/kirnagrma/console/internal/api/response"
)

type sectionSummary struct {
	Section     string `json:"section"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SectionHandler serves the ads and currency section summaries. Both
// sections are capability-gated surfaces whose management features are
// still placeholders, as they were in the dashboard.
type SectionHandler struct{}

// NewSectionHandler creates a new SectionHandler.
func NewSectionHandler() *SectionHandler {
	return &SectionHandler{}
}

// Ads handles GET /api/ads.
func (h *SectionHandler) Ads(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	response.Success(w, http.StatusOK, sectionSummary{
		Section:     "ads",
		Title:       "Ads Management",
		Description: "Ad campaigns, targeting options, and performance metrics.",
	}, requestID)
}

// Currency handles GET /api/currency.
func (h *SectionHandler) Currency(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	response.Success(w, http.StatusOK, sectionSummary{
		Section:     "currency",
		Title:       "Currency Management",
		Description: "Currency exchange rates, transaction history, and wallet management.",
	}, requestID)
}
