package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kirnagrma/console/internal/analytics"
	"github.com/kirnagrma/console/internal/api/middleware"
	"github.com/kirnagrma/console/internal/api/response"
)

// maxSelectedMetrics caps how many series one chart request may combine.
const maxSelectedMetrics = 5

// DashboardHandler serves the analytics metrics behind the home dashboard.
type DashboardHandler struct{}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Metrics handles GET /api/dashboard/metrics: the metric catalog with
// headline totals.
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	metrics := analytics.Metrics()
	response.SuccessList(w, http.StatusOK, metrics, len(metrics), requestID)
}

// Series handles GET /api/dashboard/series?metric=a&metric=b&days=30,
// returning one generated series per selected metric.
func (h *DashboardHandler) Series(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	ids := r.URL.Query()["metric"]
	if len(ids) == 0 {
		response.Err(w, http.StatusBadRequest, "MISSING_METRIC", "At least one metric query parameter is required", requestID)
		return
	}
	if len(ids) > maxSelectedMetrics {
		response.Err(w, http.StatusBadRequest, "TOO_MANY_METRICS", "At most 5 metrics can be selected", requestID)
		return
	}

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			response.Err(w, http.StatusBadRequest, "INVALID_DAYS", "days must be an integer between 1 and 365", requestID)
			return
		}
		days = parsed
	}

	end := time.Now().UTC()
	series := make([]analytics.Series, 0, len(ids))
	for _, id := range ids {
		m, ok := analytics.MetricByID(id)
		if !ok {
			response.Err(w, http.StatusBadRequest, "UNKNOWN_METRIC", "Unknown metric: "+id, requestID)
			return
		}
		series = append(series, analytics.GenerateSeries(m, days, end))
	}

	response.SuccessList(w, http.StatusOK, series, len(series), requestID)
}
