package handler

import (
	"context"
	"net/http"

	"github.com/kirnagrma/console/internal/api/middleware"
	"github.com/kirnagrma/console/internal/api/response"
)

// StorePinger reports whether the persistence backend is reachable.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	store   StorePinger
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store StorePinger, version string) *HealthHandler {
	return &HealthHandler{
		store:   store,
		version: version,
	}
}

type storageStatus struct {
	Connected bool    `json:"connected"`
	Error     *string `json:"error"`
}

type healthData struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Storage storageStatus `json:"storage"`
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	status := "healthy"
	var pingErr *string

	if err := h.store.Ping(r.Context()); err != nil {
		status = "degraded"
		msg := err.Error()
		pingErr = &msg
	}

	data := healthData{
		Status:  status,
		Version: h.version,
		Storage: storageStatus{
			Connected: pingErr == nil,
			Error:     pingErr,
		},
	}

	response.Success(w, http.StatusOK, data, requestID)
}
