package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kirnagrma/console/internal/api/middleware"
	"github.com/kirnagrma/console/internal/api/response"
	"github.com/kirnagrma/console/internal/prompts"
)

type reviewReasonRequest struct {
	Reason string `json:"reason"`
}

// PromptHandler handles the prompt submission review queue.
type PromptHandler struct {
	queue *prompts.Queue
}

// NewPromptHandler creates a new PromptHandler.
func NewPromptHandler(queue *prompts.Queue) *PromptHandler {
	return &PromptHandler{queue: queue}
}

// List handles GET /api/prompts, pending submissions first.
func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	reqs, err := h.queue.List(r.Context())
	if err != nil {
		slog.Error("failed to list prompt requests", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list prompt requests", requestID)
		return
	}
	response.SuccessList(w, http.StatusOK, reqs, len(reqs), requestID)
}

// ListApproved handles GET /api/prompts/approved.
func (h *PromptHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	reqs, err := h.queue.ListByStatus(r.Context(), prompts.StatusApproved)
	if err != nil {
		slog.Error("failed to list approved prompts", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list approved prompts", requestID)
		return
	}
	response.SuccessList(w, http.StatusOK, reqs, len(reqs), requestID)
}

// Get handles GET /api/prompts/{id}.
func (h *PromptHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	req, err := h.queue.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.reviewError(w, r, err, "Failed to load prompt request")
		return
	}
	response.Success(w, http.StatusOK, req, requestID)
}

// Approve handles POST /api/prompts/{id}/approve.
func (h *PromptHandler) Approve(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	req, err := h.queue.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.reviewError(w, r, err, "Failed to approve prompt")
		return
	}
	response.Success(w, http.StatusOK, req, requestID)
}

// Reject handles POST /api/prompts/{id}/reject.
func (h *PromptHandler) Reject(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	reason := decodeReason(w, r)
	req, err := h.queue.Reject(r.Context(), chi.URLParam(r, "id"), reason)
	if err != nil {
		h.reviewError(w, r, err, "Failed to reject prompt")
		return
	}
	response.Success(w, http.StatusOK, req, requestID)
}

// RequestModification handles POST /api/prompts/{id}/modify.
func (h *PromptHandler) RequestModification(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	reason := decodeReason(w, r)
	req, err := h.queue.RequestModification(r.Context(), chi.URLParam(r, "id"), reason)
	if err != nil {
		h.reviewError(w, r, err, "Failed to request modification")
		return
	}
	response.Success(w, http.StatusOK, req, requestID)
}

func (h *PromptHandler) reviewError(w http.ResponseWriter, r *http.Request, err error, message string) {
	requestID := middleware.GetRequestID(r.Context())

	if errors.Is(err, prompts.ErrRequestNotFound) {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Prompt request not found", requestID)
		return
	}
	slog.Error("prompt review operation failed", "error", err)
	response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", message, requestID)
}

// decodeReason reads the optional review reason; a missing or invalid body
// simply yields an empty reason.
func decodeReason(w http.ResponseWriter, r *http.Request) string {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req reviewReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return ""
	}
	return req.Reason
}
