package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kirnagrma/console/internal/agent"
	"github.com/kirnagrma/console/internal/api/middleware"
	"github.com/kirnagrma/console/internal/api/response"
	"github.com/kirnagrma/console/internal/api/validation"
)

type createAgentRequest struct {
	Username    string            `json:"username"`
	Password    string            `json:"password"`
	Permissions agent.Permissions `json:"permissions"`
	IsActive    *bool             `json:"isActive"`
}

type updateAgentRequest struct {
	Username    string            `json:"username"`
	Password    string            `json:"password"`
	Permissions agent.Permissions `json:"permissions"`
	IsActive    bool              `json:"isActive"`
}

type toggleAgentRequest struct {
	IsActive bool `json:"isActive"`
}

// AgentHandler handles agent account management. Every mutation is a
// read-modify-ReplaceAll over the credential store.
type AgentHandler struct {
	store *agent.Store
}

// NewAgentHandler creates a new AgentHandler.
func NewAgentHandler(store *agent.Store) *AgentHandler {
	return &AgentHandler{store: store}
}

// List handles GET /api/agents.
func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	agents, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("failed to list agents", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list agents", requestID)
		return
	}

	response.SuccessList(w, http.StatusOK, agents, len(agents), requestID)
}

// Create handles POST /api/agents.
func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateCreateAgentRequest(validation.CreateAgentRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	a := agent.Agent{
		ID:          uuid.New().String(),
		Username:    req.Username,
		Password:    req.Password,
		Permissions: req.Permissions,
		IsActive:    active,
		CreatedAt:   time.Now().UTC(),
	}

	agents, err := h.store.List(r.Context())
	if err == nil {
		err = h.store.ReplaceAll(r.Context(), append(agents, a))
	}
	if err != nil {
		slog.Error("failed to create agent", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create agent", requestID)
		return
	}

	response.Success(w, http.StatusCreated, a, requestID)
}

// Update handles PUT /api/agents/{id}. The created timestamp is immutable;
// an empty password keeps the current one.
func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateUpdateAgentRequest(validation.UpdateAgentRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	agents, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("failed to load agents", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update agent", requestID)
		return
	}

	var updated *agent.Agent
	for i := range agents {
		if agents[i].ID != id {
			continue
		}
		agents[i].Username = req.Username
		if req.Password != "" {
			agents[i].Password = req.Password
		}
		agents[i].Permissions = req.Permissions
		agents[i].IsActive = req.IsActive
		updated = &agents[i]
		break
	}
	if updated == nil {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Agent not found", requestID)
		return
	}

	if err := h.store.ReplaceAll(r.Context(), agents); err != nil {
		slog.Error("failed to persist agents", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update agent", requestID)
		return
	}

	response.Success(w, http.StatusOK, *updated, requestID)
}

// Toggle handles PATCH /api/agents/{id}/active. Deactivating an agent
// invalidates its future logins and any existing session on the next
// guard evaluation.
func (h *AgentHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req toggleAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	agents, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("failed to load agents", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update agent", requestID)
		return
	}

	var updated *agent.Agent
	for i := range agents {
		if agents[i].ID == id {
			agents[i].IsActive = req.IsActive
			updated = &agents[i]
			break
		}
	}
	if updated == nil {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Agent not found", requestID)
		return
	}

	if err := h.store.ReplaceAll(r.Context(), agents); err != nil {
		slog.Error("failed to persist agents", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update agent", requestID)
		return
	}

	response.Success(w, http.StatusOK, *updated, requestID)
}

// Delete handles DELETE /api/agents/{id}. Any session still referencing
// the deleted agent becomes invalid on its next evaluation.
func (h *AgentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := chi.URLParam(r, "id")

	agents, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("failed to load agents", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete agent", requestID)
		return
	}

	remaining := make([]agent.Agent, 0, len(agents))
	found := false
	for _, a := range agents {
		if a.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, a)
	}
	if !found {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Agent not found", requestID)
		return
	}

	if err := h.store.ReplaceAll(r.Context(), remaining); err != nil {
		slog.Error("failed to persist agents", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete agent", requestID)
		return
	}

	response.NoContent(w)
}
