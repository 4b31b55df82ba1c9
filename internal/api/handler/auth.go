package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kirnagrma/console/internal/admin"
	"github.com/kirnagrma/console/internal/agent"
	"github.com/kirnagrma/console/internal/api/middleware"
	"github.com/kirnagrma/console/internal/api/response"
	"github.com/kirnagrma/console/internal/authz"
	"github.com/kirnagrma/console/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Principal  string                    `json:"principal"`
	Agent      *session.AgentSessionView `json:"agent,omitempty"`
	RedirectTo string                    `json:"redirectTo"`
}

type sessionResponse struct {
	Authenticated bool                      `json:"authenticated"`
	Principal     string                    `json:"principal,omitempty"`
	Agent         *session.AgentSessionView `json:"agent,omitempty"`
}

// AuthHandler handles login, logout and session status.
type AuthHandler struct {
	credential admin.Credential
	agents     *agent.Store
	sessions   *session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(credential admin.Credential, agents *agent.Store, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{credential: credential, agents: agents, sessions: sessions}
}

// Login handles POST /api/login. The submitted email is tried against the
// admin credential first, then as an agent username. Every failure yields
// the same generic message: the response never reveals whether the
// username, the password, or an inactive account was at fault.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	redirectTo := r.URL.Query().Get("from")
	if redirectTo == "" {
		redirectTo = authz.PathHome
	}

	if h.credential.Validate(req.Email, req.Password) {
		if err := h.sessions.LoginAsAdmin(r.Context()); err != nil {
			slog.Error("failed to persist admin session", "error", err)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create session", requestID)
			return
		}
		slog.Info("admin logged in")
		response.Success(w, http.StatusOK, loginResponse{Principal: "admin", RedirectTo: redirectTo}, requestID)
		return
	}

	a, err := h.agents.FindByCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, agent.ErrInvalidCredentials) {
			slog.Error("agent credential lookup failed", "error", err)
		}
		response.Err(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", requestID)
		return
	}

	if err := h.sessions.LoginAsAgent(r.Context(), a.ID); err != nil {
		slog.Error("failed to persist agent session", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create session", requestID)
		return
	}

	slog.Info("agent logged in", "username", a.Username)
	response.Success(w, http.StatusOK, loginResponse{
		Principal: "agent",
		Agent: &session.AgentSessionView{
			ID:          a.ID,
			Username:    a.Username,
			Permissions: a.Permissions,
		},
		RedirectTo: redirectTo,
	}, requestID)
}

// Logout handles POST /api/logout for whichever principal is current.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.sessions.Logout(r.Context()); err != nil {
		slog.Error("failed to clear session", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to clear session", requestID)
		return
	}
	response.NoContent(w)
}

// Session handles GET /api/session, reporting the current principal.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	switch p := middleware.GetPrincipal(r.Context()); p.Kind {
	case authz.KindAdmin:
		response.Success(w, http.StatusOK, sessionResponse{Authenticated: true, Principal: "admin"}, requestID)
	case authz.KindAgent:
		response.Success(w, http.StatusOK, sessionResponse{Authenticated: true, Principal: "agent", Agent: p.Agent}, requestID)
	default:
		response.Success(w, http.StatusOK, sessionResponse{Authenticated: false}, requestID)
	}
}
