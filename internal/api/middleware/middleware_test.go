package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirnagrma/console/internal/agent"
	"github.com/kirnagrma/console/internal/api/middleware"
	"github.com/kirnagrma/console/internal/authz"
	"github.com/kirnagrma/console/internal/kvstore"
	"github.com/kirnagrma/console/internal/session"
)

func setupSessions(t *testing.T, seed []agent.Agent) (*session.Manager, *agent.Store) {
	t.Helper()

	kv := kvstore.NewMemory()
	agents := agent.NewStore(kv, seed)
	return session.NewManager(kv, agents), agents
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(t *testing.T, sessions *session.Manager, guard func(http.Handler) http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	handler := middleware.Principal(sessions)(guard(okHandler()))
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestGuard_AnonymousRedirectedToLoginWithFrom(t *testing.T) {
	sessions, _ := setupSessions(t, nil)

	w := serve(t, sessions, middleware.RequireAuthenticated(), "/api/dashboard/metrics")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?from=%2Fapi%2Fdashboard%2Fmetrics", w.Header().Get("Location"))
}

func TestGuard_AdminAllowedEverywhere(t *testing.T) {
	sessions, _ := setupSessions(t, nil)
	require.NoError(t, sessions.LoginAsAdmin(context.Background()))

	for _, guard := range []func(http.Handler) http.Handler{
		middleware.RequireAuthenticated(),
		middleware.RequireAdmin(),
		middleware.RequireAgent(""),
		middleware.RequireAgent(authz.CapabilityCurrency),
	} {
		w := serve(t, sessions, guard, "/anything")
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestGuard_AgentDeniedAdminOnlyRoute(t *testing.T) {
	seed := []agent.Agent{{ID: "a1", Username: "agent_john", Password: "secure123", IsActive: true}}
	sessions, _ := setupSessions(t, seed)
	require.NoError(t, sessions.LoginAsAgent(context.Background(), "a1"))

	w := serve(t, sessions, middleware.RequireAdmin(), "/api/agents")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?from=%2Fapi%2Fagents", w.Header().Get("Location"))
}

func TestGuard_AgentMissingCapabilityRedirectedHome(t *testing.T) {
	seed := []agent.Agent{{ID: "a1", Username: "agent_john", Password: "secure123", IsActive: true}}
	sessions, _ := setupSessions(t, seed)
	require.NoError(t, sessions.LoginAsAgent(context.Background(), "a1"))

	w := serve(t, sessions, middleware.RequireAgent(authz.CapabilityPrompts), "/api/prompts")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestGuard_AgentWithCapabilityAllowed(t *testing.T) {
	seed := []agent.Agent{{
		ID: "a1", Username: "agent_john", Password: "secure123", IsActive: true,
		Permissions: agent.Permissions{Prompts: true},
	}}
	sessions, _ := setupSessions(t, seed)
	require.NoError(t, sessions.LoginAsAgent(context.Background(), "a1"))

	w := serve(t, sessions, middleware.RequireAgent(authz.CapabilityPrompts), "/api/prompts")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuard_CapabilityLessAgentRouteAdmitsAnyAgent(t *testing.T) {
	seed := []agent.Agent{{ID: "a1", Username: "agent_john", Password: "secure123", IsActive: true}}
	sessions, _ := setupSessions(t, seed)
	require.NoError(t, sessions.LoginAsAgent(context.Background(), "a1"))

	w := serve(t, sessions, middleware.RequireAgent(""), "/api/ai-creators")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuard_DeletedAgentSessionRedirectsToLogin(t *testing.T) {
	seed := []agent.Agent{{ID: "a1", Username: "agent_john", Password: "secure123", IsActive: true}}
	sessions, agents := setupSessions(t, seed)
	ctx := context.Background()
	require.NoError(t, sessions.LoginAsAgent(ctx, "a1"))

	// Delete the agent out from under its live session.
	require.NoError(t, agents.ReplaceAll(ctx, []agent.Agent{}))

	w := serve(t, sessions, middleware.RequireAuthenticated(), "/api/dashboard/metrics")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login")
}

func TestGuard_DeactivatedAgentSessionRedirectsToLogin(t *testing.T) {
	seed := []agent.Agent{{
		ID: "a1", Username: "agent_john", Password: "secure123", IsActive: true,
		Permissions: agent.Permissions{Prompts: true},
	}}
	sessions, agents := setupSessions(t, seed)
	ctx := context.Background()
	require.NoError(t, sessions.LoginAsAgent(ctx, "a1"))

	// Deactivate the agent out from under its live session.
	seed[0].IsActive = false
	require.NoError(t, agents.ReplaceAll(ctx, seed))

	w := serve(t, sessions, middleware.RequireAgent(authz.CapabilityPrompts), "/api/prompts")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login")
}

func TestGetPrincipal_DefaultsToAnonymous(t *testing.T) {
	p := middleware.GetPrincipal(context.Background())
	assert.Equal(t, authz.KindNone, p.Kind)
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	var captured string
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = middleware.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "req-123", captured)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestRecovery_PanicReturns500(t *testing.T) {
	handler := middleware.Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}
