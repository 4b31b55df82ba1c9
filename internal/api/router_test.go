package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirnagrma/console/internal/admin"
	"github.com/kirnagrma/console/internal/agent"
	"github.com/kirnagrma/console/internal/api"
	"github.com/kirnagrma/console/internal/kvstore"
	"github.com/kirnagrma/console/internal/platform"
	"github.com/kirnagrma/console/internal/prompts"
	"github.com/kirnagrma/console/internal/session"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	kv := kvstore.NewMemory()
	agents := agent.NewStore(kv, agent.DefaultSeed())

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(upstream.Close)

	return api.NewRouter(api.RouterDeps{
		AdminCredential: admin.Credential{Email: "admin@kirnagrma", Password: "1234567890"},
		Agents:          agents,
		Sessions:        session.NewManager(kv, agents),
		Queue:           prompts.NewQueue(kv),
		Platform:        platform.NewClient(upstream.URL),
		Store:           kv,
		Version:         "test",
		CORSOrigins:     []string{"*"},
		LoginRateLimit:  100,
	})
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_AnonymousIsRedirectedFromProtectedRoutes(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/dashboard/metrics", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?from=%2Fapi%2Fdashboard%2Fmetrics", w.Header().Get("Location"))

	w = do(t, router, http.MethodGet, "/api/agents/", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login")
}

func TestRouter_AdminLoginUnlocksAdminRoutes(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/login", `{"email":"admin@kirnagrma","password":"1234567890"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"principal":"admin"`)

	w = do(t, router, http.MethodGet, "/api/agents/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "agent_john")

	w = do(t, router, http.MethodGet, "/api/dashboard/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_AgentSeesOnlyPermittedSections(t *testing.T) {
	router := newTestRouter(t)

	// agent_john holds only the prompts permission.
	w := do(t, router, http.MethodPost, "/api/login", `{"email":"agent_john","password":"secure123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"principal":"agent"`)

	w = do(t, router, http.MethodGet, "/api/prompts/", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/api/currency", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = do(t, router, http.MethodGet, "/api/agents/", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login")

	// AI-creator review admits any active agent.
	w = do(t, router, http.MethodPost, "/api/ai-creators/app-1/approve", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_LogoutReturnsToAnonymous(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/login", `{"email":"admin@kirnagrma","password":"1234567890"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodPost, "/api/logout", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, router, http.MethodGet, "/api/session", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	w = do(t, router, http.MethodGet, "/api/dashboard/metrics", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestRouter_HealthIsPublic(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}
