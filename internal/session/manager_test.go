package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirnagrma/console/internal/agent"
	"github.com/kirnagrma/console/internal/kvstore"
	"github.com/kirnagrma/console/internal/session"
)

func setupManager(t *testing.T, seed []agent.Agent) (*session.Manager, *agent.Store, kvstore.Store) {
	t.Helper()

	kv := kvstore.NewMemory()
	agents := agent.NewStore(kv, seed)
	return session.NewManager(kv, agents), agents, kv
}

func activeAgent(id, username string) agent.Agent {
	return agent.Agent{
		ID:          id,
		Username:    username,
		Password:    "secret99",
		Permissions: agent.Permissions{Prompts: true},
		IsActive:    true,
	}
}

func TestLoginAsAdmin(t *testing.T) {
	m, _, _ := setupManager(t, nil)
	ctx := context.Background()

	require.NoError(t, m.LoginAsAdmin(ctx))

	isAdmin, err := m.CurrentAdminSession(ctx)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	view, err := m.CurrentAgentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestAgentLoginReplacesAdminSession(t *testing.T) {
	m, _, _ := setupManager(t, []agent.Agent{activeAgent("a1", "agent_john")})
	ctx := context.Background()

	require.NoError(t, m.LoginAsAdmin(ctx))
	require.NoError(t, m.LoginAsAgent(ctx, "a1"))

	// Only one principal can be current.
	isAdmin, err := m.CurrentAdminSession(ctx)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	view, err := m.CurrentAgentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, "agent_john", view.Username)
}

func TestAdminLoginReplacesAgentSession(t *testing.T) {
	m, _, _ := setupManager(t, []agent.Agent{activeAgent("a1", "agent_john")})
	ctx := context.Background()

	require.NoError(t, m.LoginAsAgent(ctx, "a1"))
	require.NoError(t, m.LoginAsAdmin(ctx))

	view, err := m.CurrentAgentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, view)

	isAdmin, err := m.CurrentAdminSession(ctx)
	require.NoError(t, err)
	assert.True(t, isAdmin)
}

func TestCurrentAgentSession_ViewCarriesPermissionsNotPassword(t *testing.T) {
	m, _, _ := setupManager(t, []agent.Agent{activeAgent("a1", "agent_john")})
	ctx := context.Background()

	require.NoError(t, m.LoginAsAgent(ctx, "a1"))

	view, err := m.CurrentAgentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, "a1", view.ID)
	assert.True(t, view.Permissions.Prompts)
	assert.False(t, view.Permissions.Currency)
}

func TestCurrentAgentSession_DeletedAgentInvalidatesSession(t *testing.T) {
	m, agents, kv := setupManager(t, []agent.Agent{activeAgent("a1", "agent_john")})
	ctx := context.Background()

	require.NoError(t, m.LoginAsAgent(ctx, "a1"))

	// Delete the agent while the session marker is still set.
	require.NoError(t, agents.ReplaceAll(ctx, []agent.Agent{}))

	view, err := m.CurrentAgentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, view)

	// The stale marker must have been cleared proactively.
	_, ok, err := kv.Get(ctx, "kg_session")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCurrentAgentSession_DeactivatedAgentInvalidatesSession(t *testing.T) {
	seed := []agent.Agent{activeAgent("a1", "agent_john")}
	m, agents, kv := setupManager(t, seed)
	ctx := context.Background()

	require.NoError(t, m.LoginAsAgent(ctx, "a1"))

	// Deactivate the agent while the session marker is still set.
	seed[0].IsActive = false
	require.NoError(t, agents.ReplaceAll(ctx, seed))

	view, err := m.CurrentAgentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, view, "a deactivated agent's session must not resolve")

	// The stale marker must have been cleared: reactivating the agent does
	// not silently revive the old session.
	_, ok, err := kv.Get(ctx, "kg_session")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogoutAdmin_OnlyClearsAdminSession(t *testing.T) {
	m, _, _ := setupManager(t, []agent.Agent{activeAgent("a1", "agent_john")})
	ctx := context.Background()

	require.NoError(t, m.LoginAsAgent(ctx, "a1"))
	require.NoError(t, m.LogoutAdmin(ctx))

	view, err := m.CurrentAgentSession(ctx)
	require.NoError(t, err)
	assert.NotNil(t, view, "agent session must survive an admin logout")

	require.NoError(t, m.LogoutAgent(ctx))
	view, err = m.CurrentAgentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestCurrentSession_CorruptStateTreatedAsLoggedOut(t *testing.T) {
	m, _, kv := setupManager(t, nil)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "kg_session", "###"))

	isAdmin, err := m.CurrentAdminSession(ctx)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	view, err := m.CurrentAgentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, view)
}
