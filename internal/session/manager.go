// Package session tracks the single active principal. The persisted state
// is one tagged value — none, admin, or agent(id) — so two simultaneous
// principals are structurally unrepresentable.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kirnagrma/console/internal/agent"
	"github.com/kirnagrma/console/internal/kvstore"
)

// storageKey is the kv key holding the serialized session state.
const storageKey = "kg_session"

const (
	kindAdmin = "admin"
	kindAgent = "agent"
)

// state is the persisted session variant. An absent key means no principal
// is logged in.
type state struct {
	Kind    string `json:"kind"`
	AgentID string `json:"agentId,omitempty"`
}

// AgentSessionView is the resolved identity of an agent session. It carries
// a read-only copy of the permission flags and never the password.
type AgentSessionView struct {
	ID          string            `json:"id"`
	Username    string            `json:"username"`
	Permissions agent.Permissions `json:"permissions"`
}

// Manager owns the "who is currently logged in" marker. Agent sessions are
// re-resolved against the credential store on every read, so deleting or
// deactivating an agent invalidates its session on the next check.
type Manager struct {
	kv     kvstore.Store
	agents *agent.Store
}

// NewManager creates a Manager over the given persistence port and
// credential store.
func NewManager(kv kvstore.Store, agents *agent.Store) *Manager {
	return &Manager{kv: kv, agents: agents}
}

// LoginAsAdmin records an admin session, replacing any agent session.
func (m *Manager) LoginAsAdmin(ctx context.Context) error {
	return m.write(ctx, state{Kind: kindAdmin})
}

// LoginAsAgent records a session for the given agent id, replacing any
// admin session.
func (m *Manager) LoginAsAgent(ctx context.Context, agentID string) error {
	return m.write(ctx, state{Kind: kindAgent, AgentID: agentID})
}

// LogoutAdmin clears the session if an admin is the current principal.
func (m *Manager) LogoutAdmin(ctx context.Context) error {
	return m.clearIfKind(ctx, kindAdmin)
}

// LogoutAgent clears the session if an agent is the current principal.
func (m *Manager) LogoutAgent(ctx context.Context) error {
	return m.clearIfKind(ctx, kindAgent)
}

// Logout clears the session regardless of the current principal kind.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.kv.Delete(ctx, storageKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// CurrentAdminSession reports whether an admin session is active.
func (m *Manager) CurrentAdminSession(ctx context.Context) (bool, error) {
	st, err := m.read(ctx)
	if err != nil {
		return false, err
	}
	return st != nil && st.Kind == kindAdmin, nil
}

// CurrentAgentSession resolves the active agent session, if any. A marker
// pointing at an agent record that no longer exists or has been deactivated
// is treated as "not logged in" and the stale marker is cleared.
func (m *Manager) CurrentAgentSession(ctx context.Context) (*AgentSessionView, error) {
	st, err := m.read(ctx)
	if err != nil {
		return nil, err
	}
	if st == nil || st.Kind != kindAgent || st.AgentID == "" {
		return nil, nil
	}

	a, err := m.agents.FindByID(ctx, st.AgentID)
	if errors.Is(err, agent.ErrAgentNotFound) {
		slog.Info("session references a deleted agent, clearing marker", "agentId", st.AgentID)
		m.clearStaleMarker(ctx)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolving agent session: %w", err)
	}
	if !a.IsActive {
		slog.Info("session references a deactivated agent, clearing marker", "agentId", st.AgentID)
		m.clearStaleMarker(ctx)
		return nil, nil
	}

	return &AgentSessionView{
		ID:          a.ID,
		Username:    a.Username,
		Permissions: a.Permissions,
	}, nil
}

func (m *Manager) clearStaleMarker(ctx context.Context) {
	if err := m.kv.Delete(ctx, storageKey); err != nil {
		slog.Warn("failed to clear stale session marker", "error", err)
	}
}

func (m *Manager) write(ctx context.Context, st state) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding session state: %w", err)
	}
	if err := m.kv.Set(ctx, storageKey, string(raw)); err != nil {
		return fmt.Errorf("persisting session state: %w", err)
	}
	return nil
}

func (m *Manager) clearIfKind(ctx context.Context, kind string) error {
	st, err := m.read(ctx)
	if err != nil {
		return err
	}
	if st == nil || st.Kind != kind {
		return nil
	}
	return m.Logout(ctx)
}

// read loads the persisted state. Unparsable state behaves as absent: it is
// logged, cleared, and reported as nil so callers treat it as logged out.
func (m *Manager) read(ctx context.Context) (*state, error) {
	raw, ok, err := m.kv.Get(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("loading session state: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var st state
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		slog.Warn("persisted session state is unparsable, treating as logged out", "error", err)
		if err := m.kv.Delete(ctx, storageKey); err != nil {
			slog.Warn("failed to clear corrupt session marker", "error", err)
		}
		return nil, nil
	}
	return &st, nil
}
