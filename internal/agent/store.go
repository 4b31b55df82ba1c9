package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kirnagrma/console/internal/kvstore"
)

// storageKey is the kv key holding the serialized agent collection.
const storageKey = "kg_admin_agents"

// Store is the durable keeper of agent accounts. All reads fall back to a
// caller-supplied seed collection until the first mutation is persisted.
type Store struct {
	kv   kvstore.Store
	seed []Agent
}

// NewStore creates a Store over the given persistence port. The seed is
// returned by List whenever no valid collection has been persisted yet; it
// is never written back implicitly.
func NewStore(kv kvstore.Store, seed []Agent) *Store {
	return &Store{kv: kv, seed: seed}
}

// List returns the full agent collection in insertion order. Absent or
// unparsable persisted data behaves as "no data" and yields a copy of the
// seed; the corrupt case is logged but never surfaced to the caller.
func (s *Store) List(ctx context.Context) ([]Agent, error) {
	raw, ok, err := s.kv.Get(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("loading agents: %w", err)
	}
	if !ok {
		return s.seedCopy(), nil
	}

	var agents []Agent
	if err := json.Unmarshal([]byte(raw), &agents); err != nil {
		slog.Warn("persisted agent collection is unparsable, falling back to seed", "error", err)
		return s.seedCopy(), nil
	}
	if agents == nil {
		agents = []Agent{}
	}
	return agents, nil
}

// ReplaceAll overwrites the entire persisted collection. It is the only
// write primitive; create/update/delete are expressed by callers as
// read-modify-ReplaceAll.
func (s *Store) ReplaceAll(ctx context.Context, agents []Agent) error {
	if agents == nil {
		agents = []Agent{}
	}

	raw, err := json.Marshal(agents)
	if err != nil {
		return fmt.Errorf("encoding agents: %w", err)
	}
	if err := s.kv.Set(ctx, storageKey, string(raw)); err != nil {
		return fmt.Errorf("persisting agents: %w", err)
	}
	return nil
}

// FindByCredentials resolves a login attempt: username matches
// case-insensitively, the password exactly, and the agent must be active.
// The first matching record wins when usernames are duplicated. Returns
// ErrInvalidCredentials without distinguishing which check failed.
func (s *Store) FindByCredentials(ctx context.Context, username, password string) (*Agent, error) {
	agents, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range agents {
		a := &agents[i]
		if strings.EqualFold(a.Username, username) && a.Password == password && a.IsActive {
			return a, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// FindByID returns the agent with the given id, or ErrAgentNotFound.
func (s *Store) FindByID(ctx context.Context, id string) (*Agent, error) {
	agents, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range agents {
		if agents[i].ID == id {
			return &agents[i], nil
		}
	}
	return nil, ErrAgentNotFound
}

func (s *Store) seedCopy() []Agent {
	out := make([]Agent, len(s.seed))
	copy(out, s.seed)
	return out
}
