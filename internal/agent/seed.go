package agent

import (
	"fmt"
	"os"
	"time"

	"sigs.k8s.io/yaml"
)

// DefaultSeed returns the built-in fixture agents shown before any operator
// has created real accounts. Mirrors the fixtures the dashboard shipped with.
func DefaultSeed() []Agent {
	return []Agent{
		{
			ID:          "1",
			Username:    "agent_john",
			Password:    "secure123",
			Permissions: Permissions{Prompts: true},
			IsActive:    true,
			CreatedAt:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "2",
			Username:    "agent_sarah",
			Password:    "pass456!",
			Permissions: Permissions{Prompts: true, Ads: true},
			IsActive:    true,
			CreatedAt:   time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "3",
			Username:    "agent_mike",
			Password:    "mikeP@ss",
			Permissions: Permissions{Currency: true},
			IsActive:    false,
			CreatedAt:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
	}
}

// LoadSeedFile reads a YAML (or JSON) list of agents to use as the seed
// collection instead of the built-in fixtures.
func LoadSeedFile(path string) ([]Agent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var agents []Agent
	if err := yaml.Unmarshal(raw, &agents); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	return agents, nil
}
