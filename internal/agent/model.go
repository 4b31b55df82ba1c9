// Package agent implements the credential store: the single source of
// truth for delegated agent accounts and their section permissions.
package agent

import (
	"errors"
	"time"
)

// ErrAgentNotFound is returned when no agent record matches the given id.
var ErrAgentNotFound = errors.New("agent not found")

// ErrInvalidCredentials is returned when no active agent matches the given
// username and password. It deliberately carries no detail about which part
// of the check failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Permissions holds the four section capabilities an agent can be granted.
// Each flag is independently togglable.
type Permissions struct {
	Prompts           bool `json:"prompts"`
	Ads               bool `json:"ads"`
	Currency          bool `json:"currency"`
	AICreatorRequests bool `json:"aiCreatorRequests"`
}

// Agent represents a delegated sub-admin account. Passwords are stored in
// plain form for parity with the dashboard this service replaced; the
// minimum length rule lives in the API validation layer, not here.
type Agent struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Password    string      `json:"password"`
	Permissions Permissions `json:"permissions"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
}
