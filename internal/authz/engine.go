// Package authz decides whether the current principal may access a
// protected surface. Decide is a pure function of the principal and the
// route requirement; it holds no state and is recomputed on every request.
package authz

import (
	"github.com/kirnagrma/console/internal/agent"
	"github.com/kirnagrma/console/internal/session"
)

// Capability names one of the four section permission flags.
type Capability string

const (
	CapabilityPrompts           Capability = "prompts"
	CapabilityAds               Capability = "ads"
	CapabilityCurrency          Capability = "currency"
	CapabilityAICreatorRequests Capability = "aiCreatorRequests"
)

// Redirect targets for denied requests.
const (
	PathLogin = "/login"
	PathHome  = "/"
)

// Kind is the kind of the current principal.
type Kind string

const (
	KindNone  Kind = "none"
	KindAdmin Kind = "admin"
	KindAgent Kind = "agent"
)

// Principal is the resolved identity behind a request. Agent is set only
// when Kind is KindAgent.
type Principal struct {
	Kind  Kind
	Agent *session.AgentSessionView
}

// RequirementType selects which principals a route accepts.
type RequirementType string

const (
	// TypeAny admits any authenticated principal.
	TypeAny RequirementType = "any"
	// TypeAdmin admits only the admin; agents are denied regardless of
	// their permissions.
	TypeAdmin RequirementType = "admin"
	// TypeAgent admits the admin unconditionally and agents subject to the
	// optional Capability.
	TypeAgent RequirementType = "agent"
)

// Requirement describes what a route demands. Capability is consulted only
// for TypeAgent; empty means any active agent qualifies.
type Requirement struct {
	Type       RequirementType
	Capability Capability
}

// Decision is the outcome of an authorization check. RedirectTo is set only
// when Allow is false.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Allow is the permitting decision.
func Allow() Decision {
	return Decision{Allow: true}
}

// DenyRedirect denies access and sends the visitor to target.
func DenyRedirect(target string) Decision {
	return Decision{RedirectTo: target}
}

// Decide evaluates req against p. Anonymous visitors are sent to the login
// page; an authenticated agent lacking a required capability is sent home.
func Decide(p Principal, req Requirement) Decision {
	switch p.Kind {
	case KindAdmin:
		// The admin bypasses all capability checks.
		return Allow()

	case KindAgent:
		switch req.Type {
		case TypeAdmin:
			return DenyRedirect(PathLogin)
		case TypeAgent:
			if req.Capability == "" || hasCapability(p.Agent.Permissions, req.Capability) {
				return Allow()
			}
			return DenyRedirect(PathHome)
		default:
			return Allow()
		}

	default:
		return DenyRedirect(PathLogin)
	}
}

func hasCapability(perms agent.Permissions, c Capability) bool {
	switch c {
	case CapabilityPrompts:
		return perms.Prompts
	case CapabilityAds:
		return perms.Ads
	case CapabilityCurrency:
		return perms.Currency
	case CapabilityAICreatorRequests:
		return perms.AICreatorRequests
	}
	return false
}
