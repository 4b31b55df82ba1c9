package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/kirnagrma/console/internal/authz"
	"github.com/kirnagrma/console/internal/session"
)

const principalKey contextKey = "principal"

// Principal is middleware that resolves the current principal through the
// session manager and stores it in the request context. Any failure to
// resolve degrades to an anonymous principal; resolution never produces an
// error response.
func Principal(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := resolve(r.Context(), sessions)
			ctx := context.WithValue(r.Context(), principalKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal retrieves the resolved principal from the request context.
// Requests that did not pass through the Principal middleware are anonymous.
func GetPrincipal(ctx context.Context) authz.Principal {
	if p, ok := ctx.Value(principalKey).(authz.Principal); ok {
		return p
	}
	return authz.Principal{Kind: authz.KindNone}
}

func resolve(ctx context.Context, sessions *session.Manager) authz.Principal {
	isAdmin, err := sessions.CurrentAdminSession(ctx)
	if err != nil {
		slog.Warn("admin session lookup failed, treating as anonymous", "error", err)
		return authz.Principal{Kind: authz.KindNone}
	}
	if isAdmin {
		return authz.Principal{Kind: authz.KindAdmin}
	}

	view, err := sessions.CurrentAgentSession(ctx)
	if err != nil {
		slog.Warn("agent session lookup failed, treating as anonymous", "error", err)
		return authz.Principal{Kind: authz.KindNone}
	}
	if view != nil {
		return authz.Principal{Kind: authz.KindAgent, Agent: view}
	}

	return authz.Principal{Kind: authz.KindNone}
}
