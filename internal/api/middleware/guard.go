package middleware

import (
	"net/http"
	"net/url"

	"github.com/kirnagrma/console/internal/authz"
)

// Guard returns middleware enforcing the given route requirement. The
// authorization decision is recomputed on every request; denial is a silent
// redirect carrying the originally requested path so a later login can
// return the visitor to it.
func Guard(req authz.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := authz.Decide(GetPrincipal(r.Context()), req)
			if !decision.Allow {
				redirectDenied(w, r, decision.RedirectTo)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthenticated admits any logged-in principal.
func RequireAuthenticated() func(http.Handler) http.Handler {
	return Guard(authz.Requirement{Type: authz.TypeAny})
}

// RequireAdmin admits only the admin principal.
func RequireAdmin() func(http.Handler) http.Handler {
	return Guard(authz.Requirement{Type: authz.TypeAdmin})
}

// RequireAgent admits the admin and any active agent, optionally demanding
// a capability flag.
func RequireAgent(capability authz.Capability) func(http.Handler) http.Handler {
	return Guard(authz.Requirement{Type: authz.TypeAgent, Capability: capability})
}

func redirectDenied(w http.ResponseWriter, r *http.Request, target string) {
	// Preserve the requested location only when heading to login; the home
	// redirect is a terminal "insufficient permission" outcome.
	if target == authz.PathLogin {
		target += "?from=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
