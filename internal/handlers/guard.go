package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/session"
)

// userOnlyPrefixes are the paths reserved for authenticated non-admin users.
var userOnlyPrefixes = []string{"/checkout", "/my-orders", "/user/"}

// RouteGuard redirects on every request when the path and the session's
// derived auth state disagree. It is middleware, not a one-time gate: it
// re-evaluates on every navigation.
type RouteGuard struct {
	Sessions *session.Manager
}

// Middleware applies the guard's decision table in order; first match wins.
func (g *RouteGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if dest := g.decide(r); dest != "" {
			slog.Info("Route guard redirect", "path", r.URL.Path, "to", dest)
			http.Redirect(w, r, dest, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// decide returns the redirect destination, or "" to allow the request.
func (g *RouteGuard) decide(r *http.Request) string {
	path := r.URL.Path
	authed := g.Sessions.IsAuthenticated(r)
	admin := authed && g.Sessions.IsAdmin(r)

	switch {
	case strings.HasPrefix(path, "/admin"):
		// Admin area: admins only; everyone else goes shopping.
		if !admin {
			return "/shop"
		}
		return ""

	case isUserOnly(path):
		if !authed {
			return "/shop"
		}
		if admin {
			return "/admin"
		}
		return ""

	case path == "/":
		// The landing page handles its own redirect for regular users.
		if admin {
			return "/admin"
		}
		return ""
	}

	return ""
}

func isUserOnly(path string) bool {
	for _, prefix := range userOnlyPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
