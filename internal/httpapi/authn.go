package httpapi

import (
	"net/http"
	"strings"

	"complainthub.org/internal/auth"
)

// Endpoints reachable without a bearer token.
var publicPaths = map[string]bool{
	"/":              true,
	"/auth/register": true,
	"/auth/login":    true,
	"/auth/logout":   true,
	"/healthz":       true,
	"/readyz":        true,
	"/metrics":       true,
	"/v1/info":       true,
}

// withAuth verifies the bearer token on protected routes and stores the
// caller identity in the request context.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || publicPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}
		token := extractBearerToken(r)
		if token == "" {
			writeError(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		identity, err := a.tokens.Verify(token)
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.ContextWithIdentity(r.Context(), identity)))
	})
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

func (a *API) identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
	}
	return identity, ok
}

func (a *API) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	identity, ok := a.identity(w, r)
	if !ok {
		return false
	}
	if !identity.IsAdmin() {
		writeError(w, r, http.StatusForbidden, "Admin access required")
		return false
	}
	return true
}
