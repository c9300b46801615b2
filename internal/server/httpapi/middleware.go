package httpapi

import (
	"context"
	"net/http"

	"github.com/dpavlenko/liftlog/internal/server/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// withAuth is the session resolver: it runs once per request, turns the
// Authorization header into verified claims (or nil for anonymous) and
// attaches the result to the request context. It never rejects a request;
// per-operation auth requirements are enforced at dispatch.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := auth.ResolveBearer(r.Header.Get("Authorization"), s.jwtSecret)
		if claims != nil {
			r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext returns the verified claims attached by the session
// resolver, or nil when the request is anonymous.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}
