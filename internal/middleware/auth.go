package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lotoboard/server/internal/auth"
	"github.com/lotoboard/server/internal/errs"
)

type contextKey string

const sessionKey contextKey = "session"

// RequireSession verifies the session cookie and attaches its claims to the
// request context. Missing, invalid and expired tokens all map to 401; expiry
// is only ever detected here, on the next request after the window lapses.
func RequireSession(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil || cookie.Value == "" {
				respondWithError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := jwtService.VerifyToken(cookie.Value)
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects authenticated non-admin callers with 403. Must run
// inside RequireSession.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetSession(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !claims.IsAdmin {
			respondWithError(w, http.StatusForbidden, errs.ErrForbidden.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSession returns the session claims attached by RequireSession.
func GetSession(ctx context.Context) (*auth.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionKey).(*auth.SessionClaims)
	return claims, ok
}

// respondWithError sends a JSON error response
func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := map[string]string{"error": message}
	_ = json.NewEncoder(w).Encode(response)
}
