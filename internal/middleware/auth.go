package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"campaign-server/internal/auth"
	"campaign-server/internal/shared/errors"
	"campaign-server/internal/shared/response"
)

type contextKey string

const UserContextKey contextKey = "user"

// RequireUser rejects requests without a valid auth cookie. Mutating
// endpoints run behind it; read endpoints stay open.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "auth",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		cookie, err := r.Cookie("auth_token")
		if err != nil {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		claims, err := auth.ValidateJWT(cookie.Value)
		if err != nil {
			response.Error(w, r, logger, errors.Unauthorized("invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		logger.Debug("Authentication successful",
			"user_id", claims.UserID,
			"name", claims.Name)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext returns the authenticated user's claims, or nil when
// the request did not pass through RequireUser.
func GetUserFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(UserContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
