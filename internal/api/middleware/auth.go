package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dkoru/webgis-api/internal/api/shared"
	"github.com/dkoru/webgis-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates JWT tokens from the Authorization header and adds
// the caller identity (account id + role) to the request context.
//
// Clients send the token either as "Bearer <token>" or as the raw token
// value; both forms are accepted.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch err {
			case auth.ErrExpiredToken:
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case auth.ErrInvalidToken, auth.ErrTokenNotYetValid:
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", err)
				shared.RespondWithError(
					w,
					r,
					http.StatusInternalServerError,
					"Authentication error",
				)
			}
			return
		}

		identity := auth.Identity{
			UserID: claims.UserID,
			Role:   claims.Role,
		}
		ctx := context.WithValue(r.Context(), shared.IdentityContextKey, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentity extracts the caller identity from the request context.
// Returns the identity and a boolean indicating if it was found.
func GetIdentity(r *http.Request) (auth.Identity, bool) {
	identity, ok := r.Context().Value(shared.IdentityContextKey).(auth.Identity)
	return identity, ok
}
