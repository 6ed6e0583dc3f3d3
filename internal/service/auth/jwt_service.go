package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dkoru/webgis-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT containing the account's identity
	// and role. Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns the claims containing the caller identity if the token
	// is valid, or an error if validation fails (expired, invalid signature,
	// etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of a token: the ephemeral caller identity
// plus the standard registered claims. It exists only for the duration of one
// request and is never persisted.
type Claims struct {
	// UserID is the unique identifier of the account the token was issued for.
	UserID uuid.UUID `json:"uid"`

	// Role is the capability tier embedded at issuance. Defaults to
	// domain.RoleUser for tokens that predate role support.
	Role domain.Role `json:"role"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// Identity is the caller identity derived from a verified credential,
// attached to the request context by the authentication middleware.
type Identity struct {
	UserID uuid.UUID
	Role   domain.Role
}
