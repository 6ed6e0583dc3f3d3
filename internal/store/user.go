package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/dkoru/webgis-api/internal/domain"
)

// UserStore defines the interface for account persistence.
//
// Accounts are created at registration and read during login and point
// listing; no exposed operation updates or deletes them.
type UserStore interface {
	// Create saves a new account to the store. The user must carry a
	// HashedPassword; plaintext passwords are never stored.
	// Returns ErrUsernameExists if the login name is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves an account by its unique ID.
	// Returns ErrUserNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves an account by its normalized login name.
	// Returns ErrUserNotFound if it does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
