// Package postgres provides PostgreSQL-backed implementations of the store
// interfaces.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dkoru/webgis-api/internal/domain"
	"github.com/dkoru/webgis-api/internal/platform/logger"
	"github.com/dkoru/webgis-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, log *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: log.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
// It saves a new account, mapping unique violations on the username to
// store.ErrUsernameExists. The user must already carry a password hash.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if user.HashedPassword == "" {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrEmptyHashedPassword)
	}
	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO accounts (id, username, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.HashedPassword,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate username during account creation",
				slog.String("username", user.Username))
			return store.ErrUsernameExists
		}

		log.Error("failed to create account",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	log.Info("account created",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the account does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	return s.scanUser(ctx, query, id)
}

// GetByUsername implements store.UserStore.GetByUsername
// The lookup is performed on the normalized login name.
// Returns store.ErrUserNotFound if the account does not exist.
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at, updated_at
		FROM accounts
		WHERE username = $1
	`
	return s.scanUser(ctx, query, domain.NormalizeUsername(username))
}

func (s *PostgresUserStore) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	var role string

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get account",
			slog.String("error", err.Error()))
		return nil, err
	}

	user.Role = domain.Role(role)
	return &user, nil
}
