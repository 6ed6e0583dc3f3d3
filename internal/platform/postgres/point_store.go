package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dkoru/webgis-api/internal/domain"
	"github.com/dkoru/webgis-api/internal/platform/logger"
	"github.com/dkoru/webgis-api/internal/store"
)

// PostgresPointStore implements the store.PointStore interface
// using a PostgreSQL database as the storage backend.
//
// Ownership conditions are embedded in the statements themselves (WHERE id
// AND user_id), so each operation is a single atomic statement and concurrent
// conflicting writes are serialized by the database.
type PostgresPointStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPointStore creates a new PostgreSQL implementation of the
// PointStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPointStore(db store.DBTX, log *slog.Logger) *PostgresPointStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresPointStore{
		db:     db,
		logger: log.With(slog.String("component", "point_store")),
	}
}

// Ensure PostgresPointStore implements store.PointStore interface
var _ store.PointStore = (*PostgresPointStore)(nil)

// Create implements store.PointStore.Create
// Returns store.ErrInvalidEntity if the owning account does not exist.
func (s *PostgresPointStore) Create(ctx context.Context, point *domain.Point) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := point.Validate(); err != nil {
		log.Warn("point validation failed during create",
			slog.String("error", err.Error()),
			slog.String("point_id", point.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO points (id, name, description, lat, lng, user_id, username, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		point.ID,
		point.Name,
		point.Description,
		point.Lat,
		point.Lng,
		point.UserID,
		point.Username,
		point.CreatedAt,
		point.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during point creation",
				slog.String("point_id", point.ID.String()),
				slog.String("user_id", point.UserID.String()))
			return fmt.Errorf("%w: account with ID %s not found",
				store.ErrInvalidEntity, point.UserID)
		}

		log.Error("failed to create point",
			slog.String("error", err.Error()),
			slog.String("point_id", point.ID.String()))
		return err
	}

	return nil
}

// listQuery joins points with accounts so results carry the owner's current
// display name. No ORDER BY: row order is implementation-defined.
const listQuery = `
	SELECT p.id, p.name, p.description, p.lat, p.lng, p.user_id, a.username, p.created_at, p.updated_at
	FROM points p
	JOIN accounts a ON a.id = p.user_id
`

// ListByOwner implements store.PointStore.ListByOwner
func (s *PostgresPointStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Point, error) {
	return s.list(ctx, listQuery+` WHERE p.user_id = $1`, ownerID)
}

// ListAll implements store.PointStore.ListAll
func (s *PostgresPointStore) ListAll(ctx context.Context) ([]domain.Point, error) {
	return s.list(ctx, listQuery)
}

func (s *PostgresPointStore) list(ctx context.Context, query string, args ...any) ([]domain.Point, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list points", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	points := make([]domain.Point, 0)
	for rows.Next() {
		var p domain.Point
		var description sql.NullString
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&description,
			&p.Lat,
			&p.Lng,
			&p.UserID,
			&p.Username,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			log.Error("failed to scan point row", slog.String("error", err.Error()))
			return nil, err
		}
		p.Description = description.String
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

// UpdateOwned implements store.PointStore.UpdateOwned
// A single conditional UPDATE: zero matched rows yield store.ErrPointNotFound
// whether the point is missing or owned by another account.
func (s *PostgresPointStore) UpdateOwned(
	ctx context.Context,
	id, ownerID uuid.UUID,
	name, description string,
) (*domain.Point, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE points
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
		RETURNING id, name, description, lat, lng, user_id, username, created_at, updated_at
	`

	var p domain.Point
	var desc sql.NullString
	var username sql.NullString

	err := s.db.QueryRowContext(
		ctx,
		query,
		name,
		description,
		time.Now().UTC(),
		id,
		ownerID,
	).Scan(
		&p.ID,
		&p.Name,
		&desc,
		&p.Lat,
		&p.Lng,
		&p.UserID,
		&username,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPointNotFound
		}
		log.Error("failed to update point",
			slog.String("error", err.Error()),
			slog.String("point_id", id.String()))
		return nil, err
	}

	p.Description = desc.String
	p.Username = username.String
	return &p, nil
}

// DeleteOwned implements store.PointStore.DeleteOwned
func (s *PostgresPointStore) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.delete(ctx,
		`DELETE FROM points WHERE id = $1 AND user_id = $2`,
		id, ownerID)
}

// Delete implements store.PointStore.Delete
// Deletes by id alone, regardless of owner.
func (s *PostgresPointStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.delete(ctx, `DELETE FROM points WHERE id = $1`, id)
}

func (s *PostgresPointStore) delete(ctx context.Context, query string, args ...any) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete point", slog.String("error", err.Error()))
		return err
	}

	return CheckRowsAffected(result, store.ErrPointNotFound)
}
