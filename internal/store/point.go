package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/dkoru/webgis-api/internal/domain"
)

// PointStore defines the interface for point persistence. Every method runs a
// single atomic statement; ownership conditions are part of the statement
// itself so that concurrent conflicting writes are arbitrated by the database.
//
// List results carry no ordering guarantee.
type PointStore interface {
	// Create inserts a new point. Returns ErrInvalidEntity if the owning
	// account does not exist (foreign key violation).
	Create(ctx context.Context, point *domain.Point) error

	// ListByOwner returns all points owned by the given account, joined with
	// the owner's display name.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Point, error)

	// ListAll returns every point joined with its owner's display name,
	// unscoped. Reserved for elevated callers.
	ListAll(ctx context.Context) ([]domain.Point, error)

	// UpdateOwned mutates name and description of the point matching both id
	// and owner in one conditional statement. Returns ErrPointNotFound when
	// zero rows match - deliberately the same whether the point does not
	// exist or belongs to someone else.
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, name, description string) (*domain.Point, error)

	// DeleteOwned deletes the point matching both id and owner. Zero matched
	// rows yield ErrPointNotFound, same policy as UpdateOwned.
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error

	// Delete deletes by id alone, regardless of owner. Reserved for elevated
	// callers. Returns ErrPointNotFound if no row matched.
	Delete(ctx context.Context, id uuid.UUID) error
}
