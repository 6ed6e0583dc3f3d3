// Package points implements the ownership-scoped point operations: every
// operation is gated by the caller identity resolved by the authentication
// middleware and by the role policy (user/admin/guest).
package points

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dkoru/webgis-api/internal/domain"
	"github.com/dkoru/webgis-api/internal/platform/logger"
	"github.com/dkoru/webgis-api/internal/service/auth"
	"github.com/dkoru/webgis-api/internal/store"
)

// Service defines the ownership-scoped operations over point records.
// All methods require a caller identity already resolved from a verified
// credential.
type Service interface {
	// Create inserts a new point owned by the caller. Guests are denied.
	Create(ctx context.Context, caller auth.Identity, name, description string, lat, lng float64) (*domain.Point, error)

	// List returns the points visible to the caller: all rows for admins,
	// caller-owned rows for everyone else (including guests).
	List(ctx context.Context, caller auth.Identity) ([]domain.Point, error)

	// Update mutates name/description of a point the caller owns. Zero
	// matched rows fail with ErrPointNotOwned regardless of whether the
	// point exists.
	Update(ctx context.Context, caller auth.Identity, pointID uuid.UUID, name, description string) (*domain.Point, error)

	// Delete removes a point. Guests are denied unconditionally; admins
	// delete by id alone; users only their own rows. Zero matched rows fail
	// with ErrPointNotOwned.
	Delete(ctx context.Context, caller auth.Identity, pointID uuid.UUID) error
}

type service struct {
	pointStore store.PointStore
	userStore  store.UserStore
	logger     *slog.Logger
}

// NewService creates a point service over the given stores.
// If logger is nil, the default logger is used.
func NewService(pointStore store.PointStore, userStore store.UserStore, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{
		pointStore: pointStore,
		userStore:  userStore,
		logger:     log.With(slog.String("component", "point_service")),
	}
}

var _ Service = (*service)(nil)

func (s *service) Create(
	ctx context.Context,
	caller auth.Identity,
	name, description string,
	lat, lng float64,
) (*domain.Point, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if caller.Role == domain.RoleGuest {
		log.Debug("guest attempted to create a point",
			slog.String("user_id", caller.UserID.String()))
		return nil, ErrGuestWriteDenied
	}

	// Owner display name is denormalized into the row at creation time.
	owner, err := s.userStore.GetByID(ctx, caller.UserID)
	if err != nil {
		log.Error("failed to load owning account for point creation",
			slog.String("error", err.Error()),
			slog.String("user_id", caller.UserID.String()))
		return nil, fmt.Errorf("failed to load owning account: %w", err)
	}

	point, err := domain.NewPoint(name, description, lat, lng, owner.ID, owner.Username)
	if err != nil {
		return nil, err
	}

	if err := s.pointStore.Create(ctx, point); err != nil {
		log.Error("failed to create point",
			slog.String("error", err.Error()),
			slog.String("point_id", point.ID.String()),
			slog.String("user_id", caller.UserID.String()))
		return nil, err
	}

	log.Info("point created",
		slog.String("point_id", point.ID.String()),
		slog.String("user_id", caller.UserID.String()))
	return point, nil
}

func (s *service) List(ctx context.Context, caller auth.Identity) ([]domain.Point, error) {
	if caller.Role == domain.RoleAdmin {
		return s.pointStore.ListAll(ctx)
	}
	return s.pointStore.ListByOwner(ctx, caller.UserID)
}

func (s *service) Update(
	ctx context.Context,
	caller auth.Identity,
	pointID uuid.UUID,
	name, description string,
) (*domain.Point, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	point, err := s.pointStore.UpdateOwned(ctx, pointID, caller.UserID, name, description)
	if err != nil {
		if errors.Is(err, store.ErrPointNotFound) {
			// Missing row and foreign row are indistinguishable on purpose.
			return nil, ErrPointNotOwned
		}
		log.Error("failed to update point",
			slog.String("error", err.Error()),
			slog.String("point_id", pointID.String()),
			slog.String("user_id", caller.UserID.String()))
		return nil, err
	}

	log.Info("point updated",
		slog.String("point_id", pointID.String()),
		slog.String("user_id", caller.UserID.String()))
	return point, nil
}

func (s *service) Delete(ctx context.Context, caller auth.Identity, pointID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var err error
	switch caller.Role {
	case domain.RoleGuest:
		log.Debug("guest attempted to delete a point",
			slog.String("point_id", pointID.String()),
			slog.String("user_id", caller.UserID.String()))
		return ErrGuestWriteDenied
	case domain.RoleAdmin:
		err = s.pointStore.Delete(ctx, pointID)
	default:
		err = s.pointStore.DeleteOwned(ctx, pointID, caller.UserID)
	}

	if err != nil {
		if errors.Is(err, store.ErrPointNotFound) {
			return ErrPointNotOwned
		}
		log.Error("failed to delete point",
			slog.String("error", err.Error()),
			slog.String("point_id", pointID.String()),
			slog.String("user_id", caller.UserID.String()))
		return err
	}

	log.Info("point deleted",
		slog.String("point_id", pointID.String()),
		slog.String("user_id", caller.UserID.String()),
		slog.String("role", string(caller.Role)))
	return nil
}
