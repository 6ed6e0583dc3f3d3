package api_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dkoru/webgis-api/internal/config"
	"github.com/dkoru/webgis-api/internal/domain"
	"github.com/dkoru/webgis-api/internal/service/auth"
	"github.com/dkoru/webgis-api/internal/store"
)

// memUserStore is an in-memory store.UserStore for handler tests.
type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uuid.UUID]domain.User)}
}

func (s *memUserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *memUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &user, nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	username = domain.NormalizeUsername(username)
	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// memPointStore is an in-memory store.PointStore mirroring the SQL
// implementation's ownership-conditional semantics.
type memPointStore struct {
	mu     sync.Mutex
	points map[uuid.UUID]domain.Point
}

func newMemPointStore() *memPointStore {
	return &memPointStore{points: make(map[uuid.UUID]domain.Point)}
}

func (s *memPointStore) Create(_ context.Context, point *domain.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[point.ID] = *point
	return nil
}

func (s *memPointStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []domain.Point{}
	for _, p := range s.points {
		if p.UserID == ownerID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *memPointStore) ListAll(_ context.Context) ([]domain.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []domain.Point{}
	for _, p := range s.points {
		result = append(result, p)
	}
	return result, nil
}

func (s *memPointStore) UpdateOwned(
	_ context.Context,
	id, ownerID uuid.UUID,
	name, description string,
) (*domain.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.points[id]
	if !ok || p.UserID != ownerID {
		return nil, store.ErrPointNotFound
	}
	p.Name = name
	p.Description = description
	s.points[id] = p
	return &p, nil
}

func (s *memPointStore) DeleteOwned(_ context.Context, id, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.points[id]
	if !ok || p.UserID != ownerID {
		return store.ErrPointNotFound
	}
	delete(s.points, id)
	return nil
}

func (s *memPointStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.points[id]; !ok {
		return store.ErrPointNotFound
	}
	delete(s.points, id)
	return nil
}

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            strings.Repeat("t", 32),
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc
}
