package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoru/webgis-api/internal/api"
	"github.com/dkoru/webgis-api/internal/api/middleware"
	"github.com/dkoru/webgis-api/internal/domain"
	"github.com/dkoru/webgis-api/internal/service/auth"
	"github.com/dkoru/webgis-api/internal/service/points"
)

// pointFixture wires the point routes the way the server does: chi router,
// authentication middleware, point service over in-memory stores.
type pointFixture struct {
	router     chi.Router
	userStore  *memUserStore
	pointStore *memPointStore
	jwtService auth.JWTService
}

func newPointFixture(t *testing.T) *pointFixture {
	t.Helper()

	userStore := newMemUserStore()
	pointStore := newMemPointStore()
	jwtService := newTestJWTService(t)

	pointService := points.NewService(pointStore, userStore, nil)
	handler := api.NewPointHandler(pointService)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/api/layer/points", handler.ListPoints)
		r.Post("/api/layer/points", handler.CreatePoint)
		r.Put("/api/layer/points/{id}", handler.UpdatePoint)
		r.Delete("/api/layer/points/{id}", handler.DeletePoint)
	})

	return &pointFixture{
		router:     r,
		userStore:  userStore,
		pointStore: pointStore,
		jwtService: jwtService,
	}
}

// addUser stores an account and returns a valid bearer token for it.
func (f *pointFixture) addUser(t *testing.T, username string, role domain.Role) (uuid.UUID, string) {
	t.Helper()

	user, err := domain.NewUser(username, "password123", role)
	require.NoError(t, err)
	user.Password = ""
	user.HashedPassword = "$2a$10$fakefakefakefakefakefake"
	require.NoError(t, f.userStore.Create(context.Background(), user))

	token, err := f.jwtService.GenerateToken(context.Background(), user.ID, role)
	require.NoError(t, err)
	return user.ID, token
}

func (f *pointFixture) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *pointFixture) createPoint(t *testing.T, token, name string, lat, lng float64) api.PointPayload {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/api/layer/points", token, api.CreatePointRequest{
		Name:      name,
		Latitude:  lat,
		Longitude: lng,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var payload api.PointPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func listPoints(t *testing.T, f *pointFixture, token string) []api.PointPayload {
	t.Helper()

	rec := f.do(t, http.MethodGet, "/api/layer/points", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var payload []api.PointPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestCreateAndListPoints(t *testing.T) {
	t.Parallel()

	f := newPointFixture(t)
	aliceID, aliceToken := f.addUser(t, "alice@gmail.com", domain.RoleUser)
	_, bobToken := f.addUser(t, "bob@outlook.com", domain.RoleUser)

	created := f.createPoint(t, aliceToken, "Hagia Sophia", 41.0086, 28.9802)
	assert.Equal(t, aliceID, created.UserID)
	assert.Equal(t, "alice@gmail.com", created.Username)

	f.createPoint(t, bobToken, "Topkapi", 41.0115, 28.9834)

	alicePoints := listPoints(t, f, aliceToken)
	require.Len(t, alicePoints, 1)
	assert.Equal(t, "Hagia Sophia", alicePoints[0].Name)
}

func TestListPointsAsAdmin(t *testing.T) {
	t.Parallel()

	f := newPointFixture(t)
	_, aliceToken := f.addUser(t, "alice@gmail.com", domain.RoleUser)
	_, bobToken := f.addUser(t, "bob@outlook.com", domain.RoleUser)
	_, adminToken := f.addUser(t, "admin@yahoo.com", domain.RoleAdmin)

	f.createPoint(t, aliceToken, "A", 1, 1)
	f.createPoint(t, bobToken, "B", 2, 2)

	assert.Len(t, listPoints(t, f, adminToken), 2)
}

func TestCreatePointAsGuest(t *testing.T) {
	t.Parallel()

	f := newPointFixture(t)
	_, guestToken := f.addUser(t, "guest@icloud.com", domain.RoleGuest)

	rec := f.do(t, http.MethodPost, "/api/layer/points", guestToken, api.CreatePointRequest{
		Name: "Denied", Latitude: 1, Longitude: 1,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	// Guests can still list; they just own nothing.
	assert.Empty(t, listPoints(t, f, guestToken))
}

func TestCreatePointValidationErrors(t *testing.T) {
	t.Parallel()

	f := newPointFixture(t)
	_, token := f.addUser(t, "alice@gmail.com", domain.RoleUser)

	tests := []struct {
		name string
		req  api.CreatePointRequest
	}{
		{"missing name", api.CreatePointRequest{Latitude: 1, Longitude: 1}},
		{"latitude out of range", api.CreatePointRequest{Name: "x", Latitude: 90.5, Longitude: 1}},
		{"longitude out of range", api.CreatePointRequest{Name: "x", Latitude: 1, Longitude: -181}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/api/layer/points", token, tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestUpdatePoint(t *testing.T) {
	t.Parallel()

	f := newPointFixture(t)
	_, aliceToken := f.addUser(t, "alice@gmail.com", domain.RoleUser)
	_, bobToken := f.addUser(t, "bob@outlook.com", domain.RoleUser)

	created := f.createPoint(t, aliceToken, "Old", 10, 20)

	rec := f.do(t, http.MethodPut, "/api/layer/points/"+created.ID.String(), aliceToken,
		api.UpdatePointRequest{Name: "New", Description: "renamed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated api.PointPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "renamed", updated.Description)
	assert.Equal(t, 10.0, updated.Lat)
	assert.Equal(t, 20.0, updated.Lng)

	// Another user updating the same point gets the unified 403, as does
	// anyone targeting a point that does not exist.
	foreign := f.do(t, http.MethodPut, "/api/layer/points/"+created.ID.String(), bobToken,
		api.UpdatePointRequest{Name: "Hijacked"})
	missing := f.do(t, http.MethodPut, "/api/layer/points/"+uuid.NewString(), aliceToken,
		api.UpdatePointRequest{Name: "Ghost"})

	assert.Equal(t, http.StatusForbidden, foreign.Code)
	assert.Equal(t, http.StatusForbidden, missing.Code)
}

func TestUpdatePointInvalidID(t *testing.T) {
	t.Parallel()

	f := newPointFixture(t)
	_, token := f.addUser(t, "alice@gmail.com", domain.RoleUser)

	rec := f.do(t, http.MethodPut, "/api/layer/points/not-a-uuid", token,
		api.UpdatePointRequest{Name: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestDeletePoint(t *testing.T) {
	t.Parallel()

	f := newPointFixture(t)
	_, aliceToken := f.addUser(t, "alice@gmail.com", domain.RoleUser)
	_, bobToken := f.addUser(t, "bob@outlook.com", domain.RoleUser)

	created := f.createPoint(t, aliceToken, "Doomed", 1, 1)

	// Not the owner.
	rec := f.do(t, http.MethodDelete, "/api/layer/points/"+created.ID.String(), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodDelete, "/api/layer/points/"+created.ID.String(), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.DeleteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Deleted", resp.Msg)

	assert.Empty(t, listPoints(t, f, aliceToken))
}

func TestDeletePointAsAdminAndGuest(t *testing.T) {
	t.Parallel()

	f := newPointFixture(t)
	_, aliceToken := f.addUser(t, "alice@gmail.com", domain.RoleUser)
	_, adminToken := f.addUser(t, "admin@yahoo.com", domain.RoleAdmin)
	_, guestToken := f.addUser(t, "guest@icloud.com", domain.RoleGuest)

	created := f.createPoint(t, aliceToken, "Target", 1, 1)

	rec := f.do(t, http.MethodDelete, "/api/layer/points/"+created.ID.String(), guestToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "guests may not delete")

	rec = f.do(t, http.MethodDelete, "/api/layer/points/"+created.ID.String(), adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "admins may delete any point")

	assert.Empty(t, listPoints(t, f, aliceToken))
}

func TestPointRoutesRequireAuthentication(t *testing.T) {
	t.Parallel()

	f := newPointFixture(t)

	rec := f.do(t, http.MethodGet, "/api/layer/points", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/layer/points", "", api.CreatePointRequest{Name: "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
