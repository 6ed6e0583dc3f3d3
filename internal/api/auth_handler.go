package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dkoru/webgis-api/internal/api/shared"
	"github.com/dkoru/webgis-api/internal/domain"
	"github.com/dkoru/webgis-api/internal/service/auth"
	"github.com/dkoru/webgis-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
	}
}

// Register handles the /api/auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// Normalization, email-format and domain allow-list checks live in the
	// domain constructor.
	user, err := domain.NewUser(req.Username, req.Password, domain.Role(req.Role))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	hashed, err := h.passwordHasher.Hash(user.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Email already registered")
			return
		}
		slog.Error("failed to create user", "error", err, "username", user.Username)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, user.Role)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		Token: token,
		User: UserPayload{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	})
}

// Login handles the /api/auth/login endpoint.
//
// Unknown user and wrong password deliberately yield the same response so
// login cannot be used to enumerate accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userStore.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid credentials")
			return
		}
		slog.Error("failed to get user by username", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID, user.Role)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Token: token,
		User: UserPayload{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	})
}
