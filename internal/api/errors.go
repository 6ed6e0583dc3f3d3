package api

import (
	"errors"
	"net/http"

	"github.com/dkoru/webgis-api/internal/api/shared"
	"github.com/dkoru/webgis-api/internal/domain"
	"github.com/dkoru/webgis-api/internal/service/auth"
	"github.com/dkoru/webgis-api/internal/service/points"
	"github.com/dkoru/webgis-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors, including the deliberately ambiguous
	// "not found or not yours"
	case errors.Is(err, points.ErrPointNotOwned),
		errors.Is(err, points.ErrGuestWriteDenied):
		return http.StatusForbidden

	// Registration input errors
	case errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrDisallowedDomain),
		errors.Is(err, domain.ErrEmptyUsername),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Point input errors
	case errors.Is(err, domain.ErrEmptyPointName),
		errors.Is(err, domain.ErrInvalidLatitude),
		errors.Is(err, domain.ErrInvalidLongitude):
		return http.StatusBadRequest

	// Duplicate login name maps to 400 on this API surface
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Authorization required"

	case errors.Is(err, points.ErrPointNotOwned):
		return "Not authorized to modify this point"

	case errors.Is(err, points.ErrGuestWriteDenied):
		return "Guests cannot modify data"

	case errors.Is(err, domain.ErrInvalidUsername):
		return "Please enter a valid email address"

	case errors.Is(err, domain.ErrDisallowedDomain):
		return "Only Gmail, Outlook, Hotmail, Yahoo, and iCloud emails are allowed"

	case errors.Is(err, domain.ErrPasswordTooLong):
		return "Password is too long"

	case errors.Is(err, domain.ErrEmptyUsername),
		errors.Is(err, domain.ErrEmptyPassword):
		return "Username and password are required"

	case errors.Is(err, domain.ErrInvalidRole):
		return "Invalid role"

	case errors.Is(err, store.ErrUsernameExists):
		return "Email already registered"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid id"

	case errors.Is(err, domain.ErrEmptyPointName):
		return "Point name is required"

	case errors.Is(err, domain.ErrInvalidLatitude):
		return "Latitude must be between -90 and 90"

	case errors.Is(err, domain.ErrInvalidLongitude):
		return "Longitude must be between -180 and 180"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError translates err into a status code and sanitized message and
// writes the response. If userMessage is non-empty it overrides the derived
// message. The raw error is logged for operators, never returned to callers.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
