package api

import (
	"github.com/google/uuid"

	"github.com/dkoru/webgis-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
// The username field carries an email-like login name; format and domain
// validation happen in the domain layer.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
	// Role is optional and defaults to "user".
	Role string `json:"role,omitempty" validate:"omitempty,oneof=user admin guest"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserPayload is the public view of an account.
type UserPayload struct {
	ID       uuid.UUID   `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

// CreatePointRequest defines the payload for point creation.
type CreatePointRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// UpdatePointRequest defines the payload for point updates. Only name and
// description are mutable; coordinates and ownership are fixed at creation.
type UpdatePointRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// PointPayload is the wire representation of a point record.
type PointPayload struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username,omitempty"`
}

// NewPointPayload converts a domain point to its wire representation.
func NewPointPayload(p *domain.Point) PointPayload {
	return PointPayload{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Lat:         p.Lat,
		Lng:         p.Lng,
		UserID:      p.UserID,
		Username:    p.Username,
	}
}

// DeleteResponse confirms a successful deletion.
type DeleteResponse struct {
	Msg string `json:"msg"`
}
