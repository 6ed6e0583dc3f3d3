package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Point validation errors
var (
	ErrEmptyPointID    = errors.New("point ID cannot be empty")
	ErrEmptyPointName  = errors.New("point name cannot be empty")
	ErrEmptyOwnerID    = errors.New("point owner ID cannot be empty")
	ErrInvalidLatitude = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
)

// Point is a geographic point of interest owned by exactly one account.
// Ownership is assigned at creation and never transferred.
type Point struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	UserID      uuid.UUID `json:"user_id"`
	// Username is the owner's display name, denormalized at creation time.
	// May be empty for rows written before the column existed.
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPoint creates a new Point owned by ownerID, denormalizing the owner's
// display name. Returns an error if validation fails.
func NewPoint(name, description string, lat, lng float64, ownerID uuid.UUID, ownerName string) (*Point, error) {
	now := time.Now().UTC()
	point := &Point{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Lat:         lat,
		Lng:         lng,
		UserID:      ownerID,
		Username:    ownerName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := point.Validate(); err != nil {
		return nil, err
	}

	return point, nil
}

// Validate checks if the Point has valid data.
func (p *Point) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPointID
	}

	if p.Name == "" {
		return ErrEmptyPointName
	}

	if p.UserID == uuid.Nil {
		return ErrEmptyOwnerID
	}

	if p.Lat < -90 || p.Lat > 90 {
		return ErrInvalidLatitude
	}

	if p.Lng < -180 || p.Lng > 180 {
		return ErrInvalidLongitude
	}

	return nil
}
