package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the coarse capability tier attached to an account at creation.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrInvalidUsername     = errors.New("username must be a valid email address")
	ErrDisallowedDomain    = errors.New("email domain is not allowed")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrInvalidRole         = errors.New("invalid role")
)

// allowedDomains is the fixed set of consumer email providers accepted at
// registration.
var allowedDomains = map[string]bool{
	"gmail.com":   true,
	"hotmail.com": true,
	"outlook.com": true,
	"yahoo.com":   true,
	"icloud.com":  true,
}

// User represents a registered account. The login name is an email-like
// string, stored case-normalized.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NormalizeUsername lowercases and trims a login name. Applied to every
// username before validation, storage, or lookup so case never matters.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleGuest:
		return true
	}
	return false
}

// NewUser creates a new User with the given login name, plaintext password and
// role. The username is normalized before validation. An empty role defaults
// to RoleUser. Returns an error if validation fails.
//
// NOTE: the caller is responsible for hashing the password before storage.
func NewUser(username, password string, role Role) (*User, error) {
	if role == "" {
		role = RoleUser
	}

	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  NormalizeUsername(username),
		Password:  password, // Plaintext - must be hashed before storage
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Username == "" {
		return ErrEmptyUsername
	}

	if err := validateUsername(u.Username); err != nil {
		return err
	}

	if !ValidRole(u.Role) {
		return ErrInvalidRole
	}

	if u.Password != "" {
		// bcrypt silently truncates longer inputs
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing rows loaded from the store carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// validateUsername checks that the login name looks like an email and that its
// domain is one of the allowed consumer providers.
func validateUsername(username string) error {
	at := strings.LastIndex(username, "@")
	if at <= 0 || at == len(username)-1 {
		return ErrInvalidUsername
	}

	domain := username[at+1:]
	if !allowedDomains[domain] {
		return ErrDisallowedDomain
	}

	return nil
}
