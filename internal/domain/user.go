package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role classifies an account's privilege level.
type Role string

// Supported account roles.
const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

// Common validation errors for users.
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered account.
// An account is soft-deleted by stamping DeletedAt; the row is never removed.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Password       string     `json:"-"` // Plaintext, held only between registration and hashing
	HashedPassword string     `json:"-"` // Never exposed in JSON
	Role           Role       `json:"role"`
	IsActive       bool       `json:"is_active"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewUser creates a new active standard-role User with the given email and
// plaintext password. The caller (the store layer) is responsible for
// hashing the password before persisting the user.
func NewUser(email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  password,
		Role:      RoleStandard,
		IsActive:  true,
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

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Role != RoleStandard && u.Role != RoleAdmin {
		return NewValidationError("role", "must be standard or admin", ErrValidation)
	}

	if u.Password != "" {
		if len(u.Password) < 6 {
			return ErrPasswordTooShort
		}
		// bcrypt's practical input limit
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
		return nil
	}

	// Without a plaintext password the user must already carry a hash
	// (the case for rows loaded from the database).
	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs a basic structural check: a non-edge "@"
// followed by a domain containing an interior dot.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

// ProfileSummary is the public slice of a profile attached to account
// listings and follow edges.
type ProfileSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Bio  string    `json:"bio,omitempty"`
}

// AccountSummary is the public identity of an account with its profile
// summary when one exists.
type AccountSummary struct {
	ID      uuid.UUID       `json:"id"`
	Email   string          `json:"email"`
	Profile *ProfileSummary `json:"profile,omitempty"`
}

// AccountDetail extends AccountSummary with the state fields shown on
// administrative listings.
type AccountDetail struct {
	AccountSummary
	Role      Role       `json:"role"`
	IsActive  bool       `json:"is_active"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
