package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Email is the authenticated account's email address
	Email string `json:"email"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`
}

// CreateProfileRequest defines the payload for profile creation.
type CreateProfileRequest struct {
	Name        string `json:"name"         validate:"required,max=200"`
	Bio         string `json:"bio"          validate:"max=2000"`
	ContactInfo string `json:"contact_info" validate:"max=500"`
}

// UpdateProfileRequest defines the payload for profile updates.
// All fields are optional; omitted fields keep their stored values.
type UpdateProfileRequest struct {
	Name        *string `json:"name"         validate:"omitempty,max=200"`
	Bio         *string `json:"bio"          validate:"omitempty,max=2000"`
	ContactInfo *string `json:"contact_info" validate:"omitempty,max=500"`
}

// AddEducationRequest defines the payload for adding an education entry.
// Dates use YYYY-MM-DD (RFC 3339 timestamps are also accepted); an absent
// end date marks the entry as ongoing.
type AddEducationRequest struct {
	Institution string `json:"institution" validate:"required,max=200"`
	Degree      string `json:"degree"      validate:"max=200"`
	Field       string `json:"field"       validate:"max=200"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// AddWorkExperienceRequest defines the payload for adding a work item.
type AddWorkExperienceRequest struct {
	Company     string `json:"company"     validate:"required,max=200"`
	Position    string `json:"position"    validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// AddSkillRequest defines the payload for adding a skill.
type AddSkillRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Level string `json:"level" validate:"max=50"`
}

// CreatePostRequest defines the payload for post creation.
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// UpdatePostRequest defines the payload for post updates.
type UpdatePostRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// FollowStatusResponse reports whether the queried follow edge exists.
type FollowStatusResponse struct {
	Following bool `json:"following"`
}

// parseDate parses an optional request date. An empty string yields nil,
// meaning the date is open-ended.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			utc := t.UTC()
			return &utc, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
}
