package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for profiles and their child entries.
var (
	ErrEmptyProfileID   = errors.New("profile ID cannot be empty")
	ErrEmptyProfileName = errors.New("profile name cannot be empty")
	ErrEmptyInstitution = errors.New("institution cannot be empty")
	ErrEmptyCompany     = errors.New("company cannot be empty")
	ErrEmptyPosition    = errors.New("position cannot be empty")
	ErrEmptySkillName   = errors.New("skill name cannot be empty")
)

// Profile is the resume content owned by exactly one account.
// Child collections are loaded by the store when the profile is fetched
// individually; listings leave them empty.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio,omitempty"`
	ContactInfo string    `json:"contact_info,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Education      []Education      `json:"education"`
	WorkExperience []WorkExperience `json:"work_experience"`
	Skills         []Skill          `json:"skills"`

	// Owner carries the owning account's public identity on reads.
	Owner *AccountSummary `json:"owner,omitempty"`
}

// NewProfile creates a profile for the given owner with empty child
// collections.
func NewProfile(userID uuid.UUID, name, bio, contactInfo string) (*Profile, error) {
	now := time.Now().UTC()
	profile := &Profile{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           name,
		Bio:            bio,
		ContactInfo:    contactInfo,
		CreatedAt:      now,
		UpdatedAt:      now,
		Education:      []Education{},
		WorkExperience: []WorkExperience{},
		Skills:         []Skill{},
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the Profile has valid data.
func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProfileID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if p.Name == "" {
		return ErrEmptyProfileName
	}
	return nil
}

// Education is a single education entry on a profile.
// A nil EndDate means the entry is ongoing and renders as "Present".
type Education struct {
	ID          uuid.UUID  `json:"id"`
	ProfileID   uuid.UUID  `json:"profile_id"`
	Institution string     `json:"institution"`
	Degree      string     `json:"degree,omitempty"`
	Field       string     `json:"field,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewEducation creates an education entry owned by the given profile.
func NewEducation(profileID uuid.UUID, institution, degree, field string, start, end *time.Time) (*Education, error) {
	edu := &Education{
		ID:          uuid.New(),
		ProfileID:   profileID,
		Institution: institution,
		Degree:      degree,
		Field:       field,
		StartDate:   start,
		EndDate:     end,
		CreatedAt:   time.Now().UTC(),
	}

	if err := edu.Validate(); err != nil {
		return nil, err
	}

	return edu, nil
}

// Validate checks if the Education entry has valid data.
func (e *Education) Validate() error {
	if e.ProfileID == uuid.Nil {
		return ErrEmptyProfileID
	}
	if e.Institution == "" {
		return ErrEmptyInstitution
	}
	return nil
}

// WorkExperience is a single work item on a profile.
// A nil EndDate means the position is current and renders as "Present".
type WorkExperience struct {
	ID          uuid.UUID  `json:"id"`
	ProfileID   uuid.UUID  `json:"profile_id"`
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewWorkExperience creates a work item owned by the given profile.
func NewWorkExperience(profileID uuid.UUID, company, position, description string, start, end *time.Time) (*WorkExperience, error) {
	work := &WorkExperience{
		ID:          uuid.New(),
		ProfileID:   profileID,
		Company:     company,
		Position:    position,
		Description: description,
		StartDate:   start,
		EndDate:     end,
		CreatedAt:   time.Now().UTC(),
	}

	if err := work.Validate(); err != nil {
		return nil, err
	}

	return work, nil
}

// Validate checks if the WorkExperience item has valid data.
func (w *WorkExperience) Validate() error {
	if w.ProfileID == uuid.Nil {
		return ErrEmptyProfileID
	}
	if w.Company == "" {
		return ErrEmptyCompany
	}
	if w.Position == "" {
		return ErrEmptyPosition
	}
	return nil
}

// Skill is a single named skill on a profile, with an optional level.
type Skill struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"profile_id"`
	Name      string    `json:"name"`
	Level     string    `json:"level,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSkill creates a skill owned by the given profile.
func NewSkill(profileID uuid.UUID, name, level string) (*Skill, error) {
	skill := &Skill{
		ID:        uuid.New(),
		ProfileID: profileID,
		Name:      name,
		Level:     level,
		CreatedAt: time.Now().UTC(),
	}

	if err := skill.Validate(); err != nil {
		return nil, err
	}

	return skill, nil
}

// Validate checks if the Skill has valid data.
func (s *Skill) Validate() error {
	if s.ProfileID == uuid.Nil {
		return ErrEmptyProfileID
	}
	if s.Name == "" {
		return ErrEmptySkillName
	}
	return nil
}
