package store

import (
	"context"
	"database/sql"

	"github.com/foliohub/folio-api/internal/domain"
	"github.com/google/uuid"
)

// ProfileStore defines the interface for profile persistence, including
// the profile's child collections.
type ProfileStore interface {
	// Create saves a new profile. Returns ErrProfileExists if the owner
	// already has one (backed by the unique constraint on user_id).
	Create(ctx context.Context, profile *domain.Profile) error

	// GetByID retrieves a profile with its child collections and owner
	// summary. Returns ErrProfileNotFound if no row exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)

	// GetByUserID retrieves the profile owned by the given account, with
	// child collections and owner summary.
	// Returns ErrProfileNotFound if the account has no profile.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// Update persists changes to name, bio, and contact info.
	// Returns ErrProfileNotFound if no row exists.
	Update(ctx context.Context, profile *domain.Profile) error

	// List returns all profiles with owner summaries, newest first.
	// Child collections are not loaded.
	List(ctx context.Context) ([]domain.Profile, error)

	// AddEducation appends an education entry to its profile.
	AddEducation(ctx context.Context, edu *domain.Education) error

	// DeleteEducation removes an education entry scoped to the given
	// profile. Returns ErrEducationNotFound if the entry does not exist
	// or belongs to a different profile.
	DeleteEducation(ctx context.Context, profileID, eduID uuid.UUID) error

	// AddWorkExperience appends a work item to its profile.
	AddWorkExperience(ctx context.Context, work *domain.WorkExperience) error

	// DeleteWorkExperience removes a work item scoped to the given
	// profile. Returns ErrWorkExperienceNotFound if the item does not
	// exist or belongs to a different profile.
	DeleteWorkExperience(ctx context.Context, profileID, workID uuid.UUID) error

	// AddSkill appends a skill to its profile.
	AddSkill(ctx context.Context, skill *domain.Skill) error

	// DeleteSkill removes a skill scoped to the given profile.
	// Returns ErrSkillNotFound if the skill does not exist or belongs to
	// a different profile.
	DeleteSkill(ctx context.Context, profileID, skillID uuid.UUID) error

	// WithTx returns a ProfileStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ProfileStore
}
