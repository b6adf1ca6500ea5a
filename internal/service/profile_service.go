package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foliohub/folio-api/internal/domain"
	"github.com/foliohub/folio-api/internal/platform/logger"
	"github.com/foliohub/folio-api/internal/store"
	"github.com/google/uuid"
)

// ProfileInput carries the fields for a new profile.
type ProfileInput struct {
	Name        string
	Bio         string
	ContactInfo string
}

// ProfileUpdate carries a partial profile update. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	Name        *string
	Bio         *string
	ContactInfo *string
}

// EducationInput carries the fields for a new education entry.
type EducationInput struct {
	Institution string
	Degree      string
	Field       string
	StartDate   *time.Time
	EndDate     *time.Time
}

// WorkExperienceInput carries the fields for a new work item.
type WorkExperienceInput struct {
	Company     string
	Position    string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

// SkillInput carries the fields for a new skill.
type SkillInput struct {
	Name  string
	Level string
}

// ProfileService provides profile management for the authenticated owner
// plus public profile reads.
type ProfileService interface {
	// CreateProfile creates the caller's profile.
	// Returns store.ErrProfileExists if the caller already has one.
	CreateProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*domain.Profile, error)

	// GetProfile retrieves any profile by ID with its child collections.
	GetProfile(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error)

	// GetOwnProfile retrieves the caller's profile.
	// Returns store.ErrProfileNotFound if the caller has none.
	GetOwnProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// UpdateOwnProfile applies a partial update to the caller's profile and
	// returns the refreshed profile. Nil input fields keep their stored
	// values.
	UpdateOwnProfile(ctx context.Context, userID uuid.UUID, input ProfileUpdate) (*domain.Profile, error)

	// ListProfiles returns all profiles with owner summaries, newest first.
	ListProfiles(ctx context.Context) ([]domain.Profile, error)

	// AddEducation appends an education entry to the caller's profile.
	AddEducation(ctx context.Context, userID uuid.UUID, input EducationInput) (*domain.Education, error)

	// RemoveEducation removes an education entry from the caller's profile.
	// A missing profile, a missing entry, and an entry owned by another
	// profile all yield store.ErrEducationNotFound-compatible not-found
	// errors.
	RemoveEducation(ctx context.Context, userID, eduID uuid.UUID) error

	// AddWorkExperience appends a work item to the caller's profile.
	AddWorkExperience(ctx context.Context, userID uuid.UUID, input WorkExperienceInput) (*domain.WorkExperience, error)

	// RemoveWorkExperience removes a work item from the caller's profile.
	RemoveWorkExperience(ctx context.Context, userID, workID uuid.UUID) error

	// AddSkill appends a skill to the caller's profile.
	AddSkill(ctx context.Context, userID uuid.UUID, input SkillInput) (*domain.Skill, error)

	// RemoveSkill removes a skill from the caller's profile.
	RemoveSkill(ctx context.Context, userID, skillID uuid.UUID) error
}

// profileServiceImpl implements the ProfileService interface
type profileServiceImpl struct {
	profileStore store.ProfileStore
	db           *sql.DB
	logger       *slog.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileStore store.ProfileStore, db *sql.DB, log *slog.Logger) (ProfileService, error) {
	if profileStore == nil {
		return nil, domain.NewValidationError("profileStore", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &profileServiceImpl{
		profileStore: profileStore,
		db:           db,
		logger:       log.With(slog.String("component", "profile_service")),
	}, nil
}

// CreateProfile implements ProfileService.CreateProfile
// The existence check and insert run in one transaction; the unique
// constraint on user_id closes the race between them.
func (s *profileServiceImpl) CreateProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := domain.NewProfile(userID, input.Name, input.Bio, input.ContactInfo)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.profileStore.WithTx(tx)

		_, err := txStore.GetByUserID(ctx, userID)
		if err == nil {
			return store.ErrProfileExists
		}
		if !errors.Is(err, store.ErrProfileNotFound) {
			return err
		}

		return txStore.Create(ctx, profile)
	})
	if err != nil {
		if errors.Is(err, store.ErrProfileExists) {
			log.Debug("profile creation attempted by existing owner",
				slog.String("user_id", userID.String()))
			return nil, store.ErrProfileExists
		}
		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// GetProfile implements ProfileService.GetProfile
func (s *profileServiceImpl) GetProfile(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := s.profileStore.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profileID.String()))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// GetOwnProfile implements ProfileService.GetOwnProfile
func (s *profileServiceImpl) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get own profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// UpdateOwnProfile implements ProfileService.UpdateOwnProfile
func (s *profileServiceImpl) UpdateOwnProfile(ctx context.Context, userID uuid.UUID, input ProfileUpdate) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, store.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile for update: %w", err)
	}

	if input.Name != nil && *input.Name != "" {
		profile.Name = *input.Name
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.ContactInfo != nil {
		profile.ContactInfo = *input.ContactInfo
	}

	if err := s.profileStore.Update(ctx, profile); err != nil {
		log.Error("failed to update profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.profileStore.GetByID(ctx, profile.ID)
}

// ListProfiles implements ProfileService.ListProfiles
func (s *profileServiceImpl) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profiles, err := s.profileStore.List(ctx)
	if err != nil {
		log.Error("failed to list profiles", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// ownProfile resolves the caller's profile for child mutations.
func (s *profileServiceImpl) ownProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, store.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to resolve profile: %w", err)
	}
	return profile, nil
}

// AddEducation implements ProfileService.AddEducation
func (s *profileServiceImpl) AddEducation(ctx context.Context, userID uuid.UUID, input EducationInput) (*domain.Education, error) {
	profile, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu, err := domain.NewEducation(profile.ID, input.Institution, input.Degree, input.Field, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	if err := s.profileStore.AddEducation(ctx, edu); err != nil {
		return nil, fmt.Errorf("failed to add education entry: %w", err)
	}
	return edu, nil
}

// RemoveEducation implements ProfileService.RemoveEducation
func (s *profileServiceImpl) RemoveEducation(ctx context.Context, userID, eduID uuid.UUID) error {
	profile, err := s.ownProfile(ctx, userID)
	if err != nil {
		return err
	}
	return s.profileStore.DeleteEducation(ctx, profile.ID, eduID)
}

// AddWorkExperience implements ProfileService.AddWorkExperience
func (s *profileServiceImpl) AddWorkExperience(ctx context.Context, userID uuid.UUID, input WorkExperienceInput) (*domain.WorkExperience, error) {
	profile, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	work, err := domain.NewWorkExperience(profile.ID, input.Company, input.Position, input.Description, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	if err := s.profileStore.AddWorkExperience(ctx, work); err != nil {
		return nil, fmt.Errorf("failed to add work experience: %w", err)
	}
	return work, nil
}

// RemoveWorkExperience implements ProfileService.RemoveWorkExperience
func (s *profileServiceImpl) RemoveWorkExperience(ctx context.Context, userID, workID uuid.UUID) error {
	profile, err := s.ownProfile(ctx, userID)
	if err != nil {
		return err
	}
	return s.profileStore.DeleteWorkExperience(ctx, profile.ID, workID)
}

// AddSkill implements ProfileService.AddSkill
func (s *profileServiceImpl) AddSkill(ctx context.Context, userID uuid.UUID, input SkillInput) (*domain.Skill, error) {
	profile, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	skill, err := domain.NewSkill(profile.ID, input.Name, input.Level)
	if err != nil {
		return nil, err
	}

	if err := s.profileStore.AddSkill(ctx, skill); err != nil {
		return nil, fmt.Errorf("failed to add skill: %w", err)
	}
	return skill, nil
}

// RemoveSkill implements ProfileService.RemoveSkill
func (s *profileServiceImpl) RemoveSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	profile, err := s.ownProfile(ctx, userID)
	if err != nil {
		return err
	}
	return s.profileStore.DeleteSkill(ctx, profile.ID, skillID)
}
