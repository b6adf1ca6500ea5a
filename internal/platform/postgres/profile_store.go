package postgres

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

// PostgresProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the
// ProfileStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewPostgresProfileStore(db store.DBTX, log *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: log.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// WithTx implements store.ProfileStore.WithTx
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ProfileStore.Create
// A unique violation on user_id is mapped to store.ErrProfileExists; a
// foreign key violation (owner account missing) to store.ErrInvalidEntity.
func (s *PostgresProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO profiles (id, user_id, name, bio, contact_info, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.UserID,
		profile.Name,
		profile.Bio,
		profile.ContactInfo,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("profile already exists for user",
				slog.String("user_id", profile.UserID.String()))
			return store.ErrProfileExists
		}
		if isForeignKeyViolation(err) {
			log.Warn("owner account missing during profile creation",
				slog.String("user_id", profile.UserID.String()))
			return fmt.Errorf("%w: user %s not found", store.ErrInvalidEntity, profile.UserID)
		}
		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	log.Info("profile created",
		slog.String("profile_id", profile.ID.String()),
		slog.String("user_id", profile.UserID.String()))
	return nil
}

const profileColumns = `p.id, p.user_id, p.name, p.bio, p.contact_info, p.created_at, p.updated_at, u.email`

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var profile domain.Profile
	var ownerEmail string

	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.Bio,
		&profile.ContactInfo,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&ownerEmail,
	)
	if err != nil {
		return nil, err
	}

	profile.Owner = &domain.AccountSummary{ID: profile.UserID, Email: ownerEmail}
	return &profile, nil
}

// GetByID implements store.ProfileStore.GetByID
func (s *PostgresProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`
	return s.getProfile(ctx, query, id)
}

// GetByUserID implements store.ProfileStore.GetByUserID
func (s *PostgresProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`
	return s.getProfile(ctx, query, userID)
}

func (s *PostgresProfileStore) getProfile(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := scanProfile(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.loadChildren(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// loadChildren populates the profile's education, work experience, and
// skill collections. Dated collections come back reverse-chronological by
// start date with open-ended (NULL start) entries last.
func (s *PostgresProfileStore) loadChildren(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	eduQuery := `
		SELECT id, profile_id, institution, degree, field, start_date, end_date, created_at
		FROM education_entries
		WHERE profile_id = $1
		ORDER BY start_date DESC NULLS LAST, created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, eduQuery, profile.ID)
	if err != nil {
		log.Error("failed to load education entries", slog.String("error", err.Error()))
		return err
	}
	profile.Education = []domain.Education{}
	for rows.Next() {
		var edu domain.Education
		var degree, field sql.NullString
		var start, end sql.NullTime
		if err := rows.Scan(&edu.ID, &edu.ProfileID, &edu.Institution, &degree, &field, &start, &end, &edu.CreatedAt); err != nil {
			closeRows(rows, log)
			return err
		}
		edu.Degree = degree.String
		edu.Field = field.String
		edu.StartDate = nullTimePtr(start)
		edu.EndDate = nullTimePtr(end)
		profile.Education = append(profile.Education, edu)
	}
	if err := rows.Err(); err != nil {
		closeRows(rows, log)
		return err
	}
	closeRows(rows, log)

	workQuery := `
		SELECT id, profile_id, company, position, description, start_date, end_date, created_at
		FROM work_experiences
		WHERE profile_id = $1
		ORDER BY start_date DESC NULLS LAST, created_at DESC
	`
	rows, err = s.db.QueryContext(ctx, workQuery, profile.ID)
	if err != nil {
		log.Error("failed to load work experiences", slog.String("error", err.Error()))
		return err
	}
	profile.WorkExperience = []domain.WorkExperience{}
	for rows.Next() {
		var work domain.WorkExperience
		var description sql.NullString
		var start, end sql.NullTime
		if err := rows.Scan(&work.ID, &work.ProfileID, &work.Company, &work.Position, &description, &start, &end, &work.CreatedAt); err != nil {
			closeRows(rows, log)
			return err
		}
		work.Description = description.String
		work.StartDate = nullTimePtr(start)
		work.EndDate = nullTimePtr(end)
		profile.WorkExperience = append(profile.WorkExperience, work)
	}
	if err := rows.Err(); err != nil {
		closeRows(rows, log)
		return err
	}
	closeRows(rows, log)

	skillQuery := `
		SELECT id, profile_id, name, level, created_at
		FROM skills
		WHERE profile_id = $1
		ORDER BY created_at ASC
	`
	rows, err = s.db.QueryContext(ctx, skillQuery, profile.ID)
	if err != nil {
		log.Error("failed to load skills", slog.String("error", err.Error()))
		return err
	}
	defer closeRows(rows, log)
	profile.Skills = []domain.Skill{}
	for rows.Next() {
		var skill domain.Skill
		var level sql.NullString
		if err := rows.Scan(&skill.ID, &skill.ProfileID, &skill.Name, &level, &skill.CreatedAt); err != nil {
			return err
		}
		skill.Level = level.String
		profile.Skills = append(profile.Skills, skill)
	}
	return rows.Err()
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// Update implements store.ProfileStore.Update
func (s *PostgresProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during update",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE profiles
		SET name = $1, bio = $2, contact_info = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		profile.Name,
		profile.Bio,
		profile.ContactInfo,
		time.Now().UTC(),
		profile.ID,
	)
	if err != nil {
		log.Error("failed to update profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrProfileNotFound
	}

	log.Info("profile updated", slog.String("profile_id", profile.ID.String()))
	return nil
}

// List implements store.ProfileStore.List
func (s *PostgresProfileStore) List(ctx context.Context) ([]domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list profiles", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	profiles := []domain.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			log.Error("failed to scan profile row", slog.String("error", err.Error()))
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}

// AddEducation implements store.ProfileStore.AddEducation
func (s *PostgresProfileStore) AddEducation(ctx context.Context, edu *domain.Education) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := edu.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO education_entries (id, profile_id, institution, degree, field, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		edu.ID,
		edu.ProfileID,
		edu.Institution,
		edu.Degree,
		edu.Field,
		edu.StartDate,
		edu.EndDate,
		edu.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrProfileNotFound
		}
		log.Error("failed to add education entry",
			slog.String("error", err.Error()),
			slog.String("profile_id", edu.ProfileID.String()))
		return err
	}

	log.Info("education entry added",
		slog.String("education_id", edu.ID.String()),
		slog.String("profile_id", edu.ProfileID.String()))
	return nil
}

// DeleteEducation implements store.ProfileStore.DeleteEducation
// The profile_id predicate makes "exists but owned by another profile"
// indistinguishable from "absent", which is exactly the contract.
func (s *PostgresProfileStore) DeleteEducation(ctx context.Context, profileID, eduID uuid.UUID) error {
	return s.deleteChild(ctx, "education_entries", profileID, eduID, store.ErrEducationNotFound)
}

// AddWorkExperience implements store.ProfileStore.AddWorkExperience
func (s *PostgresProfileStore) AddWorkExperience(ctx context.Context, work *domain.WorkExperience) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := work.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO work_experiences (id, profile_id, company, position, description, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		work.ID,
		work.ProfileID,
		work.Company,
		work.Position,
		work.Description,
		work.StartDate,
		work.EndDate,
		work.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrProfileNotFound
		}
		log.Error("failed to add work experience",
			slog.String("error", err.Error()),
			slog.String("profile_id", work.ProfileID.String()))
		return err
	}

	log.Info("work experience added",
		slog.String("work_experience_id", work.ID.String()),
		slog.String("profile_id", work.ProfileID.String()))
	return nil
}

// DeleteWorkExperience implements store.ProfileStore.DeleteWorkExperience
func (s *PostgresProfileStore) DeleteWorkExperience(ctx context.Context, profileID, workID uuid.UUID) error {
	return s.deleteChild(ctx, "work_experiences", profileID, workID, store.ErrWorkExperienceNotFound)
}

// AddSkill implements store.ProfileStore.AddSkill
func (s *PostgresProfileStore) AddSkill(ctx context.Context, skill *domain.Skill) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := skill.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO skills (id, profile_id, name, level, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, skill.ID, skill.ProfileID, skill.Name, skill.Level, skill.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrProfileNotFound
		}
		log.Error("failed to add skill",
			slog.String("error", err.Error()),
			slog.String("profile_id", skill.ProfileID.String()))
		return err
	}

	log.Info("skill added",
		slog.String("skill_id", skill.ID.String()),
		slog.String("profile_id", skill.ProfileID.String()))
	return nil
}

// DeleteSkill implements store.ProfileStore.DeleteSkill
func (s *PostgresProfileStore) DeleteSkill(ctx context.Context, profileID, skillID uuid.UUID) error {
	return s.deleteChild(ctx, "skills", profileID, skillID, store.ErrSkillNotFound)
}

func (s *PostgresProfileStore) deleteChild(ctx context.Context, table string, profileID, childID uuid.UUID, notFound error) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM ` + table + ` WHERE id = $1 AND profile_id = $2`

	result, err := s.db.ExecContext(ctx, query, childID, profileID)
	if err != nil {
		log.Error("failed to delete profile child",
			slog.String("error", err.Error()),
			slog.String("table", table),
			slog.String("child_id", childID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Debug("profile child not found for deletion",
			slog.String("table", table),
			slog.String("child_id", childID.String()),
			slog.String("profile_id", profileID.String()))
		return notFound
	}

	log.Info("profile child deleted",
		slog.String("table", table),
		slog.String("child_id", childID.String()),
		slog.String("profile_id", profileID.String()))
	return nil
}
