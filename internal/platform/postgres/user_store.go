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
	"golang.org/x/crypto/bcrypt"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db         store.DBTX
	logger     *slog.Logger
	bcryptCost int
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. A non-positive
// bcryptCost falls back to bcrypt.DefaultCost.
func NewPostgresUserStore(db store.DBTX, log *slog.Logger, bcryptCost int) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &PostgresUserStore{
		db:         db,
		logger:     log.With(slog.String("component", "user_store")),
		bcryptCost: bcryptCost,
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:         tx,
		logger:     s.logger,
		bcryptCost: s.bcryptCost,
	}
}

// Create implements store.UserStore.Create
// It hashes the plaintext password before the write and maps a unique
// violation on the email column to store.ErrEmailExists.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if user.HashedPassword == "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
		if err != nil {
			log.Error("failed to hash password",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = string(hashed)
		user.Password = ""
	}

	query := `
		INSERT INTO users (id, email, password_hash, role, is_active, deleted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.HashedPassword,
		user.Role,
		user.IsActive,
		user.DeletedAt,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate email during user creation",
				slog.String("email", user.Email))
			return store.ErrEmailExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	log.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email))
	return nil
}

const userColumns = `id, email, password_hash, role, is_active, deleted_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var role string
	var deletedAt sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&role,
		&user.IsActive,
		&deletedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = domain.Role(role)
	if deletedAt.Valid {
		t := deletedAt.Time
		user.DeletedAt = &t
	}
	return &user, nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, err
	}

	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by email", slog.String("email", email))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email",
			slog.String("error", err.Error()),
			slog.String("email", email))
		return nil, err
	}

	return user, nil
}

// SetActive implements store.UserStore.SetActive
func (s *PostgresUserStore) SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET is_active = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + userColumns

	user, err := scanUser(s.db.QueryRowContext(ctx, query, active, time.Now().UTC(), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found for activation change",
				slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to update user active flag",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, err
	}

	log.Info("user active flag updated",
		slog.String("user_id", id.String()),
		slog.Bool("active", active))
	return user, nil
}

// ListActive implements store.UserStore.ListActive
func (s *PostgresUserStore) ListActive(ctx context.Context) ([]domain.AccountSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT u.id, u.email, p.id, p.name, p.bio
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.deleted_at IS NULL AND u.is_active
		ORDER BY u.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list active users", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	accounts := []domain.AccountSummary{}
	for rows.Next() {
		var acc domain.AccountSummary
		var profileID uuid.NullUUID
		var profileName, profileBio sql.NullString

		if err := rows.Scan(&acc.ID, &acc.Email, &profileID, &profileName, &profileBio); err != nil {
			log.Error("failed to scan account row", slog.String("error", err.Error()))
			return nil, err
		}

		if profileID.Valid {
			acc.Profile = &domain.ProfileSummary{
				ID:   profileID.UUID,
				Name: profileName.String,
				Bio:  profileBio.String,
			}
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning account rows", slog.String("error", err.Error()))
		return nil, err
	}

	return accounts, nil
}

// ListAll implements store.UserStore.ListAll
func (s *PostgresUserStore) ListAll(ctx context.Context) ([]domain.AccountDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT u.id, u.email, u.role, u.is_active, u.deleted_at, u.created_at, u.updated_at,
		       p.id, p.name
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		ORDER BY u.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list all users", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	accounts := []domain.AccountDetail{}
	for rows.Next() {
		var acc domain.AccountDetail
		var role string
		var deletedAt sql.NullTime
		var profileID uuid.NullUUID
		var profileName sql.NullString

		err := rows.Scan(
			&acc.ID,
			&acc.Email,
			&role,
			&acc.IsActive,
			&deletedAt,
			&acc.CreatedAt,
			&acc.UpdatedAt,
			&profileID,
			&profileName,
		)
		if err != nil {
			log.Error("failed to scan account detail row", slog.String("error", err.Error()))
			return nil, err
		}

		acc.Role = domain.Role(role)
		if deletedAt.Valid {
			t := deletedAt.Time
			acc.DeletedAt = &t
		}
		if profileID.Valid {
			acc.Profile = &domain.ProfileSummary{
				ID:   profileID.UUID,
				Name: profileName.String,
			}
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning account detail rows", slog.String("error", err.Error()))
		return nil, err
	}

	return accounts, nil
}

// closeRows closes a result set, logging a close failure instead of
// returning it.
func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}
