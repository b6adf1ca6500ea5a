package store

import (
	"context"
	"database/sql"

	"github.com/foliohub/folio-api/internal/domain"
	"github.com/google/uuid"
)

// UserStore defines the interface for account persistence.
type UserStore interface {
	// Create saves a new user to the store, hashing the plaintext
	// password internally before the write.
	// Returns ErrEmailExists if the email is already taken, whether the
	// existing account is active or not.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID, including inactive and
	// soft-deleted accounts. Returns ErrUserNotFound if no row exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email, including inactive and
	// soft-deleted accounts. Returns ErrUserNotFound if no row exists.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// SetActive flips the account's active flag and returns the updated
	// user. Returns ErrUserNotFound if no row exists. Setting the flag to
	// its current value is not an error.
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.User, error)

	// ListActive returns active, non-deleted accounts with their profile
	// summary when one exists, newest first.
	ListActive(ctx context.Context) ([]domain.AccountSummary, error)

	// ListAll returns every account including inactive and soft-deleted
	// ones, with profile name when present, newest first.
	ListAll(ctx context.Context) ([]domain.AccountDetail, error)

	// WithTx returns a UserStore bound to the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
