package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/foliohub/folio-api/internal/domain"
	"github.com/foliohub/folio-api/internal/platform/logger"
	"github.com/foliohub/folio-api/internal/service/auth"
	"github.com/foliohub/folio-api/internal/store"
)

// AccountService provides registration, login, and account listing.
type AccountService interface {
	// Register creates a new active standard-role account and returns it
	// together with a signed access token.
	// Returns store.ErrEmailExists if the email is already taken.
	Register(ctx context.Context, email, password string) (*domain.User, string, error)

	// Login authenticates the given credentials and returns the account
	// with a signed access token. Account state is checked before the
	// password: unknown email yields ErrInvalidCredentials, a disabled
	// account ErrAccountDisabled, a soft-deleted account ErrAccountDeleted,
	// and only then a wrong password ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)

	// ListAccounts returns active, non-deleted accounts with their profile
	// summaries, newest first.
	ListAccounts(ctx context.Context) ([]domain.AccountSummary, error)
}

// accountServiceImpl implements the AccountService interface
type accountServiceImpl struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	verifier   auth.PasswordVerifier
	db         *sql.DB
	logger     *slog.Logger
}

// NewAccountService creates a new AccountService.
// It returns an error if any of the required dependencies are nil.
func NewAccountService(
	userStore store.UserStore,
	jwtService auth.JWTService,
	verifier auth.PasswordVerifier,
	db *sql.DB,
	log *slog.Logger,
) (AccountService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if jwtService == nil {
		return nil, domain.NewValidationError("jwtService", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &accountServiceImpl{
		userStore:  userStore,
		jwtService: jwtService,
		verifier:   verifier,
		db:         db,
		logger:     log.With(slog.String("component", "account_service")),
	}, nil
}

// Register implements AccountService.Register
func (s *accountServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password)
	if err != nil {
		log.Debug("registration rejected by validation",
			slog.String("error", err.Error()))
		return nil, "", err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration attempted with existing email",
				slog.String("email", user.Email))
			return nil, "", store.ErrEmailExists
		}
		log.Error("failed to save new account",
			slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to register account: %w", err)
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("account registered",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email))
	return user, token, nil
}

// Login implements AccountService.Login
// Account state checks run strictly before the password comparison so a
// disabled or deleted account never exercises bcrypt.
func (s *accountServiceImpl) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login with unknown email")
			return nil, "", ErrInvalidCredentials
		}
		log.Error("failed to look up account for login",
			slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to authenticate: %w", err)
	}

	if !user.IsActive {
		log.Debug("login against disabled account",
			slog.String("user_id", user.ID.String()))
		return nil, "", ErrAccountDisabled
	}
	if user.DeletedAt != nil {
		log.Debug("login against deleted account",
			slog.String("user_id", user.ID.String()))
		return nil, "", ErrAccountDeleted
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with wrong password",
			slog.String("user_id", user.ID.String()))
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("account logged in", slog.String("user_id", user.ID.String()))
	return user, token, nil
}

// ListAccounts implements AccountService.ListAccounts
func (s *accountServiceImpl) ListAccounts(ctx context.Context) ([]domain.AccountSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	accounts, err := s.userStore.ListActive(ctx)
	if err != nil {
		log.Error("failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
