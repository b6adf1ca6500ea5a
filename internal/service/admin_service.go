package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foliohub/folio-api/internal/domain"
	"github.com/foliohub/folio-api/internal/platform/logger"
	"github.com/foliohub/folio-api/internal/store"
	"github.com/google/uuid"
)

// AdminService provides the moderation surface: account state management
// and post removal. Callers are expected to have passed the admin gate.
type AdminService interface {
	// ListAllAccounts returns every account including inactive and
	// soft-deleted ones, newest first.
	ListAllAccounts(ctx context.Context) ([]domain.AccountDetail, error)

	// SetAccountActive enables or disables an account and returns the
	// updated user. Repeating the current state is not an error.
	// Returns store.ErrUserNotFound if the account does not exist.
	SetAccountActive(ctx context.Context, userID uuid.UUID, active bool) (*domain.User, error)

	// ListAllPosts returns every post including soft-deleted ones, with
	// author summaries, newest first.
	ListAllPosts(ctx context.Context) ([]domain.PostWithAuthor, error)

	// RemovePost soft-deletes a post. An already-deleted post is stamped
	// again with the new deletion time.
	// Returns store.ErrPostNotFound if the post does not exist.
	RemovePost(ctx context.Context, postID uuid.UUID) error
}

// adminServiceImpl implements the AdminService interface
type adminServiceImpl struct {
	userStore store.UserStore
	postStore store.PostStore
	logger    *slog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(userStore store.UserStore, postStore store.PostStore, log *slog.Logger) (AdminService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if postStore == nil {
		return nil, domain.NewValidationError("postStore", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &adminServiceImpl{
		userStore: userStore,
		postStore: postStore,
		logger:    log.With(slog.String("component", "admin_service")),
	}, nil
}

// ListAllAccounts implements AdminService.ListAllAccounts
func (s *adminServiceImpl) ListAllAccounts(ctx context.Context) ([]domain.AccountDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	accounts, err := s.userStore.ListAll(ctx)
	if err != nil {
		log.Error("failed to list all accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// SetAccountActive implements AdminService.SetAccountActive
func (s *adminServiceImpl) SetAccountActive(ctx context.Context, userID uuid.UUID, active bool) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.SetActive(ctx, userID, active)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to update account state",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to update account state: %w", err)
	}

	log.Info("account state updated",
		slog.String("user_id", userID.String()),
		slog.Bool("active", active))
	return user, nil
}

// ListAllPosts implements AdminService.ListAllPosts
func (s *adminServiceImpl) ListAllPosts(ctx context.Context) ([]domain.PostWithAuthor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	posts, err := s.postStore.ListAll(ctx)
	if err != nil {
		log.Error("failed to list all posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// RemovePost implements AdminService.RemovePost
func (s *adminServiceImpl) RemovePost(ctx context.Context, postID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := s.postStore.GetAny(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return store.ErrPostNotFound
		}
		log.Error("failed to load post for removal",
			slog.String("error", err.Error()),
			slog.String("post_id", postID.String()))
		return fmt.Errorf("failed to load post: %w", err)
	}

	if err := s.postStore.SoftDelete(ctx, postID, time.Now().UTC()); err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return store.ErrPostNotFound
		}
		log.Error("failed to remove post",
			slog.String("error", err.Error()),
			slog.String("post_id", postID.String()))
		return fmt.Errorf("failed to remove post: %w", err)
	}

	log.Info("post removed by admin",
		slog.String("post_id", postID.String()),
		slog.String("author_id", post.AuthorID.String()))
	return nil
}
