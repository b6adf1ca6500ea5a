package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/foliohub/folio-api/internal/domain"
	"github.com/foliohub/folio-api/internal/platform/logger"
	"github.com/foliohub/folio-api/internal/store"
	"github.com/google/uuid"
)

// FollowService provides the social graph operations.
type FollowService interface {
	// Follow creates a follow edge from follower to target.
	// Returns domain.ErrSelfFollow for self-follows, store.ErrUserNotFound
	// if the target is absent, inactive, or soft-deleted, and
	// store.ErrFollowExists for duplicates.
	Follow(ctx context.Context, followerID, targetID uuid.UUID) (*domain.Follow, error)

	// Unfollow removes the follow edge.
	// Returns store.ErrFollowNotFound if the edge does not exist.
	Unfollow(ctx context.Context, followerID, targetID uuid.UUID) error

	// GetFollowers returns the accounts following the given user.
	// Returns store.ErrUserNotFound if the user does not exist.
	GetFollowers(ctx context.Context, userID uuid.UUID) ([]domain.FollowEdge, error)

	// GetFollowing returns the accounts the given user follows.
	// Returns store.ErrUserNotFound if the user does not exist.
	GetFollowing(ctx context.Context, userID uuid.UUID) ([]domain.FollowEdge, error)

	// IsFollowing reports whether follower follows target.
	IsFollowing(ctx context.Context, followerID, targetID uuid.UUID) (bool, error)
}

// followServiceImpl implements the FollowService interface
type followServiceImpl struct {
	followStore store.FollowStore
	userStore   store.UserStore
	logger      *slog.Logger
}

// NewFollowService creates a new FollowService.
func NewFollowService(followStore store.FollowStore, userStore store.UserStore, log *slog.Logger) (FollowService, error) {
	if followStore == nil {
		return nil, domain.NewValidationError("followStore", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &followServiceImpl{
		followStore: followStore,
		userStore:   userStore,
		logger:      log.With(slog.String("component", "follow_service")),
	}, nil
}

// Follow implements FollowService.Follow
func (s *followServiceImpl) Follow(ctx context.Context, followerID, targetID uuid.UUID) (*domain.Follow, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if followerID == targetID {
		return nil, domain.ErrSelfFollow
	}

	target, err := s.userStore.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to look up follow target",
			slog.String("error", err.Error()),
			slog.String("target_id", targetID.String()))
		return nil, fmt.Errorf("failed to follow: %w", err)
	}

	// A disabled or deleted account cannot be followed.
	if !target.IsActive || target.DeletedAt != nil {
		return nil, store.ErrUserNotFound
	}

	exists, err := s.followStore.Exists(ctx, followerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to follow: %w", err)
	}
	if exists {
		return nil, store.ErrFollowExists
	}

	follow, err := domain.NewFollow(followerID, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.followStore.Create(ctx, follow); err != nil {
		if errors.Is(err, store.ErrFollowExists) {
			return nil, store.ErrFollowExists
		}
		log.Error("failed to create follow edge",
			slog.String("error", err.Error()),
			slog.String("follower_id", followerID.String()),
			slog.String("target_id", targetID.String()))
		return nil, fmt.Errorf("failed to follow: %w", err)
	}

	return follow, nil
}

// Unfollow implements FollowService.Unfollow
func (s *followServiceImpl) Unfollow(ctx context.Context, followerID, targetID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.followStore.Delete(ctx, followerID, targetID)
	if err != nil {
		if errors.Is(err, store.ErrFollowNotFound) {
			return store.ErrFollowNotFound
		}
		log.Error("failed to delete follow edge",
			slog.String("error", err.Error()),
			slog.String("follower_id", followerID.String()),
			slog.String("target_id", targetID.String()))
		return fmt.Errorf("failed to unfollow: %w", err)
	}
	return nil
}

// GetFollowers implements FollowService.GetFollowers
func (s *followServiceImpl) GetFollowers(ctx context.Context, userID uuid.UUID) ([]domain.FollowEdge, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.followStore.ListFollowers(ctx, userID)
}

// GetFollowing implements FollowService.GetFollowing
func (s *followServiceImpl) GetFollowing(ctx context.Context, userID uuid.UUID) ([]domain.FollowEdge, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.followStore.ListFollowing(ctx, userID)
}

// IsFollowing implements FollowService.IsFollowing
func (s *followServiceImpl) IsFollowing(ctx context.Context, followerID, targetID uuid.UUID) (bool, error) {
	return s.followStore.Exists(ctx, followerID, targetID)
}

func (s *followServiceImpl) requireUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return store.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if user.DeletedAt != nil {
		return store.ErrUserNotFound
	}
	return nil
}
