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

// PostService provides post authoring and the follow-driven feed.
type PostService interface {
	// CreatePost creates a post authored by the caller.
	CreatePost(ctx context.Context, authorID uuid.UUID, content string) (*domain.Post, error)

	// GetPost retrieves a non-deleted post with its author summary.
	// Returns store.ErrPostNotFound if absent or soft-deleted.
	GetPost(ctx context.Context, postID uuid.UUID) (*domain.PostWithAuthor, error)

	// GetFeed returns non-deleted posts authored by accounts the caller
	// follows, newest first. An empty following set yields an empty feed.
	GetFeed(ctx context.Context, userID uuid.UUID) ([]domain.PostWithAuthor, error)

	// GetUserPosts returns the author's non-deleted posts, newest first.
	// Returns store.ErrUserNotFound if the author is absent or
	// soft-deleted; an inactive author's posts remain listable.
	GetUserPosts(ctx context.Context, authorID uuid.UUID) ([]domain.PostWithAuthor, error)

	// UpdatePost replaces the content of the caller's own post.
	// Returns store.ErrPostNotFound if absent or soft-deleted, and
	// ErrPostNotOwned if the caller is not the author.
	UpdatePost(ctx context.Context, userID, postID uuid.UUID, content string) (*domain.PostWithAuthor, error)

	// DeletePost soft-deletes the caller's own post.
	// Same error contract as UpdatePost.
	DeletePost(ctx context.Context, userID, postID uuid.UUID) error
}

// postServiceImpl implements the PostService interface
type postServiceImpl struct {
	postStore   store.PostStore
	followStore store.FollowStore
	userStore   store.UserStore
	logger      *slog.Logger
}

// NewPostService creates a new PostService.
func NewPostService(
	postStore store.PostStore,
	followStore store.FollowStore,
	userStore store.UserStore,
	log *slog.Logger,
) (PostService, error) {
	if postStore == nil {
		return nil, domain.NewValidationError("postStore", "cannot be nil", domain.ErrValidation)
	}
	if followStore == nil {
		return nil, domain.NewValidationError("followStore", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &postServiceImpl{
		postStore:   postStore,
		followStore: followStore,
		userStore:   userStore,
		logger:      log.With(slog.String("component", "post_service")),
	}, nil
}

// CreatePost implements PostService.CreatePost
func (s *postServiceImpl) CreatePost(ctx context.Context, authorID uuid.UUID, content string) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := domain.NewPost(authorID, content)
	if err != nil {
		return nil, err
	}

	if err := s.postStore.Create(ctx, post); err != nil {
		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.String("author_id", authorID.String()))
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// GetPost implements PostService.GetPost
func (s *postServiceImpl) GetPost(ctx context.Context, postID uuid.UUID) (*domain.PostWithAuthor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post",
			slog.String("error", err.Error()),
			slog.String("post_id", postID.String()))
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// GetFeed implements PostService.GetFeed
func (s *postServiceImpl) GetFeed(ctx context.Context, userID uuid.UUID) ([]domain.PostWithAuthor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	followingIDs, err := s.followStore.ListFollowingIDs(ctx, userID)
	if err != nil {
		log.Error("failed to resolve following set for feed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to build feed: %w", err)
	}

	if len(followingIDs) == 0 {
		return []domain.PostWithAuthor{}, nil
	}

	posts, err := s.postStore.ListByAuthors(ctx, followingIDs)
	if err != nil {
		log.Error("failed to list feed posts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to build feed: %w", err)
	}
	return posts, nil
}

// GetUserPosts implements PostService.GetUserPosts
func (s *postServiceImpl) GetUserPosts(ctx context.Context, authorID uuid.UUID) ([]domain.PostWithAuthor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	author, err := s.userStore.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up author: %w", err)
	}
	if author.DeletedAt != nil {
		return nil, store.ErrUserNotFound
	}

	posts, err := s.postStore.ListByAuthor(ctx, authorID)
	if err != nil {
		log.Error("failed to list author posts",
			slog.String("error", err.Error()),
			slog.String("author_id", authorID.String()))
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// UpdatePost implements PostService.UpdatePost
func (s *postServiceImpl) UpdatePost(ctx context.Context, userID, postID uuid.UUID, content string) (*domain.PostWithAuthor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return nil, store.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post for update: %w", err)
	}

	if post.AuthorID != userID {
		log.Debug("post update rejected: not the author",
			slog.String("post_id", postID.String()),
			slog.String("user_id", userID.String()))
		return nil, ErrPostNotOwned
	}

	if err := s.postStore.UpdateContent(ctx, postID, content); err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to update post",
			slog.String("error", err.Error()),
			slog.String("post_id", postID.String()))
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return s.postStore.GetByID(ctx, postID)
}

// DeletePost implements PostService.DeletePost
func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return store.ErrPostNotFound
		}
		return fmt.Errorf("failed to load post for deletion: %w", err)
	}

	if post.AuthorID != userID {
		log.Debug("post deletion rejected: not the author",
			slog.String("post_id", postID.String()),
			slog.String("user_id", userID.String()))
		return ErrPostNotOwned
	}

	if err := s.postStore.SoftDelete(ctx, postID, time.Now().UTC()); err != nil {
		log.Error("failed to delete post",
			slog.String("error", err.Error()),
			slog.String("post_id", postID.String()))
		return fmt.Errorf("failed to delete post: %w", err)
	}

	log.Info("post deleted",
		slog.String("post_id", postID.String()),
		slog.String("author_id", userID.String()))
	return nil
}
