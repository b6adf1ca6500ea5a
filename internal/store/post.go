package store

import (
	"context"
	"time"

	"github.com/foliohub/folio-api/internal/domain"
	"github.com/google/uuid"
)

// PostStore defines the interface for post persistence.
type PostStore interface {
	// Create saves a new post.
	Create(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a non-deleted post with its author summary.
	// Returns ErrPostNotFound if the post is absent or soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PostWithAuthor, error)

	// GetAny retrieves a post regardless of deletion state. Used by the
	// administrative surface. Returns ErrPostNotFound if absent.
	GetAny(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// ListByAuthor returns the author's non-deleted posts with author
	// summaries, newest first.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.PostWithAuthor, error)

	// ListByAuthors returns non-deleted posts authored by any of the given
	// accounts, newest first. An empty author set yields an empty slice.
	ListByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]domain.PostWithAuthor, error)

	// ListAll returns every post including soft-deleted ones, with author
	// summaries, newest first.
	ListAll(ctx context.Context) ([]domain.PostWithAuthor, error)

	// UpdateContent replaces the post's content and bumps updated_at.
	// Returns ErrPostNotFound if the post is absent or soft-deleted.
	UpdateContent(ctx context.Context, id uuid.UUID, content string) error

	// SoftDelete stamps deleted_at on the post. It does not guard against
	// re-deletion: stamping an already-deleted post succeeds and updates
	// the timestamp. Returns ErrPostNotFound if the post is absent.
	SoftDelete(ctx context.Context, id uuid.UUID, deletedAt time.Time) error
}
