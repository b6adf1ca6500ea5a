package store

import (
	"context"

	"github.com/foliohub/folio-api/internal/domain"
	"github.com/google/uuid"
)

// FollowStore defines the interface for follow-edge persistence.
type FollowStore interface {
	// Create saves a new follow edge. Returns ErrFollowExists if the pair
	// already exists (backed by the unique constraint on the pair).
	Create(ctx context.Context, follow *domain.Follow) error

	// Delete removes the follow edge. Returns ErrFollowNotFound if the
	// edge does not exist.
	Delete(ctx context.Context, followerID, followingID uuid.UUID) error

	// Exists reports whether the follow edge exists.
	Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)

	// ListFollowers returns the edges pointing at the given account, each
	// with the follower's public summary attached.
	ListFollowers(ctx context.Context, userID uuid.UUID) ([]domain.FollowEdge, error)

	// ListFollowing returns the edges originating from the given account,
	// each with the followed account's public summary attached.
	ListFollowing(ctx context.Context, userID uuid.UUID) ([]domain.FollowEdge, error)

	// ListFollowingIDs returns just the IDs of accounts the given account
	// follows, for feed assembly.
	ListFollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
