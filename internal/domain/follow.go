package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrSelfFollow is returned when an account attempts to follow itself.
var ErrSelfFollow = errors.New("cannot follow yourself")

// Follow is a directed edge meaning "follower sees the followed account's
// posts in their feed". The pair is unique; there are no self-loops.
type Follow struct {
	FollowerID  uuid.UUID `json:"follower_id"`
	FollowingID uuid.UUID `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewFollow creates a follow edge from follower to target.
func NewFollow(followerID, followingID uuid.UUID) (*Follow, error) {
	follow := &Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := follow.Validate(); err != nil {
		return nil, err
	}

	return follow, nil
}

// Validate checks if the Follow edge has valid data.
func (f *Follow) Validate() error {
	if f.FollowerID == uuid.Nil || f.FollowingID == uuid.Nil {
		return ErrEmptyUserID
	}
	if f.FollowerID == f.FollowingID {
		return ErrSelfFollow
	}
	return nil
}

// FollowEdge pairs a follow row with the counterpart account's public
// summary. For a follower listing the counterpart is the follower; for a
// following listing it is the followed account.
type FollowEdge struct {
	Follow
	Account AccountSummary `json:"account"`
}
