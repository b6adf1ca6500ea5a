package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for posts.
var (
	ErrEmptyPostID      = errors.New("post ID cannot be empty")
	ErrEmptyPostContent = errors.New("post content cannot be empty")
	ErrPostContentTooLong = errors.New("post content exceeds maximum length")
)

// MaxPostContentLength bounds the size of a single post.
const MaxPostContentLength = 5000

// Post is a short text update authored by an account. Deletion is soft:
// DeletedAt is stamped and the content retained.
type Post struct {
	ID        uuid.UUID  `json:"id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewPost creates a post authored by the given account.
func NewPost(authorID uuid.UUID, content string) (*Post, error) {
	now := time.Now().UTC()
	post := &Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid data.
func (p *Post) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPostID
	}
	if p.AuthorID == uuid.Nil {
		return ErrEmptyUserID
	}
	if p.Content == "" {
		return ErrEmptyPostContent
	}
	if len(p.Content) > MaxPostContentLength {
		return ErrPostContentTooLong
	}
	return nil
}

// IsDeleted reports whether the post has been soft-deleted.
func (p *Post) IsDeleted() bool {
	return p.DeletedAt != nil
}

// PostWithAuthor pairs a post with its author's public summary for read
// paths.
type PostWithAuthor struct {
	Post
	Author AccountSummary `json:"author"`
}
