package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/foliohub/folio-api/internal/domain"
	"github.com/foliohub/folio-api/internal/service"
	"github.com/foliohub/folio-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPostService(t *testing.T, postStore *MockPostStore, followStore *MockFollowStore, userStore *MockUserStore) service.PostService {
	t.Helper()
	svc, err := service.NewPostService(postStore, followStore, userStore, testLogger())
	require.NoError(t, err)
	return svc
}

func TestPostService_CreatePost(t *testing.T) {
	authorID := uuid.New()

	t.Run("creates post", func(t *testing.T) {
		mockPostStore := new(MockPostStore)
		mockPostStore.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Post) bool {
			return p.AuthorID == authorID && p.Content == "hello"
		})).Return(nil)

		svc := newPostService(t, mockPostStore, new(MockFollowStore), new(MockUserStore))

		post, err := svc.CreatePost(context.Background(), authorID, "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", post.Content)
		assert.Nil(t, post.DeletedAt)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		svc := newPostService(t, new(MockPostStore), new(MockFollowStore), new(MockUserStore))

		_, err := svc.CreatePost(context.Background(), authorID, "")
		assert.ErrorIs(t, err, domain.ErrEmptyPostContent)
	})
}

func TestPostService_GetFeed(t *testing.T) {
	userID := uuid.New()

	t.Run("empty following set short-circuits", func(t *testing.T) {
		mockFollowStore := new(MockFollowStore)
		mockPostStore := new(MockPostStore)

		mockFollowStore.On("ListFollowingIDs", mock.Anything, userID).Return([]uuid.UUID{}, nil)

		svc := newPostService(t, mockPostStore, mockFollowStore, new(MockUserStore))

		feed, err := svc.GetFeed(context.Background(), userID)
		require.NoError(t, err)
		assert.Empty(t, feed)
		mockPostStore.AssertNotCalled(t, "ListByAuthors", mock.Anything, mock.Anything)
	})

	t.Run("feed unions followed authors", func(t *testing.T) {
		followedA := uuid.New()
		followedB := uuid.New()
		mockFollowStore := new(MockFollowStore)
		mockPostStore := new(MockPostStore)

		mockFollowStore.On("ListFollowingIDs", mock.Anything, userID).
			Return([]uuid.UUID{followedA, followedB}, nil)

		posts := []domain.PostWithAuthor{
			{Post: domain.Post{ID: uuid.New(), AuthorID: followedB, Content: "newer"}},
			{Post: domain.Post{ID: uuid.New(), AuthorID: followedA, Content: "older"}},
		}
		mockPostStore.On("ListByAuthors", mock.Anything, []uuid.UUID{followedA, followedB}).
			Return(posts, nil)

		svc := newPostService(t, mockPostStore, mockFollowStore, new(MockUserStore))

		feed, err := svc.GetFeed(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, posts, feed)
	})
}

func TestPostService_GetUserPosts(t *testing.T) {
	authorID := uuid.New()

	author := func() *domain.User {
		return &domain.User{
			ID: authorID, Email: "author@example.com", HashedPassword: "hash",
			Role: domain.RoleStandard, IsActive: true,
		}
	}

	t.Run("unknown author", func(t *testing.T) {
		mockUserStore := new(MockUserStore)
		mockUserStore.On("GetByID", mock.Anything, authorID).Return(nil, store.ErrUserNotFound)

		svc := newPostService(t, new(MockPostStore), new(MockFollowStore), mockUserStore)

		_, err := svc.GetUserPosts(context.Background(), authorID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("deleted author reads as missing", func(t *testing.T) {
		mockUserStore := new(MockUserStore)
		deleted := author()
		deletedAt := time.Now().Add(-time.Hour)
		deleted.DeletedAt = &deletedAt
		mockUserStore.On("GetByID", mock.Anything, authorID).Return(deleted, nil)

		svc := newPostService(t, new(MockPostStore), new(MockFollowStore), mockUserStore)

		_, err := svc.GetUserPosts(context.Background(), authorID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("inactive author's posts remain listable", func(t *testing.T) {
		mockUserStore := new(MockUserStore)
		mockPostStore := new(MockPostStore)

		inactive := author()
		inactive.IsActive = false
		mockUserStore.On("GetByID", mock.Anything, authorID).Return(inactive, nil)

		posts := []domain.PostWithAuthor{
			{Post: domain.Post{ID: uuid.New(), AuthorID: authorID, Content: "still here"}},
		}
		mockPostStore.On("ListByAuthor", mock.Anything, authorID).Return(posts, nil)

		svc := newPostService(t, mockPostStore, new(MockFollowStore), mockUserStore)

		got, err := svc.GetUserPosts(context.Background(), authorID)
		require.NoError(t, err)
		assert.Equal(t, posts, got)
	})
}

func TestPostService_UpdatePost(t *testing.T) {
	authorID := uuid.New()
	otherID := uuid.New()
	postID := uuid.New()

	existing := func() *domain.PostWithAuthor {
		return &domain.PostWithAuthor{
			Post:   domain.Post{ID: postID, AuthorID: authorID, Content: "original"},
			Author: domain.AccountSummary{ID: authorID, Email: "author@example.com"},
		}
	}

	t.Run("author updates own post", func(t *testing.T) {
		mockPostStore := new(MockPostStore)
		mockPostStore.On("GetByID", mock.Anything, postID).Return(existing(), nil).Once()
		mockPostStore.On("UpdateContent", mock.Anything, postID, "edited").Return(nil)

		updated := existing()
		updated.Content = "edited"
		mockPostStore.On("GetByID", mock.Anything, postID).Return(updated, nil).Once()

		svc := newPostService(t, mockPostStore, new(MockFollowStore), new(MockUserStore))

		got, err := svc.UpdatePost(context.Background(), authorID, postID, "edited")
		require.NoError(t, err)
		assert.Equal(t, "edited", got.Content)
	})

	t.Run("non-author is rejected", func(t *testing.T) {
		mockPostStore := new(MockPostStore)
		mockPostStore.On("GetByID", mock.Anything, postID).Return(existing(), nil)

		svc := newPostService(t, mockPostStore, new(MockFollowStore), new(MockUserStore))

		_, err := svc.UpdatePost(context.Background(), otherID, postID, "edited")
		assert.ErrorIs(t, err, service.ErrPostNotOwned)
		mockPostStore.AssertNotCalled(t, "UpdateContent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deleted post reads as missing", func(t *testing.T) {
		mockPostStore := new(MockPostStore)
		mockPostStore.On("GetByID", mock.Anything, postID).Return(nil, store.ErrPostNotFound)

		svc := newPostService(t, mockPostStore, new(MockFollowStore), new(MockUserStore))

		_, err := svc.UpdatePost(context.Background(), authorID, postID, "edited")
		assert.ErrorIs(t, err, store.ErrPostNotFound)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	authorID := uuid.New()
	otherID := uuid.New()
	postID := uuid.New()

	existing := func() *domain.PostWithAuthor {
		return &domain.PostWithAuthor{
			Post:   domain.Post{ID: postID, AuthorID: authorID, Content: "original"},
			Author: domain.AccountSummary{ID: authorID, Email: "author@example.com"},
		}
	}

	t.Run("author deletes own post", func(t *testing.T) {
		mockPostStore := new(MockPostStore)
		mockPostStore.On("GetByID", mock.Anything, postID).Return(existing(), nil)
		mockPostStore.On("SoftDelete", mock.Anything, postID, mock.AnythingOfType("time.Time")).Return(nil)

		svc := newPostService(t, mockPostStore, new(MockFollowStore), new(MockUserStore))

		err := svc.DeletePost(context.Background(), authorID, postID)
		require.NoError(t, err)
		mockPostStore.AssertExpectations(t)
	})

	t.Run("non-author is rejected", func(t *testing.T) {
		mockPostStore := new(MockPostStore)
		mockPostStore.On("GetByID", mock.Anything, postID).Return(existing(), nil)

		svc := newPostService(t, mockPostStore, new(MockFollowStore), new(MockUserStore))

		err := svc.DeletePost(context.Background(), otherID, postID)
		assert.ErrorIs(t, err, service.ErrPostNotOwned)
		mockPostStore.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delete then fetch yields not found", func(t *testing.T) {
		mockPostStore := new(MockPostStore)
		mockPostStore.On("GetByID", mock.Anything, postID).Return(existing(), nil).Once()
		mockPostStore.On("SoftDelete", mock.Anything, postID, mock.AnythingOfType("time.Time")).Return(nil)
		mockPostStore.On("GetByID", mock.Anything, postID).Return(nil, store.ErrPostNotFound).Once()

		svc := newPostService(t, mockPostStore, new(MockFollowStore), new(MockUserStore))

		require.NoError(t, svc.DeletePost(context.Background(), authorID, postID))

		_, err := svc.GetPost(context.Background(), postID)
		assert.ErrorIs(t, err, store.ErrPostNotFound)
	})
}
