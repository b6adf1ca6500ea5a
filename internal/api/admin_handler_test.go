package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/foliohub/folio-api/internal/domain"
	"github.com/foliohub/folio-api/internal/store"
)

func TestAdminListUsers(t *testing.T) {
	t.Parallel()

	deletedAt := time.Now().UTC()
	accounts := []domain.AccountDetail{
		{
			AccountSummary: domain.AccountSummary{ID: uuid.New(), Email: "active@example.com"},
			Role:           domain.RoleStandard,
			IsActive:       true,
		},
		{
			AccountSummary: domain.AccountSummary{ID: uuid.New(), Email: "gone@example.com"},
			Role:           domain.RoleStandard,
			IsActive:       false,
			DeletedAt:      &deletedAt,
		},
	}

	adminService := new(MockAdminService)
	adminService.On("ListAllAccounts", mock.Anything).Return(accounts, nil)
	handler := NewAdminHandler(adminService, nil)

	req := httptest.NewRequest("GET", "/api/admin/users", nil)
	recorder := httptest.NewRecorder()

	handler.ListUsers(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var got []domain.AccountDetail
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.False(t, got[1].IsActive)
	assert.NotNil(t, got[1].DeletedAt)
}

func TestSetUserActive(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("disable", func(t *testing.T) {
		disabled := &domain.User{ID: userID, Email: "user@example.com", IsActive: false}

		adminService := new(MockAdminService)
		adminService.On("SetAccountActive", mock.Anything, userID, false).Return(disabled, nil)
		handler := NewAdminHandler(adminService, nil)

		req := httptest.NewRequest("PUT", "/api/admin/users/"+userID.String()+"/disable", nil)
		req = withChiParam(req, "id", userID.String())
		recorder := httptest.NewRecorder()

		handler.DisableUser(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		var got domain.User
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
		assert.False(t, got.IsActive)
		adminService.AssertExpectations(t)
	})

	t.Run("enable", func(t *testing.T) {
		enabled := &domain.User{ID: userID, Email: "user@example.com", IsActive: true}

		adminService := new(MockAdminService)
		adminService.On("SetAccountActive", mock.Anything, userID, true).Return(enabled, nil)
		handler := NewAdminHandler(adminService, nil)

		req := httptest.NewRequest("PUT", "/api/admin/users/"+userID.String()+"/enable", nil)
		req = withChiParam(req, "id", userID.String())
		recorder := httptest.NewRecorder()

		handler.EnableUser(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		var got domain.User
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
		assert.True(t, got.IsActive)
	})

	t.Run("unknown user", func(t *testing.T) {
		adminService := new(MockAdminService)
		adminService.On("SetAccountActive", mock.Anything, userID, false).
			Return(nil, store.ErrUserNotFound)
		handler := NewAdminHandler(adminService, nil)

		req := httptest.NewRequest("PUT", "/api/admin/users/"+userID.String()+"/disable", nil)
		req = withChiParam(req, "id", userID.String())
		recorder := httptest.NewRecorder()

		handler.DisableUser(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		adminService := new(MockAdminService)
		handler := NewAdminHandler(adminService, nil)

		req := httptest.NewRequest("PUT", "/api/admin/users/abc/disable", nil)
		req = withChiParam(req, "id", "abc")
		recorder := httptest.NewRecorder()

		handler.DisableUser(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		adminService.AssertNotCalled(t, "SetAccountActive", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAdminListPosts(t *testing.T) {
	t.Parallel()

	deletedAt := time.Now().UTC()
	posts := []domain.PostWithAuthor{
		{
			Post:   domain.Post{ID: uuid.New(), Content: "visible"},
			Author: domain.AccountSummary{ID: uuid.New(), Email: "ada@example.com"},
		},
		{
			Post:   domain.Post{ID: uuid.New(), Content: "removed", DeletedAt: &deletedAt},
			Author: domain.AccountSummary{ID: uuid.New(), Email: "alan@example.com"},
		},
	}

	adminService := new(MockAdminService)
	adminService.On("ListAllPosts", mock.Anything).Return(posts, nil)
	handler := NewAdminHandler(adminService, nil)

	req := httptest.NewRequest("GET", "/api/admin/posts", nil)
	recorder := httptest.NewRecorder()

	handler.ListPosts(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var got []domain.PostWithAuthor
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.NotNil(t, got[1].DeletedAt)
}

func TestAdminDeletePost(t *testing.T) {
	t.Parallel()

	postID := uuid.New()

	t.Run("removes post", func(t *testing.T) {
		adminService := new(MockAdminService)
		adminService.On("RemovePost", mock.Anything, postID).Return(nil)
		handler := NewAdminHandler(adminService, nil)

		req := httptest.NewRequest("DELETE", "/api/admin/posts/"+postID.String(), nil)
		req = withChiParam(req, "id", postID.String())
		recorder := httptest.NewRecorder()

		handler.DeletePost(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		adminService.AssertExpectations(t)
	})

	t.Run("unknown post", func(t *testing.T) {
		adminService := new(MockAdminService)
		adminService.On("RemovePost", mock.Anything, postID).
			Return(store.ErrPostNotFound)
		handler := NewAdminHandler(adminService, nil)

		req := httptest.NewRequest("DELETE", "/api/admin/posts/"+postID.String(), nil)
		req = withChiParam(req, "id", postID.String())
		recorder := httptest.NewRecorder()

		handler.DeletePost(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		errResp := decodeErrorResponse(t, recorder)
		assert.Equal(t, "Post not found", errResp.Error)
	})
}
