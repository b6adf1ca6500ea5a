package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/foliohub/folio-api/internal/api/shared"
	"github.com/foliohub/folio-api/internal/domain"
	"github.com/foliohub/folio-api/internal/service"
)

// Test helpers shared across the handler tests.

// newJSONRequest builds an HTTP request with a JSON-encoded body.
func newJSONRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withUserID injects an authenticated user ID into the request context the
// same way the auth middleware does.
func withUserID(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), shared.UserIDContextKey, userID))
}

// withChiParam injects a URL parameter into the chi route context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// decodeErrorResponse parses the standard error envelope from a recorder.
func decodeErrorResponse(t *testing.T, recorder *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()

	var errResp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&errResp))
	return errResp
}

// MockAccountService is a mock implementation of service.AccountService.
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.String(1), args.Error(2)
}

func (m *MockAccountService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.String(1), args.Error(2)
}

func (m *MockAccountService) ListAccounts(ctx context.Context) ([]domain.AccountSummary, error) {
	args := m.Called(ctx)
	var accounts []domain.AccountSummary
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.AccountSummary)
	}
	return accounts, args.Error(1)
}

// MockProfileService is a mock implementation of service.ProfileService.
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) CreateProfile(ctx context.Context, userID uuid.UUID, input service.ProfileInput) (*domain.Profile, error) {
	args := m.Called(ctx, userID, input)
	var profile *domain.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.Profile)
	}
	return profile, args.Error(1)
}

func (m *MockProfileService) GetProfile(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, profileID)
	var profile *domain.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.Profile)
	}
	return profile, args.Error(1)
}

func (m *MockProfileService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	var profile *domain.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.Profile)
	}
	return profile, args.Error(1)
}

func (m *MockProfileService) UpdateOwnProfile(ctx context.Context, userID uuid.UUID, input service.ProfileUpdate) (*domain.Profile, error) {
	args := m.Called(ctx, userID, input)
	var profile *domain.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.Profile)
	}
	return profile, args.Error(1)
}

func (m *MockProfileService) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	var profiles []domain.Profile
	if args.Get(0) != nil {
		profiles = args.Get(0).([]domain.Profile)
	}
	return profiles, args.Error(1)
}

func (m *MockProfileService) AddEducation(ctx context.Context, userID uuid.UUID, input service.EducationInput) (*domain.Education, error) {
	args := m.Called(ctx, userID, input)
	var edu *domain.Education
	if args.Get(0) != nil {
		edu = args.Get(0).(*domain.Education)
	}
	return edu, args.Error(1)
}

func (m *MockProfileService) RemoveEducation(ctx context.Context, userID, eduID uuid.UUID) error {
	args := m.Called(ctx, userID, eduID)
	return args.Error(0)
}

func (m *MockProfileService) AddWorkExperience(ctx context.Context, userID uuid.UUID, input service.WorkExperienceInput) (*domain.WorkExperience, error) {
	args := m.Called(ctx, userID, input)
	var work *domain.WorkExperience
	if args.Get(0) != nil {
		work = args.Get(0).(*domain.WorkExperience)
	}
	return work, args.Error(1)
}

func (m *MockProfileService) RemoveWorkExperience(ctx context.Context, userID, workID uuid.UUID) error {
	args := m.Called(ctx, userID, workID)
	return args.Error(0)
}

func (m *MockProfileService) AddSkill(ctx context.Context, userID uuid.UUID, input service.SkillInput) (*domain.Skill, error) {
	args := m.Called(ctx, userID, input)
	var skill *domain.Skill
	if args.Get(0) != nil {
		skill = args.Get(0).(*domain.Skill)
	}
	return skill, args.Error(1)
}

func (m *MockProfileService) RemoveSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	args := m.Called(ctx, userID, skillID)
	return args.Error(0)
}

// MockFollowService is a mock implementation of service.FollowService.
type MockFollowService struct {
	mock.Mock
}

func (m *MockFollowService) Follow(ctx context.Context, followerID, targetID uuid.UUID) (*domain.Follow, error) {
	args := m.Called(ctx, followerID, targetID)
	var follow *domain.Follow
	if args.Get(0) != nil {
		follow = args.Get(0).(*domain.Follow)
	}
	return follow, args.Error(1)
}

func (m *MockFollowService) Unfollow(ctx context.Context, followerID, targetID uuid.UUID) error {
	args := m.Called(ctx, followerID, targetID)
	return args.Error(0)
}

func (m *MockFollowService) GetFollowers(ctx context.Context, userID uuid.UUID) ([]domain.FollowEdge, error) {
	args := m.Called(ctx, userID)
	var edges []domain.FollowEdge
	if args.Get(0) != nil {
		edges = args.Get(0).([]domain.FollowEdge)
	}
	return edges, args.Error(1)
}

func (m *MockFollowService) GetFollowing(ctx context.Context, userID uuid.UUID) ([]domain.FollowEdge, error) {
	args := m.Called(ctx, userID)
	var edges []domain.FollowEdge
	if args.Get(0) != nil {
		edges = args.Get(0).([]domain.FollowEdge)
	}
	return edges, args.Error(1)
}

func (m *MockFollowService) IsFollowing(ctx context.Context, followerID, targetID uuid.UUID) (bool, error) {
	args := m.Called(ctx, followerID, targetID)
	return args.Bool(0), args.Error(1)
}

// MockPostService is a mock implementation of service.PostService.
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID uuid.UUID, content string) (*domain.Post, error) {
	args := m.Called(ctx, authorID, content)
	var post *domain.Post
	if args.Get(0) != nil {
		post = args.Get(0).(*domain.Post)
	}
	return post, args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, postID uuid.UUID) (*domain.PostWithAuthor, error) {
	args := m.Called(ctx, postID)
	var post *domain.PostWithAuthor
	if args.Get(0) != nil {
		post = args.Get(0).(*domain.PostWithAuthor)
	}
	return post, args.Error(1)
}

func (m *MockPostService) GetFeed(ctx context.Context, userID uuid.UUID) ([]domain.PostWithAuthor, error) {
	args := m.Called(ctx, userID)
	var posts []domain.PostWithAuthor
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.PostWithAuthor)
	}
	return posts, args.Error(1)
}

func (m *MockPostService) GetUserPosts(ctx context.Context, authorID uuid.UUID) ([]domain.PostWithAuthor, error) {
	args := m.Called(ctx, authorID)
	var posts []domain.PostWithAuthor
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.PostWithAuthor)
	}
	return posts, args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, userID, postID uuid.UUID, content string) (*domain.PostWithAuthor, error) {
	args := m.Called(ctx, userID, postID, content)
	var post *domain.PostWithAuthor
	if args.Get(0) != nil {
		post = args.Get(0).(*domain.PostWithAuthor)
	}
	return post, args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

// MockAdminService is a mock implementation of service.AdminService.
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListAllAccounts(ctx context.Context) ([]domain.AccountDetail, error) {
	args := m.Called(ctx)
	var accounts []domain.AccountDetail
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.AccountDetail)
	}
	return accounts, args.Error(1)
}

func (m *MockAdminService) SetAccountActive(ctx context.Context, userID uuid.UUID, active bool) (*domain.User, error) {
	args := m.Called(ctx, userID, active)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockAdminService) ListAllPosts(ctx context.Context) ([]domain.PostWithAuthor, error) {
	args := m.Called(ctx)
	var posts []domain.PostWithAuthor
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.PostWithAuthor)
	}
	return posts, args.Error(1)
}

func (m *MockAdminService) RemovePost(ctx context.Context, postID uuid.UUID) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportProfilePDF(ctx context.Context, profileID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, profileID)
	var pdf []byte
	if args.Get(0) != nil {
		pdf = args.Get(0).([]byte)
	}
	return pdf, args.Error(1)
}
