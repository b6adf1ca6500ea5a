package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/foliohub/folio-api/internal/api/shared"
	"github.com/foliohub/folio-api/internal/platform/logger"
	"github.com/foliohub/folio-api/internal/service"
)

// PostHandler handles post and feed HTTP requests.
type PostHandler struct {
	postService service.PostService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService service.PostService, log *slog.Logger) *PostHandler {
	if log == nil {
		log = slog.Default()
	}
	return &PostHandler{
		postService: postService,
		validator:   validator.New(),
		logger:      log.With(slog.String("component", "post_handler")),
	}
}

// CreatePost handles POST /api/posts.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	post, err := h.postService.CreatePost(r.Context(), userID, req.Content)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)
	log.Debug("post created",
		slog.String("post_id", post.ID.String()),
		slog.String("author_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, post)
}

// GetPost handles GET /api/posts/{id}.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.postService.GetPost(r.Context(), postID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, post)
}

// GetFeed handles GET /api/posts/feed.
func (h *PostHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	feed, err := h.postService.GetFeed(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build feed")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, feed)
}

// GetUserPosts handles GET /api/posts/user/{userId}.
func (h *PostHandler) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	authorID, ok := requirePathUUID(w, r, "userId")
	if !ok {
		return
	}

	posts, err := h.postService.GetUserPosts(r.Context(), authorID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, posts)
}

// UpdatePost handles PUT /api/posts/{id}.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	postID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	post, err := h.postService.UpdatePost(r.Context(), userID, postID, req.Content)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, post)
}

// DeletePost handles DELETE /api/posts/{id}.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	postID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.postService.DeletePost(r.Context(), userID, postID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
