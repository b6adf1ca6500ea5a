package api

import (
	"log/slog"
	"net/http"

	"github.com/foliohub/folio-api/internal/api/shared"
	"github.com/foliohub/folio-api/internal/platform/logger"
	"github.com/foliohub/folio-api/internal/service"
)

// FollowHandler handles social graph HTTP requests.
type FollowHandler struct {
	followService service.FollowService
	logger        *slog.Logger
}

// NewFollowHandler creates a new FollowHandler.
func NewFollowHandler(followService service.FollowService, log *slog.Logger) *FollowHandler {
	if log == nil {
		log = slog.Default()
	}
	return &FollowHandler{
		followService: followService,
		logger:        log.With(slog.String("component", "follow_handler")),
	}
}

// Follow handles POST /api/follows/{userId}.
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	targetID, ok := requirePathUUID(w, r, "userId")
	if !ok {
		return
	}

	follow, err := h.followService.Follow(r.Context(), userID, targetID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)
	log.Debug("follow created",
		slog.String("follower_id", userID.String()),
		slog.String("target_id", targetID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, follow)
}

// Unfollow handles DELETE /api/follows/{userId}.
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	targetID, ok := requirePathUUID(w, r, "userId")
	if !ok {
		return
	}

	if err := h.followService.Unfollow(r.Context(), userID, targetID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetOwnFollowers handles GET /api/follows/followers.
func (h *FollowHandler) GetOwnFollowers(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	edges, err := h.followService.GetFollowers(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, edges)
}

// GetOwnFollowing handles GET /api/follows/following.
func (h *FollowHandler) GetOwnFollowing(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	edges, err := h.followService.GetFollowing(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, edges)
}

// GetFollowers handles GET /api/follows/{userId}/followers.
func (h *FollowHandler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	targetID, ok := requirePathUUID(w, r, "userId")
	if !ok {
		return
	}

	edges, err := h.followService.GetFollowers(r.Context(), targetID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, edges)
}

// GetFollowing handles GET /api/follows/{userId}/following.
func (h *FollowHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	targetID, ok := requirePathUUID(w, r, "userId")
	if !ok {
		return
	}

	edges, err := h.followService.GetFollowing(r.Context(), targetID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, edges)
}

// GetFollowStatus handles GET /api/follows/{userId}/status. It reports
// whether the authenticated user follows the given account.
func (h *FollowHandler) GetFollowStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	targetID, ok := requirePathUUID(w, r, "userId")
	if !ok {
		return
	}

	following, err := h.followService.IsFollowing(r.Context(), userID, targetID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FollowStatusResponse{Following: following})
}
