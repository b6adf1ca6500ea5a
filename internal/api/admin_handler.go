package api

import (
	"log/slog"
	"net/http"

	"github.com/foliohub/folio-api/internal/api/shared"
	"github.com/foliohub/folio-api/internal/platform/logger"
	"github.com/foliohub/folio-api/internal/service"
)

// AdminHandler handles moderation HTTP requests. All routes using it
// must sit behind both the auth and admin middleware.
type AdminHandler struct {
	adminService service.AdminService
	logger       *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService service.AdminService, log *slog.Logger) *AdminHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AdminHandler{
		adminService: adminService,
		logger:       log.With(slog.String("component", "admin_handler")),
	}
}

// ListUsers handles GET /api/admin/users. Unlike the public account
// listing, the result includes disabled and soft-deleted accounts.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.adminService.ListAllAccounts(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, accounts)
}

// DisableUser handles PUT /api/admin/users/{id}/disable.
func (h *AdminHandler) DisableUser(w http.ResponseWriter, r *http.Request) {
	h.setUserActive(w, r, false)
}

// EnableUser handles PUT /api/admin/users/{id}/enable.
func (h *AdminHandler) EnableUser(w http.ResponseWriter, r *http.Request) {
	h.setUserActive(w, r, true)
}

func (h *AdminHandler) setUserActive(w http.ResponseWriter, r *http.Request, active bool) {
	userID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.adminService.SetAccountActive(r.Context(), userID, active)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)
	log.Info("account active state changed",
		slog.String("user_id", userID.String()),
		slog.Bool("active", active))
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// ListPosts handles GET /api/admin/posts. Soft-deleted posts are
// included so moderators can review removed content.
func (h *AdminHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.adminService.ListAllPosts(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list posts")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, posts)
}

// DeletePost handles DELETE /api/admin/posts/{id}.
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.adminService.RemovePost(r.Context(), postID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)
	log.Info("post removed by moderator", slog.String("post_id", postID.String()))
	w.WriteHeader(http.StatusNoContent)
}
