package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/foliohub/folio-api/internal/api/shared"
	"github.com/foliohub/folio-api/internal/domain"
	"github.com/foliohub/folio-api/internal/store"
)

// AdminMiddleware gates routes behind the admin role. It must run after
// Authenticate, which places the user ID in the request context.
type AdminMiddleware struct {
	userStore store.UserStore
}

// NewAdminMiddleware creates a new AdminMiddleware with the given dependencies.
func NewAdminMiddleware(userStore store.UserStore) *AdminMiddleware {
	return &AdminMiddleware{
		userStore: userStore,
	}
}

// RequireAdmin rejects requests whose authenticated account does not carry
// the admin role.
func (m *AdminMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		user, err := m.userStore.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}
			slog.Error("failed to resolve account for admin gate",
				"error", err,
				"user_id", userID)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authorization error")
			return
		}

		if user.Role != domain.RoleAdmin {
			shared.RespondWithError(w, r, http.StatusForbidden, "Admin role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
