package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/foliohub/folio-api/internal/api"
	apiMiddleware "github.com/foliohub/folio-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.accountService)
	userHandler := api.NewUserHandler(app.accountService, app.logger)
	profileHandler := api.NewProfileHandler(app.profileService, app.logger)
	followHandler := api.NewFollowHandler(app.followService, app.logger)
	postHandler := api.NewPostHandler(app.postService, app.logger)
	adminHandler := api.NewAdminHandler(app.adminService, app.logger)
	pdfHandler := api.NewPDFHandler(app.exportService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	adminMiddleware := apiMiddleware.NewAdminMiddleware(app.userStore)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Account listing
			r.Get("/users", userHandler.ListUsers)

			// Profile endpoints
			r.Post("/profiles", profileHandler.CreateProfile)
			r.Get("/profiles", profileHandler.ListProfiles)
			r.Get("/profiles/me", profileHandler.GetOwnProfile)
			r.Put("/profiles/me", profileHandler.UpdateProfile)
			r.Get("/profiles/{id}", profileHandler.GetProfile)
			r.Get("/profiles/{id}/pdf", pdfHandler.ExportProfile)

			// Profile child collections
			r.Post("/profiles/me/education", profileHandler.AddEducation)
			r.Delete("/profiles/me/education/{id}", profileHandler.RemoveEducation)
			r.Post("/profiles/me/work-experience", profileHandler.AddWorkExperience)
			r.Delete("/profiles/me/work-experience/{id}", profileHandler.RemoveWorkExperience)
			r.Post("/profiles/me/skills", profileHandler.AddSkill)
			r.Delete("/profiles/me/skills/{id}", profileHandler.RemoveSkill)

			// Follow endpoints
			r.Get("/follows/followers", followHandler.GetOwnFollowers)
			r.Get("/follows/following", followHandler.GetOwnFollowing)
			r.Post("/follows/{userId}", followHandler.Follow)
			r.Delete("/follows/{userId}", followHandler.Unfollow)
			r.Get("/follows/{userId}/followers", followHandler.GetFollowers)
			r.Get("/follows/{userId}/following", followHandler.GetFollowing)
			r.Get("/follows/{userId}/status", followHandler.GetFollowStatus)

			// Post endpoints
			r.Post("/posts", postHandler.CreatePost)
			r.Get("/posts/feed", postHandler.GetFeed)
			r.Get("/posts/user/{userId}", postHandler.GetUserPosts)
			r.Get("/posts/{id}", postHandler.GetPost)
			r.Put("/posts/{id}", postHandler.UpdatePost)
			r.Delete("/posts/{id}", postHandler.DeletePost)

			// Admin endpoints
			r.Group(func(r chi.Router) {
				r.Use(adminMiddleware.RequireAdmin)

				r.Get("/admin/users", adminHandler.ListUsers)
				r.Put("/admin/users/{id}/disable", adminHandler.DisableUser)
				r.Put("/admin/users/{id}/enable", adminHandler.EnableUser)
				r.Get("/admin/posts", adminHandler.ListPosts)
				r.Delete("/admin/posts/{id}", adminHandler.DeletePost)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
