// Package router sets up all HTTP routes and middleware chains for the
// Inkwell API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessions *session.Store, auth *handlers.Auth, public *handlers.Public, admin *handlers.Admin) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadIdentity(sessions))

	// Health check, no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Session boundary.
		r.Post("/auth/login", auth.Login)
		r.Post("/auth/logout", auth.Logout)

		// Discovery is public; drafts are filtered per caller identity.
		r.Get("/posts", public.ListPosts)
		r.Get("/posts/{slug}", public.GetPost)
		r.Get("/posts/{slug}/related", public.RelatedPosts)
		r.Get("/categories", public.ListCategories)
		r.Get("/tags", public.ListTags)

		// Comment reads and guest/authenticated submissions
		// are public; deletion is authorized per comment inside the engine.
		r.Get("/posts/{slug}/comments", public.ListComments)
		r.Post("/posts/{slug}/comments", public.AddComment)
		r.With(middleware.RequireAuth).Delete("/comments/{id}", public.DeleteComment)

		// Authoring and taxonomy management, elevated only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/posts", admin.CreatePost)
			r.Put("/posts/{id}", admin.UpdatePost)
			r.Delete("/posts/{id}", admin.DeletePost)

			r.Post("/categories", admin.CreateCategory)
			r.Put("/categories/{id}", admin.UpdateCategory)
			r.Delete("/categories/{id}", admin.DeleteCategory)

			r.Post("/tags", admin.CreateTag)
			r.Put("/tags/{id}", admin.UpdateTag)
			r.Delete("/tags/{id}", admin.DeleteTag)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
