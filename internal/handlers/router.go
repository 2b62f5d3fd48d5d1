package handlers

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the page, form and JSON routes. static may be nil.
func NewRouter(h *Handlers, static fs.FS) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// Static files
	if static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}

	// Page routes
	r.Get("/", h.Home)

	// Form routes
	r.Post("/tasks", h.CreateTask)
	r.Post("/tasks/{id}/toggle", h.ToggleTask)
	r.Post("/tasks/{id}/delete", h.DeleteTask)
	r.Post("/confirm/yes", h.ConfirmDelete)
	r.Post("/confirm/no", h.CancelDelete)

	// JSON API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.State)
		r.Post("/tasks", h.APICreateTask)
		r.Post("/tasks/{id}/toggle", h.APIToggleTask)
		r.Post("/tasks/{id}/delete", h.APIDeleteTask)
		r.Post("/confirm", h.APIConfirmDelete)
		r.Post("/cancel", h.APICancelDelete)
	})

	return r
}
