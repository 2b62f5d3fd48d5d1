package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"todolist/internal/interaction"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	ctrl      *interaction.Controller
	templates *template.Template
}

// New creates a new Handlers instance.
func New(ctrl *interaction.Controller, tmpl *template.Template) *Handlers {
	return &Handlers{
		ctrl:      ctrl,
		templates: tmpl,
	}
}

// taskID extracts the task id from URL parameters.
func taskID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	w.Write([]byte(message))
}

func respondServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// redirectHome sends the browser back to the list after a form command.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) render(w http.ResponseWriter, name string, data any) {
	if h.templates == nil {
		// For testing without templates
		w.WriteHeader(http.StatusOK)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		respondServerError(w, err)
	}
}
