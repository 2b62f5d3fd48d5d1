package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"todolist/internal/models"
)

// isDomainError reports errors the controller already surfaced (or
// deliberately ignored) and that need no HTTP error of their own.
func isDomainError(err error) bool {
	return errors.Is(err, models.ErrEmptyTitle) || errors.Is(err, models.ErrTaskNotFound)
}

// CreateTask adds a task from the submitted form.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	if _, err := h.ctrl.RequestAdd(r.Context(), r.FormValue("title")); err != nil && !isDomainError(err) {
		respondServerError(w, err)
		return
	}

	redirectHome(w, r)
}

// ToggleTask toggles the completion status of a task.
func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)

	if _, err := h.ctrl.RequestToggle(r.Context(), id); err != nil {
		if !isDomainError(err) {
			respondServerError(w, err)
			return
		}
		slog.Debug("toggle ignored", "id", id, "error", err)
	}

	redirectHome(w, r)
}

// DeleteTask opens the delete confirmation for a task.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)

	if err := h.ctrl.RequestDelete(r.Context(), id); err != nil {
		if !isDomainError(err) {
			respondServerError(w, err)
			return
		}
		slog.Debug("delete request ignored", "id", id, "error", err)
	}

	redirectHome(w, r)
}

// ConfirmDelete deletes the task awaiting confirmation.
func (h *Handlers) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.ConfirmDelete(r.Context()); err != nil && !isDomainError(err) {
		respondServerError(w, err)
		return
	}

	redirectHome(w, r)
}

// CancelDelete dismisses the delete confirmation.
func (h *Handlers) CancelDelete(w http.ResponseWriter, r *http.Request) {
	h.ctrl.CancelDelete()
	redirectHome(w, r)
}
