package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"todolist/internal/models"
)

// statusFor maps a command error onto the status sent with the state document.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, models.ErrEmptyTitle):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrTaskNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondState writes the controller state with a status derived from err.
func (h *Handlers) respondState(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil && !isDomainError(err) {
		respondServerError(w, err)
		return
	}

	state, stateErr := h.ctrl.State(r.Context())
	if stateErr != nil {
		respondServerError(w, stateErr)
		return
	}

	respondJSON(w, statusFor(err), state)
}

// State returns the tasks, notification and confirmation as JSON.
func (h *Handlers) State(w http.ResponseWriter, r *http.Request) {
	h.respondState(w, r, nil)
}

// APICreateTask adds a task from a JSON body of the form {"title": "..."}.
func (h *Handlers) APICreateTask(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title string `json:"title"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	_, err := h.ctrl.RequestAdd(r.Context(), payload.Title)
	h.respondState(w, r, err)
}

// APIToggleTask toggles a task and returns the new state.
func (h *Handlers) APIToggleTask(w http.ResponseWriter, r *http.Request) {
	_, err := h.ctrl.RequestToggle(r.Context(), taskID(r))
	h.respondState(w, r, err)
}

// APIDeleteTask opens the delete confirmation and returns the new state.
func (h *Handlers) APIDeleteTask(w http.ResponseWriter, r *http.Request) {
	err := h.ctrl.RequestDelete(r.Context(), taskID(r))
	h.respondState(w, r, err)
}

// APIConfirmDelete answers the pending confirmation with yes.
func (h *Handlers) APIConfirmDelete(w http.ResponseWriter, r *http.Request) {
	err := h.ctrl.ConfirmDelete(r.Context())
	h.respondState(w, r, err)
}

// APICancelDelete answers the pending confirmation with no.
func (h *Handlers) APICancelDelete(w http.ResponseWriter, r *http.Request) {
	h.ctrl.CancelDelete()
	h.respondState(w, r, nil)
}
