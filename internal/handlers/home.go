package handlers

import (
	"net/http"

	"todolist/internal/interaction"
	"todolist/internal/models"
)

// HomeData holds data for the home page template.
type HomeData struct {
	Title         string
	Tasks         []models.Task
	Notification  interaction.Notification
	Confirmation  interaction.Confirmation
	ConfirmPrompt string
	PendingTitle  string
	// NotificationMillis lets the page reload itself once the message expires.
	NotificationMillis int64
}

// Home renders the task list with the notification and confirmation overlays.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	state, err := h.ctrl.State(r.Context())
	if err != nil {
		respondServerError(w, err)
		return
	}

	data := HomeData{
		Title:              "Tasks",
		Tasks:              state.Tasks,
		Notification:       state.Notification,
		Confirmation:       state.Confirmation,
		ConfirmPrompt:      interaction.ConfirmPrompt,
		NotificationMillis: interaction.NotificationDuration.Milliseconds(),
	}

	if state.Confirmation.Awaiting {
		for _, task := range state.Tasks {
			if task.ID == state.Confirmation.PendingID {
				data.PendingTitle = task.Title
				break
			}
		}
	}

	h.render(w, "home.html", data)
}
