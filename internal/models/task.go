package models

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyTitle is returned when a task title is empty after trimming.
	ErrEmptyTitle = errors.New("task title can't be empty")

	// ErrTaskNotFound is returned when an id does not reference a live task.
	ErrTaskNotFound = errors.New("task not found")
)

// Task represents a single to-do item.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// NormalizeTitle trims surrounding whitespace and rejects empty titles.
func NormalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}
	return trimmed, nil
}

// Validate checks that the task has valid field values.
func (t Task) Validate() error {
	if t.ID == "" {
		return errors.New("id is required")
	}

	if _, err := NormalizeTitle(t.Title); err != nil {
		return err
	}

	return nil
}

// StatusLabel returns the label for the button that flips the task.
func (t Task) StatusLabel() string {
	if t.Completed {
		return "Undo"
	}
	return "Complete"
}
