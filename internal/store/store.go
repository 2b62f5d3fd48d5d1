package store

import (
	"context"

	"todolist/internal/models"
)

// Store defines the task collection operations.
type Store interface {
	// Task operations
	Add(ctx context.Context, title string) (models.Task, error)
	Get(ctx context.Context, id string) (models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	Toggle(ctx context.Context, id string) (models.Task, error)
	Delete(ctx context.Context, id string) error

	// Lifecycle
	Close() error
}
