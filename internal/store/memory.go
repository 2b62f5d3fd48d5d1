package store

import (
	"context"
	"sync"

	"todolist/internal/ids"
	"todolist/internal/models"
)

// MemoryStore implements the Store interface with an ordered slice.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks []models.Task
	newID ids.Generator
}

// NewMemoryStore creates an empty store. A nil generator uses ids.New.
func NewMemoryStore(gen ids.Generator) *MemoryStore {
	if gen == nil {
		gen = ids.New
	}
	return &MemoryStore{newID: gen}
}

// Add appends a new incomplete task with a trimmed title.
func (s *MemoryStore) Add(ctx context.Context, title string) (models.Task, error) {
	trimmed, err := models.NormalizeTitle(title)
	if err != nil {
		return models.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := ids.Unique(s.newID, func(id string) bool { return s.indexOf(id) >= 0 })
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{ID: id, Title: trimmed}
	if err := task.Validate(); err != nil {
		return models.Task{}, err
	}
	s.tasks = append(s.tasks, task)
	return task, nil
}

// Get returns the task with the given id.
func (s *MemoryStore) Get(ctx context.Context, id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, models.ErrTaskNotFound
	}
	return s.tasks[i], nil
}

// List returns a copy of all tasks in insertion order.
func (s *MemoryStore) List(ctx context.Context) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

// Toggle flips the completion flag and returns the task's new state.
func (s *MemoryStore) Toggle(ctx context.Context, id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, models.ErrTaskNotFound
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i], nil
}

// Delete removes the task, keeping the order of the rest.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.ErrTaskNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// indexOf must be called with s.mu held.
func (s *MemoryStore) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
