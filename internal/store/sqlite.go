package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"todolist/internal/ids"
	"todolist/internal/models"
)

// SQLiteStore implements the Store interface on an in-memory SQLite database.
// Its contents live only as long as the process.
type SQLiteStore struct {
	db    *sql.DB
	newID ids.Generator
}

// NewSQLiteStore opens a private in-memory database and applies the schema.
// A nil generator uses ids.New.
func NewSQLiteStore(gen ids.Generator) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if gen == nil {
		gen = ids.New
	}
	return &SQLiteStore{db: db, newID: gen}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Add inserts a new incomplete task at the end of the list.
func (s *SQLiteStore) Add(ctx context.Context, title string) (models.Task, error) {
	trimmed, err := models.NormalizeTitle(title)
	if err != nil {
		return models.Task{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lookupErr error
	id, err := ids.Unique(s.newID, func(id string) bool {
		exists, err := idExists(ctx, tx, id)
		if err != nil {
			lookupErr = err
			return true
		}
		return exists
	})
	if lookupErr != nil {
		return models.Task{}, lookupErr
	}
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{ID: id, Title: trimmed}
	if err := task.Validate(); err != nil {
		return models.Task{}, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO tasks (id, title, completed) VALUES (?, ?, FALSE)
	`, task.ID, task.Title); err != nil {
		return models.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Task{}, fmt.Errorf("failed to commit task: %w", err)
	}

	return task, nil
}

// Get retrieves a task by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (models.Task, error) {
	return getTask(ctx, s.db, id)
}

// List retrieves all tasks in insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, completed FROM tasks ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// Toggle flips the completion flag and returns the task's new state.
func (s *SQLiteStore) Toggle(ctx context.Context, id string) (models.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE tasks SET completed = NOT completed WHERE id = ?
	`, id)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to toggle task: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return models.Task{}, err
	}

	task, err := getTask(ctx, tx, id)
	if err != nil {
		return models.Task{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Task{}, fmt.Errorf("failed to commit toggle: %w", err)
	}

	return task, nil
}

// Delete removes a task.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireAffected(result)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getTask(ctx context.Context, q queryer, id string) (models.Task, error) {
	var task models.Task
	err := q.QueryRowContext(ctx, `
		SELECT id, title, completed FROM tasks WHERE id = ?
	`, id).Scan(&task.ID, &task.Title, &task.Completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, models.ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func idExists(ctx context.Context, q queryer, id string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM tasks WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check task id: %w", err)
	}
	return true, nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}
