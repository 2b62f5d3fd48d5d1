package store

import (
	"context"
	"errors"
	"testing"

	"todolist/internal/ids"
	"todolist/internal/models"
)

type storeFactory struct {
	name string
	open func(t *testing.T, gen ids.Generator) Store
}

func factories() []storeFactory {
	return []storeFactory{
		{
			name: "memory",
			open: func(t *testing.T, gen ids.Generator) Store {
				t.Helper()
				return NewMemoryStore(gen)
			},
		},
		{
			name: "sqlite",
			open: func(t *testing.T, gen ids.Generator) Store {
				t.Helper()
				s, err := NewSQLiteStore(gen)
				if err != nil {
					t.Fatalf("failed to create sqlite store: %v", err)
				}
				t.Cleanup(func() { s.Close() })
				return s
			},
		},
	}
}

// forEachStore runs fn against every Store implementation.
func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			fn(t, f.open(t, nil))
		})
	}
}

func sequence(values ...string) ids.Generator {
	i := 0
	return func() string {
		v := values[i%len(values)]
		i++
		return v
	}
}

func mustAdd(t *testing.T, s Store, title string) models.Task {
	t.Helper()
	task, err := s.Add(context.Background(), title)
	if err != nil {
		t.Fatalf("Add(%q) failed: %v", title, err)
	}
	return task
}

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func TestAdd_AppendsIncompleteTask(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		for i, title := range []string{"Buy milk", "  Walk dog  ", "Call mom"} {
			task := mustAdd(t, s, title)
			if task.ID == "" {
				t.Fatal("expected id to be set")
			}
			if task.Completed {
				t.Error("expected new task to be incomplete")
			}

			tasks, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(tasks) != i+1 {
				t.Fatalf("expected %d tasks, got %d", i+1, len(tasks))
			}
			if tasks[i].ID != task.ID {
				t.Errorf("expected new task at the end, got %v", tasks)
			}
		}

		tasks, _ := s.List(ctx)
		got := titles(tasks)
		want := []string{"Buy milk", "Walk dog", "Call mom"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
			}
		}
	})
}

func TestAdd_RejectsEmptyTitle(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		mustAdd(t, s, "Existing")

		for _, title := range []string{"", "   ", "\t"} {
			_, err := s.Add(ctx, title)
			if !errors.Is(err, models.ErrEmptyTitle) {
				t.Errorf("Add(%q): expected ErrEmptyTitle, got %v", title, err)
			}
		}

		tasks, _ := s.List(ctx)
		if len(tasks) != 1 {
			t.Errorf("expected list to be unchanged, got %d tasks", len(tasks))
		}
	})
}

func TestToggle_RoundTrip(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		task := mustAdd(t, s, "Write tests")

		first, err := s.Toggle(ctx, task.ID)
		if err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		if !first.Completed {
			t.Error("expected task to be completed after first toggle")
		}

		second, err := s.Toggle(ctx, task.ID)
		if err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		if second.Completed {
			t.Error("expected task to be incomplete after second toggle")
		}

		got, err := s.Get(ctx, task.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != task {
			t.Errorf("expected %+v after round trip, got %+v", task, got)
		}
	})
}

func TestToggle_OnlyAffectsTarget(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		a := mustAdd(t, s, "A")
		b := mustAdd(t, s, "B")

		if _, err := s.Toggle(ctx, b.ID); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}

		gotA, _ := s.Get(ctx, a.ID)
		if gotA.Completed {
			t.Error("expected A to stay incomplete")
		}
	})
}

func TestDelete_PreservesOrder(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		mustAdd(t, s, "A")
		b := mustAdd(t, s, "B")
		mustAdd(t, s, "C")

		if err := s.Delete(ctx, b.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		tasks, _ := s.List(ctx)
		got := titles(tasks)
		if len(got) != 2 || got[0] != "A" || got[1] != "C" {
			t.Errorf("expected [A C], got %v", got)
		}
	})
}

func TestDelete_ThenToggleOrDeleteFails(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		task := mustAdd(t, s, "Gone soon")

		if err := s.Delete(ctx, task.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		if _, err := s.Toggle(ctx, task.ID); !errors.Is(err, models.ErrTaskNotFound) {
			t.Errorf("Toggle after delete: expected ErrTaskNotFound, got %v", err)
		}
		if err := s.Delete(ctx, task.ID); !errors.Is(err, models.ErrTaskNotFound) {
			t.Errorf("second Delete: expected ErrTaskNotFound, got %v", err)
		}
		if _, err := s.Get(ctx, task.ID); !errors.Is(err, models.ErrTaskNotFound) {
			t.Errorf("Get after delete: expected ErrTaskNotFound, got %v", err)
		}
	})
}

func TestList_ReturnsSnapshot(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		mustAdd(t, s, "Original")

		tasks, _ := s.List(ctx)
		tasks[0].Title = "Mutated"

		again, _ := s.List(ctx)
		if again[0].Title != "Original" {
			t.Errorf("expected store to be unaffected by caller mutation, got %q", again[0].Title)
		}
	})
}

func TestList_EmptyStore(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		tasks, err := s.List(context.Background())
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("expected no tasks, got %d", len(tasks))
		}
	})
}

func TestAdd_RetriesOnIDCollision(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			s := f.open(t, sequence("dup01", "dup01", "uniq2"))

			first := mustAdd(t, s, "First")
			second := mustAdd(t, s, "Second")

			if first.ID != "dup01" {
				t.Errorf("expected first id dup01, got %q", first.ID)
			}
			if second.ID != "uniq2" {
				t.Errorf("expected colliding id to be retried, got %q", second.ID)
			}
		})
	}
}

func TestAdd_ExhaustedWhenEveryIDIsTaken(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			ctx := context.Background()
			s := f.open(t, sequence("same1"))

			mustAdd(t, s, "First")
			if _, err := s.Add(ctx, "Blocked"); !errors.Is(err, ids.ErrExhausted) {
				t.Fatalf("expected ErrExhausted, got %v", err)
			}

			tasks, _ := s.List(ctx)
			if len(tasks) != 1 {
				t.Errorf("expected failed add to leave one task, got %d", len(tasks))
			}
		})
	}
}
