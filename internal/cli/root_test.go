package cli

import (
	"bytes"
	"context"
	"testing"

	"todolist/internal/config"
	"todolist/internal/interaction"
	"todolist/internal/store"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRoot(Assets{})
	if cmd == nil || cmd.Use != "todolist" {
		t.Fatalf("expected root command")
	}

	for _, name := range []string{"serve", "tui"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %s command", name)
		}
	}
}

func TestTUICommandUsesRequestedStore(t *testing.T) {
	t.Setenv("STORE", "")
	t.Setenv("LOG_LEVEL", "")

	origRun := runTUI
	var got []string
	runTUI = func(ctrl *interaction.Controller) error {
		if _, err := ctrl.RequestAdd(context.Background(), "from test"); err != nil {
			return err
		}
		tasks, err := ctrl.Tasks(context.Background())
		if err != nil {
			return err
		}
		for _, task := range tasks {
			got = append(got, task.Title)
		}
		return nil
	}
	defer func() { runTUI = origRun }()

	cmd := NewRoot(Assets{})
	cmd.SetArgs([]string{"tui", "--store", "sqlite"})
	cmd.SetOut(bytes.NewBuffer(nil))
	cmd.SetErr(bytes.NewBuffer(nil))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "from test" {
		t.Fatalf("expected TUI to run against a working store, got %v", got)
	}
}

func TestTUICommandRejectsUnknownStore(t *testing.T) {
	origRun := runTUI
	runTUI = func(*interaction.Controller) error {
		t.Fatal("TUI should not start with an invalid store")
		return nil
	}
	defer func() { runTUI = origRun }()

	cmd := NewRoot(Assets{})
	cmd.SetArgs([]string{"tui", "--store", "postgres"})
	cmd.SetOut(bytes.NewBuffer(nil))
	cmd.SetErr(bytes.NewBuffer(nil))
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown store")
	}
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE", "sqlite")
	t.Setenv("LOG_LEVEL", "")

	tests := []struct {
		name      string
		port      string
		backend   string
		wantPort  string
		wantStore string
	}{
		{name: "env only", wantPort: "9000", wantStore: config.StoreSQLite},
		{name: "port flag", port: "7000", wantPort: "7000", wantStore: config.StoreSQLite},
		{name: "store flag", backend: "memory", wantPort: "9000", wantStore: config.StoreMemory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(tt.port, tt.backend)
			if err != nil {
				t.Fatalf("loadConfig failed: %v", err)
			}
			if cfg.Port != tt.wantPort {
				t.Errorf("expected port %q, got %q", tt.wantPort, cfg.Port)
			}
			if cfg.Store != tt.wantStore {
				t.Errorf("expected store %q, got %q", tt.wantStore, cfg.Store)
			}
		})
	}
}

func TestOpenStore(t *testing.T) {
	tests := []struct {
		backend string
		check   func(store.Store) bool
	}{
		{backend: config.StoreMemory, check: func(s store.Store) bool { _, ok := s.(*store.MemoryStore); return ok }},
		{backend: config.StoreSQLite, check: func(s store.Store) bool { _, ok := s.(*store.SQLiteStore); return ok }},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			s, err := openStore(config.Config{Store: tt.backend})
			if err != nil {
				t.Fatalf("openStore failed: %v", err)
			}
			defer s.Close()
			if !tt.check(s) {
				t.Errorf("unexpected store type %T", s)
			}
		})
	}

	if _, err := openStore(config.Config{Store: "postgres"}); err == nil {
		t.Error("expected error for unknown store")
	}
}
