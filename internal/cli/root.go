// Package cli exposes the web and terminal front ends as cobra commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"todolist/internal/config"
	"todolist/internal/handlers"
	"todolist/internal/interaction"
	"todolist/internal/store"
	"todolist/internal/tui"
)

// Assets are the embedded files the web front end serves.
type Assets struct {
	Templates *template.Template
	Static    fs.FS
}

const shutdownTimeout = 5 * time.Second

var runTUI = tui.Run

// Execute runs the root command against os.Args.
func Execute(assets Assets) error {
	return NewRoot(assets).Execute()
}

// NewRoot builds the command tree.
func NewRoot(assets Assets) *cobra.Command {
	root := &cobra.Command{
		Use:          "todolist",
		Short:        "A small task list with a web and terminal UI",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(assets), tuiCmd())
	return root
}

func serveCmd(assets Assets) *cobra.Command {
	var port, backend string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task list over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(port, backend)
			if err != nil {
				return err
			}
			logger := newLogger(os.Stderr, cfg.LogLevel)
			slog.SetDefault(logger)

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			ctrl := interaction.New(s, interaction.WithLogger(logger))
			defer ctrl.Close()

			h := handlers.New(ctrl, assets.Templates)
			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           handlers.NewRouter(h, assets.Static),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serveUntilDone(ctx, srv, logger, cfg.Store)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "HTTP port (overrides PORT)")
	cmd.Flags().StringVar(&backend, "store", "", "task store: memory or sqlite (overrides STORE)")
	return cmd
}

func tuiCmd() *cobra.Command {
	var backend string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the task list in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig("", backend)
			if err != nil {
				return err
			}

			// The alternate screen owns stdout and stderr.
			var out io.Writer = io.Discard
			if cfg.LogLevel <= slog.LevelDebug {
				out = os.Stderr
			}
			logger := newLogger(out, cfg.LogLevel)
			slog.SetDefault(logger)

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			ctrl := interaction.New(s, interaction.WithLogger(logger))
			defer ctrl.Close()

			return runTUI(ctrl)
		},
	}
	cmd.Flags().StringVar(&backend, "store", "", "task store: memory or sqlite (overrides STORE)")
	return cmd
}

func serveUntilDone(ctx context.Context, srv *http.Server, logger *slog.Logger, backend string) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "store", backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// loadConfig reads the environment and applies non-empty flag overrides.
func loadConfig(port, backend string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if port != "" {
		cfg.Port = port
	}
	if backend != "" {
		cfg.Store = backend
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		s, err := store.NewSQLiteStore(nil)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	case config.StoreMemory:
		return store.NewMemoryStore(nil), nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
