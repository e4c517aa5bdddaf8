// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/quicknote/internal/api"
	"github.com/starford/quicknote/internal/mcpserver"
	"github.com/starford/quicknote/internal/noteservice"
	"github.com/starford/quicknote/internal/sse"
	"github.com/starford/quicknote/internal/store"
	"github.com/starford/quicknote/internal/watch"
)

var errConfigRequired = errors.New("config is required")

func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// openStore opens the SQLite file, creating its directory if needed.
func openStore(cfg *Config) (*store.DB, error) {
	if dir := filepath.Dir(cfg.SQLite.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	return db, nil
}

func newService(ctx context.Context, cfg *Config, db store.Store, logger *slog.Logger, n noteservice.Notifier) (*noteservice.Service, error) {
	svc, err := noteservice.NewService(ctx, db,
		noteservice.WithAppName(cfg.App.Name),
		noteservice.WithLocation(cfg.App.Location()),
		noteservice.WithLogger(logger),
		noteservice.WithNotifier(n),
	)
	if err != nil {
		return nil, fmt.Errorf("init service: %w", err)
	}
	return svc, nil
}

// OpenService opens the store and returns a service for one-shot commands.
// Logs go to stderr. The returned close func releases the store.
func OpenService(ctx context.Context, opts ...Option) (*noteservice.Service, func() error, error) {
	app, err := newApplication(opts)
	if err != nil {
		return nil, nil, err
	}
	return app.openService(ctx)
}

func (a *application) openService(ctx context.Context) (*noteservice.Service, func() error, error) {
	logger := newLogger(a.config, os.Stderr)
	db, err := openStore(a.config)
	if err != nil {
		return nil, nil, err
	}
	svc, err := newService(ctx, a.config, db, logger, nil)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return svc, db.Close, nil
}

// RunMCP serves the MCP tools on stdin/stdout until the client disconnects.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	svc, closeStore, err := app.openService(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	slog.Info("MCP server starting", slog.String("sqlite_path", app.config.SQLite.Path))
	return mcpserver.New(svc, app.version).ServeStdio()
}

// reloadAndNotify rebuilds the list after an external write and signals
// clients through the broker's list.changed throttle.
func reloadAndNotify(svc *noteservice.Service, broker *sse.Broker) watch.ReloadFunc {
	return func(ctx context.Context) error {
		if err := svc.Reload(ctx); err != nil {
			return err
		}
		broker.PublishListChanged()
		return nil
	}
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	// Initialize structured JSON logger.
	logger := newLogger(cfg, os.Stdout)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("timezone", cfg.App.Location().String()),
		slog.Bool("watch", cfg.Watch.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("Store opened", slog.String("path", db.Path()))

	broker := sse.NewBroker(cfg.Events.Throttle)
	defer broker.Close()

	svc, err := newService(ctx, cfg, db, logger, broker)
	if err != nil {
		return err
	}

	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Watch.Enabled {
		g.Go(func() error {
			err := watch.Watch(gCtx, cfg.SQLite.Path, cfg.Watch.Debounce, logger, reloadAndNotify(svc, broker))
			if err != nil {
				logger.Warn("watcher disabled", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
