package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/trogers1052/stock-dashboard/internal/api"
	"github.com/trogers1052/stock-dashboard/internal/cache"
	"github.com/trogers1052/stock-dashboard/internal/config"
	"github.com/trogers1052/stock-dashboard/internal/database"
	"github.com/trogers1052/stock-dashboard/internal/directory"
	"github.com/trogers1052/stock-dashboard/internal/kafka"
	"github.com/trogers1052/stock-dashboard/internal/models"
	"github.com/trogers1052/stock-dashboard/internal/pricegen"
	"github.com/trogers1052/stock-dashboard/internal/stream"
	"github.com/trogers1052/stock-dashboard/internal/watchlist"
)

const shutdownTimeout = 10 * time.Second

// auditStore keeps the watchlist event audit trail
type auditStore interface {
	kafka.EventRepository
	api.EventLister
}

// App wires the directory, watchlist and event fan-out from one Config
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	Directory *directory.Directory
	Watchlist *watchlist.Watchlist

	hub      *stream.Hub
	audit    auditStore
	producer *kafka.Producer
	closers  []io.Closer
}

// NewLogger builds the slog logger described by cfg
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New opens the configured watchlist backend and builds every component.
// Call Close when done.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{cfg: cfg, logger: logger}

	backend, err := a.openBackend(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	gen := pricegen.New()
	a.Directory = directory.New(gen,
		directory.WithLatencyScale(cfg.Directory.LatencyScale),
		directory.WithLogger(logger.With("component", "directory")),
	)

	a.hub = stream.NewHub(func(ctx context.Context) ([]models.Stock, error) {
		return a.Watchlist.Load(ctx)
	}, logger.With("component", "hub"))

	if cfg.Kafka.Enabled {
		a.producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		a.closers = append(a.closers, a.producer)
	}

	a.Watchlist = a.newWatchlist(backend)

	logger.Info("application initialized",
		"backend", cfg.Watchlist.Backend,
		"kafka", cfg.Kafka.Enabled,
		"latency_scale", cfg.Directory.LatencyScale)
	return a, nil
}

// eventPublisher picks where watchlist changes go. With Kafka every instance
// learns about changes through its consumer, which also keeps the audit trail.
// Without it the local hub is told directly, through the audit table when one
// is available.
func (a *App) eventPublisher() watchlist.Publisher {
	switch {
	case a.producer != nil:
		return a.producer
	case a.audit != nil:
		return newAuditedPublisher(a.audit, a.hub)
	default:
		return a.hub
	}
}

func (a *App) newWatchlist(backend watchlist.Backend) *watchlist.Watchlist {
	return watchlist.New(backend,
		watchlist.WithKey(a.cfg.Watchlist.Key),
		watchlist.WithPublisher(a.eventPublisher()),
		watchlist.WithLogger(a.logger.With("component", "watchlist")),
	)
}

func (a *App) openBackend(ctx context.Context) (watchlist.Backend, error) {
	wcfg := a.cfg.Watchlist

	switch wcfg.Backend {
	case config.BackendMemory:
		return watchlist.NewMemoryBackend(), nil

	case config.BackendFile:
		return watchlist.NewFileBackend(wcfg.Dir)

	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(wcfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
		db, err := database.NewSQLite(wcfg.SQLitePath, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db)
		return db, nil

	case config.BackendPostgres:
		db, err := database.New(a.cfg.Database.ConnectionString())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db)
		if err := db.Migrate(a.cfg.Database.MigrationsPath); err != nil {
			return nil, err
		}
		a.audit = db
		return db, nil

	case config.BackendRedis:
		client, err := cache.NewRedisClient(ctx, a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		backend := cache.NewRedisBackend(client)
		a.closers = append(a.closers, backend)
		return backend, nil
	}

	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, wcfg.Backend)
}

// Router returns the HTTP handler for the dashboard API
func (a *App) Router() http.Handler {
	var events api.EventLister
	if a.audit != nil {
		events = a.audit
	}
	handler := api.NewHandler(a.Directory, a.Watchlist, a.hub, events, a.logger.With("component", "api"))
	return api.SetupRoutes(handler)
}

// Serve runs the websocket hub, the Kafka consumer when enabled, and the
// HTTP server until ctx is cancelled
func (a *App) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.cfg.Server.Addr(), err)
	}
	return a.serve(ctx, ln)
}

func (a *App) serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.hub.Run(ctx)

	if a.cfg.Kafka.Enabled {
		var repo kafka.EventRepository
		if a.audit != nil {
			repo = a.audit
		}
		consumer := kafka.NewConsumer(a.cfg.Kafka.Brokers, a.cfg.Kafka.Topic, a.cfg.Kafka.GroupID,
			repo, a.hub.Broadcast, a.logger.With("component", "consumer"))
		go func() {
			if err := consumer.Start(ctx); err != nil {
				a.logger.Error("kafka consumer stopped", "error", err)
			}
		}()
	}

	server := &http.Server{
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// Close releases the backend and the Kafka producer
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Error("failed to close resource", "error", err)
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
