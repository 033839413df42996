package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DocuuAI/docsyncd/internal/config"
	"github.com/DocuuAI/docsyncd/internal/core/ports"
	"github.com/DocuuAI/docsyncd/internal/core/store"
	"github.com/DocuuAI/docsyncd/internal/core/usecase"
	"github.com/DocuuAI/docsyncd/internal/infrastructure/auth"
	"github.com/DocuuAI/docsyncd/internal/infrastructure/backend"
	mirrorpg "github.com/DocuuAI/docsyncd/internal/infrastructure/mirror/postgres"
	natsfeed "github.com/DocuuAI/docsyncd/internal/infrastructure/realtime/nats"
	wsfeed "github.com/DocuuAI/docsyncd/internal/infrastructure/realtime/websocket"
	"github.com/DocuuAI/docsyncd/internal/infrastructure/resilience"
	"github.com/DocuuAI/docsyncd/internal/infrastructure/snapshot/localfs"
	"github.com/DocuuAI/docsyncd/internal/observability/logging"
	"github.com/DocuuAI/docsyncd/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.SyncMetrics

	Store     *store.Store
	Refresh   *usecase.RefreshUseCase
	Upload    *usecase.UploadUseCase
	Watcher   *usecase.ProcessingWatcher
	Directory *usecase.DirectoryUseCase
	Applier   *usecase.RealtimeApplier

	Feed      ports.RealtimeFeed
	Snapshots ports.SnapshotStore
	Mirror    ports.Mirror

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger := logging.New(logging.Options{Service: "docsyncd", Level: cfg.LogLevel})

	var tokens ports.TokenSource
	if cfg.TokenFile != "" {
		tokens = auth.NewFileTokenSource(cfg.TokenFile)
	} else {
		tokens = auth.NewStaticTokenSource(cfg.APIToken)
	}

	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts: cfg.RetryMaxAttempts,
		AttemptTimeout:   cfg.RequestTimeout(),
		BreakerEnabled:   cfg.BreakerEnabled,
	})

	syncMetrics := metrics.NewSyncMetrics("docsyncd")
	client := backend.New(cfg.BackendURL, tokens, backend.Options{
		Timeout:           cfg.RequestTimeout(),
		RequestsPerSecond: cfg.RequestsPerSecond,
		Executor:          executor,
		ObserveRequest:    syncMetrics.ObserveBackendRequest,
	})

	st := store.New(store.APIs{
		Documents:     client,
		Entities:      client,
		Deadlines:     client,
		Notifications: client,
	}, logger)

	watcher := usecase.NewProcessingWatcher(st, client, client, cfg.PollInterval(), cfg.PollMaxAttempts, logger)

	app := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: syncMetrics,

		Store:     st,
		Refresh:   usecase.NewRefreshUseCase(st, client, client, client, client, logger),
		Upload:    usecase.NewUploadUseCase(st, client, watcher, logger),
		Watcher:   watcher,
		Directory: usecase.NewDirectoryUseCase(st, client),
		Applier:   usecase.NewRealtimeApplier(st, logger),

		closeFn: func() {},
	}

	if err := app.wireFeed(cfg, tokens, logger); err != nil {
		return nil, err
	}

	if cfg.SnapshotEnabled {
		snapshots, err := localfs.New(cfg.SnapshotPath)
		if err != nil {
			return nil, fmt.Errorf("init snapshot store: %w", err)
		}
		app.Snapshots = snapshots
	}

	if cfg.MirrorDSN != "" {
		db, err := mirrorpg.OpenDB(cfg.MirrorDSN)
		if err != nil {
			return nil, fmt.Errorf("open mirror db: %w", err)
		}
		mirror := mirrorpg.NewMirror(db)
		if err := mirror.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure mirror schema: %w", err)
		}
		app.Mirror = mirror

		prev := app.closeFn
		app.closeFn = func() {
			prev()
			_ = db.Close()
		}
	}

	return app, nil
}

func (a *App) wireFeed(cfg config.Config, tokens ports.TokenSource, logger *slog.Logger) error {
	switch cfg.RealtimeDriver {
	case "websocket":
		a.Feed = wsfeed.New(cfg.RealtimeURL, tokens, wsfeed.Options{Logger: logger})
	case "nats":
		feed, err := natsfeed.New(cfg.NATSURL, cfg.NATSSubject, natsfeed.Options{Logger: logger})
		if err != nil {
			return fmt.Errorf("init nats feed: %w", err)
		}
		a.Feed = feed

		prev := a.closeFn
		a.closeFn = func() {
			prev()
			feed.Close()
		}
	default:
		return fmt.Errorf("unknown realtime driver %q", cfg.RealtimeDriver)
	}
	return nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
