package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DocuuAI/docsyncd/internal/bootstrap"
	"github.com/DocuuAI/docsyncd/internal/config"
	"github.com/DocuuAI/docsyncd/internal/core/domain"
	"github.com/DocuuAI/docsyncd/internal/core/ports"
	"github.com/DocuuAI/docsyncd/internal/core/store"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	restoreSnapshot(ctx, app)

	go serveMetrics(app, cfg.MetricsPort)
	go followChanges(ctx, app)

	if err := app.Refresh.LoadAll(ctx); err != nil {
		// Cached state (if any) stays visible; the feed and later refreshes
		// catch the store up once the backend is reachable again.
		app.Logger.Error("initial refresh failed", "error", err)
	}

	app.Logger.Info("consuming realtime feed", "driver", cfg.RealtimeDriver)
	if err := app.Feed.Consume(ctx, func(ctx context.Context, event ports.RealtimeEvent) error {
		app.Metrics.ObserveRealtimeEvent(event.Type)
		return app.Applier.HandleEvent(ctx, event)
	}); err != nil && ctx.Err() == nil {
		app.Logger.Error("realtime feed stopped", "error", err)
	}

	saveSnapshot(app)
}

func restoreSnapshot(ctx context.Context, app *bootstrap.App) {
	if app.Snapshots == nil {
		return
	}
	data, err := app.Snapshots.Load(ctx)
	if err != nil {
		if !domain.IsKind(err, domain.ErrNotFound) {
			app.Logger.Warn("snapshot load failed", "error", err)
		}
		return
	}
	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		app.Logger.Warn("snapshot undecodable", "error", err)
		return
	}
	app.Store.Restore(snap)
	app.Logger.Info("snapshot restored",
		"documents", len(snap.Documents),
		"entities", len(snap.Entities),
		"deadlines", len(snap.Deadlines),
	)
}

func saveSnapshot(app *bootstrap.App) {
	if app.Snapshots == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.Marshal(app.Store.Snapshot())
	if err != nil {
		app.Logger.Error("snapshot encode failed", "error", err)
		return
	}
	if err := app.Snapshots.Save(ctx, data); err != nil {
		app.Logger.Error("snapshot save failed", "error", err)
	}
}

func serveMetrics(app *bootstrap.App, port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.Metrics.Handler())
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		app.Logger.Error("metrics server stopped", "error", err)
	}
}

// followChanges drives metrics gauges and the optional Postgres mirror from
// the store's change feed.
func followChanges(ctx context.Context, app *bootstrap.App) {
	changes, cancel := app.Store.Subscribe(256)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			app.Metrics.ObserveMutation(string(change.Collection), string(change.Kind))
			if change.Kind == store.ChangeRollback {
				app.Metrics.ObserveRollback(string(change.Collection))
			}
			for collection, size := range app.Store.Sizes() {
				app.Metrics.SetCollectionSize(string(collection), size)
			}
			mirrorChange(ctx, app, change.Collection)
		}
	}
}

func mirrorChange(ctx context.Context, app *bootstrap.App, collection store.Collection) {
	if app.Mirror == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	switch collection {
	case store.CollectionDocuments:
		err = app.Mirror.MirrorDocuments(ctx, app.Store.Documents())
	case store.CollectionEntities:
		err = app.Mirror.MirrorEntities(ctx, app.Store.Entities())
	case store.CollectionDeadlines:
		err = app.Mirror.MirrorDeadlines(ctx, app.Store.Deadlines())
	case store.CollectionNotifications:
		// Notifications are ephemeral; the mirror carries only durable
		// collections.
	}
	if err != nil {
		app.Logger.Warn("mirror write failed", "collection", collection, "error", err)
	}
}
