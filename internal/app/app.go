// Package app wires the engine components together and owns their lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"offline_sync/internal/assets"
	"offline_sync/internal/cache"
	"offline_sync/internal/config"
	"offline_sync/internal/httpapi"
	"offline_sync/internal/maintenance"
	"offline_sync/internal/network"
	"offline_sync/internal/publisher"
	"offline_sync/internal/remote"
	"offline_sync/internal/scheduler"
	"offline_sync/internal/service"
	"offline_sync/internal/storage/sqlite"
)

var errNoProbeURL = errors.New("no probe url configured")

// App owns every long-lived component of the engine.
type App struct {
	Config *config.Config

	DB        *sqlx.DB
	Queue     *sqlite.ActionQueue
	Bookmarks *sqlite.BookmarkStore
	SyncState *sqlite.SyncStateStore
	Content   *cache.ContentCache
	Audio     *assets.Cache
	Network   *network.Monitor
	Remote    *remote.Client
	Sync      *service.SyncService
	Actions   *service.ActionService
	Sweeper   *maintenance.Sweeper
	Scheduler *scheduler.Scheduler
	API       *httpapi.Server

	publisher service.Publisher
	logger    *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := sqlite.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	logger.Info("opened local store", "path", cfg.Database.Path)

	a := &App{
		Config:    cfg,
		DB:        db,
		Queue:     sqlite.NewActionQueue(db),
		Bookmarks: sqlite.NewBookmarkStore(db),
		SyncState: sqlite.NewSyncStateStore(db),
		logger:    logger,
	}
	txManager := sqlite.NewTransactionManager(db)

	a.Content = cache.New(sqlite.NewContentCacheStore(db), cache.PolicyFromConfig(cfg.Cache), logger)

	a.Audio, err = assets.New(cfg.Cache.Dir, sqlite.NewAudioCacheStore(db), nil, cfg.Cache.AudioTTL, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	var prober network.Prober = network.StaticProber{Err: errNoProbeURL}
	if cfg.Network.ProbeURL != "" {
		prober = network.NewHTTPProber(cfg.Network.ProbeURL, &http.Client{Timeout: cfg.Network.ProbeTimeout})
	}
	a.Network = network.NewMonitor(prober, cfg.Network.ProbeInterval, cfg.Network.ProbeTimeout, logger)

	a.Remote = remote.New(remote.Config{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		MaxAttempts:    cfg.API.Retry.MaxAttempts,
		InitialBackoff: cfg.API.Retry.InitialBackoff,
		MaxBackoff:     cfg.API.Retry.MaxBackoff,
		DeviceID:       cfg.DeviceID,
	}, logger)

	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			db.Close()
			return nil, err
		}
		a.publisher = rabbitMQ
	}

	a.Sync = service.NewSyncService(
		a.Queue,
		a.Content,
		a.Remote,
		a.Network,
		a.SyncState,
		a.publisher,
		a.Audio,
		logger,
		cfg.Sync,
		cfg.DeviceID,
	)

	a.Actions = service.NewActionService(a.Queue, a.Bookmarks, a.Remote, a.Network, txManager, logger)

	a.Sweeper, err = maintenance.NewSweeper(a.Audio, a.Content, a.Queue, cfg.Maintenance.Schedule, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Scheduler = scheduler.NewScheduler(a.Sync, a.Network, cfg.Sync.Interval, cfg.Sync.RunTimeout, logger)

	if cfg.HTTP.Addr != "" {
		a.API = httpapi.NewServer(cfg.HTTP.Addr, httpapi.Deps{
			Sync:      a.Sync,
			Trigger:   a.Scheduler,
			Actions:   a.Actions,
			Network:   a.Network,
			Bookmarks: a.Bookmarks,
			Content:   a.Content,
			DB:        db,
		}, logger)
	}

	return a, nil
}

// Run recovers actions left in processing by a previous crash, then runs the
// background components until ctx is done.
func (a *App) Run(ctx context.Context) error {
	reset, err := a.Queue.ResetStale(ctx)
	if err != nil {
		return fmt.Errorf("reset stale actions: %w", err)
	}
	if reset > 0 {
		a.logger.Warn("requeued actions interrupted by a previous run", "count", reset)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Network.Run(gctx) })
	g.Go(func() error { return a.Scheduler.Start(gctx) })
	g.Go(func() error { return a.Sweeper.Run(gctx) })
	if a.API != nil {
		g.Go(func() error { return a.API.Run(gctx) })
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close waits for background downloads and releases the publisher and the store.
func (a *App) Close() error {
	a.Audio.Wait()

	var errs []error
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}
	if err := a.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	return errors.Join(errs...)
}
