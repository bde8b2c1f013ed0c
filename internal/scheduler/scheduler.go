package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"offline_sync/internal/domain"
	"offline_sync/internal/service"
)

// Syncer defines the interface for sync operations.
type Syncer interface {
	Sync(ctx context.Context, trigger domain.Trigger) (*domain.SyncResult, error)
}

// NetworkWatcher publishes connectivity changes.
type NetworkWatcher interface {
	State() domain.NetworkState
	Subscribe() (<-chan domain.NetworkState, func())
}

// Scheduler fires sync runs on a periodic timer, on offline-to-online transitions
// and on manual requests. Runs may overlap; the syncer rejects concurrent ones.
type Scheduler struct {
	syncer   Syncer
	network  NetworkWatcher
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	manual chan struct{}
	wg     sync.WaitGroup
}

func NewScheduler(syncer Syncer, network NetworkWatcher, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncer:   syncer,
		network:  network,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("component", "scheduler"),
		manual:   make(chan struct{}, 1),
	}
}

// TriggerNow requests a manual sync. Requests made while one is pending are merged.
func (s *Scheduler) TriggerNow() {
	select {
	case s.manual <- struct{}{}:
	default:
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)
	defer s.wg.Wait()

	updates, unsubscribe := s.network.Subscribe()
	defer unsubscribe()
	wasOffline := s.network.State().IsOffline

	s.runSync(ctx, domain.TriggerPeriodic)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runSync(ctx, domain.TriggerPeriodic)
		case <-s.manual:
			s.runSync(ctx, domain.TriggerManual)
		case state, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			if wasOffline && !state.IsOffline {
				s.runSync(ctx, domain.TriggerReconnect)
			}
			wasOffline = state.IsOffline
		}
	}
}

func (s *Scheduler) runSync(ctx context.Context, trigger domain.Trigger) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		syncCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		_, err := s.syncer.Sync(syncCtx, trigger)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrSyncInProgress), errors.Is(err, service.ErrOffline):
			s.logger.Debug("sync skipped", "trigger", trigger, "reason", err)
		default:
			s.logger.Error("sync failed", "trigger", trigger, "error", err)
		}
	}()
}
