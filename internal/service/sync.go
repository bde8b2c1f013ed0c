package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"offline_sync/internal/config"
	"offline_sync/internal/domain"
)

var (
	ErrSyncInProgress = errors.New("sync already in progress")
	ErrOffline        = errors.New("network offline")
)

// SyncService drains the action queue and refreshes the content cache.
// Only one run is active per instance; concurrent triggers are rejected.
type SyncService struct {
	queue      ActionQueue
	cache      ContentCache
	remote     RemoteAPI
	dispatcher *Dispatcher
	network    NetworkStatus
	syncState  SyncStateStore
	publisher  Publisher
	audio      AudioPrefetcher
	logger     *slog.Logger
	config     config.SyncConfig
	deviceID   string
	now        func() time.Time

	mu         sync.Mutex
	phase      domain.SyncPhase
	lastResult *domain.SyncResult
}

func NewSyncService(
	queue ActionQueue,
	cache ContentCache,
	remote RemoteAPI,
	network NetworkStatus,
	syncState SyncStateStore,
	publisher Publisher,
	audio AudioPrefetcher,
	logger *slog.Logger,
	cfg config.SyncConfig,
	deviceID string,
) *SyncService {
	return &SyncService{
		queue:      queue,
		cache:      cache,
		remote:     remote,
		dispatcher: NewDispatcher(remote),
		network:    network,
		syncState:  syncState,
		publisher:  publisher,
		audio:      audio,
		logger:     logger.With("component", "sync", "device_id", deviceID),
		config:     cfg,
		deviceID:   deviceID,
		now:        time.Now,
		phase:      domain.PhaseIdle,
	}
}

func (s *SyncService) Phase() domain.SyncPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// LastResult returns the result of the most recent completed run, or nil.
func (s *SyncService) LastResult() *domain.SyncResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

func (s *SyncService) PendingCount(ctx context.Context) (int, error) {
	return s.queue.QueueSize(ctx)
}

// Sync runs Idle -> Draining -> Refreshing -> Idle. It returns ErrOffline or
// ErrSyncInProgress without doing any work when the run cannot start.
func (s *SyncService) Sync(ctx context.Context, trigger domain.Trigger) (*domain.SyncResult, error) {
	if !s.network.IsOnline() {
		return nil, ErrOffline
	}
	if !s.begin() {
		return nil, ErrSyncInProgress
	}
	defer s.setPhase(domain.PhaseIdle)

	startTime := time.Now()
	s.logger.Info("starting sync", "trigger", trigger)

	result := &domain.SyncResult{Trigger: trigger}

	s.drain(ctx, result)

	s.setPhase(domain.PhaseRefreshing)
	s.refresh(ctx, result)

	result.Duration = time.Since(startTime)

	s.mu.Lock()
	s.lastResult = result
	s.mu.Unlock()

	s.logger.Info("sync completed",
		"trigger", trigger,
		"replayed", result.Success,
		"failed", result.Failed,
		"refreshed", result.Refreshed,
		"refresh_errors", result.RefreshErrors,
		"duration", result.Duration,
	)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, s.event(result)); err != nil {
			s.logger.Warn("publish sync event", "error", err)
		}
	}

	if err := s.updateSyncState(context.WithoutCancel(ctx), result); err != nil {
		return result, fmt.Errorf("update sync state: %w", err)
	}

	return result, nil
}

func (s *SyncService) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseIdle {
		return false
	}
	s.phase = domain.PhaseDraining
	return true
}

func (s *SyncService) setPhase(p domain.SyncPhase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

// drain replays one snapshot of pending actions in FIFO order. Once started it
// runs every action to completion: neither dispatch nor queue bookkeeping
// observes ctx cancellation, and per-call deadlines come from the remote client.
func (s *SyncService) drain(ctx context.Context, result *domain.SyncResult) {
	drainCtx := context.WithoutCancel(ctx)

	actions, err := s.queue.PendingActions(drainCtx, s.config.BatchSize)
	if err != nil {
		s.logger.Error("load pending actions", "error", err)
		return
	}
	if len(actions) == 0 {
		s.logger.Debug("action queue empty")
		return
	}

	s.logger.Info("draining action queue", "count", len(actions))

	for _, action := range actions {
		log := s.logger.With("action_id", action.ID, "action", action.Key().String(), "entity_id", action.EntityID)

		if err := s.queue.MarkProcessing(drainCtx, action.ID); err != nil {
			log.Error("mark processing", "error", err)
			result.Failed++
			continue
		}

		err := s.dispatcher.Dispatch(drainCtx, action)
		if err == nil {
			if err := s.queue.MarkCompleted(drainCtx, action.ID); err != nil {
				log.Error("mark completed", "error", err)
			}
			result.Success++
			continue
		}

		retry := retryable(err)
		if errors.Is(err, ErrUnmappedAction) {
			log.Warn("no handler for queued action")
		} else {
			log.Warn("replay failed", "retry_count", action.RetryCount, "retry", retry, "error", err)
		}

		if err := s.queue.MarkFailed(drainCtx, action.ID, retry); err != nil {
			log.Error("mark failed", "error", err)
		}
		result.Failed++
	}
}

// refresh re-fetches the content snapshot. Each sub-fetch fails on its own.
func (s *SyncService) refresh(ctx context.Context, result *domain.SyncResult) {
	steps := []struct {
		table domain.Table
		fetch func(ctx context.Context) ([]domain.Cacheable, error)
	}{
		{domain.TableNews, func(ctx context.Context) ([]domain.Cacheable, error) {
			items, err := s.remote.ListNews(ctx)
			return domain.AsCacheable(items), err
		}},
		{domain.TableArticles, func(ctx context.Context) ([]domain.Cacheable, error) {
			items, err := s.remote.ListArticles(ctx)
			return domain.AsCacheable(items), err
		}},
		{domain.TableFeasts, func(ctx context.Context) ([]domain.Cacheable, error) {
			items, err := s.remote.ListFeasts(ctx)
			return domain.AsCacheable(items), err
		}},
		{domain.TableReadings, s.fetchTodaysReading},
	}

	for _, step := range steps {
		items, err := step.fetch(ctx)
		if err != nil {
			s.logger.Error("refresh failed", "table", step.table, "error", err)
			result.RefreshErrors++
			continue
		}

		if err := s.cache.Put(ctx, step.table, items); err != nil {
			s.logger.Error("cache refresh", "table", step.table, "error", err)
			result.RefreshErrors++
			continue
		}

		result.Refreshed += len(items)
		s.logger.Debug("refreshed", "table", step.table, "count", len(items))
	}
}

func (s *SyncService) fetchTodaysReading(ctx context.Context) ([]domain.Cacheable, error) {
	date := domain.ReadingDate(s.now())

	reading, err := s.remote.GetReading(ctx, date)
	if err != nil {
		return nil, err
	}

	if s.audio != nil && reading.AudioURL != nil && *reading.AudioURL != "" {
		s.audio.Prefetch(ctx, "reading_"+reading.Date, *reading.AudioURL)
	}

	return []domain.Cacheable{*reading}, nil
}

func (s *SyncService) updateSyncState(ctx context.Context, result *domain.SyncResult) error {
	state, err := s.syncState.Get(ctx, s.deviceID)
	if err != nil {
		return err
	}

	state.DeviceID = s.deviceID
	state.LastSyncedAt = s.now()
	state.TotalReplayed += int64(result.Success)
	state.TotalFailed += int64(result.Failed)

	return s.syncState.Update(ctx, state)
}

func (s *SyncService) event(result *domain.SyncResult) *domain.SyncEvent {
	return &domain.SyncEvent{
		DeviceID:      s.deviceID,
		Trigger:       result.Trigger,
		Replayed:      result.Success,
		Failed:        result.Failed,
		Refreshed:     result.Refreshed,
		RefreshErrors: result.RefreshErrors,
		DurationMs:    result.Duration.Milliseconds(),
		Timestamp:     s.now(),
	}
}
