// Package network tracks connectivity to the remote API.
package network

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"offline_sync/internal/domain"
)

// Prober checks whether the remote side is reachable.
type Prober interface {
	Probe(ctx context.Context) error
}

// Monitor holds the current connectivity state and fans out changes to subscribers.
// It does not debounce: every change is published.
type Monitor struct {
	prober   Prober
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	mu    sync.RWMutex
	state domain.NetworkState
	subs  map[chan domain.NetworkState]struct{}
}

func NewMonitor(prober Prober, interval, timeout time.Duration, logger *slog.Logger) *Monitor {
	return &Monitor{
		prober:   prober,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("component", "network_monitor"),
		state:    domain.NetworkState{IsLoading: true},
		subs:     make(map[chan domain.NetworkState]struct{}),
	}
}

func (m *Monitor) State() domain.NetworkState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Monitor) IsOnline() bool {
	return !m.State().IsOffline
}

// Subscribe returns a channel carrying every state change and a function that
// unsubscribes. The channel keeps only the latest undelivered state.
func (m *Monitor) Subscribe() (<-chan domain.NetworkState, func()) {
	ch := make(chan domain.NetworkState, 1)

	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, ch)
			m.mu.Unlock()
			close(ch)
		})
	}
}

// Set records an externally observed connectivity state.
func (m *Monitor) Set(online bool) {
	next := domain.NetworkState{IsOffline: !online, IsLoading: false}

	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.state
	if prev == next {
		return
	}
	m.state = next

	if prev.IsOffline != next.IsOffline {
		m.logger.Info("connectivity changed", "was_offline", prev.IsOffline, "is_offline", next.IsOffline)
	}

	for ch := range m.subs {
		select {
		case ch <- next:
		default:
			// drop the stale value and keep the latest
			select {
			case <-ch:
			default:
			}
			ch <- next
		}
	}
}

// Run probes immediately and then every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("network monitor started", "interval", m.interval)

	m.check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("network monitor stopped")
			return ctx.Err()
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

// Check runs a single probe and records the outcome.
func (m *Monitor) Check(ctx context.Context) bool {
	m.check(ctx)
	return m.IsOnline()
}

func (m *Monitor) check(ctx context.Context) {
	probeCtx := ctx
	if m.timeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	err := m.prober.Probe(probeCtx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Debug("probe failed", "error", err)
	}
	m.Set(err == nil)
}
