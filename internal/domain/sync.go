package domain

import "time"

// Trigger identifies what started a sync run.
type Trigger string

const (
	TriggerReconnect Trigger = "reconnect"
	TriggerPeriodic  Trigger = "periodic"
	TriggerManual    Trigger = "manual"
)

// SyncPhase is the orchestrator state.
type SyncPhase string

const (
	PhaseIdle       SyncPhase = "idle"
	PhaseDraining   SyncPhase = "draining"
	PhaseRefreshing SyncPhase = "refreshing"
)

// SyncResult holds statistics about one sync run.
type SyncResult struct {
	Trigger       Trigger
	Success       int
	Failed        int
	Refreshed     int
	RefreshErrors int
	Duration      time.Duration
}

type SyncState struct {
	DeviceID      string
	LastSyncedAt  time.Time
	TotalReplayed int64
	TotalFailed   int64
}

// NetworkState is the current connectivity as seen by the network monitor.
type NetworkState struct {
	IsOffline bool
	IsLoading bool
}

// SyncEvent is published after every completed sync run.
type SyncEvent struct {
	DeviceID      string    `json:"device_id"`
	Trigger       Trigger   `json:"trigger"`
	Replayed      int       `json:"replayed"`
	Failed        int       `json:"failed"`
	Refreshed     int       `json:"refreshed"`
	RefreshErrors int       `json:"refresh_errors"`
	DurationMs    int64     `json:"duration_ms"`
	Timestamp     time.Time `json:"timestamp"`
}
