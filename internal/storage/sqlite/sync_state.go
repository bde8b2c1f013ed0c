package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"offline_sync/internal/domain"
)

type syncStateRow struct {
	DeviceID      string `db:"device_id"`
	LastSyncedAt  int64  `db:"last_synced_at"`
	TotalReplayed int64  `db:"total_replayed"`
	TotalFailed   int64  `db:"total_failed"`
}

type SyncStateStore struct {
	db *sqlx.DB
}

func NewSyncStateStore(db *sqlx.DB) *SyncStateStore {
	return &SyncStateStore{db: db}
}

func (s *SyncStateStore) Get(ctx context.Context, deviceID string) (*domain.SyncState, error) {
	var row syncStateRow
	query := `
		SELECT device_id, last_synced_at, total_replayed, total_failed
		FROM sync_state
		WHERE device_id = ?`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, deviceID)
	if errors.Is(err, sql.ErrNoRows) {
		// Return empty state for devices that never synced
		return &domain.SyncState{
			DeviceID:     deviceID,
			LastSyncedAt: time.Time{},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.SyncState{
		DeviceID:      row.DeviceID,
		LastSyncedAt:  fromMillis(row.LastSyncedAt),
		TotalReplayed: row.TotalReplayed,
		TotalFailed:   row.TotalFailed,
	}, nil
}

func (s *SyncStateStore) Update(ctx context.Context, state *domain.SyncState) error {
	query := `
		INSERT INTO sync_state (device_id, last_synced_at, total_replayed, total_failed)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (device_id) DO UPDATE SET
			last_synced_at = excluded.last_synced_at,
			total_replayed = excluded.total_replayed,
			total_failed = excluded.total_failed`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		state.DeviceID,
		toMillis(state.LastSyncedAt),
		state.TotalReplayed,
		state.TotalFailed,
	)
	return err
}
