package sqlite

import (
	"time"

	"offline_sync/internal/domain"
)

func (s *StoreSuite) TestSyncStateStore_GetNew() {
	store := NewSyncStateStore(s.db)

	state, err := store.Get(s.ctx, "device-1")
	s.NoError(err)
	s.NotNil(state)
	s.Equal("device-1", state.DeviceID)
	s.True(state.LastSyncedAt.IsZero())
	s.Equal(int64(0), state.TotalReplayed)
}

func (s *StoreSuite) TestSyncStateStore_UpdateAndGet() {
	store := NewSyncStateStore(s.db)

	state := &domain.SyncState{
		DeviceID:      "device-1",
		LastSyncedAt:  s.now,
		TotalReplayed: 10,
		TotalFailed:   1,
	}
	s.NoError(store.Update(s.ctx, state))

	state.TotalReplayed = 12
	state.LastSyncedAt = s.now.Add(time.Hour)
	s.NoError(store.Update(s.ctx, state))

	got, err := store.Get(s.ctx, "device-1")
	s.NoError(err)
	s.Equal(int64(12), got.TotalReplayed)
	s.Equal(int64(1), got.TotalFailed)
	s.WithinDuration(s.now.Add(time.Hour), got.LastSyncedAt, time.Millisecond)
}
