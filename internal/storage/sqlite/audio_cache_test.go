package sqlite

import (
	"time"

	"offline_sync/internal/domain"
)

func (s *StoreSuite) TestAudioCache_UpsertGetTouch() {
	store := NewAudioCacheStore(s.db)

	entry := domain.AudioCacheEntry{
		ID:        "a1",
		RemoteURL: "https://x/a1.mp3",
		LocalPath: "/tmp/audio/a1.mp3",
		CachedAt:  s.now,
		ExpiresAt: s.now.Add(7 * 24 * time.Hour),
	}
	s.NoError(store.Upsert(s.ctx, entry))

	got, err := store.Get(s.ctx, "a1")
	s.Require().NoError(err)
	s.Equal(entry.LocalPath, got.LocalPath)
	s.True(got.ExpiresAt.Equal(entry.ExpiresAt))

	later := s.now.Add(10 * 24 * time.Hour)
	s.NoError(store.Touch(s.ctx, "a1", later))

	got, err = store.Get(s.ctx, "a1")
	s.Require().NoError(err)
	s.True(got.ExpiresAt.Equal(later))

	s.ErrorIs(store.Touch(s.ctx, "missing", later), domain.ErrNotFound)

	_, err = store.Get(s.ctx, "missing")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *StoreSuite) TestAudioCache_ListExpiredAndDelete() {
	store := NewAudioCacheStore(s.db)

	s.NoError(store.Upsert(s.ctx, domain.AudioCacheEntry{
		ID: "old", RemoteURL: "u", LocalPath: "p1", CachedAt: s.now, ExpiresAt: s.now.Add(-time.Minute),
	}))
	s.NoError(store.Upsert(s.ctx, domain.AudioCacheEntry{
		ID: "new", RemoteURL: "u", LocalPath: "p2", CachedAt: s.now, ExpiresAt: s.now.Add(time.Hour),
	}))

	expired, err := store.ListExpired(s.ctx, s.now)
	s.NoError(err)
	s.Require().Len(expired, 1)
	s.Equal("old", expired[0].ID)

	s.NoError(store.Delete(s.ctx, "old"))

	all, err := store.ListAll(s.ctx)
	s.NoError(err)
	s.Require().Len(all, 1)
	s.Equal("new", all[0].ID)

	s.NoError(store.DeleteAll(s.ctx))
	all, err = store.ListAll(s.ctx)
	s.NoError(err)
	s.Empty(all)
}
