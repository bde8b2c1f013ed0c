package sqlite

import (
	"time"

	"offline_sync/internal/domain"
)

func ptrTime(t time.Time) *time.Time { return &t }

func (s *StoreSuite) TestContentCache_UpsertReplacesRow() {
	store := NewContentCacheStore(s.db)
	first := s.now
	second := s.now.Add(time.Hour)

	err := store.Upsert(s.ctx, domain.TableNews, []domain.CacheEntry{
		{Key: "n1", Data: []byte(`{"id":"n1","title":"old"}`), CachedAt: first, ExpiresAt: ptrTime(first.Add(24 * time.Hour))},
	})
	s.NoError(err)

	err = store.Upsert(s.ctx, domain.TableNews, []domain.CacheEntry{
		{Key: "n1", Data: []byte(`{"id":"n1","title":"new"}`), CachedAt: second, ExpiresAt: ptrTime(second.Add(24 * time.Hour))},
	})
	s.NoError(err)

	count, err := store.Count(s.ctx, domain.TableNews)
	s.NoError(err)
	s.Equal(1, count)

	entry, err := store.Get(s.ctx, domain.TableNews, "n1")
	s.Require().NoError(err)
	s.JSONEq(`{"id":"n1","title":"new"}`, string(entry.Data))
	s.True(entry.CachedAt.Equal(second))
	s.True(entry.ExpiresAt.Equal(second.Add(24 * time.Hour)))
}

func (s *StoreSuite) TestContentCache_DeleteExpired() {
	store := NewContentCacheStore(s.db)

	err := store.Upsert(s.ctx, domain.TableArticles, []domain.CacheEntry{
		{Key: "stale", Data: []byte(`{}`), CachedAt: s.now, ExpiresAt: ptrTime(s.now.Add(-time.Second))},
		{Key: "fresh", Data: []byte(`{}`), CachedAt: s.now, ExpiresAt: ptrTime(s.now.Add(time.Hour))},
		{Key: "forever", Data: []byte(`{}`), CachedAt: s.now},
	})
	s.NoError(err)

	deleted, err := store.DeleteExpired(s.ctx, domain.TableArticles, s.now)
	s.NoError(err)
	s.Equal(int64(1), deleted)

	_, err = store.Get(s.ctx, domain.TableArticles, "stale")
	s.ErrorIs(err, domain.ErrNotFound)

	forever, err := store.Get(s.ctx, domain.TableArticles, "forever")
	s.Require().NoError(err)
	s.Nil(forever.ExpiresAt)

	deleted, err = store.DeleteExpired(s.ctx, domain.TableArticles, s.now.Add(365*24*time.Hour))
	s.NoError(err)
	s.Equal(int64(1), deleted)

	count, err := store.Count(s.ctx, domain.TableArticles)
	s.NoError(err)
	s.Equal(1, count)
}

func (s *StoreSuite) TestContentCache_ListNewestFirstWithLimit() {
	store := NewContentCacheStore(s.db)

	for i, key := range []string{"a", "b", "c"} {
		at := s.now.Add(time.Duration(i) * time.Minute)
		err := store.Upsert(s.ctx, domain.TableFeasts, []domain.CacheEntry{
			{Key: key, Data: []byte(`{}`), CachedAt: at},
		})
		s.NoError(err)
	}

	entries, err := store.List(s.ctx, domain.TableFeasts, 2)
	s.NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("c", entries[0].Key)
	s.Equal("b", entries[1].Key)

	entries, err = store.List(s.ctx, domain.TableFeasts, 0)
	s.NoError(err)
	s.Len(entries, 3)
}

func (s *StoreSuite) TestContentCache_ReadingsKeyedByDate() {
	store := NewContentCacheStore(s.db)

	err := store.Upsert(s.ctx, domain.TableReadings, []domain.CacheEntry{
		{Key: "2026-03-01", Data: []byte(`{"date":"2026-03-01"}`), CachedAt: s.now},
	})
	s.NoError(err)

	entry, err := store.Get(s.ctx, domain.TableReadings, "2026-03-01")
	s.Require().NoError(err)
	s.Equal("2026-03-01", entry.Key)

	_, err = store.Get(s.ctx, domain.TableReadings, "2026-03-02")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *StoreSuite) TestContentCache_ClearAll() {
	store := NewContentCacheStore(s.db)

	for _, table := range domain.ContentTables {
		err := store.Upsert(s.ctx, table, []domain.CacheEntry{{Key: "k", Data: []byte(`{}`), CachedAt: s.now}})
		s.NoError(err)
	}

	s.NoError(store.ClearAll(s.ctx))

	for _, table := range domain.ContentTables {
		count, err := store.Count(s.ctx, table)
		s.NoError(err)
		s.Zero(count, table)
	}
}

func (s *StoreSuite) TestContentCache_UnknownTable() {
	store := NewContentCacheStore(s.db)

	_, err := store.List(s.ctx, domain.Table("games"), 10)
	s.Error(err)
}
