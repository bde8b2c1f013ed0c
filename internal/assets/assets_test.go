package assets

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	"offline_sync/internal/domain"
	"offline_sync/internal/storage/sqlite"
)

type AssetCacheSuite struct {
	suite.Suite
	ctx       context.Context
	db        *sqlx.DB
	store     *sqlite.AudioCacheStore
	cache     *Cache
	server    *httptest.Server
	downloads atomic.Int32
	now       time.Time
}

func (s *AssetCacheSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	s.downloads.Store(0)

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing.mp3":
			w.WriteHeader(http.StatusNotFound)
		case "/moved.mp3":
			w.WriteHeader(http.StatusNoContent)
		default:
			s.downloads.Add(1)
			w.Write([]byte("ID3 audio bytes"))
		}
	}))

	dir := s.T().TempDir()
	db, err := sqlite.Open(s.ctx, filepath.Join(dir, "assets.db"))
	s.Require().NoError(err)
	s.db = db
	s.store = sqlite.NewAudioCacheStore(db)

	cache, err := New(dir, s.store, s.server.Client(), 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)
	cache.now = func() time.Time { return s.now }
	s.cache = cache
}

func (s *AssetCacheSuite) TearDownTest() {
	s.server.Close()
	s.db.Close()
}

func TestAssetCacheSuite(t *testing.T) {
	suite.Run(t, new(AssetCacheSuite))
}

func (s *AssetCacheSuite) TestEnsure_DownloadsOnceThenRefreshesExpiry() {
	url := s.server.URL + "/a1.mp3"

	first, err := s.cache.Ensure(s.ctx, "a1", url)
	s.Require().NoError(err)
	s.Equal(filepath.Join(s.cache.Dir(), "a1.mp3"), first)

	data, err := os.ReadFile(first)
	s.Require().NoError(err)
	s.Equal("ID3 audio bytes", string(data))

	s.now = s.now.Add(2 * 24 * time.Hour)

	second, err := s.cache.Ensure(s.ctx, "a1", url)
	s.Require().NoError(err)
	s.Equal(first, second)
	s.Equal(int32(1), s.downloads.Load())

	entry, err := s.store.Get(s.ctx, "a1")
	s.Require().NoError(err)
	s.True(entry.ExpiresAt.Equal(s.now.Add(DefaultTTL)))
}

func (s *AssetCacheSuite) TestEnsure_SelfHealsMissingFile() {
	url := s.server.URL + "/a1.mp3"

	p, err := s.cache.Ensure(s.ctx, "a1", url)
	s.Require().NoError(err)
	s.Require().NoError(os.Remove(p))

	healed, err := s.cache.Ensure(s.ctx, "a1", url)
	s.Require().NoError(err)
	s.FileExists(healed)
	s.Equal(int32(2), s.downloads.Load())

	entry, err := s.store.Get(s.ctx, "a1")
	s.Require().NoError(err)
	s.Equal(healed, entry.LocalPath)
}

func (s *AssetCacheSuite) TestEnsure_FailedDownloadWritesNoRow() {
	for _, p := range []string{"/missing.mp3", "/moved.mp3"} {
		_, err := s.cache.Ensure(s.ctx, "bad", s.server.URL+p)
		s.ErrorIs(err, ErrDownloadFailed)

		_, err = s.store.Get(s.ctx, "bad")
		s.ErrorIs(err, domain.ErrNotFound)
	}

	files, err := os.ReadDir(s.cache.Dir())
	s.NoError(err)
	s.Empty(files)
}

func (s *AssetCacheSuite) TestEnsure_UnreachableHost() {
	url := s.server.URL + "/a1.mp3"
	s.server.Close()

	_, err := s.cache.Ensure(s.ctx, "a1", url)
	s.ErrorIs(err, ErrDownloadFailed)
}

func (s *AssetCacheSuite) TestEnsure_RejectsPathLikeIDs() {
	_, err := s.cache.Ensure(s.ctx, "../escape", s.server.URL+"/a1.mp3")
	s.Error(err)
	s.Zero(s.downloads.Load())
}

func (s *AssetCacheSuite) TestLookup() {
	_, ok, err := s.cache.Lookup(s.ctx, "a1")
	s.NoError(err)
	s.False(ok)

	p, err := s.cache.Ensure(s.ctx, "a1", s.server.URL+"/a1.ogg")
	s.Require().NoError(err)
	s.Equal(".ogg", filepath.Ext(p))

	got, ok, err := s.cache.Lookup(s.ctx, "a1")
	s.NoError(err)
	s.True(ok)
	s.Equal(p, got)

	s.Require().NoError(os.Remove(p))

	_, ok, err = s.cache.Lookup(s.ctx, "a1")
	s.NoError(err)
	s.False(ok)

	_, err = s.store.Get(s.ctx, "a1")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *AssetCacheSuite) TestPrefetch_SwallowsErrors() {
	s.cache.Prefetch(s.ctx, "ok", s.server.URL+"/ok.mp3")
	s.cache.Prefetch(s.ctx, "bad", s.server.URL+"/missing.mp3")
	s.cache.Wait()

	_, ok, err := s.cache.Lookup(s.ctx, "ok")
	s.NoError(err)
	s.True(ok)

	_, ok, err = s.cache.Lookup(s.ctx, "bad")
	s.NoError(err)
	s.False(ok)
}

func (s *AssetCacheSuite) TestSweepExpired_RemovesFilesAndRows() {
	old, err := s.cache.Ensure(s.ctx, "old", s.server.URL+"/old.mp3")
	s.Require().NoError(err)

	s.now = s.now.Add(5 * 24 * time.Hour)
	fresh, err := s.cache.Ensure(s.ctx, "fresh", s.server.URL+"/fresh.mp3")
	s.Require().NoError(err)

	gone, err := s.cache.Ensure(s.ctx, "gone", s.server.URL+"/gone.mp3")
	s.Require().NoError(err)
	s.Require().NoError(s.store.Touch(s.ctx, "gone", s.now.Add(-time.Hour)))
	s.Require().NoError(os.Remove(gone))

	s.now = s.now.Add(3 * 24 * time.Hour)

	n, err := s.cache.SweepExpired(s.ctx)
	s.NoError(err)
	s.Equal(2, n)

	s.NoFileExists(old)
	s.FileExists(fresh)

	all, err := s.store.ListAll(s.ctx)
	s.NoError(err)
	s.Require().Len(all, 1)
	s.Equal("fresh", all[0].ID)
}

type failingDeleteStore struct {
	*sqlite.AudioCacheStore
	failID string
}

func (f *failingDeleteStore) Delete(ctx context.Context, id string) error {
	if id == f.failID {
		return errors.New("database is locked")
	}
	return f.AudioCacheStore.Delete(ctx, id)
}

func (s *AssetCacheSuite) TestSweepExpired_ReportsRowsDeletedBeforeFailure() {
	_, err := s.cache.Ensure(s.ctx, "first", s.server.URL+"/first.mp3")
	s.Require().NoError(err)
	s.Require().NoError(s.store.Touch(s.ctx, "first", s.now.Add(-2*time.Hour)))
	_, err = s.cache.Ensure(s.ctx, "second", s.server.URL+"/second.mp3")
	s.Require().NoError(err)
	s.Require().NoError(s.store.Touch(s.ctx, "second", s.now.Add(-time.Hour)))

	s.cache.store = &failingDeleteStore{AudioCacheStore: s.store, failID: "second"}

	n, err := s.cache.SweepExpired(s.ctx)
	s.Error(err)
	s.Equal(1, n)

	all, err := s.store.ListAll(s.ctx)
	s.NoError(err)
	s.Require().Len(all, 1)
	s.Equal("second", all[0].ID)
}

func (s *AssetCacheSuite) TestClearAll() {
	p, err := s.cache.Ensure(s.ctx, "a1", s.server.URL+"/a1.mp3")
	s.Require().NoError(err)

	s.NoError(s.cache.ClearAll(s.ctx))

	s.NoFileExists(p)
	s.DirExists(s.cache.Dir())

	all, err := s.store.ListAll(s.ctx)
	s.NoError(err)
	s.Empty(all)
}

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"https://x/a1.mp3":         ".mp3",
		"https://x/a1.M4A?sig=abc": ".m4a",
		"https://x/stream":         ".mp3",
		"https://x/a1.verylongext": ".mp3",
		"://bad":                   ".mp3",
	}
	for in, want := range cases {
		if got := extension(in); got != want {
			t.Errorf("extension(%q) = %q, want %q", in, got, want)
		}
	}
}
