// Package assets caches remote audio files on local disk.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"offline_sync/internal/domain"
)

// ErrDownloadFailed is returned when an asset could not be fetched. No row is written.
var ErrDownloadFailed = errors.New("download failed")

const (
	DefaultTTL = 7 * 24 * time.Hour

	defaultExt = ".mp3"
)

type Store interface {
	Get(ctx context.Context, id string) (*domain.AudioCacheEntry, error)
	Upsert(ctx context.Context, e domain.AudioCacheEntry) error
	Touch(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
	ListExpired(ctx context.Context, now time.Time) ([]domain.AudioCacheEntry, error)
	ListAll(ctx context.Context) ([]domain.AudioCacheEntry, error)
	DeleteAll(ctx context.Context) error
}

// Cache handles local caching of audio assets under <cacheDir>/audio.
type Cache struct {
	dir        string
	store      Store
	httpClient *http.Client
	ttl        time.Duration
	now        func() time.Time
	logger     *slog.Logger
	inflight   sync.WaitGroup
}

// New creates the audio directory under cacheDir if needed.
func New(cacheDir string, store Store, httpClient *http.Client, ttl time.Duration, logger *slog.Logger) (*Cache, error) {
	dir := filepath.Join(cacheDir, "audio")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{
		dir:        dir,
		store:      store,
		httpClient: httpClient,
		ttl:        ttl,
		now:        time.Now,
		logger:     logger.With("component", "asset_cache"),
	}, nil
}

func (c *Cache) Dir() string {
	return c.dir
}

// Ensure returns the local path of the asset, downloading it when it is not cached
// or its file has gone missing. A hit extends the expiry without re-downloading.
func (c *Cache) Ensure(ctx context.Context, id, remoteURL string) (string, error) {
	if err := validateID(id); err != nil {
		return "", err
	}

	entry, err := c.store.Get(ctx, id)
	switch {
	case err == nil:
		if fileExists(entry.LocalPath) {
			if err := c.store.Touch(ctx, id, c.now().Add(c.ttl)); err != nil {
				return "", fmt.Errorf("refresh audio expiry: %w", err)
			}
			return entry.LocalPath, nil
		}
		c.logger.Warn("cached audio file missing, re-downloading", "id", id, "path", entry.LocalPath)
		if err := c.store.Delete(ctx, id); err != nil {
			return "", fmt.Errorf("delete dangling audio row: %w", err)
		}
	case errors.Is(err, domain.ErrNotFound):
	default:
		return "", fmt.Errorf("get audio entry: %w", err)
	}

	localPath := c.localPath(id, remoteURL)
	if err := c.download(ctx, remoteURL, localPath); err != nil {
		return "", err
	}

	now := c.now()
	err = c.store.Upsert(ctx, domain.AudioCacheEntry{
		ID:        id,
		RemoteURL: remoteURL,
		LocalPath: localPath,
		CachedAt:  now,
		ExpiresAt: now.Add(c.ttl),
	})
	if err != nil {
		return "", fmt.Errorf("save audio entry: %w", err)
	}

	c.logger.Debug("audio cached", "id", id, "path", localPath)
	return localPath, nil
}

// Lookup returns the cached path without downloading. A row whose file is gone
// is removed and reported as a miss.
func (c *Cache) Lookup(ctx context.Context, id string) (string, bool, error) {
	entry, err := c.store.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get audio entry: %w", err)
	}

	if !fileExists(entry.LocalPath) {
		if err := c.store.Delete(ctx, id); err != nil {
			return "", false, fmt.Errorf("delete dangling audio row: %w", err)
		}
		return "", false, nil
	}
	return entry.LocalPath, true, nil
}

// Prefetch caches the asset in the background. Failures are logged and dropped.
func (c *Cache) Prefetch(ctx context.Context, id, remoteURL string) {
	ctx = context.WithoutCancel(ctx)

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		if _, err := c.Ensure(ctx, id, remoteURL); err != nil {
			c.logger.Debug("background audio caching failed", "id", id, "error", err)
		}
	}()
}

// Wait blocks until every Prefetch started so far has finished.
func (c *Cache) Wait() {
	c.inflight.Wait()
}

// SweepExpired deletes expired rows together with their files. On error it
// still reports how many rows were deleted before the failure.
func (c *Cache) SweepExpired(ctx context.Context) (int, error) {
	expired, err := c.store.ListExpired(ctx, c.now())
	if err != nil {
		return 0, fmt.Errorf("list expired audio: %w", err)
	}

	removed := 0
	for _, e := range expired {
		if err := os.Remove(e.LocalPath); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("remove expired audio file", "path", e.LocalPath, "error", err)
		}
		if err := c.store.Delete(ctx, e.ID); err != nil {
			return removed, fmt.Errorf("delete audio entry %s: %w", e.ID, err)
		}
		removed++
	}

	return removed, nil
}

// ClearAll removes every cached file and row.
func (c *Cache) ClearAll(ctx context.Context) error {
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("remove audio dir: %w", err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create audio dir: %w", err)
	}
	if err := c.store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete audio entries: %w", err)
	}
	c.logger.Info("audio cache cleared")
	return nil
}

func (c *Cache) localPath(id, remoteURL string) string {
	return filepath.Join(c.dir, id+extension(remoteURL))
}

func (c *Cache) download(ctx context.Context, remoteURL, localPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrDownloadFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned status %d", ErrDownloadFailed, remoteURL, resp.StatusCode)
	}

	// Temp file in the same directory so the rename is atomic
	tmpFile, err := os.CreateTemp(c.dir, ".audio_tmp_")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("%w: read body: %v", ErrDownloadFailed, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, localPath); err != nil {
		return fmt.Errorf("move audio into place: %w", err)
	}
	return nil
}

// extension returns the file extension of the URL path, or .mp3.
func extension(remoteURL string) string {
	u, err := url.Parse(remoteURL)
	if err != nil {
		return defaultExt
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" || len(ext) > 6 {
		return defaultExt
	}
	return ext
}

func validateID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("invalid asset id %q", id)
	}
	return nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
