// Package cache implements the content cache: TTL policy and JSON codec on top of the
// content tables of the local store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"offline_sync/internal/config"
	"offline_sync/internal/domain"
)

// Store is the persistence the cache needs; storage/sqlite.ContentCacheStore implements it.
type Store interface {
	Upsert(ctx context.Context, table domain.Table, entries []domain.CacheEntry) error
	DeleteExpired(ctx context.Context, table domain.Table, now time.Time) (int64, error)
	List(ctx context.Context, table domain.Table, limit int) ([]domain.CacheEntry, error)
	Get(ctx context.Context, table domain.Table, key string) (*domain.CacheEntry, error)
	ClearAll(ctx context.Context) error
}

// Policy maps each table to its time-to-live.
type Policy map[domain.Table]time.Duration

func DefaultPolicy() Policy {
	return Policy{
		domain.TableNews:     24 * time.Hour,
		domain.TableArticles: 24 * time.Hour,
		domain.TableFeasts:   24 * time.Hour,
		domain.TableReadings: 48 * time.Hour,
	}
}

func PolicyFromConfig(cfg config.CacheConfig) Policy {
	return Policy{
		domain.TableNews:     cfg.NewsTTL,
		domain.TableArticles: cfg.ArticlesTTL,
		domain.TableFeasts:   cfg.FeastsTTL,
		domain.TableReadings: cfg.ReadingsTTL,
	}
}

type ContentCache struct {
	store  Store
	ttl    Policy
	now    func() time.Time
	logger *slog.Logger
}

func New(store Store, ttl Policy, logger *slog.Logger) *ContentCache {
	if ttl == nil {
		ttl = DefaultPolicy()
	}
	return &ContentCache{
		store:  store,
		ttl:    ttl,
		now:    time.Now,
		logger: logger.With("component", "content_cache"),
	}
}

// Put upserts items into table using the table's TTL.
func (c *ContentCache) Put(ctx context.Context, table domain.Table, items []domain.Cacheable) error {
	return c.PutWithTTL(ctx, table, c.ttl[table], items)
}

// PutWithTTL upserts items with an explicit TTL. A ttl <= 0 stores rows that never expire.
func (c *ContentCache) PutWithTTL(ctx context.Context, table domain.Table, ttl time.Duration, items []domain.Cacheable) error {
	if len(items) == 0 {
		return nil
	}

	now := c.now()
	var expiresAt *time.Time
	if ttl > 0 {
		at := now.Add(ttl)
		expiresAt = &at
	}

	entries := make([]domain.CacheEntry, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encode %s item %q: %w", table, item.CacheKey(), err)
		}
		entries = append(entries, domain.CacheEntry{
			Key:       item.CacheKey(),
			Data:      data,
			CachedAt:  now,
			ExpiresAt: expiresAt,
		})
	}

	if err := c.store.Upsert(ctx, table, entries); err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}

	c.logger.Debug("cached items", "table", table, "count", len(entries))
	return nil
}

// Entries returns up to limit live rows of table, most recently cached first.
// Expired rows of the table are deleted before reading.
func (c *ContentCache) Entries(ctx context.Context, table domain.Table, limit int) ([]domain.CacheEntry, error) {
	now, err := c.sweep(ctx, table)
	if err != nil {
		return nil, err
	}

	entries, err := c.store.List(ctx, table, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}

	live := entries[:0]
	for _, e := range entries {
		if !e.Expired(now) {
			live = append(live, e)
		}
	}
	return live, nil
}

// Entry returns one live row, or domain.ErrNotFound.
func (c *ContentCache) Entry(ctx context.Context, table domain.Table, key string) (*domain.CacheEntry, error) {
	now, err := c.sweep(ctx, table)
	if err != nil {
		return nil, err
	}

	entry, err := c.store.Get(ctx, table, key)
	if err != nil {
		return nil, err
	}
	if entry.Expired(now) {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// SweepExpired deletes expired rows from every content table.
func (c *ContentCache) SweepExpired(ctx context.Context) (int64, error) {
	var total int64
	now := c.now()
	for _, table := range domain.ContentTables {
		n, err := c.store.DeleteExpired(ctx, table, now)
		if err != nil {
			return total, fmt.Errorf("sweep %s: %w", table, err)
		}
		total += n
	}
	return total, nil
}

func (c *ContentCache) ClearAll(ctx context.Context) error {
	if err := c.store.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear content cache: %w", err)
	}
	c.logger.Info("content cache cleared")
	return nil
}

func (c *ContentCache) sweep(ctx context.Context, table domain.Table) (time.Time, error) {
	now := c.now()
	n, err := c.store.DeleteExpired(ctx, table, now)
	if err != nil {
		return now, fmt.Errorf("sweep %s: %w", table, err)
	}
	if n > 0 {
		c.logger.Debug("swept expired rows", "table", table, "count", n)
	}
	return now, nil
}

// GetAll decodes the live rows of table into T. Rows that fail to decode are
// skipped and do not count towards limit.
func GetAll[T any](ctx context.Context, c *ContentCache, table domain.Table, limit int) ([]T, error) {
	entries, err := c.Entries(ctx, table, 0)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if limit > 0 && len(out) == limit {
			break
		}
		var item T
		if err := json.Unmarshal(e.Data, &item); err != nil {
			c.logger.Warn("skipping malformed cache row", "table", table, "key", e.Key, "error", err)
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// GetOne decodes a single row. It returns nil without error when the row is absent,
// expired or malformed.
func GetOne[T any](ctx context.Context, c *ContentCache, table domain.Table, key string) (*T, error) {
	entry, err := c.Entry(ctx, table, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var item T
	if err := json.Unmarshal(entry.Data, &item); err != nil {
		c.logger.Warn("malformed cache row", "table", table, "key", key, "error", err)
		return nil, nil
	}
	return &item, nil
}
