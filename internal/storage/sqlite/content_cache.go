package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"offline_sync/internal/domain"
)

type cacheRow struct {
	Key       string        `db:"cache_key"`
	Data      []byte        `db:"data"`
	CachedAt  int64         `db:"cached_at"`
	ExpiresAt sql.NullInt64 `db:"expires_at"`
}

func (r cacheRow) toDomain() domain.CacheEntry {
	e := domain.CacheEntry{
		Key:      r.Key,
		Data:     r.Data,
		CachedAt: fromMillis(r.CachedAt),
	}
	if r.ExpiresAt.Valid {
		t := fromMillis(r.ExpiresAt.Int64)
		e.ExpiresAt = &t
	}
	return e
}

// ContentCacheStore persists cached content rows, one SQL table per domain.Table.
type ContentCacheStore struct {
	db *sqlx.DB
	tm *TransactionManager
}

func NewContentCacheStore(db *sqlx.DB) *ContentCacheStore {
	return &ContentCacheStore{db: db, tm: NewTransactionManager(db)}
}

// tableSchema maps the closed set of cache partitions to their SQL table and key column.
func tableSchema(t domain.Table) (name, key string, err error) {
	switch t {
	case domain.TableNews:
		return "news_cache", "id", nil
	case domain.TableArticles:
		return "articles_cache", "id", nil
	case domain.TableFeasts:
		return "feasts_cache", "id", nil
	case domain.TableReadings:
		return "readings_cache", "date", nil
	}
	return "", "", fmt.Errorf("unknown cache table %q", t)
}

// Upsert writes entries in one transaction. An existing key is replaced,
// including its cached_at and expires_at.
func (s *ContentCacheStore) Upsert(ctx context.Context, table domain.Table, entries []domain.CacheEntry) error {
	if len(entries) == 0 {
		return nil
	}

	name, key, err := tableSchema(table)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, data, cached_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (%[2]s) DO UPDATE SET
			data = excluded.data,
			cached_at = excluded.cached_at,
			expires_at = excluded.expires_at`, name, key)

	return s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, s.db)
		for _, e := range entries {
			var expiresAt sql.NullInt64
			if e.ExpiresAt != nil {
				expiresAt = sql.NullInt64{Int64: toMillis(*e.ExpiresAt), Valid: true}
			}
			if _, err := exec.ExecContext(txCtx, query, e.Key, e.Data, toMillis(e.CachedAt), expiresAt); err != nil {
				return fmt.Errorf("upsert %s %q: %w", table, e.Key, err)
			}
		}
		return nil
	})
}

// DeleteExpired removes rows of table whose expiry is before now.
func (s *ContentCacheStore) DeleteExpired(ctx context.Context, table domain.Table, now time.Time) (int64, error) {
	name, _, err := tableSchema(table)
	if err != nil {
		return 0, err
	}

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE expires_at IS NOT NULL AND expires_at < ?", name),
		toMillis(now),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// List returns the most recently cached rows first. A limit <= 0 returns every row.
func (s *ContentCacheStore) List(ctx context.Context, table domain.Table, limit int) ([]domain.CacheEntry, error) {
	name, key, err := tableSchema(table)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	query := fmt.Sprintf(`
		SELECT %s AS cache_key, data, cached_at, expires_at
		FROM %s
		ORDER BY cached_at DESC, rowid DESC
		LIMIT ?`, key, name)

	var rows []cacheRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, limit); err != nil {
		return nil, err
	}

	entries := make([]domain.CacheEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.toDomain())
	}
	return entries, nil
}

func (s *ContentCacheStore) Get(ctx context.Context, table domain.Table, k string) (*domain.CacheEntry, error) {
	name, key, err := tableSchema(table)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %[1]s AS cache_key, data, cached_at, expires_at FROM %[2]s WHERE %[1]s = ?", key, name)

	var row cacheRow
	err = sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, k)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	e := row.toDomain()
	return &e, nil
}

func (s *ContentCacheStore) Count(ctx context.Context, table domain.Table) (int, error) {
	name, _, err := tableSchema(table)
	if err != nil {
		return 0, err
	}

	var n int
	err = sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &n, fmt.Sprintf("SELECT COUNT(*) FROM %s", name))
	return n, err
}

// ClearAll empties every content table in one transaction.
func (s *ContentCacheStore) ClearAll(ctx context.Context) error {
	return s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, s.db)
		for _, t := range domain.ContentTables {
			name, _, err := tableSchema(t)
			if err != nil {
				return err
			}
			if _, err := exec.ExecContext(txCtx, "DELETE FROM "+name); err != nil {
				return fmt.Errorf("clear %s: %w", name, err)
			}
		}
		return nil
	})
}
