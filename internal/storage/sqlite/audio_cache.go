package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"offline_sync/internal/domain"
)

type audioRow struct {
	ID        string `db:"id"`
	RemoteURL string `db:"remote_url"`
	LocalPath string `db:"local_path"`
	CachedAt  int64  `db:"cached_at"`
	ExpiresAt int64  `db:"expires_at"`
}

func (r audioRow) toDomain() domain.AudioCacheEntry {
	return domain.AudioCacheEntry{
		ID:        r.ID,
		RemoteURL: r.RemoteURL,
		LocalPath: r.LocalPath,
		CachedAt:  fromMillis(r.CachedAt),
		ExpiresAt: fromMillis(r.ExpiresAt),
	}
}

// AudioCacheStore records which audio assets have a local file.
type AudioCacheStore struct {
	db *sqlx.DB
}

func NewAudioCacheStore(db *sqlx.DB) *AudioCacheStore {
	return &AudioCacheStore{db: db}
}

func (s *AudioCacheStore) Get(ctx context.Context, id string) (*domain.AudioCacheEntry, error) {
	var row audioRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row,
		"SELECT id, remote_url, local_path, cached_at, expires_at FROM audio_cache WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	e := row.toDomain()
	return &e, nil
}

func (s *AudioCacheStore) Upsert(ctx context.Context, e domain.AudioCacheEntry) error {
	query := `
		INSERT INTO audio_cache (id, remote_url, local_path, cached_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			remote_url = excluded.remote_url,
			local_path = excluded.local_path,
			cached_at = excluded.cached_at,
			expires_at = excluded.expires_at`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		e.ID, e.RemoteURL, e.LocalPath, toMillis(e.CachedAt), toMillis(e.ExpiresAt))
	return err
}

// Touch moves the expiry of an existing row.
func (s *AudioCacheStore) Touch(ctx context.Context, id string, expiresAt time.Time) error {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE audio_cache SET expires_at = ? WHERE id = ?", toMillis(expiresAt), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *AudioCacheStore) Delete(ctx context.Context, id string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, "DELETE FROM audio_cache WHERE id = ?", id)
	return err
}

func (s *AudioCacheStore) ListExpired(ctx context.Context, now time.Time) ([]domain.AudioCacheEntry, error) {
	return s.list(ctx,
		"SELECT id, remote_url, local_path, cached_at, expires_at FROM audio_cache WHERE expires_at < ? ORDER BY expires_at",
		toMillis(now))
}

func (s *AudioCacheStore) ListAll(ctx context.Context) ([]domain.AudioCacheEntry, error) {
	return s.list(ctx, "SELECT id, remote_url, local_path, cached_at, expires_at FROM audio_cache ORDER BY cached_at DESC")
}

func (s *AudioCacheStore) DeleteAll(ctx context.Context) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, "DELETE FROM audio_cache")
	return err
}

func (s *AudioCacheStore) list(ctx context.Context, query string, args ...interface{}) ([]domain.AudioCacheEntry, error) {
	var rows []audioRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, args...); err != nil {
		return nil, err
	}

	entries := make([]domain.AudioCacheEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.toDomain())
	}
	return entries, nil
}
