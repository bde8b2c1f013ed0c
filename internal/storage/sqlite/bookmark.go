package sqlite

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"offline_sync/internal/domain"
)

type bookmarkRow struct {
	ID        string `db:"id"`
	Type      string `db:"type"`
	EntityID  string `db:"entity_id"`
	Data      []byte `db:"data"`
	CreatedAt int64  `db:"created_at"`
}

// BookmarkStore holds user favourites. Rows never expire.
type BookmarkStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewBookmarkStore(db *sqlx.DB) *BookmarkStore {
	return &BookmarkStore{db: db, now: time.Now}
}

func (s *BookmarkStore) Save(ctx context.Context, t domain.BookmarkType, entityID string, data []byte) error {
	query := `
		INSERT INTO bookmarks (id, type, entity_id, data, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (type, entity_id) DO UPDATE SET
			data = excluded.data,
			created_at = excluded.created_at`

	if data == nil {
		data = []byte{}
	}

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		domain.BookmarkID(t, entityID),
		string(t),
		entityID,
		data,
		toMillis(s.now()),
	)
	return err
}

func (s *BookmarkStore) Remove(ctx context.Context, t domain.BookmarkType, entityID string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM bookmarks WHERE type = ? AND entity_id = ?",
		string(t), entityID,
	)
	return err
}

func (s *BookmarkStore) IsBookmarked(ctx context.Context, t domain.BookmarkType, entityID string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &exists,
		"SELECT EXISTS (SELECT 1 FROM bookmarks WHERE type = ? AND entity_id = ?)",
		string(t), entityID,
	)
	return exists, err
}

// List returns bookmarks newest first. An empty type returns every bookmark.
func (s *BookmarkStore) List(ctx context.Context, t domain.BookmarkType) ([]domain.Bookmark, error) {
	query := "SELECT id, type, entity_id, data, created_at FROM bookmarks"
	var args []interface{}
	if t != "" {
		query += " WHERE type = ?"
		args = append(args, string(t))
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	var rows []bookmarkRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, args...); err != nil {
		return nil, err
	}

	bookmarks := make([]domain.Bookmark, 0, len(rows))
	for _, r := range rows {
		bookmarks = append(bookmarks, domain.Bookmark{
			ID:        r.ID,
			Type:      domain.BookmarkType(r.Type),
			EntityID:  r.EntityID,
			Data:      r.Data,
			CreatedAt: fromMillis(r.CreatedAt),
		})
	}
	return bookmarks, nil
}

func (s *BookmarkStore) Clear(ctx context.Context) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, "DELETE FROM bookmarks")
	return err
}
