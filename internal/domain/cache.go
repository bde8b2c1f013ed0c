package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("not found")

// Table names one logical partition of the content cache.
type Table string

const (
	TableNews     Table = "news"
	TableArticles Table = "articles"
	TableFeasts   Table = "feasts"
	TableReadings Table = "readings"
)

// ContentTables lists every content cache partition.
var ContentTables = []Table{TableNews, TableArticles, TableFeasts, TableReadings}

func ParseTable(s string) (Table, error) {
	for _, t := range ContentTables {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown cache table %q", s)
}

// CacheEntry is one cached content item. A nil ExpiresAt never expires.
type CacheEntry struct {
	Key       string
	Data      []byte
	CachedAt  time.Time
	ExpiresAt *time.Time
}

func (e CacheEntry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && now.After(*e.ExpiresAt)
}

type BookmarkType string

const (
	BookmarkNews    BookmarkType = "news"
	BookmarkArticle BookmarkType = "article"
)

func ParseBookmarkType(s string) (BookmarkType, error) {
	switch BookmarkType(s) {
	case BookmarkNews, BookmarkArticle:
		return BookmarkType(s), nil
	}
	return "", fmt.Errorf("unknown bookmark type %q", s)
}

type Bookmark struct {
	ID        string
	Type      BookmarkType
	EntityID  string
	Data      []byte
	CreatedAt time.Time
}

// BookmarkID builds the "<type>_<entityId>" row id.
func BookmarkID(t BookmarkType, entityID string) string {
	return string(t) + "_" + entityID
}

type AudioCacheEntry struct {
	ID        string
	RemoteURL string
	LocalPath string
	CachedAt  time.Time
	ExpiresAt time.Time
}
