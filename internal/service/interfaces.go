package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"offline_sync/internal/domain"
)

type ActionQueue interface {
	Enqueue(ctx context.Context, actionType domain.ActionType, entityType domain.EntityType, entityID string, payload []byte) (string, error)
	PendingActions(ctx context.Context, limit int) ([]domain.QueuedAction, error)
	Get(ctx context.Context, id string) (*domain.QueuedAction, error)
	MarkProcessing(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, shouldRetry bool) error
	QueueSize(ctx context.Context) (int, error)
}

type ContentCache interface {
	Put(ctx context.Context, table domain.Table, items []domain.Cacheable) error
}

type BookmarkStore interface {
	Save(ctx context.Context, t domain.BookmarkType, entityID string, data []byte) error
	Remove(ctx context.Context, t domain.BookmarkType, entityID string) error
	IsBookmarked(ctx context.Context, t domain.BookmarkType, entityID string) (bool, error)
}

type RemoteAPI interface {
	ListNews(ctx context.Context) ([]domain.News, error)
	ListArticles(ctx context.Context) ([]domain.Article, error)
	ListFeasts(ctx context.Context) ([]domain.Feast, error)
	GetReading(ctx context.Context, date string) (*domain.Reading, error)
	AddComment(ctx context.Context, entity domain.EntityType, id string, payload domain.CommentPayload) error
	ToggleReaction(ctx context.Context, entity domain.EntityType, id, value string) error
	ToggleBookmark(ctx context.Context, entity domain.EntityType, id string) error
}

type NetworkStatus interface {
	IsOnline() bool
}

type SyncStateStore interface {
	Get(ctx context.Context, deviceID string) (*domain.SyncState, error)
	Update(ctx context.Context, state *domain.SyncState) error
}

type AudioPrefetcher interface {
	Prefetch(ctx context.Context, id, remoteURL string)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, event *domain.SyncEvent) error
	Close() error
}
