package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"offline_sync/internal/cache"
	"offline_sync/internal/config"
	"offline_sync/internal/domain"
	"offline_sync/internal/network"
	"offline_sync/internal/service/mocks"
	"offline_sync/internal/storage/sqlite"
)

// EndToEndTestSuite runs the services against a real store with only the remote API mocked.
type EndToEndTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
	ctx  context.Context
	db   *sqlx.DB

	remote    *mocks.MockRemoteAPI
	queue     *sqlite.ActionQueue
	bookmarks *sqlite.BookmarkStore
	content   *cache.ContentCache
	monitor   *network.Monitor

	sync    *SyncService
	actions *ActionService
}

func (s *EndToEndTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()

	db, err := sqlite.Open(s.ctx, filepath.Join(s.T().TempDir(), "e2e.db"))
	s.Require().NoError(err)
	s.db = db

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.remote = mocks.NewMockRemoteAPI(s.ctrl)
	s.queue = sqlite.NewActionQueue(db)
	s.bookmarks = sqlite.NewBookmarkStore(db)
	s.content = cache.New(sqlite.NewContentCacheStore(db), cache.DefaultPolicy(), logger)
	s.monitor = network.NewMonitor(network.StaticProber{}, time.Hour, 0, logger)

	s.sync = NewSyncService(
		s.queue,
		s.content,
		s.remote,
		s.monitor,
		sqlite.NewSyncStateStore(db),
		nil,
		nil,
		logger,
		config.SyncConfig{BatchSize: 50},
		"device-e2e",
	)
	s.actions = NewActionService(s.queue, s.bookmarks, s.remote, s.monitor, sqlite.NewTransactionManager(db), logger)
}

func (s *EndToEndTestSuite) TearDownTest() {
	s.ctrl.Finish()
	s.db.Close()
}

func TestEndToEndTestSuite(t *testing.T) {
	suite.Run(t, new(EndToEndTestSuite))
}

func (s *EndToEndTestSuite) allowRefresh() {
	s.remote.EXPECT().ListNews(gomock.Any()).Return([]domain.News{{ID: "n1", Title: "Fresh"}}, nil).AnyTimes()
	s.remote.EXPECT().ListArticles(gomock.Any()).Return(nil, nil).AnyTimes()
	s.remote.EXPECT().ListFeasts(gomock.Any()).Return(nil, nil).AnyTimes()
	s.remote.EXPECT().GetReading(gomock.Any(), gomock.Any()).Return(nil, errors.New("not published yet")).AnyTimes()
}

func (s *EndToEndTestSuite) TestOfflineLikeReplayedOnReconnect() {
	s.monitor.Set(false)

	receipt, err := s.actions.Submit(s.ctx, domain.ActionLike, domain.EntityNews, "n1", nil)
	s.Require().NoError(err)
	s.Equal(domain.StateQueued, receipt.State)

	size, err := s.queue.QueueSize(s.ctx)
	s.NoError(err)
	s.Equal(1, size)

	_, err = s.sync.Sync(s.ctx, domain.TriggerReconnect)
	s.ErrorIs(err, ErrOffline)

	s.monitor.Set(true)
	s.remote.EXPECT().ToggleReaction(gomock.Any(), domain.EntityNews, "n1", "like").Return(nil).Times(1)
	s.allowRefresh()

	result, err := s.sync.Sync(s.ctx, domain.TriggerReconnect)
	s.Require().NoError(err)
	s.Equal(1, result.Success)
	s.Equal(1, result.RefreshErrors)

	size, err = s.queue.QueueSize(s.ctx)
	s.NoError(err)
	s.Equal(0, size)

	state, err := s.actions.State(s.ctx, receipt.ActionID)
	s.NoError(err)
	s.Equal(domain.StateConfirmedRemote, state)

	news, err := cache.GetAll[domain.News](s.ctx, s.content, domain.TableNews, 10)
	s.NoError(err)
	s.Require().Len(news, 1)
	s.Equal("Fresh", news[0].Title)
}

func (s *EndToEndTestSuite) TestRetryCapEndsInRejected() {
	s.monitor.Set(false)
	receipt, err := s.actions.Submit(s.ctx, domain.ActionComment, domain.EntityArticle, "a1", []byte(`{"text":"Amen"}`))
	s.Require().NoError(err)

	s.monitor.Set(true)
	s.remote.EXPECT().AddComment(gomock.Any(), domain.EntityArticle, "a1", domain.CommentPayload{Text: "Amen"}).
		Return(errors.New("503 service unavailable")).Times(domain.MaxRetries)
	s.allowRefresh()

	for i := 0; i < domain.MaxRetries+1; i++ {
		_, err := s.sync.Sync(s.ctx, domain.TriggerManual)
		s.Require().NoError(err)
	}

	state, err := s.actions.State(s.ctx, receipt.ActionID)
	s.NoError(err)
	s.Equal(domain.StateRejected, state)

	pending, err := s.queue.PendingActions(s.ctx, 0)
	s.NoError(err)
	s.Empty(pending)
}

func (s *EndToEndTestSuite) TestOfflineBookmarkToggle() {
	s.monitor.Set(false)

	bookmarked, first, err := s.actions.ToggleBookmark(s.ctx, domain.BookmarkNews, "n1", []byte(`{"id":"n1"}`))
	s.Require().NoError(err)
	s.True(bookmarked)
	s.Equal(domain.StateQueued, first.State)

	ok, err := s.bookmarks.IsBookmarked(s.ctx, domain.BookmarkNews, "n1")
	s.NoError(err)
	s.True(ok)

	bookmarked, _, err = s.actions.ToggleBookmark(s.ctx, domain.BookmarkNews, "n1", nil)
	s.Require().NoError(err)
	s.False(bookmarked)

	list, err := s.bookmarks.List(s.ctx, "")
	s.NoError(err)
	s.Empty(list)

	pending, err := s.queue.PendingActions(s.ctx, 0)
	s.NoError(err)
	s.Len(pending, 2)

	s.monitor.Set(true)
	s.remote.EXPECT().ToggleBookmark(gomock.Any(), domain.EntityNews, "n1").Return(nil).Times(2)
	s.allowRefresh()

	result, err := s.sync.Sync(s.ctx, domain.TriggerManual)
	s.Require().NoError(err)
	s.Equal(2, result.Success)
}

func (s *EndToEndTestSuite) TestCancelMidDrainReplaysEveryAction() {
	s.monitor.Set(false)
	ids := make([]string, 0, 3)
	for _, entityID := range []string{"n1", "n2", "n3"} {
		receipt, err := s.actions.Submit(s.ctx, domain.ActionLike, domain.EntityNews, entityID, nil)
		s.Require().NoError(err)
		ids = append(ids, receipt.ActionID)
	}

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	s.monitor.Set(true)
	s.remote.EXPECT().ToggleReaction(gomock.Any(), domain.EntityNews, "n1", "like").DoAndReturn(
		func(ctx context.Context, _ domain.EntityType, _ string, _ string) error {
			cancel()
			return ctx.Err()
		},
	)
	s.remote.EXPECT().ToggleReaction(gomock.Any(), domain.EntityNews, gomock.Any(), "like").DoAndReturn(
		func(ctx context.Context, _ domain.EntityType, _ string, _ string) error {
			return ctx.Err()
		},
	).Times(2)
	s.allowRefresh()

	result, err := s.sync.Sync(ctx, domain.TriggerManual)
	s.Require().NoError(err)
	s.Equal(3, result.Success)
	s.Equal(0, result.Failed)

	for _, id := range ids {
		state, err := s.actions.State(s.ctx, id)
		s.NoError(err)
		s.Equal(domain.StateConfirmedRemote, state)
	}

	size, err := s.queue.QueueSize(s.ctx)
	s.NoError(err)
	s.Equal(0, size)

	failed, err := s.queue.FailedActions(s.ctx)
	s.NoError(err)
	s.Empty(failed)
}
