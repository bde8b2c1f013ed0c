// Package httpapi exposes the engine to the host application over a local HTTP API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"offline_sync/internal/domain"
	"offline_sync/internal/service"
)

type SyncStatus interface {
	Phase() domain.SyncPhase
	LastResult() *domain.SyncResult
	PendingCount(ctx context.Context) (int, error)
}

type SyncTrigger interface {
	TriggerNow()
}

type Actions interface {
	Submit(ctx context.Context, actionType domain.ActionType, entityType domain.EntityType, entityID string, payload []byte) (*service.Receipt, error)
	ToggleBookmark(ctx context.Context, t domain.BookmarkType, entityID string, data []byte) (bool, *service.Receipt, error)
	State(ctx context.Context, actionID string) (domain.ActionState, error)
}

// Connectivity is the network monitor as seen by the host: it reads the state and
// reports platform connectivity changes.
type Connectivity interface {
	State() domain.NetworkState
	Set(online bool)
}

type Bookmarks interface {
	List(ctx context.Context, t domain.BookmarkType) ([]domain.Bookmark, error)
}

type Content interface {
	Entries(ctx context.Context, table domain.Table, limit int) ([]domain.CacheEntry, error)
	Entry(ctx context.Context, table domain.Table, key string) (*domain.CacheEntry, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps holds the components the API serves.
type Deps struct {
	Sync      SyncStatus
	Trigger   SyncTrigger
	Actions   Actions
	Network   Connectivity
	Bookmarks Bookmarks
	Content   Content
	DB        Pinger
}

type Server struct {
	deps   Deps
	addr   string
	logger *slog.Logger
	router *gin.Engine
}

func NewServer(addr string, deps Deps, logger *slog.Logger) *Server {
	s := &Server{
		deps:   deps,
		addr:   addr,
		logger: logger.With("component", "http_api"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())

	router.GET("/health", s.health)
	router.GET("/status", s.status)
	router.POST("/sync", s.triggerSync)
	router.PUT("/network", s.setNetwork)

	router.POST("/actions", s.submitAction)
	router.GET("/actions/:id", s.actionState)

	router.GET("/bookmarks", s.listBookmarks)
	router.POST("/bookmarks/:type/:id/toggle", s.toggleBookmark)

	router.GET("/content/:table", s.listContent)
	router.GET("/content/:table/:key", s.getContent)

	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http api listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http api: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http api: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http api: %w", err)
	}
	return ctx.Err()
}
