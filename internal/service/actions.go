package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"offline_sync/internal/domain"
)

// Receipt tells the caller what became of a submitted mutation.
type Receipt struct {
	ActionID string
	State    domain.ActionState
}

// ActionService is the front door for user mutations. Online mutations go straight
// to the remote API; offline ones, and online ones that fail transiently, are queued.
type ActionService struct {
	queue      ActionQueue
	bookmarks  BookmarkStore
	dispatcher *Dispatcher
	network    NetworkStatus
	txManager  TransactionManager
	logger     *slog.Logger
}

func NewActionService(
	queue ActionQueue,
	bookmarks BookmarkStore,
	remote RemoteAPI,
	network NetworkStatus,
	txManager TransactionManager,
	logger *slog.Logger,
) *ActionService {
	return &ActionService{
		queue:      queue,
		bookmarks:  bookmarks,
		dispatcher: NewDispatcher(remote),
		network:    network,
		txManager:  txManager,
		logger:     logger.With("component", "actions"),
	}
}

func (s *ActionService) Submit(ctx context.Context, actionType domain.ActionType, entityType domain.EntityType, entityID string, payload []byte) (*Receipt, error) {
	action := domain.QueuedAction{
		ActionType: actionType,
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    payload,
	}
	if !s.dispatcher.Supports(action.Key()) {
		return nil, fmt.Errorf("%w: %s", ErrUnmappedAction, action.Key())
	}

	if !s.network.IsOnline() {
		return s.enqueue(ctx, action)
	}
	return s.deliver(ctx, action)
}

// ToggleBookmark flips the local bookmark immediately and propagates the change.
// It reports whether the entity is bookmarked afterwards.
func (s *ActionService) ToggleBookmark(ctx context.Context, t domain.BookmarkType, entityID string, data []byte) (bool, *Receipt, error) {
	action := domain.QueuedAction{
		ActionType: domain.ActionBookmark,
		EntityType: bookmarkEntity(t),
		EntityID:   entityID,
	}
	online := s.network.IsOnline()

	var bookmarked bool
	receipt := &Receipt{State: domain.StateUnconfirmedLocal}

	// Offline, the flip and the queued action commit together.
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.bookmarks.IsBookmarked(txCtx, t, entityID)
		if err != nil {
			return fmt.Errorf("check bookmark: %w", err)
		}

		if exists {
			err = s.bookmarks.Remove(txCtx, t, entityID)
		} else {
			err = s.bookmarks.Save(txCtx, t, entityID, data)
		}
		if err != nil {
			return fmt.Errorf("flip bookmark: %w", err)
		}
		bookmarked = !exists

		if online {
			return nil
		}
		id, err := s.queue.Enqueue(txCtx, action.ActionType, action.EntityType, action.EntityID, nil)
		if err != nil {
			return fmt.Errorf("enqueue action: %w", err)
		}
		receipt.ActionID = id
		receipt.State = domain.StateQueued
		return nil
	})
	if err != nil {
		return false, nil, err
	}

	if !online {
		return bookmarked, receipt, nil
	}

	delivered, err := s.deliver(ctx, action)
	if err != nil {
		return bookmarked, receipt, err
	}
	return bookmarked, delivered, nil
}

// State maps a queued action id to the state the UI should show.
// A row that no longer exists was confirmed by the remote API.
func (s *ActionService) State(ctx context.Context, actionID string) (domain.ActionState, error) {
	action, err := s.queue.Get(ctx, actionID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.StateConfirmedRemote, nil
	}
	if err != nil {
		return "", fmt.Errorf("get action: %w", err)
	}

	if action.Status == domain.StatusFailed {
		return domain.StateRejected, nil
	}
	return domain.StateQueued, nil
}

func (s *ActionService) deliver(ctx context.Context, action domain.QueuedAction) (*Receipt, error) {
	err := s.dispatcher.Dispatch(ctx, action)
	if err == nil {
		return &Receipt{State: domain.StateConfirmedRemote}, nil
	}

	if !retryable(err) {
		s.logger.Warn("remote rejected action", "action", action.Key().String(), "entity_id", action.EntityID, "error", err)
		return &Receipt{State: domain.StateRejected}, nil
	}

	s.logger.Info("remote call failed, queueing action", "action", action.Key().String(), "entity_id", action.EntityID, "error", err)
	return s.enqueue(ctx, action)
}

func (s *ActionService) enqueue(ctx context.Context, action domain.QueuedAction) (*Receipt, error) {
	id, err := s.queue.Enqueue(ctx, action.ActionType, action.EntityType, action.EntityID, action.Payload)
	if err != nil {
		return nil, fmt.Errorf("enqueue action: %w", err)
	}
	return &Receipt{ActionID: id, State: domain.StateQueued}, nil
}

func bookmarkEntity(t domain.BookmarkType) domain.EntityType {
	if t == domain.BookmarkArticle {
		return domain.EntityArticle
	}
	return domain.EntityNews
}
