package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"offline_sync/internal/domain"
)

var (
	// ErrUnmappedAction is returned for an (action, entity) pair with no remote endpoint.
	ErrUnmappedAction = errors.New("unmapped action")
	// ErrInvalidPayload is returned when a queued payload cannot be decoded.
	ErrInvalidPayload = errors.New("invalid action payload")
)

type handlerFunc func(ctx context.Context, api RemoteAPI, action domain.QueuedAction) error

// Dispatcher replays queued actions against the remote API through a closed table
// keyed by (action type, entity type).
type Dispatcher struct {
	api      RemoteAPI
	handlers map[domain.ActionKey]handlerFunc
}

func NewDispatcher(api RemoteAPI) *Dispatcher {
	handlers := make(map[domain.ActionKey]handlerFunc)
	for _, entity := range []domain.EntityType{domain.EntityNews, domain.EntityArticle} {
		handlers[domain.ActionKey{Action: domain.ActionComment, Entity: entity}] = addComment
		handlers[domain.ActionKey{Action: domain.ActionLike, Entity: entity}] = fixedReaction("like")
		handlers[domain.ActionKey{Action: domain.ActionDislike, Entity: entity}] = fixedReaction("dislike")
		handlers[domain.ActionKey{Action: domain.ActionReaction, Entity: entity}] = payloadReaction
		handlers[domain.ActionKey{Action: domain.ActionBookmark, Entity: entity}] = toggleBookmark
	}
	return &Dispatcher{api: api, handlers: handlers}
}

func (d *Dispatcher) Supports(key domain.ActionKey) bool {
	_, ok := d.handlers[key]
	return ok
}

func (d *Dispatcher) Dispatch(ctx context.Context, action domain.QueuedAction) error {
	h, ok := d.handlers[action.Key()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnmappedAction, action.Key())
	}
	return h(ctx, d.api, action)
}

func addComment(ctx context.Context, api RemoteAPI, a domain.QueuedAction) error {
	var p domain.CommentPayload
	if err := json.Unmarshal(a.Payload, &p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if p.Text == "" {
		return fmt.Errorf("%w: empty comment", ErrInvalidPayload)
	}
	return api.AddComment(ctx, a.EntityType, a.EntityID, p)
}

func fixedReaction(value string) handlerFunc {
	return func(ctx context.Context, api RemoteAPI, a domain.QueuedAction) error {
		return api.ToggleReaction(ctx, a.EntityType, a.EntityID, value)
	}
}

func payloadReaction(ctx context.Context, api RemoteAPI, a domain.QueuedAction) error {
	var p domain.ReactionPayload
	if err := json.Unmarshal(a.Payload, &p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if p.Value == "" {
		return fmt.Errorf("%w: empty reaction", ErrInvalidPayload)
	}
	return api.ToggleReaction(ctx, a.EntityType, a.EntityID, p.Value)
}

func toggleBookmark(ctx context.Context, api RemoteAPI, a domain.QueuedAction) error {
	return api.ToggleBookmark(ctx, a.EntityType, a.EntityID)
}

// retryable reports whether a failed replay may succeed on a later attempt.
func retryable(err error) bool {
	if errors.Is(err, ErrUnmappedAction) || errors.Is(err, ErrInvalidPayload) {
		return false
	}
	var p interface{ Permanent() bool }
	if errors.As(err, &p) && p.Permanent() {
		return false
	}
	return true
}
