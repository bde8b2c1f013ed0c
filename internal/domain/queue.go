package domain

import (
	"fmt"
	"time"
)

// MaxRetries is the number of failed replays after which a queued action is terminal.
const MaxRetries = 3

type ActionType string

const (
	ActionComment  ActionType = "comment"
	ActionLike     ActionType = "like"
	ActionDislike  ActionType = "dislike"
	ActionBookmark ActionType = "bookmark"
	ActionReaction ActionType = "reaction"
)

func ParseActionType(s string) (ActionType, error) {
	switch ActionType(s) {
	case ActionComment, ActionLike, ActionDislike, ActionBookmark, ActionReaction:
		return ActionType(s), nil
	}
	return "", fmt.Errorf("unknown action type %q", s)
}

type EntityType string

const (
	EntityNews     EntityType = "news"
	EntityArticle  EntityType = "article"
	EntityProgress EntityType = "progress"
)

func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(s) {
	case EntityNews, EntityArticle, EntityProgress:
		return EntityType(s), nil
	}
	return "", fmt.Errorf("unknown entity type %q", s)
}

type ActionStatus string

const (
	StatusPending    ActionStatus = "pending"
	StatusProcessing ActionStatus = "processing"
	StatusCompleted  ActionStatus = "completed"
	StatusFailed     ActionStatus = "failed"
)

type QueuedAction struct {
	ID         string
	ActionType ActionType
	EntityType EntityType
	EntityID   string
	Payload    []byte
	CreatedAt  time.Time
	RetryCount int
	Status     ActionStatus
}

// Key returns the dispatch key of the action.
func (a QueuedAction) Key() ActionKey {
	return ActionKey{Action: a.ActionType, Entity: a.EntityType}
}

type ActionKey struct {
	Action ActionType
	Entity EntityType
}

func (k ActionKey) String() string {
	return string(k.Action) + "/" + string(k.Entity)
}

// ActionState is what the UI shows for a user mutation.
type ActionState string

const (
	StateUnconfirmedLocal ActionState = "unconfirmed-local"
	StateQueued           ActionState = "queued"
	StateConfirmedRemote  ActionState = "confirmed-remote"
	// StateRejected is terminal: replay exhausted its retries or was refused by the server.
	StateRejected ActionState = "rejected"
)

// CommentPayload is the queued payload of a comment action.
type CommentPayload struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
}

// ReactionPayload is the queued payload of a reaction action.
type ReactionPayload struct {
	Value string `json:"value"`
}
