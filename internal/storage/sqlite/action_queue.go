package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"offline_sync/internal/domain"
)

const (
	// DefaultPendingLimit is the batch size used when PendingActions is called with limit <= 0.
	DefaultPendingLimit = 50

	failedRetention = 7 * 24 * time.Hour
)

type actionRow struct {
	ID         string `db:"id"`
	ActionType string `db:"action_type"`
	EntityType string `db:"entity_type"`
	EntityID   string `db:"entity_id"`
	Payload    []byte `db:"payload"`
	CreatedAt  int64  `db:"created_at"`
	RetryCount int    `db:"retry_count"`
	Status     string `db:"status"`
}

func (r actionRow) toDomain() domain.QueuedAction {
	return domain.QueuedAction{
		ID:         r.ID,
		ActionType: domain.ActionType(r.ActionType),
		EntityType: domain.EntityType(r.EntityType),
		EntityID:   r.EntityID,
		Payload:    r.Payload,
		CreatedAt:  fromMillis(r.CreatedAt),
		RetryCount: r.RetryCount,
		Status:     domain.ActionStatus(r.Status),
	}
}

const actionColumns = "id, action_type, entity_type, entity_id, payload, created_at, retry_count, status"

// ActionQueue is the durable FIFO of user mutations awaiting replay.
type ActionQueue struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewActionQueue(db *sqlx.DB) *ActionQueue {
	return &ActionQueue{db: db, now: time.Now}
}

// Enqueue inserts a pending action and returns its generated id.
func (q *ActionQueue) Enqueue(ctx context.Context, actionType domain.ActionType, entityType domain.EntityType, entityID string, payload []byte) (string, error) {
	id := uuid.New().String()

	_, err := GetExecutor(ctx, q.db).ExecContext(ctx, `
		INSERT INTO offline_queue (id, action_type, entity_type, entity_id, payload, created_at, retry_count, status)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?)`,
		id, string(actionType), string(entityType), entityID, payload, toMillis(q.now()), string(domain.StatusPending),
	)
	if err != nil {
		return "", fmt.Errorf("insert action: %w", err)
	}
	return id, nil
}

// PendingActions returns up to limit pending actions, oldest first.
func (q *ActionQueue) PendingActions(ctx context.Context, limit int) ([]domain.QueuedAction, error) {
	if limit <= 0 {
		limit = DefaultPendingLimit
	}

	return q.list(ctx,
		"SELECT "+actionColumns+" FROM offline_queue WHERE status = ? ORDER BY created_at ASC, rowid ASC LIMIT ?",
		string(domain.StatusPending), limit,
	)
}

func (q *ActionQueue) FailedActions(ctx context.Context) ([]domain.QueuedAction, error) {
	return q.list(ctx,
		"SELECT "+actionColumns+" FROM offline_queue WHERE status = ? ORDER BY created_at ASC, rowid ASC",
		string(domain.StatusFailed),
	)
}

func (q *ActionQueue) Get(ctx context.Context, id string) (*domain.QueuedAction, error) {
	var row actionRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, q.db), &row,
		"SELECT "+actionColumns+" FROM offline_queue WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	a := row.toDomain()
	return &a, nil
}

// MarkProcessing moves a pending action to processing.
func (q *ActionQueue) MarkProcessing(ctx context.Context, id string) error {
	res, err := GetExecutor(ctx, q.db).ExecContext(ctx,
		"UPDATE offline_queue SET status = ? WHERE id = ? AND status = ?",
		string(domain.StatusProcessing), id, string(domain.StatusPending),
	)
	if err != nil {
		return err
	}
	return expectOneRow(res, id)
}

// MarkCompleted deletes the action: completion keeps no record.
func (q *ActionQueue) MarkCompleted(ctx context.Context, id string) error {
	_, err := GetExecutor(ctx, q.db).ExecContext(ctx, "DELETE FROM offline_queue WHERE id = ?", id)
	return err
}

// MarkFailed records a failed replay. The action goes back to pending unless
// shouldRetry is false or it has now failed domain.MaxRetries times, in which
// case it is kept as failed.
func (q *ActionQueue) MarkFailed(ctx context.Context, id string, shouldRetry bool) error {
	retry := 0
	if shouldRetry {
		retry = 1
	}

	// SET expressions all read the pre-update retry_count.
	res, err := GetExecutor(ctx, q.db).ExecContext(ctx, `
		UPDATE offline_queue SET
			retry_count = retry_count + 1,
			status = CASE WHEN ? = 1 AND retry_count + 1 < ? THEN ? ELSE ? END
		WHERE id = ?`,
		retry, domain.MaxRetries, string(domain.StatusPending), string(domain.StatusFailed), id,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res, id)
}

// QueueSize counts pending actions only.
func (q *ActionQueue) QueueSize(ctx context.Context) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, GetExecutor(ctx, q.db), &n,
		"SELECT COUNT(*) FROM offline_queue WHERE status = ?", string(domain.StatusPending))
	return n, err
}

// ClearCompleted deletes retained terminal rows older than a week.
func (q *ActionQueue) ClearCompleted(ctx context.Context) (int64, error) {
	cutoff := q.now().Add(-failedRetention)

	res, err := GetExecutor(ctx, q.db).ExecContext(ctx,
		"DELETE FROM offline_queue WHERE status IN (?, ?) AND created_at < ?",
		string(domain.StatusFailed), string(domain.StatusCompleted), toMillis(cutoff),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ResetStale returns actions left in processing by an interrupted run to pending.
func (q *ActionQueue) ResetStale(ctx context.Context) (int64, error) {
	res, err := GetExecutor(ctx, q.db).ExecContext(ctx,
		"UPDATE offline_queue SET status = ? WHERE status = ?",
		string(domain.StatusPending), string(domain.StatusProcessing),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *ActionQueue) list(ctx context.Context, query string, args ...interface{}) ([]domain.QueuedAction, error) {
	var rows []actionRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, q.db), &rows, query, args...); err != nil {
		return nil, err
	}

	actions := make([]domain.QueuedAction, 0, len(rows))
	for _, r := range rows {
		actions = append(actions, r.toDomain())
	}
	return actions, nil
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("action %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
