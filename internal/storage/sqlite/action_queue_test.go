package sqlite

import (
	"time"

	"offline_sync/internal/domain"
)

func (s *StoreSuite) newQueue() *ActionQueue {
	q := NewActionQueue(s.db)
	q.now = s.clock()
	return q
}

func (s *StoreSuite) TestActionQueue_EnqueuePending() {
	q := s.newQueue()

	id, err := q.Enqueue(s.ctx, domain.ActionLike, domain.EntityNews, "n1", []byte(`{"value":"like"}`))
	s.NoError(err)
	s.NotEmpty(id)

	action, err := q.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(domain.StatusPending, action.Status)
	s.Equal(0, action.RetryCount)
	s.Equal(domain.ActionLike, action.ActionType)
	s.Equal(domain.EntityNews, action.EntityType)
	s.Equal("n1", action.EntityID)

	size, err := q.QueueSize(s.ctx)
	s.NoError(err)
	s.Equal(1, size)
}

func (s *StoreSuite) TestActionQueue_FIFOWithEqualTimestamps() {
	q := s.newQueue()

	a, _ := q.Enqueue(s.ctx, domain.ActionLike, domain.EntityNews, "n1", nil)
	b, _ := q.Enqueue(s.ctx, domain.ActionComment, domain.EntityNews, "n1", []byte(`{"text":"long comment body"}`))
	c, _ := q.Enqueue(s.ctx, domain.ActionBookmark, domain.EntityArticle, "a1", nil)

	pending, err := q.PendingActions(s.ctx, 0)
	s.NoError(err)
	s.Require().Len(pending, 3)
	s.Equal([]string{a, b, c}, []string{pending[0].ID, pending[1].ID, pending[2].ID})

	limited, err := q.PendingActions(s.ctx, 2)
	s.NoError(err)
	s.Len(limited, 2)
}

func (s *StoreSuite) TestActionQueue_FIFOByCreatedAt() {
	q := s.newQueue()

	s.now = s.now.Add(time.Minute)
	later, _ := q.Enqueue(s.ctx, domain.ActionLike, domain.EntityNews, "n1", nil)
	s.now = s.now.Add(-2 * time.Minute)
	earlier, _ := q.Enqueue(s.ctx, domain.ActionLike, domain.EntityNews, "n2", nil)

	pending, err := q.PendingActions(s.ctx, 10)
	s.NoError(err)
	s.Require().Len(pending, 2)
	s.Equal(earlier, pending[0].ID)
	s.Equal(later, pending[1].ID)
}

func (s *StoreSuite) TestActionQueue_ProcessingAndCompleted() {
	q := s.newQueue()
	id, _ := q.Enqueue(s.ctx, domain.ActionLike, domain.EntityNews, "n1", nil)

	s.NoError(q.MarkProcessing(s.ctx, id))

	size, err := q.QueueSize(s.ctx)
	s.NoError(err)
	s.Equal(0, size)

	s.ErrorIs(q.MarkProcessing(s.ctx, id), domain.ErrNotFound)

	s.NoError(q.MarkCompleted(s.ctx, id))

	_, err = q.Get(s.ctx, id)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *StoreSuite) TestActionQueue_RetryCap() {
	q := s.newQueue()
	id, _ := q.Enqueue(s.ctx, domain.ActionComment, domain.EntityArticle, "a1", nil)

	for attempt := 1; attempt <= domain.MaxRetries; attempt++ {
		s.NoError(q.MarkProcessing(s.ctx, id))
		s.NoError(q.MarkFailed(s.ctx, id, true))

		action, err := q.Get(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(attempt, action.RetryCount)

		if attempt < domain.MaxRetries {
			s.Equal(domain.StatusPending, action.Status)
		} else {
			s.Equal(domain.StatusFailed, action.Status)
		}
	}

	pending, err := q.PendingActions(s.ctx, 0)
	s.NoError(err)
	s.Empty(pending)

	failed, err := q.FailedActions(s.ctx)
	s.NoError(err)
	s.Require().Len(failed, 1)
	s.Equal(id, failed[0].ID)
}

func (s *StoreSuite) TestActionQueue_FailWithoutRetryIsTerminal() {
	q := s.newQueue()
	id, _ := q.Enqueue(s.ctx, domain.ActionReaction, domain.EntityProgress, "p1", nil)

	s.NoError(q.MarkProcessing(s.ctx, id))
	s.NoError(q.MarkFailed(s.ctx, id, false))

	action, err := q.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(domain.StatusFailed, action.Status)
	s.Equal(1, action.RetryCount)

	s.ErrorIs(q.MarkFailed(s.ctx, "missing", true), domain.ErrNotFound)
}

func (s *StoreSuite) TestActionQueue_ClearCompleted() {
	q := s.newQueue()

	old, _ := q.Enqueue(s.ctx, domain.ActionLike, domain.EntityNews, "n1", nil)
	s.NoError(q.MarkProcessing(s.ctx, old))
	s.NoError(q.MarkFailed(s.ctx, old, false))

	oldPending, _ := q.Enqueue(s.ctx, domain.ActionLike, domain.EntityNews, "n2", nil)

	s.now = s.now.Add(8 * 24 * time.Hour)
	recent, _ := q.Enqueue(s.ctx, domain.ActionLike, domain.EntityNews, "n3", nil)
	s.NoError(q.MarkProcessing(s.ctx, recent))
	s.NoError(q.MarkFailed(s.ctx, recent, false))

	deleted, err := q.ClearCompleted(s.ctx)
	s.NoError(err)
	s.Equal(int64(1), deleted)

	_, err = q.Get(s.ctx, old)
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = q.Get(s.ctx, oldPending)
	s.NoError(err)

	_, err = q.Get(s.ctx, recent)
	s.NoError(err)
}

func (s *StoreSuite) TestActionQueue_ResetStale() {
	q := s.newQueue()
	id, _ := q.Enqueue(s.ctx, domain.ActionLike, domain.EntityNews, "n1", nil)
	s.NoError(q.MarkProcessing(s.ctx, id))

	n, err := q.ResetStale(s.ctx)
	s.NoError(err)
	s.Equal(int64(1), n)

	size, err := q.QueueSize(s.ctx)
	s.NoError(err)
	s.Equal(1, size)
}
