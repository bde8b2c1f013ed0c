// Package maintenance runs the periodic cleanup jobs of the local store.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type AssetSweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

type ContentSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

type QueueCleaner interface {
	ClearCompleted(ctx context.Context) (int64, error)
}

// Report counts what one sweep removed.
type Report struct {
	AudioFiles    int
	ContentRows   int64
	FailedActions int64
}

type Sweeper struct {
	audio    AssetSweeper
	content  ContentSweeper
	queue    QueueCleaner
	schedule string
	logger   *slog.Logger
}

// NewSweeper validates schedule, a standard cron expression or descriptor such as "@every 1h".
func NewSweeper(audio AssetSweeper, content ContentSweeper, queue QueueCleaner, schedule string, logger *slog.Logger) (*Sweeper, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid maintenance schedule %q: %w", schedule, err)
	}
	return &Sweeper{
		audio:    audio,
		content:  content,
		queue:    queue,
		schedule: schedule,
		logger:   logger.With("component", "maintenance"),
	}, nil
}

// RunOnce runs every cleanup step. A failing step does not stop the others.
func (s *Sweeper) RunOnce(ctx context.Context) (*Report, error) {
	var (
		report Report
		errs   []error
		err    error
	)

	if report.AudioFiles, err = s.audio.SweepExpired(ctx); err != nil {
		errs = append(errs, fmt.Errorf("sweep audio: %w", err))
	}
	if report.ContentRows, err = s.content.SweepExpired(ctx); err != nil {
		errs = append(errs, fmt.Errorf("sweep content: %w", err))
	}
	if report.FailedActions, err = s.queue.ClearCompleted(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clear failed actions: %w", err))
	}

	s.logger.Info("maintenance completed",
		"audio_files", report.AudioFiles,
		"content_rows", report.ContentRows,
		"failed_actions", report.FailedActions,
		"errors", len(errs),
	)

	return &report, errors.Join(errs...)
}

// Run schedules RunOnce until ctx is done, then waits for a running job to finish.
func (s *Sweeper) Run(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(s.schedule, func() {
		if _, err := s.RunOnce(ctx); err != nil {
			s.logger.Error("maintenance failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule maintenance: %w", err)
	}

	c.Start()
	s.logger.Info("maintenance scheduled", "schedule", s.schedule)

	<-ctx.Done()

	stopped := c.Stop()
	<-stopped.Done()

	s.logger.Info("maintenance stopped")
	return ctx.Err()
}
