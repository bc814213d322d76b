// Package sweeper promotes sessions through their time-triggered
// transitions on a fixed interval: confirmed sessions become
// in_progress at their scheduled start and in_progress sessions become
// completed at their scheduled end.  Running server-side keeps stored
// status authoritative whether or not any client is watching.
package sweeper

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/logger"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/queue"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/repository"
	queue_publisher "github.com/r33j4n/mentorhub-genesis-project-sub001/internal/service"
)

// Sweeper runs the periodic status sweep.
type Sweeper struct {
	sessions *repository.SessionRepo
	interval time.Duration
}

// New returns a Sweeper over the given session repository.
func New(sessions *repository.SessionRepo, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Sweeper{sessions: sessions, interval: interval}
}

// Run sweeps on every tick until ctx is cancelled.  Sweep errors are
// logged and the loop continues; a transient database failure only
// delays the transitions until the next tick, it never loses them
// because due rows are recomputed from scheduled_start/scheduled_end.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	zap.L().Info("status sweeper started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			zap.L().Info("status sweeper stopped")
			return
		case now := <-ticker.C:
			s.sweep(ctx, now.UTC())
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context, now time.Time) {
	changed, err := s.sessions.SweepDue(ctx, now)
	if err != nil {
		zap.L().Error("sweep failed",
			zap.String(logger.FieldOperation, "sweep"),
			zap.NamedError(logger.FieldError, err))
		return
	}
	for _, sess := range changed {
		zap.L().Info("session transitioned",
			zap.Uint64(logger.FieldSessionID, sess.ID),
			zap.String("status", sess.Status))
		ev := queue.SessionEvent{
			SessionID:       sess.ID,
			Reference:       sess.Reference,
			MentorID:        sess.MentorID,
			MenteeID:        sess.MenteeID,
			ActorUserID:     0, // clock
			Title:           sess.Title,
			Status:          sess.Status,
			ScheduledStart:  sess.ScheduledStart.UTC().Format(time.RFC3339),
			ScheduledEnd:    sess.ScheduledEnd.UTC().Format(time.RFC3339),
			FinalPriceCents: sess.FinalPriceCents,
			CommissionRate:  sess.CommissionRate,
			OccurredAt:      now.Format(time.RFC3339),
		}
		// Best effort: the status change is already committed.
		_ = queue_publisher.PublishSessionEvent(ctx, ev)
	}
}
