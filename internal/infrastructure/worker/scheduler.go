package worker

import (
	"context"
	"time"

	"bcvrates-service/internal/application"
	"bcvrates-service/internal/domain"

	"go.uber.org/zap"
)

var _ application.Worker = (*Scheduler)(nil)

// Scheduler sleeps until the next business-day refresh instant, refreshes,
// and repeats until ctx is done.
type Scheduler struct {
	Refresh  application.RefreshTrigger
	History  application.HistorialStore
	Schedule domain.Schedule

	Clock application.Clock
	// After defaults to time.After.
	After func(time.Duration) <-chan time.Time
	Log   *zap.Logger
}

func (s *Scheduler) Start(ctx context.Context) {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	clock := s.Clock
	if clock == nil {
		clock = application.ClockFunc(time.Now)
	}
	after := s.After
	if after == nil {
		after = time.After
	}

	log.Info("scheduler_started", zap.Int("hour", s.Schedule.Hour), zap.Stringer("location", s.Schedule.Location))
	s.catchUp(ctx, log, clock.Now())

	var last time.Time
	for {
		now := clock.Now()
		from := now
		if last.After(from) {
			from = last
		}
		next := s.Schedule.Next(from)
		wait := next.Sub(now)
		if wait < 0 {
			wait = 0
		}
		log.Info("scheduler.next", zap.Time("at", next), zap.Duration("in", wait))

		select {
		case <-ctx.Done():
			log.Info("scheduler_stopped")
			return
		case <-after(wait):
			last = next
			refresh(ctx, log, s.Refresh, "scheduled")
		}
	}
}

// catchUp covers a process that starts inside the refresh hour after the
// scheduled instant already passed without a recorded entry for today.
func (s *Scheduler) catchUp(ctx context.Context, log *zap.Logger, now time.Time) {
	if !s.Schedule.Due(now) || s.History == nil {
		return
	}
	today := domain.DateKey(now, s.Schedule.Location)
	done, err := s.History.ExistsForDate(ctx, today)
	if err != nil {
		log.Warn("scheduler.catch_up_check_failed", zap.String("date", today), zap.Error(err))
		return
	}
	if done {
		return
	}
	refresh(ctx, log, s.Refresh, "catch_up")
}

func refresh(ctx context.Context, log *zap.Logger, r application.RefreshTrigger, trigger string) bool {
	snap, err := r.RefreshNow(ctx)
	if err != nil {
		log.Warn("scheduler.refresh_failed", zap.String("trigger", trigger), zap.Error(err))
		return false
	}
	log.Info("scheduler.refresh_done",
		zap.String("trigger", trigger),
		zap.String("usd", snap.USD),
		zap.String("eur", snap.EUR),
	)
	return true
}
