package worker

import (
	"context"
	"time"

	"bcvrates-service/internal/application"
	"bcvrates-service/internal/domain"

	"go.uber.org/zap"
)

var _ application.Worker = (*TickScheduler)(nil)

// TickScheduler wakes every Every and refreshes when the tick lands in the
// refresh hour of a business day. A date that already refreshed is skipped.
type TickScheduler struct {
	Refresh  application.RefreshTrigger
	Schedule domain.Schedule
	Every    time.Duration
	Clock    application.Clock
	Log      *zap.Logger

	lastDate string
}

func (w *TickScheduler) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	if w.Every <= 0 {
		w.Every = time.Hour
	}
	if w.Clock == nil {
		w.Clock = application.ClockFunc(time.Now)
	}

	t := time.NewTicker(w.Every)
	defer t.Stop()

	log.Info("tick_scheduler_started", zap.Duration("every", w.Every), zap.Int("hour", w.Schedule.Hour))
	for {
		select {
		case <-ctx.Done():
			log.Info("tick_scheduler_stopped")
			return
		case <-t.C:
			w.tick(ctx, log)
		}
	}
}

func (w *TickScheduler) tick(ctx context.Context, log *zap.Logger) {
	now := w.Clock.Now()
	if !w.Schedule.Due(now) {
		return
	}
	date := domain.DateKey(now, w.Schedule.Location)
	if date == w.lastDate {
		return
	}
	if refresh(ctx, log, w.Refresh, "tick") {
		w.lastDate = date
	}
}
