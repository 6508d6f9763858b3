package worker

import (
	"context"
	"testing"
	"time"

	"bcvrates-service/internal/domain"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTickScheduler_GatesOnBusinessDayAndHour(t *testing.T) {
	loc := caracas(t)
	clock := &manualClock{}
	r := &fakeRefresher{}
	w := &TickScheduler{Refresh: r, Schedule: domain.Schedule{Location: loc, Hour: 8}, Clock: clock}
	log := zap.NewNop()
	ctx := context.Background()

	clock.Set(time.Date(2026, 10, 19, 7, 0, 0, 0, loc)) // Monday, wrong hour
	w.tick(ctx, log)
	require.Equal(t, 0, r.count())

	clock.Set(time.Date(2026, 10, 24, 8, 0, 0, 0, loc)) // Saturday
	w.tick(ctx, log)
	require.Equal(t, 0, r.count())

	clock.Set(time.Date(2026, 10, 19, 8, 5, 0, 0, loc))
	w.tick(ctx, log)
	require.Equal(t, 1, r.count())

	// same date again: skipped
	clock.Set(time.Date(2026, 10, 19, 8, 35, 0, 0, loc))
	w.tick(ctx, log)
	require.Equal(t, 1, r.count())

	clock.Set(time.Date(2026, 10, 20, 8, 0, 0, 0, loc))
	w.tick(ctx, log)
	require.Equal(t, 2, r.count())
}

func TestTickScheduler_RetriesSameDateAfterFailure(t *testing.T) {
	loc := caracas(t)
	clock := &manualClock{t: time.Date(2026, 10, 19, 8, 0, 0, 0, loc)}
	r := &fakeRefresher{err: errBoom}
	w := &TickScheduler{Refresh: r, Schedule: domain.Schedule{Location: loc, Hour: 8}, Clock: clock}

	w.tick(context.Background(), zap.NewNop())
	r.mu.Lock()
	r.err = nil
	r.mu.Unlock()
	w.tick(context.Background(), zap.NewNop())
	require.Equal(t, 2, r.count())
}

func TestTickScheduler_Start(t *testing.T) {
	loc := caracas(t)
	r := &fakeRefresher{}
	w := &TickScheduler{
		Refresh:  r,
		Schedule: domain.Schedule{Location: loc, Hour: 8},
		Every:    5 * time.Millisecond,
		Clock:    &manualClock{t: time.Date(2026, 10, 19, 8, 0, 0, 0, loc)},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	w.Start(ctx)
	require.Equal(t, 1, r.count())
}
