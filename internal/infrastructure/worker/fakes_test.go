package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"bcvrates-service/internal/domain"
)

type fakeRefresher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeRefresher) RefreshNow(context.Context) (domain.RateSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return domain.RateSnapshot{}, f.err
	}
	return domain.RateSnapshot{USD: "36,50", EUR: "39,80"}, nil
}

func (f *fakeRefresher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeHistory struct {
	dates map[string]bool
	err   error
}

func (f *fakeHistory) Append(context.Context, domain.HistorialEntry) error { return nil }
func (f *fakeHistory) All(context.Context) ([]domain.HistorialEntry, error) {
	return nil, nil
}
func (f *fakeHistory) ExistsForDate(_ context.Context, d string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.dates[d], nil
}

// manualClock is a settable clock shared between the test and the scheduler goroutine.
type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// manualTimer records requested waits and fires only when told to.
type manualTimer struct {
	mu    sync.Mutex
	waits []time.Duration
	fire  chan time.Time
}

func newManualTimer() *manualTimer { return &manualTimer{fire: make(chan time.Time)} }

func (m *manualTimer) After(d time.Duration) <-chan time.Time {
	m.mu.Lock()
	m.waits = append(m.waits, d)
	m.mu.Unlock()
	return m.fire
}

func (m *manualTimer) Waits() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.waits...)
}

var errBoom = errors.New("boom")
