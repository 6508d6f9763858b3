package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"bcvrates-service/internal/domain"
)

var ErrRepo = errors.New("repo error")

type fakeExtractor struct {
	out   domain.RateSnapshot
	err   error
	calls atomic.Int32
	// when set, Extract signals started and waits for release
	started chan struct{}
	release chan struct{}
	delay   time.Duration
}

func (f *fakeExtractor) Extract(ctx context.Context) (domain.RateSnapshot, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
		}
	}
	if err := ctx.Err(); err != nil {
		return domain.RateSnapshot{}, err
	}
	if f.err != nil {
		return domain.RateSnapshot{}, f.err
	}
	return f.out, nil
}

type fakeCache struct {
	mu   sync.Mutex
	snap *domain.RateSnapshot
	sets int
}

func (f *fakeCache) Get() (domain.RateSnapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snap == nil {
		return domain.RateSnapshot{}, false
	}
	return *f.snap, true
}

func (f *fakeCache) Set(s domain.RateSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = &s
	f.sets++
}

type fakeHistory struct {
	mu      sync.Mutex
	entries []domain.HistorialEntry
	appends int
	err     error
	// delay simulates a slow store that gives up when ctx is done
	delay time.Duration
}

func (f *fakeHistory) Append(ctx context.Context, e domain.HistorialEntry) error {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appends++
	if f.err != nil {
		return f.err
	}
	for _, x := range f.entries {
		if x.Date == e.Date {
			return nil
		}
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeHistory) All(context.Context) ([]domain.HistorialEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.HistorialEntry(nil), f.entries...), nil
}

func (f *fakeHistory) ExistsForDate(_ context.Context, date string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.entries {
		if x.Date == date {
			return true, nil
		}
	}
	return false, nil
}

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }
