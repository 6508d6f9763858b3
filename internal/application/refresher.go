package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bcvrates-service/internal/domain"
	"bcvrates-service/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	refreshKey            = "bcv"
	defaultHistoryTimeout = 5 * time.Second
)

// Refresher is the only writer of the rate cache and the history store.
// At most one refresh runs at a time; callers arriving while one is in
// flight wait for it and receive the same result.
type Refresher struct {
	extractor RateExtractor
	cache     RateCache
	history   HistorialStore

	clock    Clock
	location *time.Location
	timeout  time.Duration
	// historyTimeout bounds the append on its own clock, after extraction.
	historyTimeout time.Duration
	log            *zap.Logger
	metrics        *metrics.Metrics

	group singleflight.Group
}

type RefresherOption func(*Refresher)

func WithRefresherClock(c Clock) RefresherOption { return func(r *Refresher) { r.clock = c } }
func WithLocation(loc *time.Location) RefresherOption {
	return func(r *Refresher) { r.location = loc }
}
func WithRefreshTimeout(d time.Duration) RefresherOption {
	return func(r *Refresher) { r.timeout = d }
}
func WithHistoryTimeout(d time.Duration) RefresherOption {
	return func(r *Refresher) { r.historyTimeout = d }
}
func WithLogger(l *zap.Logger) RefresherOption       { return func(r *Refresher) { r.log = l } }
func WithMetrics(m *metrics.Metrics) RefresherOption { return func(r *Refresher) { r.metrics = m } }

func NewRefresher(extractor RateExtractor, cache RateCache, history HistorialStore, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		extractor: extractor,
		cache:     cache,
		history:   history,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.clock == nil {
		r.clock = realClock{}
	}
	if r.location == nil {
		r.location = time.UTC
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	if r.historyTimeout <= 0 {
		r.historyTimeout = defaultHistoryTimeout
	}
	return r
}

// RefreshNow runs (or joins) a refresh. The refresh itself is detached from
// ctx cancellation so a caller giving up never aborts it for the others.
func (r *Refresher) RefreshNow(ctx context.Context) (domain.RateSnapshot, error) {
	v, err, shared := r.group.Do(refreshKey, func() (any, error) {
		return r.refresh(context.WithoutCancel(ctx))
	})
	if shared {
		r.log.Debug("refresh.shared")
	}
	if err != nil {
		return domain.RateSnapshot{}, err
	}
	return v.(domain.RateSnapshot), nil
}

func (r *Refresher) refresh(ctx context.Context) (domain.RateSnapshot, error) {
	extractCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		extractCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := r.clock.Now()
	snap, err := r.extractor.Extract(extractCtx)
	if err == nil {
		err = snap.Validate()
	}
	took := r.clock.Now().Sub(start)
	if err != nil {
		result := metrics.ResultExtractionFailed
		if errors.Is(err, domain.ErrSourceUnavailable) {
			result = metrics.ResultSourceUnavailable
			r.log.Warn("refresh.source_unavailable", zap.Error(err), zap.Duration("took", took))
		} else {
			r.log.Warn("refresh.extraction_failed", zap.Error(err), zap.Duration("took", took))
		}
		r.metrics.ObserveRefresh(result, took)
		return domain.RateSnapshot{}, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	now := r.clock.Now()
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = now
	}
	if snap.SourceTimestamp == "" {
		snap.SourceTimestamp = domain.FormatLocal(snap.FetchedAt, r.location)
	}
	if snap.Source == "" {
		snap.Source = domain.SourceName
	}
	r.cache.Set(snap)
	r.metrics.ObserveRefresh(metrics.ResultOK, took)
	r.log.Info("refresh.ok",
		zap.String("usd", snap.USD),
		zap.String("eur", snap.EUR),
		zap.String("source_timestamp", snap.SourceTimestamp),
		zap.Duration("took", took),
	)

	// The append runs on its own deadline, independent of the extraction.
	histCtx, cancel := context.WithTimeout(ctx, r.historyTimeout)
	defer cancel()
	entry := domain.NewHistorialEntry(snap, now, r.location)
	if err := r.history.Append(histCtx, entry); err != nil {
		r.metrics.HistorialAppendFailed()
		r.log.Error("refresh.historial_not_recorded",
			zap.String("date", entry.Date),
			zap.Error(fmt.Errorf("%w: %w", domain.ErrPersistence, err)),
		)
	}
	return snap, nil
}
