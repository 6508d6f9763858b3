package application

import (
	"context"

	"bcvrates-service/internal/domain"
	"bcvrates-service/internal/metrics"
)

// RatesService is the read side used by the HTTP layer. Reads never touch
// the extractor except through the lazy trigger on an empty cache.
type RatesService struct {
	cache   RateCache
	history HistorialStore
	refresh RefreshTrigger
	metrics *metrics.Metrics
}

func NewRatesService(cache RateCache, history HistorialStore, refresh RefreshTrigger, m *metrics.Metrics) *RatesService {
	return &RatesService{cache: cache, history: history, refresh: refresh, metrics: m}
}

// Current returns the cached snapshot, refreshing first when nothing has been
// accepted yet. A failed lazy refresh is only surfaced when there is no value to serve.
func (s *RatesService) Current(ctx context.Context) (domain.RateSnapshot, error) {
	if snap, ok := s.cache.Get(); ok {
		return snap, nil
	}
	s.metrics.LazyRefresh()
	snap, err := s.refresh.RefreshNow(ctx)
	if err != nil {
		if cached, ok := s.cache.Get(); ok {
			return cached, nil
		}
		return domain.RateSnapshot{}, err
	}
	return snap, nil
}

// Cached returns the cache contents without triggering anything.
func (s *RatesService) Cached() (domain.RateSnapshot, bool) {
	return s.cache.Get()
}

func (s *RatesService) History(ctx context.Context) ([]domain.HistorialEntry, error) {
	entries, err := s.history.All(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.HistorialEntry{}
	}
	return entries, nil
}
