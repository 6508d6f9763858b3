package memstore

import (
	"context"
	"sync"

	"bcvrates-service/internal/application"
	"bcvrates-service/internal/domain"
)

var _ application.HistorialStore = (*Historial)(nil)

// Historial keeps history in process memory; it is lost on restart.
type Historial struct {
	mu      sync.RWMutex
	entries []domain.HistorialEntry
	dates   map[string]struct{}
}

func NewHistorial() *Historial {
	return &Historial{dates: map[string]struct{}{}}
}

func (h *Historial) Append(_ context.Context, e domain.HistorialEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.dates[e.Date]; ok {
		return nil
	}
	h.dates[e.Date] = struct{}{}
	h.entries = append(h.entries, e)
	return nil
}

func (h *Historial) All(context.Context) ([]domain.HistorialEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]domain.HistorialEntry, len(h.entries))
	copy(out, h.entries)
	return out, nil
}

func (h *Historial) ExistsForDate(_ context.Context, date string) (bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.dates[date]
	return ok, nil
}
