package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"bcvrates-service/internal/application"
	"bcvrates-service/internal/domain"
	"bcvrates-service/internal/infrastructure/codec"
)

var _ application.HistorialStore = (*Historial)(nil)

// Historial stores the whole history as one JSON array. Every append reads
// the document, adds the entry and replaces the file atomically.
type Historial struct {
	path string
	loc  *time.Location
	mu   sync.Mutex
}

func NewHistorial(path string, loc *time.Location) *Historial {
	return &Historial{path: path, loc: loc}
}

func (h *Historial) Append(_ context.Context, e domain.HistorialEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	records, err := h.read()
	if err != nil {
		return err
	}
	for _, r := range records {
		if r.Fecha == e.Date {
			return nil
		}
	}
	records = append(records, codec.FromEntry(e, h.loc))
	return h.write(records)
}

func (h *Historial) All(context.Context) ([]domain.HistorialEntry, error) {
	h.mu.Lock()
	records, err := h.read()
	h.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([]domain.HistorialEntry, 0, len(records))
	for _, r := range records {
		e, err := codec.ToEntry(r, h.loc)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (h *Historial) ExistsForDate(_ context.Context, date string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	records, err := h.read()
	if err != nil {
		return false, err
	}
	for _, r := range records {
		if r.Fecha == date {
			return true, nil
		}
	}
	return false, nil
}

// Ping checks that the history file is readable.
func (h *Historial) Ping(context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.read()
	return err
}

func (h *Historial) read() ([]codec.HistorialRecord, error) {
	data, err := os.ReadFile(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read historial: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var records []codec.HistorialRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode historial %s: %w", h.path, err)
	}
	return records, nil
}

func (h *Historial) write(records []codec.HistorialRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode historial: %w", err)
	}
	dir := filepath.Dir(h.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create historial dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".historial-*.json")
	if err != nil {
		return fmt.Errorf("create temp historial: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write historial: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync historial: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close historial: %w", err)
	}
	if err := os.Rename(tmp.Name(), h.path); err != nil {
		return fmt.Errorf("replace historial: %w", err)
	}
	return nil
}
