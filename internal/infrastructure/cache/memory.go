package cache

import (
	"sync"

	"bcvrates-service/internal/application"
	"bcvrates-service/internal/domain"
)

var _ application.RateCache = (*Memory)(nil)

// Memory holds the latest snapshot for the process lifetime. No TTL.
type Memory struct {
	mu   sync.RWMutex
	snap domain.RateSnapshot
	ok   bool
}

func NewMemory() *Memory { return &Memory{} }

func (c *Memory) Get() (domain.RateSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap, c.ok
}

func (c *Memory) Set(s domain.RateSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap, c.ok = s, true
}
