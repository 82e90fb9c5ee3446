package codes

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	code      string
	expiresAt time.Time
}

// Memory is an in-process Store. Suitable for single-node deployments and
// tests; codes do not survive a restart.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory returns an empty in-memory code store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry), now: time.Now}
}

// NewMemoryAt returns an in-memory store with an injected clock, for tests.
func NewMemoryAt(now func() time.Time) *Memory {
	return &Memory{entries: make(map[string]entry), now: now}
}

func (m *Memory) Put(_ context.Context, subject, code string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[subject] = entry{code: code, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *Memory) Consume(_ context.Context, subject, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[subject]
	if !ok {
		return ErrCodeInvalid
	}
	delete(m.entries, subject)
	if m.now().After(e.expiresAt) || e.code != code {
		return ErrCodeInvalid
	}
	return nil
}
