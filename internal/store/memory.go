package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Memory is an in-process Store backend. It exists for tests and for running
// the server without any external storage.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]json.RawMessage)}
}

func (m *Memory) Write(_ context.Context, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStore, path, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[path] = raw
	return nil
}

func (m *Memory) Update(_ context.Context, path string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc := make(map[string]any)
	if raw, ok := m.docs[path]; ok {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("%w: decode %s: %v", ErrStore, path, err)
		}
	}
	for k, v := range fields {
		doc[k] = v
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStore, path, err)
	}
	m.docs[path] = raw
	return nil
}

func (m *Memory) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prefix := path + "/"
	for p := range m.docs {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(m.docs, p)
		}
	}
	return nil
}

func (m *Memory) ReadOnce(_ context.Context, path string, dest any) error {
	m.mu.RLock()
	raw, ok := m.docs[path]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrStore, path, err)
	}
	return nil
}

func (m *Memory) Query(_ context.Context, path string, q ChildQuery) ([]Child, error) {
	m.mu.RLock()
	prefix := path + "/"
	children := []Child{}
	for p, raw := range m.docs {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		key := p[len(prefix):]
		if strings.Contains(key, "/") {
			continue // deeper descendant, not an immediate child
		}
		children = append(children, Child{Key: key, Value: append(json.RawMessage(nil), raw...)})
	}
	m.mu.RUnlock()

	return applyQuery(children, q), nil
}

func (m *Memory) ChildKeys(_ context.Context, path string) ([]string, error) {
	m.mu.RLock()
	prefix := path + "/"
	seen := map[string]struct{}{}
	for p := range m.docs {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		segment := p[len(prefix):]
		if i := strings.Index(segment, "/"); i >= 0 {
			segment = segment[:i]
		}
		seen[segment] = struct{}{}
	}
	m.mu.RUnlock()

	return sortedKeys(seen), nil
}

func (m *Memory) Close() error { return nil }
