package remote

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Memory is a process local collection.
type Memory struct {
	name string

	mu    sync.RWMutex
	docs  map[string]json.RawMessage
	order []string

	watchMu  sync.Mutex
	watchers map[chan Change]struct{}
}

// NewMemory returns an empty collection.
func NewMemory(name string) *Memory {
	return &Memory{
		name:     name,
		docs:     make(map[string]json.RawMessage),
		watchers: make(map[chan Change]struct{}),
	}
}

func (m *Memory) Name() string { return m.name }

func (m *Memory) Get(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Document, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, Document{Key: key, Data: append(json.RawMessage(nil), m.docs[key]...)})
	}
	return out, nil
}

func (m *Memory) Add(ctx context.Context, data any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, err := encode(data)
	if err != nil {
		return "", err
	}
	key := uuid.NewString()
	m.mu.Lock()
	m.docs[key] = raw
	m.order = append(m.order, key)
	m.mu.Unlock()
	m.notify()
	return key, nil
}

func (m *Memory) Where(field string, value any) Query {
	return filterQuery{fetch: m.Get, field: field, value: value}
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	if _, ok := m.docs[key]; !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	delete(m.docs, key)
	filtered := m.order[:0]
	for _, k := range m.order {
		if k != key {
			filtered = append(filtered, k)
		}
	}
	m.order = filtered
	m.mu.Unlock()
	m.notify()
	return nil
}

func (m *Memory) Update(ctx context.Context, key string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	current, ok := m.docs[key]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	merged, err := Merge(current, fields)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.docs[key] = merged
	m.mu.Unlock()
	m.notify()
	return nil
}

// Watch reports every write until ctx is done.
func (m *Memory) Watch(ctx context.Context) (<-chan Change, error) {
	ch := make(chan Change, 16)
	m.watchMu.Lock()
	m.watchers[ch] = struct{}{}
	m.watchMu.Unlock()
	go func() {
		<-ctx.Done()
		m.watchMu.Lock()
		delete(m.watchers, ch)
		close(ch)
		m.watchMu.Unlock()
	}()
	return ch, nil
}

func (m *Memory) notify() {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()
	for ch := range m.watchers {
		select {
		case ch <- Change{Collection: m.name}:
		default:
		}
	}
}
