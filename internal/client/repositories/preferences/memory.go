package preferences

import (
	"context"
	"maps"
	"sync"
)

// MemoryRepository keeps preferences in a map. Values are copied on the way
// in and out so callers cannot alias stored bytes.
type MemoryRepository struct {
	mu      sync.Mutex
	data    map[string][]byte
	flushes int

	// FailOn, when set, makes the operation with that name ("get", "set",
	// "delete", "list", "clear", "flush") return the given error.
	FailOn map[string]error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte)}
}

func (m *MemoryRepository) fail(op string) error {
	if m.FailOn == nil {
		return nil
	}
	return m.FailOn[op]
}

func (m *MemoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("get"); err != nil {
		return nil, err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, v...), nil
}

func (m *MemoryRepository) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("set"); err != nil {
		return err
	}
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = append([]byte{}, value...)
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("delete"); err != nil {
		return err
	}
	delete(m.data, key)
	return nil
}

func (m *MemoryRepository) List(_ context.Context) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("list"); err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		out[k] = append([]byte{}, v...)
	}
	return out, nil
}

func (m *MemoryRepository) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("clear"); err != nil {
		return err
	}
	clear(m.data)
	return nil
}

func (m *MemoryRepository) Flush(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("flush"); err != nil {
		return err
	}
	m.flushes++
	return nil
}

// Flushes reports how many times Flush succeeded.
func (m *MemoryRepository) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

// WithTx runs fn against a staged copy of the data and swaps it in only when
// fn succeeds.
func (m *MemoryRepository) WithTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	m.mu.Lock()
	staged := &MemoryRepository{data: maps.Clone(m.data), FailOn: m.FailOn}
	m.mu.Unlock()

	if err := fn(ctx, staged); err != nil {
		return err
	}

	m.mu.Lock()
	m.data = staged.data
	m.mu.Unlock()
	return nil
}
