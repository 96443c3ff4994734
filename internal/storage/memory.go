package storage

import (
	"context"
	"maps"
	"sync"
)

// Memory хранилище в памяти процесса. Используется в тестах и для эфемерных запусков.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory создаёт хранилище с начальными значениями initial (может быть nil).
func NewMemory(initial map[string]string) *Memory {
	values := make(map[string]string, len(initial))
	maps.Copy(values, initial)
	return &Memory{values: values}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) SetMany(_ context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	maps.Copy(m.values, values)
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.values)
	return nil
}

// Snapshot возвращает копию содержимого.
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.values)
}
