package status

import (
	"maps"
	"slices"
	"sync"
)

// MetricMap is a thread-safe set of named metrics of type T
// Lookups after the first allocate nothing and return the same pointer
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an initialized MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{
		items: make(map[string]*T),
	}
}

// Get returns the metric pointer for key, creating it if absent
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[key] = ptr
	return ptr
}

// Has returns true if the key exists
func (m *MetricMap[T]) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok
}

// Keys returns the registered keys in sorted order
func (m *MetricMap[T]) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.items))
}

// Range visits every metric in sorted key order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	for _, k := range m.Keys() {
		m.mu.RLock()
		ptr := m.items[k]
		m.mu.RUnlock()
		fn(k, ptr)
	}
}

// Count returns the number of registered metrics
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
