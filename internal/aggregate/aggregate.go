// Package aggregate provides the concurrent accumulators two-pass rules use to
// carry state from their collection pass to their reporting pass.
//
// Writes are safe from any number of goroutines. Reads that iterate (Range,
// Keys, Values) are only meaningful after every writer has finished; the
// dispatcher guarantees that barrier between passes, the aggregators do not.
package aggregate

import (
	"sync"
)

// Set is a concurrent set with atomic insert.
type Set[K comparable] struct {
	m sync.Map
}

// Add inserts k and reports whether it was newly added.
func (s *Set[K]) Add(k K) bool {
	_, loaded := s.m.LoadOrStore(k, struct{}{})
	return !loaded
}

// Has reports whether k is in the set.
func (s *Set[K]) Has(k K) bool {
	_, ok := s.m.Load(k)
	return ok
}

// Len returns the number of elements.
func (s *Set[K]) Len() int {
	n := 0
	s.m.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}

// Range calls fn for every element until fn returns false.
func (s *Set[K]) Range(fn func(K) bool) {
	s.m.Range(func(k, _ any) bool {
		return fn(k.(K))
	})
}

// Map is a concurrent map whose first writer wins.
type Map[K comparable, V any] struct {
	m sync.Map
}

// Store sets the value for k unconditionally.
func (m *Map[K, V]) Store(k K, v V) {
	m.m.Store(k, v)
}

// LoadOrStore returns the existing value for k if present. Otherwise it stores
// v and returns it. loaded reports whether the value was already present.
func (m *Map[K, V]) LoadOrStore(k K, v V) (actual V, loaded bool) {
	a, loaded := m.m.LoadOrStore(k, v)
	return a.(V), loaded
}

// Load returns the value for k.
func (m *Map[K, V]) Load(k K) (V, bool) {
	v, ok := m.m.Load(k)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

// Range calls fn for every entry until fn returns false.
func (m *Map[K, V]) Range(fn func(K, V) bool) {
	m.m.Range(func(k, v any) bool {
		return fn(k.(K), v.(V))
	})
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	n := 0
	m.m.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}

// Multi is a concurrent multimap: values for a key accumulate in insertion
// order per writer.
type Multi[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K][]V
}

// Add appends v to the values of k.
func (m *Multi[K, V]) Add(k K, v V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.m == nil {
		m.m = make(map[K][]V)
	}
	m.m[k] = append(m.m[k], v)
}

// Get returns a copy of the values of k.
func (m *Multi[K, V]) Get(k K) []V {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]V(nil), m.m[k]...)
}

// Count returns how many values k has.
func (m *Multi[K, V]) Count(k K) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.m[k])
}

// Range calls fn for every key until fn returns false. The values slice is a
// copy.
func (m *Multi[K, V]) Range(fn func(K, []V) bool) {
	m.mu.Lock()
	snapshot := make(map[K][]V, len(m.m))
	for k, vs := range m.m {
		snapshot[k] = append([]V(nil), vs...)
	}
	m.mu.Unlock()

	for k, vs := range snapshot {
		if !fn(k, vs) {
			return
		}
	}
}
