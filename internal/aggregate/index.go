package aggregate

import "sync"

// Index maps a key to the single entry that claims it. It is built during the
// collection pass and queried during the reporting pass.
//
// When two entries claim the same key the first claim is kept and the later
// ones are recorded as conflicts.
type Index[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]V
	conflicts map[K][]V
	frozen    bool
}

// Put claims k for v. It reports whether v became the entry for k.
// Put panics after Freeze.
func (x *Index[K, V]) Put(k K, v V) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.frozen {
		panic("aggregate: Put on frozen Index")
	}
	if x.entries == nil {
		x.entries = make(map[K]V)
	}
	if _, ok := x.entries[k]; ok {
		if x.conflicts == nil {
			x.conflicts = make(map[K][]V)
		}
		x.conflicts[k] = append(x.conflicts[k], v)
		return false
	}
	x.entries[k] = v

	return true
}

// Freeze ends the build phase. Later Put calls panic.
func (x *Index[K, V]) Freeze() {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.frozen = true
}

// Get returns the entry for k.
func (x *Index[K, V]) Get(k K) (V, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	v, ok := x.entries[k]
	return v, ok
}

// Conflicts returns the entries that lost their claim on k.
func (x *Index[K, V]) Conflicts(k K) []V {
	x.mu.Lock()
	defer x.mu.Unlock()

	return append([]V(nil), x.conflicts[k]...)
}

// Len returns the number of claimed keys.
func (x *Index[K, V]) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()

	return len(x.entries)
}
