package aggregate

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetConcurrentAdd(t *testing.T) {
	var s Set[string]
	var added sync.Map

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				if s.Add(fmt.Sprintf("k%d", i)) {
					added.Store(fmt.Sprintf("k%d", i), w)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, s.Len())
	assert.True(t, s.Has("k42"))
	assert.False(t, s.Has("missing"))

	n := 0
	added.Range(func(any, any) bool { n++; return true })
	assert.Equal(t, 100, n, "each key must be newly added exactly once")
}

func TestMapFirstWriterWins(t *testing.T) {
	var m Map[string, int]

	v, loaded := m.LoadOrStore("a", 1)
	assert.Equal(t, 1, v)
	assert.False(t, loaded)

	v, loaded = m.LoadOrStore("a", 2)
	assert.Equal(t, 1, v)
	assert.True(t, loaded)

	got, ok := m.Load("a")
	require.True(t, ok)
	assert.Equal(t, 1, got)

	_, ok = m.Load("b")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestMulti(t *testing.T) {
	var m Multi[string, int]

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Add("k", i)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, m.Count("k"))
	assert.Len(t, m.Get("k"), 50)
	assert.Empty(t, m.Get("other"))

	keys := 0
	m.Range(func(k string, vs []int) bool {
		keys++
		assert.Equal(t, "k", k)
		assert.Len(t, vs, 50)
		return true
	})
	assert.Equal(t, 1, keys)
}

func TestIndex(t *testing.T) {
	var x Index[string, string]

	assert.True(t, x.Put("vm", "ViewA"))
	assert.False(t, x.Put("vm", "ViewB"))

	v, ok := x.Get("vm")
	require.True(t, ok)
	assert.Equal(t, "ViewA", v)
	assert.Equal(t, []string{"ViewB"}, x.Conflicts("vm"))
	assert.Equal(t, 1, x.Len())

	x.Freeze()
	assert.Panics(t, func() { x.Put("other", "ViewC") })
}
