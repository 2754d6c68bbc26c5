package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryReturnsStablePointers(t *testing.T) {
	r := NewRegistry()

	a := r.Counter(KeyHits)
	b := r.Counter(KeyHits)
	a.Add(2)

	assert.Same(t, a, b)
	assert.Equal(t, int64(2), b.Load())
	assert.True(t, r.Counters.Has(KeyHits))
	assert.False(t, r.Gauges.Has(KeyHits))
}

func TestRegistryValues(t *testing.T) {
	r := NewRegistry()
	r.Counter(KeyTicks).Add(3)
	r.Gauge(KeyRemaining).Set(12.5)

	assert.Equal(t, map[string]float64{KeyTicks: 3, KeyRemaining: 12.5}, r.Values())
	assert.Equal(t, 2, r.TotalCount())
}

func TestMetricMapKeysSorted(t *testing.T) {
	m := NewMetricMap[Gauge]()
	for _, k := range []string{"b", "c", "a"} {
		m.Get(k)
	}

	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())

	var visited []string
	m.Range(func(key string, _ *Gauge) { visited = append(visited, key) })
	assert.Equal(t, []string{"a", "b", "c"}, visited)
}

func TestGaugeConcurrentAdd(t *testing.T) {
	var g Gauge
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				g.Add(0.5)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 400.0, g.Get())
}
