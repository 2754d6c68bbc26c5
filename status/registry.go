package status

import (
	"math"
	"sync/atomic"
)

// Metric keys written by the game session
const (
	KeyTicks         = "session.ticks"
	KeyDetections    = "session.detections"
	KeyHits          = "session.hits"
	KeyTimedRespawns = "session.respawns.timed"
	KeySessions      = "session.started"
	KeyEnded         = "session.ended"
	KeyRemaining     = "session.remaining_seconds"
)

// Registry is the central metrics facade
// Writers cache pointers once; per-tick updates go straight to the atomics
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Gauge]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Gauge](),
	}
}

// Counter returns the counter registered under key
func (r *Registry) Counter(key string) *atomic.Int64 {
	return r.Counters.Get(key)
}

// Gauge returns the gauge registered under key
func (r *Registry) Gauge(key string) *Gauge {
	return r.Gauges.Get(key)
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Counters.Count() + r.Gauges.Count()
}

// Values copies every metric into a plain map, counters as float64
func (r *Registry) Values() map[string]float64 {
	out := make(map[string]float64, r.TotalCount())
	r.Counters.Range(func(key string, c *atomic.Int64) {
		out[key] = float64(c.Load())
	})
	r.Gauges.Range(func(key string, g *Gauge) {
		out[key] = g.Get()
	})
	return out
}

// Gauge holds a float64 reading in an atomic word; the zero value reads 0
type Gauge struct {
	v atomic.Uint64
}

func (g *Gauge) Set(val float64) { g.v.Store(math.Float64bits(val)) }

func (g *Gauge) Get() float64 { return math.Float64frombits(g.v.Load()) }

// Add applies delta with a compare-and-swap retry and returns the result
func (g *Gauge) Add(delta float64) float64 {
	for {
		cur := g.v.Load()
		sum := math.Float64frombits(cur) + delta
		if g.v.CompareAndSwap(cur, math.Float64bits(sum)) {
			return sum
		}
	}
}
