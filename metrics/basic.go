package metrics

import (
	"math"
	"sync"
	"sync/atomic"
)

// BasicProvider keeps instruments in memory and exposes their values through
// Snapshot methods. It is meant for tests and embedding applications that poll.
type BasicProvider struct {
	counters   *instruments[*BasicCounter]
	updowns    *instruments[*BasicUpDownCounter]
	histograms *instruments[*BasicHistogram]
}

func NewBasicProvider() *BasicProvider {
	return &BasicProvider{
		counters:   newInstruments(func() *BasicCounter { return &BasicCounter{} }),
		updowns:    newInstruments(func() *BasicUpDownCounter { return &BasicUpDownCounter{} }),
		histograms: newInstruments(func() *BasicHistogram { return &BasicHistogram{} }),
	}
}

func (p *BasicProvider) Counter(name string, opts ...InstrumentOption) Counter {
	return p.counters.get(name, opts)
}

func (p *BasicProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	return p.updowns.get(name, opts)
}

func (p *BasicProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	return p.histograms.get(name, opts)
}

// CounterValue returns the value of the named counter, or 0 if it was never created.
func (p *BasicProvider) CounterValue(name string) int64 {
	if c, ok := p.counters.lookup(name); ok {
		return c.Snapshot()
	}
	return 0
}

// UpDownValue returns the value of the named up/down counter, or 0 if it was never created.
func (p *BasicProvider) UpDownValue(name string) int64 {
	if u, ok := p.updowns.lookup(name); ok {
		return u.Snapshot()
	}
	return 0
}

// HistogramSnapshot returns the state of the named histogram, or a zero snapshot.
func (p *BasicProvider) HistogramSnapshot(name string) HistSnapshot {
	if h, ok := p.histograms.lookup(name); ok {
		return h.Snapshot()
	}
	return HistSnapshot{}
}

// Config returns the metadata the named instrument was created with.
func (p *BasicProvider) Config(name string) (InstrumentConfig, bool) {
	for _, m := range []*sync.Map{&p.counters.meta, &p.updowns.meta, &p.histograms.meta} {
		if v, ok := m.Load(name); ok {
			return v.(InstrumentConfig), true
		}
	}
	return InstrumentConfig{}, false
}

// instruments is a create-once registry of one instrument kind.
type instruments[T any] struct {
	mu    sync.RWMutex
	byKey map[string]T
	meta  sync.Map
	newFn func() T
}

func newInstruments[T any](newFn func() T) *instruments[T] {
	return &instruments[T]{byKey: make(map[string]T), newFn: newFn}
}

func (r *instruments[T]) lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byKey[name]
	return v, ok
}

func (r *instruments[T]) get(name string, opts []InstrumentOption) T {
	if v, ok := r.lookup(name); ok {
		return v
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.byKey[name]; ok {
		return v
	}
	v := r.newFn()
	r.byKey[name] = v
	r.meta.Store(name, applyOptions(opts))
	return v
}

// BasicCounter is a concurrency-safe counter.
type BasicCounter struct{ val atomic.Int64 }

func (c *BasicCounter) Add(n int64)     { c.val.Add(n) }
func (c *BasicCounter) Snapshot() int64 { return c.val.Load() }

// BasicUpDownCounter is a concurrency-safe up/down counter.
type BasicUpDownCounter struct{ val atomic.Int64 }

func (u *BasicUpDownCounter) Add(n int64)     { u.val.Add(n) }
func (u *BasicUpDownCounter) Snapshot() int64 { return u.val.Load() }

// BasicHistogram aggregates count, sum, min and max. It keeps no buckets.
type BasicHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.count == 0 {
		h.min, h.max = v, v
	} else {
		h.min = math.Min(h.min, v)
		h.max = math.Max(h.max, v)
	}
	h.count++
	h.sum += v
}

// HistSnapshot is a point-in-time copy of a BasicHistogram.
type HistSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

func (h *BasicHistogram) Snapshot() HistSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := HistSnapshot{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}
