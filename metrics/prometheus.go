package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusProvider registers instruments as Prometheus collectors.
// Counters map to prometheus.Counter, up/down counters to prometheus.Gauge and
// histograms to prometheus.Histogram with the default buckets.
type PrometheusProvider struct {
	reg       prometheus.Registerer
	namespace string

	mu         sync.Mutex
	collectors map[string]prometheus.Collector
}

// NewPrometheusProvider returns a provider registering into reg under namespace.
// A nil reg selects prometheus.DefaultRegisterer.
func NewPrometheusProvider(reg prometheus.Registerer, namespace string) *PrometheusProvider {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &PrometheusProvider{
		reg:        reg,
		namespace:  namespace,
		collectors: make(map[string]prometheus.Collector),
	}
}

func (p *PrometheusProvider) Counter(name string, opts ...InstrumentOption) Counter {
	cfg := applyOptions(opts)
	c := p.collector(name, func() prometheus.Collector {
		return prometheus.NewCounter(prometheus.CounterOpts(p.opts(name, cfg)))
	})
	return promCounter{c.(prometheus.Counter)}
}

func (p *PrometheusProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	cfg := applyOptions(opts)
	g := p.collector(name, func() prometheus.Collector {
		return prometheus.NewGauge(prometheus.GaugeOpts(p.opts(name, cfg)))
	})
	return promGauge{g.(prometheus.Gauge)}
}

func (p *PrometheusProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	cfg := applyOptions(opts)
	h := p.collector(name, func() prometheus.Collector {
		o := p.opts(name, cfg)
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   o.Namespace,
			Name:        o.Name,
			Help:        o.Help,
			ConstLabels: o.ConstLabels,
			Buckets:     prometheus.DefBuckets,
		})
	})
	return promHistogram{h.(prometheus.Histogram)}
}

func (p *PrometheusProvider) opts(name string, cfg InstrumentConfig) prometheus.Opts {
	return prometheus.Opts{
		Namespace:   p.namespace,
		Name:        name,
		Help:        cfg.help(name),
		ConstLabels: prometheus.Labels(cfg.Attributes),
	}
}

// collector returns the collector cached under name, creating and registering it once.
// A collector already registered by another provider sharing the registerer is reused.
func (p *PrometheusProvider) collector(name string, newFn func() prometheus.Collector) prometheus.Collector {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.collectors[name]; ok {
		return c
	}
	c := newFn()
	if err := p.reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			panic(err)
		}
		c = are.ExistingCollector
	}
	p.collectors[name] = c
	return c
}

type promCounter struct{ c prometheus.Counter }

// Add ignores negative increments, which Prometheus counters reject.
func (c promCounter) Add(n int64) {
	if n > 0 {
		c.c.Add(float64(n))
	}
}

type promGauge struct{ g prometheus.Gauge }

func (g promGauge) Add(n int64) { g.g.Add(float64(n)) }

type promHistogram struct{ h prometheus.Histogram }

func (h promHistogram) Record(v float64) { h.h.Observe(v) }
