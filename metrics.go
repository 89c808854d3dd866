package bruteforce

import (
	"time"

	"github.com/ygrebnov/bruteforce/metrics"
)

// Instrument names recorded by every run.
const (
	MetricRuns         = "runs_total"
	MetricResults      = "results_total"
	MetricTimeouts     = "timeouts_total"
	MetricExhausted    = "exhausted_total"
	MetricCancelled    = "cancelled_total"
	MetricWorkerFailed = "worker_failures_total"
	MetricChecks       = "checks_total"
	MetricActive       = "workers_active"
	MetricRunSeconds   = "run_seconds"
)

type searchMetrics struct {
	runs      metrics.Counter
	results   metrics.Counter
	timeouts  metrics.Counter
	exhausted metrics.Counter
	cancelled metrics.Counter
	panics    metrics.Counter
	checks    metrics.Counter
	active    metrics.UpDownCounter
	duration  metrics.Histogram
}

func newSearchMetrics(p metrics.Provider) *searchMetrics {
	return &searchMetrics{
		runs:      p.Counter(MetricRuns, metrics.WithDescription("Search runs started.")),
		results:   p.Counter(MetricResults, metrics.WithDescription("Search runs that returned a result.")),
		timeouts:  p.Counter(MetricTimeouts, metrics.WithDescription("Search runs that timed out.")),
		exhausted: p.Counter(MetricExhausted, metrics.WithDescription("Search runs whose workers all exited without a result.")),
		cancelled: p.Counter(MetricCancelled, metrics.WithDescription("Search runs cancelled by the caller.")),
		panics:    p.Counter(MetricWorkerFailed, metrics.WithDescription("Workers that panicked or exited abnormally.")),
		checks: p.Counter(MetricChecks,
			metrics.WithDescription("Checking function invocations."),
			metrics.WithUnit("1"),
		),
		active: p.UpDownCounter(MetricActive, metrics.WithDescription("Workers currently running.")),
		duration: p.Histogram(MetricRunSeconds,
			metrics.WithDescription("Wall time of a search run."),
			metrics.WithUnit("seconds"),
		),
	}
}

func (m *searchMetrics) record(o outcome, elapsed time.Duration) {
	switch o {
	case outcomeResult:
		m.results.Add(1)
	case outcomeTimeout:
		m.timeouts.Add(1)
	case outcomeExhausted:
		m.exhausted.Add(1)
	case outcomeCancelled:
		m.cancelled.Add(1)
	}
	m.duration.Record(elapsed.Seconds())
}
