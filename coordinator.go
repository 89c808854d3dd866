package bruteforce

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// outcome classifies how a run ended.
type outcome string

const (
	outcomeResult    outcome = "result"
	outcomeTimeout   outcome = "timeout"
	outcomeExhausted outcome = "exhausted"
	outcomeCancelled outcome = "cancelled"
	outcomeFailed    outcome = "failed"
)

// coordinator owns the shared state of one run: the stop signal, the single-slot
// result channel and the failure record. It is used once and discarded.
type coordinator[S, R any] struct {
	id       string
	settings settings
	logger   *slog.Logger
	metrics  *searchMetrics

	stop    stopSignal
	results chan R

	// closed after every worker has returned
	exited  chan struct{}
	workers sync.WaitGroup

	// closed on the first worker failure
	failed     chan struct{}
	failOnce   sync.Once
	failuresMu sync.Mutex
	failures   []error
}

func newCoordinator[S, R any](cfg *config) *coordinator[S, R] {
	s := cfg.resolve()
	id := uuid.NewString()
	return &coordinator[S, R]{
		id:       id,
		settings: s,
		logger:   cfg.Logger.With("run_id", id),
		metrics:  newSearchMetrics(cfg.Metrics),
		results:  make(chan R, 1),
		exited:   make(chan struct{}),
		failed:   make(chan struct{}),
	}
}

// spawn starts one worker per configured thread and a watcher that closes exited
// once all of them have returned.
func (c *coordinator[S, R]) spawn(start Start[S], check Check[S, R]) {
	c.logger.Debug("search started",
		"threads", c.settings.threads,
		"iters_per_stop_check", c.settings.itersPerStopCheck,
	)
	c.metrics.runs.Add(1)

	c.workers.Add(c.settings.threads)
	for i := 0; i < c.settings.threads; i++ {
		w := newWorker(i, c.settings, start, check, c.results, &c.stop, c.metrics.checks, c.fail)
		c.metrics.active.Add(1)
		go func() {
			defer c.workers.Done()
			defer c.metrics.active.Add(-1)
			w.run()
		}()
	}

	go func() {
		c.workers.Wait()
		close(c.exited)
	}()
}

// fail records a worker failure. Safe for concurrent use.
func (c *coordinator[S, R]) fail(err error) {
	c.failuresMu.Lock()
	c.failures = append(c.failures, err)
	c.failuresMu.Unlock()
	c.failOnce.Do(func() { close(c.failed) })
}

// wait blocks until a result arrives, every worker has exited, a worker failed,
// ctx is done, or timeout (when non-nil) fires.
func (c *coordinator[S, R]) wait(ctx context.Context, timeout <-chan time.Time) (R, outcome) {
	var zero R
	select {
	case r := <-c.results:
		return r, outcomeResult
	case <-c.exited:
		return zero, outcomeExhausted
	case <-c.failed:
		return zero, outcomeFailed
	case <-timeout:
		return zero, outcomeTimeout
	case <-ctx.Done():
		return zero, outcomeCancelled
	}
}

// shutdown signals stop, joins every worker and settles the final outcome:
//  1. set the stop signal
//  2. wait for all workers to return
//  3. pick up a result deposited while the coordinator was not receiving
//  4. any recorded worker failure overrides every other outcome
func (c *coordinator[S, R]) shutdown(r R, o outcome) (R, outcome, error) {
	c.stop.Stop()
	<-c.exited

	if o != outcomeResult {
		select {
		case late := <-c.results:
			r, o = late, outcomeResult
		default:
		}
	}

	c.failuresMu.Lock()
	failures := c.failures
	c.failuresMu.Unlock()

	if len(failures) > 0 {
		c.metrics.panics.Add(int64(len(failures)))
		for _, err := range failures {
			c.logger.Error("worker failed", "error", err)
		}
		var zero R
		if len(failures) == 1 {
			return zero, outcomeFailed, failures[0]
		}
		return zero, outcomeFailed, errors.Join(failures...)
	}
	return r, o, nil
}

// execute runs the full protocol and records run metrics.
func (c *coordinator[S, R]) execute(
	ctx context.Context, timeout <-chan time.Time, start Start[S], check Check[S, R],
) (R, outcome, error) {
	began := time.Now()
	c.spawn(start, check)
	r, o := c.wait(ctx, timeout)
	r, o, err := c.shutdown(r, o)

	elapsed := time.Since(began)
	c.metrics.record(o, elapsed)
	c.logger.Debug("search finished", "outcome", string(o), "elapsed", elapsed)
	return r, o, err
}
