package bruteforce

import (
	"runtime/debug"

	"github.com/ygrebnov/bruteforce/metrics"
)

type worker[S, R any] struct {
	index       int
	threadCount int
	batch       int

	start   Start[S]
	check   Check[S, R]
	results chan<- R
	stop    *stopSignal
	checks  metrics.Counter
	report  func(error)
}

func newWorker[S, R any](
	index int, s settings, start Start[S], check Check[S, R],
	results chan<- R, stop *stopSignal, checks metrics.Counter, report func(error),
) *worker[S, R] {
	return &worker[S, R]{
		index:       index,
		threadCount: s.threads,
		batch:       s.itersPerStopCheck,
		start:       start,
		check:       check,
		results:     results,
		stop:        stop,
		checks:      checks,
		report:      report,
	}
}

// run executes the worker until it finds a result or observes the stop signal.
// A panic is reported as a *PanicError. An exit through runtime.Goexit skips
// everything after loop, so it is detected and reported from the deferred call too.
func (w *worker[S, R]) run() {
	returned := false
	defer func() {
		if p := recover(); p != nil {
			w.report(newPanicError(w.index, p, debug.Stack()))
			return
		}
		if !returned {
			w.report(&workerExitError{worker: w.index})
		}
	}()

	w.loop()
	returned = true
}

func (w *worker[S, R]) loop() {
	state := w.start(w.index, w.threadCount)
	for {
		for i := 0; i < w.batch; i++ {
			if result, ok := w.check(&state); ok {
				w.checks.Add(int64(i + 1))
				select {
				case w.results <- result:
				default:
					// another worker already won
				}
				return
			}
		}
		w.checks.Add(int64(w.batch))
		if w.stop.Stopped() {
			return
		}
	}
}
