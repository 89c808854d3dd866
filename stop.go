package bruteforce

import "sync/atomic"

// stopSignal is a one-shot broadcast from the coordinator to the workers.
// Workers poll it between batches and tolerate reading a stale value.
type stopSignal struct {
	stopped atomic.Bool
}

// Stop is idempotent and safe for concurrent use.
func (s *stopSignal) Stop() { s.stopped.Store(true) }

func (s *stopSignal) Stopped() bool { return s.stopped.Load() }
