package bruteforce

import "errors"

const Namespace = "bruteforce"

var (
	ErrInvalidConfig  = errors.New(Namespace + ": invalid configuration")
	ErrNoResult       = errors.New(Namespace + ": all workers exited without a result")
	ErrWorkerPanicked = errors.New(Namespace + ": worker panicked")
	ErrWorkerExited   = errors.New(Namespace + ": worker exited abnormally")
	ErrCancelled      = errors.New(Namespace + ": search cancelled")
)
