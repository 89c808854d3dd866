package bruteforce

import (
	"context"
	"fmt"
	"time"

	"github.com/ygrebnov/errorc"
)

// Run searches until a worker finds a result and returns it.
//
// Every worker builds its own state with start(i, threads) and calls check on it
// repeatedly. The first result deposited wins; results found concurrently by other
// workers are dropped.
//
// Errors:
//   - ErrInvalidConfig: an option was rejected.
//   - *PanicError (matching ErrWorkerPanicked): a worker panicked. This takes precedence
//     over a result another worker may already have produced.
//   - ErrWorkerExited: a worker stopped through runtime.Goexit.
//   - ErrNoResult: every worker exited without a result.
//   - ErrCancelled wrapping ctx.Err(): ctx was done before a result was found.
//
// Run always stops and joins every worker before returning.
func Run[S, R any](ctx context.Context, start Start[S], check Check[S, R], opts ...Option) (R, error) {
	var zero R
	cfg, err := prepare(start, check, opts)
	if err != nil {
		return zero, err
	}

	r, o, err := newCoordinator[S, R](cfg).execute(ctx, nil, start, check)
	if err != nil {
		return zero, err
	}
	switch o {
	case outcomeResult:
		return r, nil
	case outcomeCancelled:
		return zero, fmt.Errorf("%w: %w", ErrCancelled, context.Cause(ctx))
	default:
		return zero, ErrNoResult
	}
}

// MustRun is like Run but panics if the search fails for any reason.
// It suits search spaces known to contain a solution.
func MustRun[S, R any](ctx context.Context, start Start[S], check Check[S, R], opts ...Option) R {
	r, err := Run(ctx, start, check, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// RunWithTimeout searches until a worker finds a result or timeout elapses.
// It reports found == false when the timeout elapsed (or every worker exited)
// without a result; that is not an error. The full stop and join sequence runs
// before returning in every case.
//
// Errors are the same as for Run, except that ErrNoResult is never returned.
func RunWithTimeout[S, R any](
	ctx context.Context, timeout time.Duration, start Start[S], check Check[S, R], opts ...Option,
) (result R, found bool, err error) {
	var zero R
	cfg, err := prepare(start, check, opts)
	if err != nil {
		return zero, false, err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	r, o, err := newCoordinator[S, R](cfg).execute(ctx, timer.C, start, check)
	if err != nil {
		return zero, false, err
	}
	switch o {
	case outcomeResult:
		return r, true, nil
	case outcomeCancelled:
		return zero, false, fmt.Errorf("%w: %w", ErrCancelled, context.Cause(ctx))
	default:
		return zero, false, nil
	}
}

func prepare[S, R any](start Start[S], check Check[S, R], opts []Option) (*config, error) {
	if start == nil {
		return nil, errorc.With(ErrInvalidConfig, errorc.String("", "start function is nil"))
	}
	if check == nil {
		return nil, errorc.With(ErrInvalidConfig, errorc.String("", "checking function is nil"))
	}
	return newConfig(opts...)
}
