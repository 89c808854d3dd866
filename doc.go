// Package bruteforce runs a checking function in parallel over a partitioned search
// space until one worker finds a result.
//
// Entry points
//   - Run(ctx, start, check, opts...): search until a result is found.
//   - MustRun(ctx, start, check, opts...): like Run, panics on failure.
//   - RunWithTimeout(ctx, d, start, check, opts...): search until a result is found or d elapses.
//
// State spaces
// A state type S supplies two independent capabilities:
//   - Start[S]: builds the initial state of worker i out of n, inside that worker's partition.
//   - Advance[S]: moves a state to its successor, wrapping around.
//
// Ready-made spaces cover fixed-width integers (IntegerSpace), fixed-length byte
// strings (BytesSpace) and edwards25519 scalars (ScalarSpace). The adaptors package
// turns simpler checking functions into Check values.
//
// Workers
// Each worker owns its state exclusively and calls the checking function in batches of
// ItersPerStopCheck calls, reading the shared stop signal only between batches. After a
// stop is requested every worker performs at most one more batch.
//
// Defaults
// Unless overridden, the following defaults apply:
//   - Threads: BRUTE_FORCE_THREADS if set to a positive integer, else runtime.NumCPU()
//   - ItersPerStopCheck: 512
//   - Logger: slog.Default()
//   - Metrics: no-op
//
// Failures
// A panic in any worker fails the whole run with a *PanicError, even if another worker
// already produced a result.
package bruteforce
