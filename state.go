package bruteforce

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Start produces the initial state of worker thread out of threadCount workers.
// Implementations partition the search space so that workers start in disjoint slices,
// or, for spaces without a natural order, may ignore the partition entirely.
type Start[S any] func(thread, threadCount int) S

// Advance moves a state to its successor. It must never panic and, for finite
// spaces, must eventually revisit the initial state.
type Advance[S any] func(*S)

// Check inspects the current state and reports a result when it found one.
// It is called repeatedly by a single worker against the state that worker owns,
// but concurrently from several workers, so anything it shares must be safe for concurrent use.
type Check[S, R any] func(*S) (R, bool)

// Space bundles both capabilities of a state type.
type Space[S any] struct {
	Start   Start[S]
	Advance Advance[S]
}

// Advancer is implemented by state types that know how to advance themselves.
type Advancer interface {
	Advance()
}

// AdvanceSelf lifts the Advance method of *S into an Advance[S].
func AdvanceSelf[S any, P interface {
	*S
	Advancer
}]() Advance[S] {
	return func(s *S) { P(s).Advance() }
}

// IntegerSpace returns the state space of a fixed-width integer type.
func IntegerSpace[T constraints.Integer]() Space[T] {
	return Space[T]{Start: StartInteger[T], Advance: AdvanceInteger[T]}
}

// StartInteger splits the 2^bits values of T into threadCount contiguous ranges and
// returns the first value of range thread. The last range absorbs the remainder.
// Signed types use the unsigned split of the same width, reinterpreted in two's complement.
func StartInteger[T constraints.Integer](thread, threadCount int) T {
	var zero T
	bits := uint(unsafe.Sizeof(zero)) * 8
	max := ^uint64(0) >> (64 - bits)

	if thread < 0 || uint64(thread) > max {
		return 0
	}
	if threadCount < 0 || uint64(threadCount) > max {
		return T(thread)
	}
	if threadCount <= 1 {
		return 0
	}

	n := uint64(threadCount)
	step := max / n
	if max%n == n-1 {
		step++
	}
	return T(step * uint64(thread))
}

// AdvanceInteger increments s, wrapping on overflow.
func AdvanceInteger[T constraints.Integer](s *T) {
	*s++
}
