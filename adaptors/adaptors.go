// Package adaptors converts simpler checking functions into bruteforce.Check values.
//
// Adaptors compose: a typical proof-of-work search is
//
//	check := adaptors.OutputInput(adaptors.AutoAdvance(bruteforce.AdvanceInteger[uint64], valid))
package adaptors

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/ygrebnov/bruteforce"
)

// AutoAdvance advances the state before every call to f, so f only inspects it.
// Apply it innermost; the other adaptors expect a function taking a mutable state.
func AutoAdvance[S, R any](advance bruteforce.Advance[S], f func(*S) R) func(*S) R {
	return func(s *S) R {
		advance(s)
		return f(s)
	}
}

// OutputInput turns a success predicate into a Check whose result is a copy of the
// state that satisfied it. Use OutputInputBytes for states that share memory on copy.
func OutputInput[S any](f func(*S) bool) bruteforce.Check[S, S] {
	return func(s *S) (S, bool) {
		if f(s) {
			return *s, true
		}
		var zero S
		return zero, false
	}
}

// OutputInputBytes is OutputInput for byte string states; the result is a deep copy.
func OutputInputBytes(f func(*bruteforce.Bytes) bool) bruteforce.Check[bruteforce.Bytes, bruteforce.Bytes] {
	return func(s *bruteforce.Bytes) (bruteforce.Bytes, bool) {
		if f(s) {
			return s.Clone(), true
		}
		return nil, false
	}
}

// RandomStart ignores the partition and draws every worker's initial state from
// crypto/rand. A draw failure panics inside the worker and fails the run.
func RandomStart[S any](draw func(io.Reader) (S, error)) bruteforce.Start[S] {
	return func(_, _ int) S {
		s, err := draw(rand.Reader)
		if err != nil {
			panic(err)
		}
		return s
	}
}

// RandomInteger draws a uniformly random T.
func RandomInteger[T constraints.Integer](r io.Reader) (T, error) {
	var buf [8]byte
	var zero T
	n := int(unsafe.Sizeof(zero))
	if _, err := io.ReadFull(r, buf[:n]); err != nil {
		return zero, err
	}
	return T(binary.LittleEndian.Uint64(buf[:])), nil
}

// RandomBytes returns a draw of uniformly random n-byte strings.
func RandomBytes(n int) func(io.Reader) (bruteforce.Bytes, error) {
	return func(r io.Reader) (bruteforce.Bytes, error) {
		b := make(bruteforce.Bytes, n)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, err
		}
		return b, nil
	}
}
