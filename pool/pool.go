// Package pool recycles values that are expensive to build and safe to reuse
// after a reset, such as hash states shared by search workers.
package pool

// Pool hands out values to concurrent callers.
type Pool[T any] interface {
	// Get returns a value from the pool, creating one if none is available.
	Get() T

	// Put returns a value to the pool. The caller must not use it afterwards.
	Put(T)
}
