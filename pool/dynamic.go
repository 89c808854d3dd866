package pool

import "sync"

type dynamic[T any] struct {
	p sync.Pool
}

// NewDynamic returns a Pool backed by sync.Pool. Idle values may be dropped by the
// garbage collector at any time, so the pool grows and shrinks with demand.
func NewDynamic[T any](newFn func() T) Pool[T] {
	d := &dynamic[T]{}
	d.p.New = func() any { return newFn() }
	return d
}

func (d *dynamic[T]) Get() T { return d.p.Get().(T) }

func (d *dynamic[T]) Put(v T) { d.p.Put(v) }
