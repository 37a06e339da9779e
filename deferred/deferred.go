// Package deferred provides a value that settles exactly once, either to a
// result or to an error.
package deferred

import (
	"context"
	"fmt"
	"sync"
)

// Value is a result that becomes available later. The zero Value is not
// usable; create one with New, Resolved, Rejected or Go.
type Value[T any] struct {
	once sync.Once
	done chan struct{}
	val  T
	err  error
}

func New[T any]() *Value[T] {
	return &Value[T]{done: make(chan struct{})}
}

// Resolved returns a Value already settled to v.
func Resolved[T any](v T) *Value[T] {
	d := New[T]()
	d.Resolve(v)
	return d
}

// Rejected returns a Value already settled to err.
func Rejected[T any](err error) *Value[T] {
	d := New[T]()
	d.Reject(err)
	return d
}

// Go runs fn on a new goroutine and settles the Value with its outcome.
// A panic in fn rejects the Value, and so does fn ending the goroutine
// through runtime.Goexit (ErrAbandoned).
func Go[T any](fn func() (T, error)) *Value[T] {
	d := New[T]()
	go func() {
		returned := false
		defer func() {
			if r := recover(); r != nil {
				d.Reject(fmt.Errorf("deferred: panic: %v", r))
				return
			}
			if !returned {
				d.Reject(ErrAbandoned)
			}
		}()
		v, err := fn()
		returned = true
		if err != nil {
			d.Reject(err)
			return
		}
		d.Resolve(v)
	}()
	return d
}

// Resolve settles the Value to v. It reports false if the Value had already
// settled, in which case nothing changes.
func (d *Value[T]) Resolve(v T) bool {
	settled := false
	d.once.Do(func() {
		d.val = v
		settled = true
		close(d.done)
	})
	return settled
}

// Reject settles the Value to err. A nil err is replaced with ErrNilReason.
func (d *Value[T]) Reject(err error) bool {
	if err == nil {
		err = ErrNilReason
	}
	settled := false
	d.once.Do(func() {
		d.err = err
		settled = true
		close(d.done)
	})
	return settled
}

// Done is closed once the Value settles.
func (d *Value[T]) Done() <-chan struct{} {
	return d.done
}

func (d *Value[T]) Settled() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// Await blocks until the Value settles or ctx is done. On rejection the
// zero T is returned with the reason.
func (d *Value[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		if d.err != nil {
			var zero T
			return zero, d.err
		}
		return d.val, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
