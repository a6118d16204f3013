// Package wait provides monitor-style synchronization primitives: values
// guarded by a mutex and condition variable that goroutines can mutate,
// read and block on.
package wait

import (
	"context"
	"sync"
)

// Value is a monitor around a single value of a comparable type. Mutations
// go through the monitor's lock and wake every goroutine blocked in Wait or
// WaitEqual so it can re-check its predicate. Wake-ups therefore never
// release a waiter on a stale value, and spurious wake-ups only cost a
// re-check.
type Value[T comparable] struct {
	mu   sync.Mutex
	cond *sync.Cond
	v    T
}

// NewValue creates a monitor holding the given initial value
func NewValue[T comparable](initial T) *Value[T] {
	w := &Value[T]{v: initial}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Get returns a snapshot of the current value without blocking on waiters
func (w *Value[T]) Get() T {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.v
}

// Set replaces the value and wakes all waiters
func (w *Value[T]) Set(v T) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.v = v
	w.cond.Broadcast()
}

// Update applies f to the value under the monitor lock, stores the result,
// wakes all waiters and returns the new value. f must not block or call
// back into the monitor.
func (w *Value[T]) Update(f func(T) T) T {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.v = f(w.v)
	w.cond.Broadcast()
	return w.v
}

// Wait blocks until pred reports true for the current value and returns the
// value that satisfied it. The predicate is evaluated under the monitor
// lock, first immediately and then after every wake-up.
//
// Cancelling ctx wakes the wait and returns ctx.Err. With
// context.Background the wait is unbounded.
func (w *Value[T]) Wait(ctx context.Context, pred func(T) bool) (T, error) {
	// wake this waiter when the context ends; the callback takes the
	// monitor lock so the broadcast cannot slip between the predicate
	// check and the wait
	stop := context.AfterFunc(ctx, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.cond.Broadcast()
	})
	defer stop()

	w.mu.Lock()
	defer w.mu.Unlock()
	for !pred(w.v) {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		w.cond.Wait()
	}
	return w.v, nil
}

// WaitEqual blocks until the value equals target. It returns immediately
// when the value already matches and never polls in between checks.
func (w *Value[T]) WaitEqual(ctx context.Context, target T) error {
	_, err := w.Wait(ctx, func(v T) bool { return v == target })
	return err
}
