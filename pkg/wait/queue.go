package wait

import (
	"context"

	"github.com/provizio/eprosima-dev-utils/pkg/queue"
)

// Queue pairs a double-buffered queue with a pending-value counter so that
// consumers can block for the next value instead of polling for it.
//
// The pairing keeps the gate consistent with the queue: Push increments the
// counter after the value is enqueued, and a pop decrements it only when a
// value actually came out. All access must go through this type; bypassing
// it to the underlying queue would let the gate drift.
type Queue[T any] struct {
	buf     *queue.DoubleBuffer[T]
	pending *Counter
}

// NewQueue creates an empty waitable queue
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		buf:     queue.NewDoubleBuffer[T](),
		pending: NewCounter(0),
	}
}

// Push enqueues v and wakes consumers blocked in Pop. It never waits on
// consumer activity beyond the enqueue critical section.
func (q *Queue[T]) Push(v T) {
	q.buf.Push(v)
	q.pending.Add(1)
}

// TryPop pops the oldest available value without blocking. It returns
// types.ErrEmptyQueue unchanged from the underlying queue when no value
// is available.
func (q *Queue[T]) TryPop() (T, error) {
	v, err := q.buf.Pop()
	if err != nil {
		return v, err
	}
	q.pending.Add(-1)
	return v, nil
}

// Pop blocks until a value is available, then pops and returns it.
// Several consumers may race for the same wake-up; the losers go back to
// waiting. Cancelling ctx unblocks the wait and returns ctx.Err.
func (q *Queue[T]) Pop(ctx context.Context) (T, error) {
	for {
		v, err := q.TryPop()
		if err == nil {
			return v, nil
		}
		if _, err := q.pending.Wait(ctx, func(n int64) bool { return n > 0 }); err != nil {
			var zero T
			return zero, err
		}
	}
}

// Len returns the number of currently queued values
func (q *Queue[T]) Len() int {
	return q.buf.Len()
}
