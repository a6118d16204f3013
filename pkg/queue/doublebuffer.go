// Package queue provides a double-buffered FIFO queue for hand-off between
// concurrent producers and a draining consumer.
package queue

import (
	"sync"

	"github.com/provizio/eprosima-dev-utils/pkg/types"
)

// DoubleBuffer is a FIFO queue backed by two internal buffers. Producers
// append to the back buffer while the consumer drains the front buffer, so
// producers contend only with each other and with the brief buffer swap,
// never with an ongoing drain.
//
// Pop serves values strictly from the front buffer and swaps the buffers
// only once the front is exhausted. A Pop with both buffers empty returns
// types.ErrEmptyQueue; the queue performs no waiting itself, so callers
// that need blocking consumption must gate pops on queued work
// (see the wait package).
//
// FIFO order holds for the values of one producer within one buffer
// generation. Values pushed while a swap is in progress may land in either
// the draining generation or the next one, but are never lost or
// duplicated.
type DoubleBuffer[T any] struct {
	// popMu serializes consumers and buffer swaps, pushMu protects the
	// back buffer. Lock order is popMu then pushMu; producers only ever
	// take pushMu.
	popMu  sync.Mutex
	pushMu sync.Mutex

	front []T
	head  int
	back  []T
}

// NewDoubleBuffer creates an empty double-buffered queue
func NewDoubleBuffer[T any]() *DoubleBuffer[T] {
	return &DoubleBuffer[T]{}
}

// Push appends v to the back buffer. It is safe for concurrent producers
// and never waits on consumer activity beyond the append critical section.
func (q *DoubleBuffer[T]) Push(v T) {
	q.pushMu.Lock()
	q.back = append(q.back, v)
	q.pushMu.Unlock()
}

// Pop removes and returns the oldest value of the active front buffer.
// While the front buffer holds values the back buffer is left untouched;
// the buffers are swapped only when the front is exhausted. Pop returns
// types.ErrEmptyQueue when no value is available after a swap attempt.
func (q *DoubleBuffer[T]) Pop() (T, error) {
	q.popMu.Lock()
	defer q.popMu.Unlock()

	if q.head >= len(q.front) {
		q.swap()
	}

	if q.head >= len(q.front) {
		var zero T
		return zero, types.ErrEmptyQueue
	}

	v := q.front[q.head]
	var zero T
	q.front[q.head] = zero // drop the reference so the value can be collected
	q.head++
	return v, nil
}

// Len returns the number of queued values across both buffers. The count is
// a snapshot; concurrent producers can change it before the caller acts on it.
func (q *DoubleBuffer[T]) Len() int {
	q.popMu.Lock()
	defer q.popMu.Unlock()
	q.pushMu.Lock()
	defer q.pushMu.Unlock()
	return (len(q.front) - q.head) + len(q.back)
}

// swap exchanges the exhausted front buffer with the back buffer and
// recycles the old front array as the next back buffer. The caller must
// hold popMu; pushMu is held only for the three header moves.
func (q *DoubleBuffer[T]) swap() {
	q.pushMu.Lock()
	q.front, q.back = q.back, q.front[:0]
	q.head = 0
	q.pushMu.Unlock()
}
