// Package connector builds one-shot tasks out of plain functions and hands
// them to a task manager for asynchronous execution.
//
// Each Execute variant snapshots its arguments by value at call time and
// binds them to a single-use task, so mutating an argument variable after
// Execute returns never affects the queued call. Pointer arguments are the
// deliberate exception: only the pointer is copied, caller and task share
// the pointee, and the pointee must be safe for concurrent use.
//
// Execute returns as soon as the manager accepts or rejects the task. The
// returned error is the manager's submission verdict, never the outcome of
// the function itself.
package connector

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/provizio/eprosima-dev-utils/pkg/types"
)

// oneShotIDCounter is the global one-shot task ID counter
var oneShotIDCounter int64

// oneShotTask adapts a bound function call to the types.Task interface.
// The run guard turns a second execution into an error instead of a second
// invocation.
type oneShotTask struct {
	id  string
	run int32
	fn  func()
}

func newOneShotTask(fn func()) *oneShotTask {
	id := atomic.AddInt64(&oneShotIDCounter, 1)
	return &oneShotTask{
		id: fmt.Sprintf("oneshot-%d", id),
		fn: fn,
	}
}

// Execute runs the bound call exactly once
func (t *oneShotTask) Execute(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&t.run, 0, 1) {
		return types.ErrTaskAlreadyRun
	}
	t.fn()
	return nil
}

// ID returns the task ID
func (t *oneShotTask) ID() string {
	return t.id
}

// Execute binds fn into a one-shot task and submits it to m
func Execute(m types.Manager, fn func()) error {
	if m == nil {
		return types.ErrNilManager
	}
	if fn == nil {
		return types.ErrNilFunc
	}
	return m.Submit(newOneShotTask(fn))
}

// Execute1 binds fn and one argument into a one-shot task and submits it
// to m. The argument is captured when Execute1 is called, not when the
// task runs.
func Execute1[A any](m types.Manager, fn func(A), a A) error {
	if m == nil {
		return types.ErrNilManager
	}
	if fn == nil {
		return types.ErrNilFunc
	}
	return m.Submit(newOneShotTask(func() { fn(a) }))
}

// Execute2 binds fn and two arguments into a one-shot task and submits it to m
func Execute2[A, B any](m types.Manager, fn func(A, B), a A, b B) error {
	if m == nil {
		return types.ErrNilManager
	}
	if fn == nil {
		return types.ErrNilFunc
	}
	return m.Submit(newOneShotTask(func() { fn(a, b) }))
}

// Execute3 binds fn and three arguments into a one-shot task and submits it to m
func Execute3[A, B, C any](m types.Manager, fn func(A, B, C), a A, b B, c C) error {
	if m == nil {
		return types.ErrNilManager
	}
	if fn == nil {
		return types.ErrNilFunc
	}
	return m.Submit(newOneShotTask(func() { fn(a, b, c) }))
}
