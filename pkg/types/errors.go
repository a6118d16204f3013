// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrEmptyQueue indicates a pop from an empty double-buffered queue.
	// Consumers are expected to gate pops on queued work, so hitting this
	// error means the caller broke that contract; it is never retried
	// internally.
	ErrEmptyQueue = errors.New("queue is empty")

	// ErrNilTask indicates a nil task was submitted
	ErrNilTask = errors.New("task cannot be nil")

	// ErrNilManager indicates a nil manager was passed to a connector
	ErrNilManager = errors.New("manager cannot be nil")

	// ErrNilFunc indicates a nil function was passed to a connector
	ErrNilFunc = errors.New("function cannot be nil")

	// ErrTaskAlreadyRun indicates a one-shot task was executed a second time
	ErrTaskAlreadyRun = errors.New("task has already run")

	// ErrTimeout indicates operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrPoolNotStarted indicates the worker pool has not been started
	ErrPoolNotStarted = errors.New("worker pool is not started")

	// ErrPoolNotRunning indicates the worker pool is not running
	ErrPoolNotRunning = errors.New("worker pool is not running")

	// ErrPoolRunning indicates the worker pool is already running
	ErrPoolRunning = errors.New("worker pool is already running")

	// ErrPoolClosed indicates the worker pool is closed
	ErrPoolClosed = errors.New("worker pool is closed")

	// ErrWorkerPoolFull indicates the worker pool is full
	ErrWorkerPoolFull = errors.New("worker pool is full")
)

// TaskError represents a task processing error
type TaskError struct {
	// Operation is the name of the operation where the error occurred
	Operation string

	// TaskID is the ID of the failing task
	TaskID string

	// Cause is the underlying error
	Cause error

	// Context contains error context information
	Context map[string]interface{}
}

// Error implements the error interface
func (e *TaskError) Error() string {
	return fmt.Sprintf("task error in operation %s (task %s): %v", e.Operation, e.TaskID, e.Cause)
}

// Unwrap returns the underlying error
func (e *TaskError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is a specific error
func (e *TaskError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewTaskError creates a new task error
func NewTaskError(operation, taskID string, cause error) *TaskError {
	return &TaskError{
		Operation: operation,
		TaskID:    taskID,
		Cause:     cause,
		Context:   make(map[string]interface{}),
	}
}

// WithContext adds error context
func (e *TaskError) WithContext(key string, value interface{}) *TaskError {
	e.Context[key] = value
	return e
}
