// Package types defines core interfaces and types for the concurrency utilities library
package types

import (
	"context"
	"time"
)

// Task defines the unit of work accepted by a Manager
type Task interface {
	// Execute executes the task
	Execute(ctx context.Context) error

	// ID returns the task ID (optional, for tracking)
	ID() string
}

// Manager defines the minimal task executor interface. Submit hands a single
// task over for asynchronous execution and returns without waiting for the
// task to run; rejections surface through the returned error.
type Manager interface {
	// Submit submits a task for asynchronous execution
	Submit(task Task) error
}

// WorkerPool defines the worker pool interface
type WorkerPool interface {
	Manager

	// SubmitWithTimeout submits a task to the worker pool with timeout
	SubmitWithTimeout(task Task, timeout time.Duration) error

	// Start starts the worker pool
	Start(ctx context.Context) error

	// Stop stops the worker pool
	Stop() error

	// Close closes the worker pool and releases resources
	Close() error

	// Size returns the size of the worker pool
	Size() int

	// Stats returns worker pool statistics
	Stats() WorkerPoolStats
}

// WorkerPoolStats defines basic statistics for worker pools
type WorkerPoolStats struct {
	// PoolSize is the size of the pool
	PoolSize int

	// ActiveWorkers is the number of active worker goroutines
	ActiveWorkers int

	// QueueSize is the current number of tasks in the queue
	QueueSize int

	// QueueCapacity is the capacity of the queue
	QueueCapacity int

	// TotalProcessed is the number of tasks completed without error
	TotalProcessed int64

	// TotalFailed is the number of tasks that returned an error or panicked
	TotalFailed int64
}

// ErrorHandler defines an error handling function invoked for failed tasks
type ErrorHandler func(error) error
