/*
Package worker provides a fixed-size worker pool with task management,
panic containment and statistics.

# Overview

The pool implements the Manager interface from pkg/types: callers hand over
tasks for asynchronous execution and get an immediate accept/reject verdict.
It supports:
- Fixed number of worker goroutines fed by one buffered task queue
- Immediate or timeout-bounded task submission
- Concurrency safety guarantees
- Pool-wide and per-worker statistics
- Graceful shutdown and resource cleanup
- Error handling and panic recovery
- Context cancellation support

# Core Components

## Pool

Fixed-size worker pool implementation providing the following features:
- Fixed number of worker goroutines
- Buffered task queue
- Task submission timeout control
- Real-time statistics
- Graceful shutdown mechanism

## Worker

Single worker goroutine implementation responsible for:
- Task execution and state management
- Error handling and panic recovery
- Statistics collection
- Lifecycle management

## BasicTask

Basic Task implementation wrapping a function with a generated or custom ID.

# Concurrency Safety

All components are safe for concurrent use:
- Passes the Go race detector
- Supports high-concurrency task submission
- Atomic operations ensure statistical accuracy
- Proper resource synchronization and cleanup

# Error Handling

Failed tasks are counted and reported, never silently dropped:
- Panics are recovered and wrapped into types.TaskError with the stack trace
- A configurable ErrorHandler observes every task failure
- Worker stop failures are aggregated with multierr
- Failures are logged through the configured zap logger

# Usage

Basic usage:

	config := &worker.PoolConfig{
		PoolSize:  10,
		QueueSize: 100,
	}

	pool, err := worker.NewPool(config)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := pool.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	task := worker.NewBasicTask(func(ctx context.Context) error {
		// execute work
		return nil
	})

	if err := pool.Submit(task); err != nil {
		log.Printf("Failed to submit task: %v", err)
	}

Task submission with timeout:

	err := pool.SubmitWithTimeout(task, 5*time.Second)
	if err == types.ErrTimeout {
		log.Println("Task submission timed out")
	}

Retrieve statistics:

	stats := pool.Stats()
	fmt.Printf("Active Workers: %d/%d\n", stats.ActiveWorkers, stats.PoolSize)
	fmt.Printf("Processed: %d, Failed: %d\n", stats.TotalProcessed, stats.TotalFailed)

# Configuration Options

PoolConfig supports the following configurations:
- PoolSize: Number of worker goroutines
- QueueSize: Task queue buffer size
- SubmitTimeout: Default task submission timeout
- Clock: Time source, swappable for tests
- ErrorHandler: Custom error handler
- Logger: zap logger for lifecycle and failure events
*/
package worker
