package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/provizio/eprosima-dev-utils/pkg/types"
)

// PoolConfig defines configuration for the worker pool
type PoolConfig struct {
	// PoolSize is the number of worker goroutines
	PoolSize int

	// QueueSize is the task queue size
	QueueSize int

	// SubmitTimeout is the task submission timeout. Zero or negative means
	// submissions fail immediately when the queue is full.
	SubmitTimeout time.Duration

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock

	// ErrorHandler is invoked for every failed task (optional)
	ErrorHandler types.ErrorHandler

	// Logger for lifecycle and task failure events (optional, defaults to
	// a no-op logger)
	Logger *zap.Logger
}

// DefaultPoolConfig returns default configuration
func DefaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		PoolSize:      10,
		QueueSize:     100,
		SubmitTimeout: 5 * time.Second,
		Clock:         types.NewRealClock(),
	}
}

// Pool implements a fixed-size worker pool. It satisfies types.Manager for
// one-shot task dispatch and types.WorkerPool for lifecycle control.
//
// Tasks are handed to the workers through a single buffered queue, so they
// start in submission order; completion order across workers is
// unspecified.
type Pool struct {
	config   *PoolConfig
	workers  []*Worker
	taskChan chan types.Task
	logger   *zap.Logger

	// pool-wide task counters, updated by worker completion callbacks
	totalProcessed int64
	totalFailed    int64

	// state management
	state     int32 // 0: stopped, 1: running, 2: closed
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	// synchronization
	mu sync.RWMutex
}

var _ types.WorkerPool = (*Pool)(nil)

// NewPool creates a new worker pool
func NewPool(config *PoolConfig) (*Pool, error) {
	if config == nil {
		config = DefaultPoolConfig()
	}

	// parameter validation
	if config.PoolSize <= 0 {
		return nil, fmt.Errorf("pool size must be positive, got %d", config.PoolSize)
	}
	if config.QueueSize <= 0 {
		return nil, fmt.Errorf("queue size must be positive, got %d", config.QueueSize)
	}

	// Ensure clock is set
	if config.Clock == nil {
		config.Clock = types.NewRealClock()
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("worker-pool")

	taskChan := make(chan types.Task, config.QueueSize)
	workers := make([]*Worker, config.PoolSize)

	pool := &Pool{
		config:   config,
		workers:  workers,
		taskChan: taskChan,
		logger:   logger,
	}

	// create workers
	for i := 0; i < config.PoolSize; i++ {
		worker := NewWorkerWithClock(i, taskChan, config.Clock)
		worker.SetLogger(logger)
		worker.SetCompletionCallback(pool.recordCompletion)
		if config.ErrorHandler != nil {
			worker.SetErrorHandler(config.ErrorHandler)
		}
		workers[i] = worker
	}

	return pool, nil
}

// recordCompletion aggregates per-task outcomes into the pool counters
func (p *Pool) recordCompletion(_ time.Duration, failed bool) {
	if failed {
		atomic.AddInt64(&p.totalFailed, 1)
	} else {
		atomic.AddInt64(&p.totalProcessed, 1)
	}
}

// Start starts the worker pool
func (p *Pool) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&p.state, 0, 1) {
		if atomic.LoadInt32(&p.state) == 1 {
			return types.ErrPoolRunning
		}
		return types.ErrPoolClosed
	}

	// create context
	p.ctx, p.cancel = context.WithCancel(ctx)

	// start all workers
	for _, worker := range p.workers {
		go worker.Start(p.ctx)
	}

	p.logger.Info("worker pool started",
		zap.Int("workers", p.config.PoolSize),
		zap.Int("queue_capacity", p.config.QueueSize))

	return nil
}

// Submit submits a task to the worker pool
func (p *Pool) Submit(task types.Task) error {
	return p.SubmitWithTimeout(task, p.config.SubmitTimeout)
}

// SubmitWithTimeout submits a task to the worker pool with timeout
func (p *Pool) SubmitWithTimeout(task types.Task, timeout time.Duration) error {
	// check pool state
	state := atomic.LoadInt32(&p.state)
	if state != 1 {
		if state == 0 {
			return types.ErrPoolNotStarted
		}
		return types.ErrPoolClosed
	}

	if task == nil {
		return types.ErrNilTask
	}

	// if no timeout, try to send directly
	if timeout <= 0 {
		select {
		case p.taskChan <- task:
			return nil
		default:
			return types.ErrWorkerPoolFull
		}
	}

	// task submission with timeout
	timer := p.config.Clock.NewTimer(timeout)
	defer timer.Stop()

	select {
	case p.taskChan <- task:
		return nil
	case <-timer.C():
		return types.ErrTimeout
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// Stop stops the worker pool
func (p *Pool) Stop() error {
	if !atomic.CompareAndSwapInt32(&p.state, 1, 0) {
		if atomic.LoadInt32(&p.state) == 0 {
			return types.ErrPoolNotRunning
		}
		return types.ErrPoolClosed
	}

	// cancel context to notify all workers to stop
	if p.cancel != nil {
		p.cancel()
	}

	// stop workers concurrently, collecting individual failures
	var (
		stopMu   sync.Mutex
		stopErrs error
	)
	var wg sync.WaitGroup
	for _, worker := range p.workers {
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			if err := w.Stop(); err != nil {
				stopMu.Lock()
				stopErrs = multierr.Append(stopErrs, err)
				stopMu.Unlock()
			}
		}(worker)
	}

	// wait for all workers to stop with timeout
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-p.config.Clock.After(10 * time.Second):
		p.logger.Warn("timeout waiting for workers to stop")
		return multierr.Append(stopErrs, types.ErrTimeout)
	}

	if stopErrs != nil {
		p.logger.Warn("worker pool stopped with errors", zap.Error(stopErrs))
		return stopErrs
	}

	p.logger.Info("worker pool stopped")
	return nil
}

// Close closes the worker pool and releases resources
func (p *Pool) Close() error {
	var closeErr error

	p.closeOnce.Do(func() {
		// stop the pool first
		if err := p.Stop(); err != nil {
			closeErr = err
			return
		}

		// set to closed state
		atomic.StoreInt32(&p.state, 2)

		// close task channel
		close(p.taskChan)

		// clean up resources
		p.mu.Lock()
		p.workers = nil
		p.taskChan = nil
		p.mu.Unlock()

		p.logger.Info("worker pool closed")
	})

	return closeErr
}

// Size returns the worker pool size
func (p *Pool) Size() int {
	return p.config.PoolSize
}

// Stats gets basic worker pool statistics
func (p *Pool) Stats() types.WorkerPoolStats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	// count active workers
	var activeWorkers int
	for _, worker := range p.workers {
		if worker.State() == WorkerStateWorking {
			activeWorkers++
		}
	}

	var queueSize int
	if p.taskChan != nil {
		queueSize = len(p.taskChan)
	}

	return types.WorkerPoolStats{
		PoolSize:       p.config.PoolSize,
		ActiveWorkers:  activeWorkers,
		QueueSize:      queueSize,
		QueueCapacity:  p.config.QueueSize,
		TotalProcessed: atomic.LoadInt64(&p.totalProcessed),
		TotalFailed:    atomic.LoadInt64(&p.totalFailed),
	}
}

// GetWorkerStats gets statistics of all Workers
func (p *Pool) GetWorkerStats() []WorkerStats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	stats := make([]WorkerStats, len(p.workers))
	for i, worker := range p.workers {
		stats[i] = worker.Stats()
	}
	return stats
}

// IsRunning checks if the worker pool is running
func (p *Pool) IsRunning() bool {
	return atomic.LoadInt32(&p.state) == 1
}

// IsClosed checks if the worker pool is closed
func (p *Pool) IsClosed() bool {
	return atomic.LoadInt32(&p.state) == 2
}

// QueueLength gets the current queue length
func (p *Pool) QueueLength() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.taskChan == nil {
		return 0
	}
	return len(p.taskChan)
}

// QueueCapacity gets the queue capacity
func (p *Pool) QueueCapacity() int {
	return p.config.QueueSize
}
