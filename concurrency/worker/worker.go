// Package worker provides a bounded pool for CPU-heavy work. Password
// hashing is intentionally expensive, so it runs here instead of holding a
// request-handling goroutine's scheduling slot hostage under load.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrQueueFull  = errors.New("task queue is full")
	ErrPoolClosed = errors.New("pool is closed")
)

// Config represents pool configuration.
type Config struct {
	MaxWorkers  int           // number of worker goroutines
	QueueSize   int           // pending task capacity
	TaskTimeout time.Duration // per-task deadline for Do
}

// DefaultConfig returns default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxWorkers:  4,
		QueueSize:   256,
		TaskTimeout: 10 * time.Second,
	}
}

// Validate validates configuration.
func (cfg *Config) Validate() error {
	if cfg.MaxWorkers < 1 {
		return errors.New("max workers must be greater than 0")
	}
	if cfg.QueueSize < 1 {
		return errors.New("queue size must be greater than 0")
	}
	if cfg.TaskTimeout < 0 {
		return errors.New("task timeout must be greater than or equal to 0")
	}
	return nil
}

// Metrics tracks pool's operational metrics.
type Metrics struct {
	ActiveWorkers  atomic.Int64
	PendingTasks   atomic.Int64
	CompletedTasks atomic.Int64
	FailedTasks    atomic.Int64
}

// Task is a unit of work executed by a pool worker.
type Task func() error

// Pool represents a worker pool.
type Pool struct {
	maxWorkers  int
	taskTimeout time.Duration

	tasks  chan Task
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	metrics *Metrics
}

// NewPool creates a new worker pool.
func NewPool(cfg *Config) *Pool {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		maxWorkers:  cfg.MaxWorkers,
		taskTimeout: cfg.TaskTimeout,
		tasks:       make(chan Task, cfg.QueueSize),
		ctx:         ctx,
		cancel:      cancel,
		metrics:     &Metrics{},
	}
}

// Start starts the worker pool.
func (p *Pool) Start() {
	for i := 0; i < p.maxWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Stop stops the worker pool, waiting for in-flight tasks until ctx expires.
func (p *Pool) Stop(ctx context.Context) {
	p.cancel()
	close(p.tasks)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Submit queues a task without waiting for its result.
func (p *Pool) Submit(task Task) error {
	select {
	case <-p.ctx.Done():
		return ErrPoolClosed
	default:
	}

	select {
	case p.tasks <- task:
		p.metrics.PendingTasks.Add(1)
		return nil
	default:
		return ErrQueueFull
	}
}

// Do queues a task and waits for it to finish, honoring both the caller's
// context and the pool task timeout.
func (p *Pool) Do(ctx context.Context, task Task) error {
	result := make(chan error, 1)

	if err := p.Submit(func() error {
		err := task()
		result <- err
		return err
	}); err != nil {
		return err
	}

	deadline := p.taskTimeout
	if deadline <= 0 {
		deadline = time.Minute
	}
	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return context.DeadlineExceeded
	}
}

// GetMetrics returns the pool metrics.
func (p *Pool) GetMetrics() *Metrics {
	return p.metrics
}

// worker represents a worker goroutine.
func (p *Pool) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		p.runTask(task)
	}
}

// runTask executes a single task.
func (p *Pool) runTask(task Task) {
	p.metrics.ActiveWorkers.Add(1)
	p.metrics.PendingTasks.Add(-1)

	defer func() {
		p.metrics.ActiveWorkers.Add(-1)
		if r := recover(); r != nil {
			p.metrics.FailedTasks.Add(1)
		}
	}()

	if err := task(); err != nil {
		p.metrics.FailedTasks.Add(1)
		return
	}
	p.metrics.CompletedTasks.Add(1)
}
