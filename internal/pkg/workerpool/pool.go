package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

var ErrPoolClosed = errors.New("worker pool is closed")

// TaskResult carries the outcome of a submitted task.
type TaskResult struct {
	Data  interface{}
	Error error
}

// Pool is a bounded worker pool backed by ants. The pipeline uses small
// fixed bounds, so there is no queueing or scaling beyond what ants does.
type Pool struct {
	pool   *ants.Pool
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
}

// New creates a pool with the given number of workers.
func New(size int, logger *zap.Logger) (*Pool, error) {
	if size <= 0 {
		size = 1
	}

	antsPool, err := ants.NewPool(size,
		ants.WithPanicHandler(func(err interface{}) {
			logger.Error("worker panic", zap.Any("error", err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ants pool: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{pool: antsPool, ctx: ctx, cancel: cancel, logger: logger}, nil
}

// Submit schedules a task for execution.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.ctx.Done():
		return ErrPoolClosed
	default:
	}
	return p.pool.Submit(task)
}

// SubmitWithResult schedules a task and returns a channel that receives
// its result exactly once.
func (p *Pool) SubmitWithResult(task func() (interface{}, error)) <-chan TaskResult {
	resultCh := make(chan TaskResult, 1)

	if err := p.Submit(func() {
		data, err := task()
		resultCh <- TaskResult{Data: data, Error: err}
		close(resultCh)
	}); err != nil {
		resultCh <- TaskResult{Error: err}
		close(resultCh)
	}

	return resultCh
}

// Each runs fn for every index in [0, n) on the pool and blocks until all
// complete. Results land in caller-provided slots, so completion order
// never affects observable ordering.
func (p *Pool) Each(n int, fn func(i int)) {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		if err := p.Submit(func() {
			defer wg.Done()
			fn(i)
		}); err != nil {
			// Pool closed mid-iteration: run inline so slots are still filled.
			fn(i)
			wg.Done()
		}
	}
	wg.Wait()
}

// Running returns the number of busy workers.
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Shutdown stops the pool and releases its workers.
func (p *Pool) Shutdown() {
	p.cancel()
	p.pool.Release()
}
