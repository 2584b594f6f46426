// Package workerpool runs context-aware tasks on a bounded set of goroutines
// and collects their errors.
//
// Basic usage:
//
//	pool := workerpool.New(ctx, 4)
//	for _, p := range products {
//	    _ = pool.SubmitWait(func(ctx context.Context) error {
//	        return save(ctx, p)
//	    })
//	}
//	if err := pool.Wait(); err != nil {
//	    // one or more tasks failed
//	}
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/kidsisland/pkg/logger"
)

// ErrPoolClosed is returned by SubmitWait after Wait has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Task is a unit of work. It receives the pool's context.
type Task func(ctx context.Context) error

// Pool is a bounded goroutine pool.
type Pool struct {
	ctx   context.Context
	tasks chan Task
	wg    sync.WaitGroup

	mu     sync.RWMutex // guards closed and the send side of tasks
	closed bool

	errMu sync.Mutex
	errs  []error
}

// New starts size workers. The queue holds twice as many pending tasks.
func New(ctx context.Context, size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		ctx:   ctx,
		tasks: make(chan Task, size*2),
	}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// SubmitWait blocks until task is queued or the pool's context is done.
func (p *Pool) SubmitWait(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.tasks <- task:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// Wait stops accepting tasks, drains the queue and returns every task error
// joined together. It is safe to call more than once.
func (p *Pool) Wait() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	p.wg.Wait()

	p.errMu.Lock()
	defer p.errMu.Unlock()
	return errors.Join(p.errs...)
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		if err := p.ctx.Err(); err != nil {
			p.record(err)
			continue
		}
		p.record(p.safeRun(task))
	}
}

// safeRun turns a panicking task into an error so the worker survives.
func (p *Pool) safeRun(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("workerpool: task panicked", "panic", r)
			err = fmt.Errorf("workerpool: task panicked: %v", r)
		}
	}()
	return task(p.ctx)
}

func (p *Pool) record(err error) {
	if err == nil {
		return
	}
	p.errMu.Lock()
	p.errs = append(p.errs, err)
	p.errMu.Unlock()
}
