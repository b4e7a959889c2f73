// Package pool provides a minimal fixed-size worker pool implementing
// ports.Executor, for hosts that do not bring their own. The concurrent
// engine treats any Executor as an external collaborator; this one exists
// so the CLI and tests have a pool to hand it.
package pool

import (
	"errors"
	"sync"
)

// ErrShutDown is returned by Submit after Shutdown has been called.
var ErrShutDown = errors.New("pool is shut down")

// Pool runs submitted tasks on a fixed set of goroutines.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup

	// mu is held read-side across the channel send so Shutdown can never
	// close the channel under an in-progress Submit.
	mu     sync.RWMutex
	closed bool
}

// New starts a pool with the given number of workers. Size is clamped to
// at least one worker.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{tasks: make(chan func())}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				task()
			}
		}()
	}
	return p
}

// Submit schedules task on a free worker, blocking until one accepts it.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrShutDown
	}

	p.tasks <- task
	return nil
}

// Shutdown stops accepting work and waits for running tasks to finish.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}
