// Package scheduler provides the workspace's background execution
// machinery: a shared bounded worker pool and evicting single-slot
// executors layered on it. One pool serves every executor so the whole
// process has one place where background parallelism is capped.
package scheduler

import (
	"sync"
)

// Pool is a fixed-size worker pool with a small submission buffer.
// When the buffer is full the task runs on a fresh goroutine instead of
// blocking the submitter; submitters are interactive request handlers
// and must never stall on background work.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewPool starts a pool with the given number of workers, at least one.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{tasks: make(chan func(), workers*4)}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Run hands a task to the pool without blocking. After Close the task
// is dropped.
func (p *Pool) Run(task func()) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	select {
	case p.tasks <- task:
		p.mu.Unlock()
	default:
		p.mu.Unlock()
		go task()
	}
}

// Close stops accepting tasks and waits for queued ones to finish.
func (p *Pool) Close() {
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
