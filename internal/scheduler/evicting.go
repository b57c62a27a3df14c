package scheduler

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"jls/internal/logging"
)

// Evicting runs background tasks through a single pending slot: a newly
// submitted task replaces whatever is still waiting, so after a burst
// of submissions only the newest task actually runs. This is the shape
// interactive re-analysis wants: intermediate states of a file are
// worthless the moment a newer one exists.
type Evicting struct {
	pool    *Pool
	limiter *rate.Limiter // nil when pacing is disabled
	log     *logging.Logger

	mu      sync.Mutex
	pending *slot

	// runMu serializes executions: one task in flight per instance,
	// no matter how many pool workers pick up drains.
	runMu sync.Mutex

	evicted  uint64
	executed uint64
}

type slot struct {
	id   string
	run  func()
	done chan struct{}
}

// NewEvicting builds an executor over the shared pool. ratePerSec > 0
// paces task starts with a token bucket of depth one; zero disables
// pacing.
func NewEvicting(pool *Pool, ratePerSec float64, log *logging.Logger) *Evicting {
	var limiter *rate.Limiter
	if ratePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSec), 1)
	}
	return &Evicting{
		pool:    pool,
		limiter: limiter,
		log:     log.Named("scheduler"),
	}
}

// Submit queues the task, evicting any task still pending. The returned
// channel closes when the task finishes or is evicted; an evicted
// task's function never runs. Submit itself never blocks.
func (e *Evicting) Submit(run func()) (string, <-chan struct{}) {
	next := &slot{
		id:   uuid.NewString(),
		run:  run,
		done: make(chan struct{}),
	}

	e.mu.Lock()
	if old := e.pending; old != nil {
		e.evicted++
		close(old.done)
		e.log.Debug("task evicted", map[string]interface{}{
			"evicted_id": old.id,
			"by_id":      next.id,
		})
	}
	e.pending = next
	e.mu.Unlock()

	// One drain per submission. A drain that finds the slot already
	// emptied by an earlier drain simply returns.
	e.pool.Run(e.drain)
	return next.id, next.done
}

func (e *Evicting) drain() {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.limiter != nil {
		_ = e.limiter.Wait(context.Background())
	}

	e.mu.Lock()
	task := e.pending
	e.pending = nil
	e.mu.Unlock()
	if task == nil {
		return
	}

	task.run()
	e.mu.Lock()
	e.executed++
	e.mu.Unlock()
	close(task.done)
}

// Stats reports how many tasks ran and how many were evicted unrun.
func (e *Evicting) Stats() (executed, evicted uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.executed, e.evicted
}
