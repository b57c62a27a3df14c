package scheduler

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jls/internal/logging"
)

func TestPoolRunsTasks(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	var count int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		pool.Run(func() {
			atomic.AddInt64(&count, 1)
			wg.Done()
		})
	}
	wg.Wait()
	if count != 20 {
		t.Fatalf("ran %d tasks, want 20", count)
	}
}

func TestPoolSubmitNeverBlocks(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()

	block := make(chan struct{})
	pool.Run(func() { <-block })

	// Far more tasks than worker plus buffer; Run must still return.
	done := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			pool.Run(func() { wg.Done() })
		}
		close(block)
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pool submission blocked")
	}
}

func TestPoolCloseDropsLateTasks(t *testing.T) {
	pool := NewPool(1)
	pool.Close()

	ran := false
	pool.Run(func() { ran = true })
	if ran {
		t.Error("task ran after Close")
	}
}

func TestEvictingKeepsOnlyNewest(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()
	e := NewEvicting(pool, 0, logging.Discard())

	// Occupy the single worker so later tasks pile up in the slot.
	started := make(chan struct{})
	release := make(chan struct{})
	_, firstDone := e.Submit(func() {
		close(started)
		<-release
	})
	<-started

	var ran [4]int64
	var dones [4]<-chan struct{}
	for i := 0; i < 4; i++ {
		i := i
		_, dones[i] = e.Submit(func() { atomic.AddInt64(&ran[i], 1) })
	}

	// Each superseded submission is evicted synchronously, so its done
	// channel is already closed.
	for i := 0; i < 3; i++ {
		select {
		case <-dones[i]:
		case <-time.After(time.Second):
			t.Fatalf("evicted task %d's channel not closed", i)
		}
	}

	close(release)
	for _, ch := range []<-chan struct{}{firstDone, dones[3]} {
		select {
		case <-ch:
		case <-time.After(5 * time.Second):
			t.Fatal("surviving task did not finish")
		}
	}

	for i := 0; i < 3; i++ {
		if atomic.LoadInt64(&ran[i]) != 0 {
			t.Errorf("evicted task %d ran", i)
		}
	}
	if atomic.LoadInt64(&ran[3]) != 1 {
		t.Errorf("newest task ran %d times, want 1", ran[3])
	}

	executed, evicted := e.Stats()
	if executed != 2 {
		t.Errorf("executed = %d, want 2", executed)
	}
	if evicted != 3 {
		t.Errorf("evicted = %d, want 3", evicted)
	}
}

func TestEvictingSingleExecutionInFlight(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()
	e := NewEvicting(pool, 0, logging.Discard())

	// Hold the first task mid-run with plenty of idle workers, then
	// submit a second one. It must not start until the first finishes.
	started := make(chan struct{})
	release := make(chan struct{})
	_, firstDone := e.Submit(func() {
		close(started)
		<-release
	})
	<-started

	var secondRan int64
	_, secondDone := e.Submit(func() { atomic.AddInt64(&secondRan, 1) })

	time.Sleep(50 * time.Millisecond)
	if atomic.LoadInt64(&secondRan) != 0 {
		t.Fatal("second task executed while the first was still in flight")
	}

	close(release)
	for _, ch := range []<-chan struct{}{firstDone, secondDone} {
		select {
		case <-ch:
		case <-time.After(5 * time.Second):
			t.Fatal("task did not complete")
		}
	}
	if atomic.LoadInt64(&secondRan) != 1 {
		t.Errorf("second task ran %d times, want 1", secondRan)
	}
}

func TestEvictingSequentialSubmissionsAllRun(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()
	e := NewEvicting(pool, 0, logging.Discard())

	for i := 0; i < 5; i++ {
		var once sync.Once
		ran := make(chan struct{})
		_, done := e.Submit(func() { once.Do(func() { close(ran) }) })
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("task did not complete")
		}
		select {
		case <-ran:
		default:
			t.Fatal("done closed but task never ran")
		}
	}

	executed, evicted := e.Stats()
	if executed != 5 {
		t.Errorf("executed = %d, want 5", executed)
	}
	if evicted != 0 {
		t.Errorf("evicted = %d, want 0", evicted)
	}
}

func TestEvictingRateLimiterPacesStarts(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()
	// 20 per second: the second execution must wait roughly 50ms for
	// the bucket to refill.
	e := NewEvicting(pool, 20, logging.Discard())

	start := time.Now()
	for i := 0; i < 2; i++ {
		_, done := e.Submit(func() {})
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("task did not complete")
		}
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("two executions took %v, want pacing of at least ~50ms", elapsed)
	}
}
