package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ironloft/gymboard/internal/testing/leaktest"
	"github.com/ironloft/gymboard/internal/worker"
)

type countingJob struct {
	runs atomic.Int32
}

func (c *countingJob) Process(ctx context.Context) error {
	c.runs.Add(1)
	return nil
}

type stuckJob struct {
	release chan struct{}
	started chan struct{}
}

func (s *stuckJob) Process(ctx context.Context) error {
	close(s.started)
	<-s.release
	return nil
}

func TestScheduler_RunsJobOnInterval(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &countingJob{}
	sched.Schedule(10*time.Millisecond, job)

	assert.Eventually(t, func() bool {
		return job.runs.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_StopHaltsTicks(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	job := &countingJob{}
	sched.Schedule(10*time.Millisecond, job)

	assert.Eventually(t, func() bool {
		return job.runs.Load() >= 1
	}, 2*time.Second, 5*time.Millisecond)

	sched.Stop()
	// Let any tick enqueued just before Stop drain through the pool.
	time.Sleep(20 * time.Millisecond)
	after := job.runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, job.runs.Load())
}

func TestScheduler_FullQueueDropsTick(t *testing.T) {
	// Single worker, single-slot queue: a stuck job plus a queued filler leave
	// no room, so scheduler ticks are dropped instead of blocking the loop.
	pool := worker.NewPool(1, 1)
	pool.Start()

	stuck := &stuckJob{release: make(chan struct{}), started: make(chan struct{})}
	pool.Enqueue(stuck)
	<-stuck.started
	pool.Enqueue(&countingJob{})

	sched := New(pool)
	job := &countingJob{}
	sched.Schedule(5*time.Millisecond, job)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, job.runs.Load())

	sched.Stop()
	close(stuck.release)
	pool.Stop()
}

func TestScheduler_StopTerminatesGoroutines(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := worker.NewPool(1, 4)
		pool.Start()

		sched := New(pool)
		sched.Schedule(time.Hour, &countingJob{})
		sched.Stop()
		pool.Stop()
	})
}
