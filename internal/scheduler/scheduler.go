package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ironloft/gymboard/internal/worker"
)

// Scheduler enqueues recurring jobs onto a worker pool at fixed intervals.
// Periodic sync sweeps are its only current use.
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. When the worker queue
// is full the tick is dropped; the job runs again on the next tick, so a slow
// sweep never piles up duplicates behind itself.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !s.workerPool.TryEnqueue(job) {
					slog.Default().Warn(worker.LogMsgJobQueueFull)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
