package board

import (
	"context"
	"sync"
	"time"
)

// Pacer serializes access to the remote API and enforces a minimum interval
// between consecutive calls. All managers share one pacer through the client,
// so the aggregate call rate stays under the platform ceiling no matter how
// many entity types sweep concurrently.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	lastCall time.Time
}

// NewPacer creates a pacer. A zero or negative requests-per-minute ceiling
// falls back to the interval alone; the effective spacing is whichever of the
// two is stricter.
func NewPacer(minInterval time.Duration, perMinute int) *Pacer {
	interval := minInterval
	if perMinute > 0 {
		quota := time.Minute / time.Duration(perMinute)
		if quota > interval {
			interval = quota
		}
	}
	return &Pacer{interval: interval}
}

// Wait blocks until the pacing interval since the previous call has elapsed,
// or the context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	now := time.Now()
	next := p.lastCall.Add(p.interval)
	var sleep time.Duration
	if next.After(now) {
		sleep = next.Sub(now)
		p.lastCall = next
	} else {
		p.lastCall = now
	}
	p.mu.Unlock()

	if sleep <= 0 {
		return nil
	}

	timer := time.NewTimer(sleep)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Interval returns the effective spacing between calls.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}
