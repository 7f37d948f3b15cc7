package cache

import (
	"sync/atomic"
	"time"

	"github.com/ironloft/gymboard/internal/metrics"
)

// Signal is a process-wide invalidation timestamp that downstream read
// caches poll to decide whether to refetch. One atomic value, one process:
// a multi-instance deployment needs a shared transport instead, which is why
// every invalidation is also published on the event bus by the caller.
type Signal struct {
	invalidatedAt atomic.Int64 // unix nanos, 0 = never
}

// NewSignal creates an unset invalidation signal.
func NewSignal() *Signal {
	return &Signal{}
}

// MarkInvalidated sets the invalidation time to now.
func (s *Signal) MarkInvalidated() {
	s.invalidatedAt.Store(time.Now().UnixNano())
	metrics.CacheInvalidations.Inc()
}

// ShouldInvalidate reports whether an invalidation happened after the
// caller's last known refresh time.
func (s *Signal) ShouldInvalidate(lastKnown time.Time) bool {
	at := s.invalidatedAt.Load()
	if at == 0 {
		return false
	}
	return at > lastKnown.UnixNano()
}

// LastInvalidation returns the most recent invalidation time, zero if never.
func (s *Signal) LastInvalidation() time.Time {
	at := s.invalidatedAt.Load()
	if at == 0 {
		return time.Time{}
	}
	return time.Unix(0, at)
}
