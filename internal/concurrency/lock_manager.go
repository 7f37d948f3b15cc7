package concurrency

import (
	"sync"
)

// LockManager handles named locks. Sync sweeps use it as an in-flight guard:
// one sweep per entity type, overlapping triggers bounce instead of queueing.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// TryAcquire attempts to take the named lock without blocking. It returns a
// release func on success and false when the lock is already held.
func (lm *LockManager) TryAcquire(key string) (func(), bool) {
	lock := lm.GetLock(key)
	if !lock.TryLock() {
		return nil, false
	}
	return lock.Unlock, true
}
