package concurrency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryAcquire_Exclusive(t *testing.T) {
	lm := NewLockManager()

	release, ok := lm.TryAcquire("sync:member")
	require.True(t, ok)

	_, ok = lm.TryAcquire("sync:member")
	assert.False(t, ok)

	release()

	release2, ok := lm.TryAcquire("sync:member")
	require.True(t, ok)
	release2()
}

func TestTryAcquire_KeysAreIndependent(t *testing.T) {
	lm := NewLockManager()

	releaseA, ok := lm.TryAcquire("sync:member")
	require.True(t, ok)
	defer releaseA()

	releaseB, ok := lm.TryAcquire("sync:inventory")
	require.True(t, ok)
	defer releaseB()
}

func TestGetLock_SameInstancePerKey(t *testing.T) {
	lm := NewLockManager()

	assert.Same(t, lm.GetLock("a"), lm.GetLock("a"))
	assert.NotSame(t, lm.GetLock("a"), lm.GetLock("b"))
}
