package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironloft/gymboard/internal/domain"
)

func memberRecord(id string) *domain.Record {
	return &domain.Record{
		ID:         id,
		EntityType: domain.EntityMember,
		Name:       "Alex",
		Active:     true,
	}
}

func TestRecordCache_PutGet(t *testing.T) {
	c, err := NewRecordCache(8, NewSignal())
	require.NoError(t, err)

	rec := memberRecord("rec-1")
	c.Put(rec)

	got, ok := c.Get(domain.EntityMember, "rec-1")
	require.True(t, ok)
	assert.Equal(t, rec, got)

	_, ok = c.Get(domain.EntityMember, "missing")
	assert.False(t, ok)
}

func TestRecordCache_KeysScopedByEntityType(t *testing.T) {
	c, err := NewRecordCache(8, NewSignal())
	require.NoError(t, err)

	c.Put(memberRecord("rec-1"))

	_, ok := c.Get(domain.EntityInventory, "rec-1")
	assert.False(t, ok)
}

func TestRecordCache_InvalidationDropsStaleEntries(t *testing.T) {
	signal := NewSignal()
	c, err := NewRecordCache(8, signal)
	require.NoError(t, err)

	c.Put(memberRecord("rec-1"))
	time.Sleep(time.Millisecond)
	signal.MarkInvalidated()

	_, ok := c.Get(domain.EntityMember, "rec-1")
	assert.False(t, ok)
	// The stale entry is evicted, not just skipped.
	assert.Zero(t, c.Len())
}

func TestRecordCache_FreshEntriesSurviveOldInvalidation(t *testing.T) {
	signal := NewSignal()
	c, err := NewRecordCache(8, signal)
	require.NoError(t, err)

	signal.MarkInvalidated()
	time.Sleep(time.Millisecond)
	c.Put(memberRecord("rec-1"))

	_, ok := c.Get(domain.EntityMember, "rec-1")
	assert.True(t, ok)
}

func TestRecordCache_Remove(t *testing.T) {
	c, err := NewRecordCache(8, NewSignal())
	require.NoError(t, err)

	c.Put(memberRecord("rec-1"))
	c.Remove(domain.EntityMember, "rec-1")

	_, ok := c.Get(domain.EntityMember, "rec-1")
	assert.False(t, ok)
}

func TestRecordCache_DefaultSizeOnInvalidInput(t *testing.T) {
	c, err := NewRecordCache(0, nil)
	require.NoError(t, err)
	c.Put(memberRecord("rec-1"))

	_, ok := c.Get(domain.EntityMember, "rec-1")
	assert.True(t, ok)
}
