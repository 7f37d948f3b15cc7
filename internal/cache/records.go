package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ironloft/gymboard/internal/domain"
)

// DefaultRecordCacheSize bounds the record read cache.
const DefaultRecordCacheSize = 1024

type cachedRecord struct {
	record   *domain.Record
	cachedAt time.Time
}

// RecordCache is an LRU read-through cache for records that honors the
// invalidation signal: entries stamped before the last invalidation are
// treated as misses.
type RecordCache struct {
	lru    *lru.Cache[string, cachedRecord]
	signal *Signal
}

// NewRecordCache creates a record cache of the given size bound to a signal.
func NewRecordCache(size int, signal *Signal) (*RecordCache, error) {
	if size <= 0 {
		size = DefaultRecordCacheSize
	}
	l, err := lru.New[string, cachedRecord](size)
	if err != nil {
		return nil, err
	}
	return &RecordCache{lru: l, signal: signal}, nil
}

func key(entityType domain.EntityType, localID string) string {
	return string(entityType) + "/" + localID
}

// Get returns a cached record unless it predates the last invalidation.
func (c *RecordCache) Get(entityType domain.EntityType, localID string) (*domain.Record, bool) {
	entry, ok := c.lru.Get(key(entityType, localID))
	if !ok {
		return nil, false
	}
	if c.signal != nil && c.signal.ShouldInvalidate(entry.cachedAt) {
		c.lru.Remove(key(entityType, localID))
		return nil, false
	}
	return entry.record, true
}

// Put stores a record stamped with the current time.
func (c *RecordCache) Put(record *domain.Record) {
	if record == nil {
		return
	}
	c.lru.Add(key(record.EntityType, record.ID), cachedRecord{record: record, cachedAt: time.Now()})
}

// Remove drops one record from the cache.
func (c *RecordCache) Remove(entityType domain.EntityType, localID string) {
	c.lru.Remove(key(entityType, localID))
}

// Len returns the number of cached entries.
func (c *RecordCache) Len() int {
	return c.lru.Len()
}
