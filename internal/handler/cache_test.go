package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironloft/gymboard/internal/cache"
)

func checkCache(t *testing.T, signal *cache.Signal, query string) (*httptest.ResponseRecorder, CacheCheckResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cache/check"+query, nil)
	req.Header.Set(CacheCheckHeader, CacheCheckRequest)
	rec := httptest.NewRecorder()
	HandleCacheCheck(signal)(rec, req)

	var resp CacheCheckResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestHandleCacheCheck_NoTimestampForcesRefresh(t *testing.T) {
	rec, resp := checkCache(t, cache.NewSignal(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, CacheCheckRefresh, rec.Header().Get(CacheCheckHeader))
	assert.True(t, resp.ShouldInvalidate)
}

func TestHandleCacheCheck_FreshClient(t *testing.T) {
	signal := cache.NewSignal()
	signal.MarkInvalidated()

	// The client refreshed after the invalidation.
	future := time.Now().Add(time.Hour).Unix()
	rec, resp := checkCache(t, signal, fmt.Sprintf("?lastCacheTime=%d", future))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, CacheCheckOK, rec.Header().Get(CacheCheckHeader))
	assert.False(t, resp.ShouldInvalidate)
	assert.NotZero(t, resp.LastInvalidation)
}

func TestHandleCacheCheck_StaleClient(t *testing.T) {
	signal := cache.NewSignal()
	past := time.Now().Add(-time.Hour).Unix()
	signal.MarkInvalidated()

	rec, resp := checkCache(t, signal, fmt.Sprintf("?lastCacheTime=%d", past))

	assert.Equal(t, CacheCheckRefresh, rec.Header().Get(CacheCheckHeader))
	assert.True(t, resp.ShouldInvalidate)
}

func TestHandleCacheCheck_NeverInvalidated(t *testing.T) {
	past := time.Now().Add(-time.Hour).Unix()
	rec, resp := checkCache(t, cache.NewSignal(), fmt.Sprintf("?lastCacheTime=%d", past))

	assert.Equal(t, CacheCheckOK, rec.Header().Get(CacheCheckHeader))
	assert.False(t, resp.ShouldInvalidate)
	assert.Zero(t, resp.LastInvalidation)
}

func TestHandleCacheCheck_WireShape(t *testing.T) {
	signal := cache.NewSignal()
	signal.MarkInvalidated()
	past := time.Now().Add(-time.Hour).Unix()

	rec, _ := checkCache(t, signal, fmt.Sprintf("?lastCacheTime=%d", past))

	// Clients key off these exact field names.
	body := rec.Body.String()
	assert.Contains(t, body, `"shouldInvalidate":true`)
	assert.Contains(t, body, `"lastInvalidation":`)
}

func TestHandleCacheCheck_BadTimestampRejected(t *testing.T) {
	rec, _ := checkCache(t, cache.NewSignal(), "?lastCacheTime=yesterday")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
