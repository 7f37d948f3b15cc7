package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironloft/gymboard/internal/domain"
	"github.com/ironloft/gymboard/internal/sync"
)

// stubSyncManager is a canned-response sync.Manager for handler tests.
type stubSyncManager struct {
	entityType domain.EntityType
	boardID    int64
	report     *domain.SyncReport
	counts     map[domain.SyncStatus]int
	err        error
}

func (s *stubSyncManager) EntityType() domain.EntityType { return s.entityType }
func (s *stubSyncManager) BoardID() int64                { return s.boardID }

func (s *stubSyncManager) SyncOne(ctx context.Context, localID string) (domain.SyncResult, error) {
	return domain.SyncResult{}, s.err
}

func (s *stubSyncManager) SyncAllPending(ctx context.Context) (*domain.SyncReport, error) {
	return s.report, s.err
}

func (s *stubSyncManager) FullSyncFromRemote(ctx context.Context) (*domain.SyncReport, error) {
	return s.report, s.err
}

func (s *stubSyncManager) PerformBidirectionalSync(ctx context.Context) (*domain.SyncReport, error) {
	return s.report, s.err
}

func (s *stubSyncManager) ApplyRemoteEvent(ctx context.Context, evt domain.WebhookEvent) error {
	return s.err
}

func (s *stubSyncManager) Status(ctx context.Context) (map[domain.SyncStatus]int, error) {
	return s.counts, s.err
}

func syncRouter(t *testing.T, manager sync.Manager) http.Handler {
	t.Helper()
	registry, err := sync.NewRegistry(manager)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Route("/api/v1/sync/{entity}", func(r chi.Router) {
		r.Post("/run", HandleRunSync(registry))
		r.Post("/full", HandleFullSync(registry))
		r.Get("/status", HandleSyncStatus(registry))
	})
	return r
}

func TestHandleRunSync(t *testing.T) {
	manager := &stubSyncManager{
		entityType: domain.EntityMember,
		boardID:    1,
		report: &domain.SyncReport{
			EntityType:     domain.EntityMember,
			Direction:      domain.DirectionOutbound,
			TotalProcessed: 3,
			Successful:     3,
		},
	}
	router := syncRouter(t, manager)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/member/run", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var report domain.SyncReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 3, report.TotalProcessed)
}

func TestHandleRunSync_BounceIsConflict(t *testing.T) {
	manager := &stubSyncManager{entityType: domain.EntityMember, boardID: 1, err: domain.ErrSyncInProgress}
	router := syncRouter(t, manager)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/member/run", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrMsgSyncInProgressError, resp.Error)
}

func TestHandleRunSync_UnconfiguredEntity(t *testing.T) {
	manager := &stubSyncManager{entityType: domain.EntityMember, boardID: 1}
	router := syncRouter(t, manager)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/payment/run", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleFullSync(t *testing.T) {
	manager := &stubSyncManager{
		entityType: domain.EntityMember,
		boardID:    1,
		report:     &domain.SyncReport{Direction: domain.DirectionBidirectional, TotalProcessed: 5, Successful: 5},
	}
	router := syncRouter(t, manager)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/member/full", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var report domain.SyncReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, domain.DirectionBidirectional, report.Direction)
}

func TestHandleSyncStatus(t *testing.T) {
	manager := &stubSyncManager{
		entityType: domain.EntityMember,
		boardID:    1,
		counts: map[domain.SyncStatus]int{
			domain.SyncStatusSynced:  10,
			domain.SyncStatusPending: 2,
			domain.SyncStatusError:   1,
		},
	}
	router := syncRouter(t, manager)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/member/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SyncStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "member", resp.EntityType)
	assert.Equal(t, 10, resp.Counts[domain.SyncStatusSynced])
}
