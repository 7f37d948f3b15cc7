package handler

import (
	"net/http"

	"github.com/ironloft/gymboard/internal/domain"
	"github.com/ironloft/gymboard/internal/logger"
	"github.com/ironloft/gymboard/internal/sync"
)

// SyncStatusResponse summarizes record counts per sync status
type SyncStatusResponse struct {
	EntityType string                    `json:"entity_type"`
	Counts     map[domain.SyncStatus]int `json:"counts"`
}

// HandleRunSync triggers an outbound sweep for one entity type
// @Summary Run outbound sync
// @Description Pushes every pending and errored record to the board, sequentially
// @Tags sync
// @Produce json
// @Param entity path string true "Entity type"
// @Success 200 {object} domain.SyncReport
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/sync/{entity}/run [post]
func HandleRunSync(registry *sync.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		manager, ok := managerFromURL(registry, r, w)
		if !ok {
			return
		}

		report, err := manager.SyncAllPending(r.Context())
		if err != nil {
			respondServiceError(w, r, "Run sync", err)
			return
		}

		logger.FromContext(r.Context()).Info("Outbound sync triggered via API",
			"entity_type", manager.EntityType(),
			"total", report.TotalProcessed)
		respondJSON(w, http.StatusOK, report)
	}
}

// HandleFullSync triggers a bidirectional sweep for one entity type
// @Summary Run full bidirectional sync
// @Description Pushes pending records outbound, then reconciles every board item inbound
// @Tags sync
// @Produce json
// @Param entity path string true "Entity type"
// @Success 200 {object} domain.SyncReport
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/sync/{entity}/full [post]
func HandleFullSync(registry *sync.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		manager, ok := managerFromURL(registry, r, w)
		if !ok {
			return
		}

		report, err := manager.PerformBidirectionalSync(r.Context())
		if err != nil {
			respondServiceError(w, r, "Full sync", err)
			return
		}

		logger.FromContext(r.Context()).Info("Full sync triggered via API",
			"entity_type", manager.EntityType(),
			"total", report.TotalProcessed)
		respondJSON(w, http.StatusOK, report)
	}
}

// HandleSyncStatus reports per-status record counts for one entity type
// @Summary Get sync status
// @Description Returns record counts grouped by sync status
// @Tags sync
// @Produce json
// @Param entity path string true "Entity type"
// @Success 200 {object} SyncStatusResponse
// @Router /api/v1/sync/{entity}/status [get]
func HandleSyncStatus(registry *sync.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		manager, ok := managerFromURL(registry, r, w)
		if !ok {
			return
		}

		counts, err := manager.Status(r.Context())
		if err != nil {
			respondServiceError(w, r, "Sync status", err)
			return
		}

		respondJSON(w, http.StatusOK, SyncStatusResponse{
			EntityType: string(manager.EntityType()),
			Counts:     counts,
		})
	}
}

func managerFromURL(registry *sync.Registry, r *http.Request, w http.ResponseWriter) (sync.Manager, bool) {
	entityType, ok := EntityTypeFromURL(r, w)
	if !ok {
		return nil, false
	}
	manager, err := registry.ManagerFor(entityType)
	if err != nil {
		respondServiceError(w, r, "Resolve sync manager", err)
		return nil, false
	}
	return manager, true
}
