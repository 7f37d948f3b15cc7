package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ironloft/gymboard/internal/logger"
	"github.com/ironloft/gymboard/internal/record"
)

// CreateRecordRequest represents the request to create a record
type CreateRecordRequest struct {
	Name   string         `json:"name" validate:"required,max=255"`
	Fields map[string]any `json:"fields"`
}

// UpdateRecordRequest represents the request to update a record.
// Version carries the optimistic concurrency token from the last read.
type UpdateRecordRequest struct {
	Name    string         `json:"name" validate:"required,max=255"`
	Fields  map[string]any `json:"fields"`
	Version int64          `json:"version" validate:"required,gt=0"`
}

// HandleGetRecord returns one record by entity type and id
// @Summary Get record
// @Description Returns a single record with its sync state
// @Tags records
// @Produce json
// @Param entity path string true "Entity type"
// @Param id path string true "Record id"
// @Success 200 {object} domain.Record
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/records/{entity}/{id} [get]
func HandleGetRecord(recordService record.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityType, ok := EntityTypeFromURL(r, w)
		if !ok {
			return
		}
		localID := chi.URLParam(r, "id")

		rec, err := recordService.Get(r.Context(), entityType, localID)
		if err != nil {
			respondServiceError(w, r, "Get record", err)
			return
		}

		respondJSON(w, http.StatusOK, rec)
	}
}

// HandleCreateRecord creates a new record in pending state
// @Summary Create record
// @Description Creates a record; it syncs to the board on the next sweep
// @Tags records
// @Accept json
// @Produce json
// @Param entity path string true "Entity type"
// @Param request body CreateRecordRequest true "Record payload"
// @Success 201 {object} domain.Record
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/records/{entity} [post]
func HandleCreateRecord(recordService record.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityType, ok := EntityTypeFromURL(r, w)
		if !ok {
			return
		}

		var req CreateRecordRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create record"); err != nil {
			return
		}

		rec, err := recordService.Create(r.Context(), entityType, req.Name, req.Fields)
		if err != nil {
			respondServiceError(w, r, "Create record", err)
			return
		}

		logger.FromContext(r.Context()).Info("Record created via API",
			"entity_type", entityType,
			"local_id", rec.ID)
		respondJSON(w, http.StatusCreated, rec)
	}
}

// HandleUpdateRecord updates a record's name and fields
// @Summary Update record
// @Description Updates a record under its version guard and re-pends it for sync
// @Tags records
// @Accept json
// @Produce json
// @Param entity path string true "Entity type"
// @Param id path string true "Record id"
// @Param request body UpdateRecordRequest true "Record payload"
// @Success 200 {object} domain.Record
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/records/{entity}/{id} [put]
func HandleUpdateRecord(recordService record.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityType, ok := EntityTypeFromURL(r, w)
		if !ok {
			return
		}
		localID := chi.URLParam(r, "id")

		var req UpdateRecordRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update record"); err != nil {
			return
		}

		rec, err := recordService.Update(r.Context(), entityType, localID, req.Name, req.Fields, req.Version)
		if err != nil {
			respondServiceError(w, r, "Update record", err)
			return
		}

		respondJSON(w, http.StatusOK, rec)
	}
}

// HandleDeleteRecord soft-deletes a record
// @Summary Delete record
// @Description Soft-deletes a record; its board mirror is archived on the next sweep
// @Tags records
// @Produce json
// @Param entity path string true "Entity type"
// @Param id path string true "Record id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/records/{entity}/{id} [delete]
func HandleDeleteRecord(recordService record.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityType, ok := EntityTypeFromURL(r, w)
		if !ok {
			return
		}
		localID := chi.URLParam(r, "id")

		if err := recordService.Delete(r.Context(), entityType, localID); err != nil {
			respondServiceError(w, r, "Delete record", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRecordDeletedSuccess})
	}
}
