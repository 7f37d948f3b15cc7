package record

import (
	"context"

	"github.com/google/uuid"

	"github.com/ironloft/gymboard/internal/cache"
	"github.com/ironloft/gymboard/internal/domain"
	"github.com/ironloft/gymboard/internal/logger"
	"github.com/ironloft/gymboard/internal/repository"
)

// Service is the CRUD surface over records. Every local write resets the
// record to pending so the next outbound sweep pushes it to the board.
type Service interface {
	// Get returns one record, served from the read cache when fresh.
	Get(ctx context.Context, entityType domain.EntityType, localID string) (*domain.Record, error)

	// Create inserts a new pending record and returns it.
	Create(ctx context.Context, entityType domain.EntityType, name string, fields map[string]any) (*domain.Record, error)

	// Update overwrites name and fields, guarded by the caller's version.
	// A stale version returns domain.ErrVersionConflict.
	Update(ctx context.Context, entityType domain.EntityType, localID, name string, fields map[string]any, version int64) (*domain.Record, error)

	// Delete soft-deletes a record and re-pends it so the sweep archives the
	// remote mirror.
	Delete(ctx context.Context, entityType domain.EntityType, localID string) error
}

type service struct {
	repo      repository.Record
	readCache *cache.RecordCache
}

// NewService creates a new record service
func NewService(repo repository.Record, readCache *cache.RecordCache) Service {
	return &service{repo: repo, readCache: readCache}
}

func (s *service) Get(ctx context.Context, entityType domain.EntityType, localID string) (*domain.Record, error) {
	if s.readCache != nil {
		if rec, ok := s.readCache.Get(entityType, localID); ok {
			logger.FromContext(ctx).Debug(LogMsgCacheHit, "entity_type", entityType, "local_id", localID)
			return rec, nil
		}
	}

	rec, err := s.repo.Get(ctx, entityType, localID)
	if err != nil {
		return nil, err
	}
	if s.readCache != nil {
		s.readCache.Put(rec)
	}
	return rec, nil
}

func (s *service) Create(ctx context.Context, entityType domain.EntityType, name string, fields map[string]any) (*domain.Record, error) {
	if fields == nil {
		fields = make(map[string]any)
	}
	rec := &domain.Record{
		ID:         uuid.NewString(),
		EntityType: entityType,
		Name:       name,
		Fields:     fields,
		Active:     true,
		SyncState:  domain.SyncState{Status: domain.SyncStatusPending},
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgRecordCreated,
		"entity_type", entityType,
		"local_id", rec.ID)
	return rec, nil
}

func (s *service) Update(ctx context.Context, entityType domain.EntityType, localID, name string, fields map[string]any, version int64) (*domain.Record, error) {
	rec, err := s.repo.Get(ctx, entityType, localID)
	if err != nil {
		return nil, err
	}
	if rec.Version != version {
		return nil, domain.ErrVersionConflict
	}

	rec.Name = name
	if fields != nil {
		rec.Fields = fields
	}
	// Local edit: back to pending so the next sweep pushes it out.
	rec.SyncState.Status = domain.SyncStatusPending
	rec.SyncState.SyncError = ""

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	if s.readCache != nil {
		s.readCache.Remove(entityType, localID)
	}

	logger.FromContext(ctx).Info(LogMsgRecordUpdated,
		"entity_type", entityType,
		"local_id", localID,
		"version", rec.Version)
	return rec, nil
}

func (s *service) Delete(ctx context.Context, entityType domain.EntityType, localID string) error {
	rec, err := s.repo.Get(ctx, entityType, localID)
	if err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, entityType, localID); err != nil {
		return err
	}
	// Re-pend so the sweep archives the remote mirror.
	if err := s.repo.UpdateSyncState(ctx, entityType, localID, domain.SyncState{
		Status:       domain.SyncStatusPending,
		RemoteItemID: rec.SyncState.RemoteItemID,
		LastSyncedAt: rec.SyncState.LastSyncedAt,
	}); err != nil {
		return err
	}
	if s.readCache != nil {
		s.readCache.Remove(entityType, localID)
	}

	logger.FromContext(ctx).Info(LogMsgRecordDeleted,
		"entity_type", entityType,
		"local_id", localID)
	return nil
}
