package repository

import (
	"context"

	"github.com/ironloft/gymboard/internal/domain"
)

// Record is the sync engine's view of the system of record: document CRUD
// with query-by-field and ordered listing. Business-rule validation lives in
// the page/service layer, not here.
type Record interface {
	// Get loads one record by entity type and local id.
	Get(ctx context.Context, entityType domain.EntityType, localID string) (*domain.Record, error)

	// GetByRemoteItemID finds the record mirrored by a remote item, if any.
	GetByRemoteItemID(ctx context.Context, entityType domain.EntityType, remoteItemID string) (*domain.Record, error)

	// ListBySyncStatus returns records in any of the given sync states,
	// oldest update first.
	ListBySyncStatus(ctx context.Context, entityType domain.EntityType, statuses ...domain.SyncStatus) ([]domain.Record, error)

	// Create inserts a new record. The caller sets the id.
	Create(ctx context.Context, record *domain.Record) error

	// Update writes fields, name, active flag, and sync state, guarded by
	// the record's version: a stale version returns domain.ErrVersionConflict
	// and writes nothing.
	Update(ctx context.Context, record *domain.Record) error

	// UpdateSyncState writes only the sync metadata without touching fields
	// or bumping the version.
	UpdateSyncState(ctx context.Context, entityType domain.EntityType, localID string, state domain.SyncState) error

	// SoftDelete marks a record inactive. Sync metadata is kept for audit.
	SoftDelete(ctx context.Context, entityType domain.EntityType, localID string) error

	// CountBySyncStatus returns record counts per sync status.
	CountBySyncStatus(ctx context.Context, entityType domain.EntityType) (map[domain.SyncStatus]int, error)
}

// WebhookLog persists inbound webhook audit records.
type WebhookLog interface {
	// Insert stores a received event and returns the audit row id.
	Insert(ctx context.Context, eventType string, payload []byte) (int64, error)

	// UpdateStatus moves an audit row to processed/error.
	UpdateStatus(ctx context.Context, id int64, status domain.WebhookStatus, errMsg string) error
}
