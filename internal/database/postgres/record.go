package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironloft/gymboard/internal/domain"
	"github.com/ironloft/gymboard/internal/repository"
)

type recordRepository struct {
	db *pgxpool.Pool
}

// NewRecordRepository creates a new PostgreSQL record repository
func NewRecordRepository(db *pgxpool.Pool) repository.Record {
	return &recordRepository{db: db}
}

const recordColumns = `entity_type, local_id, name, fields, active, version,
	sync_status, remote_item_id, sync_error, last_synced_at, created_at, updated_at`

func (r *recordRepository) Get(ctx context.Context, entityType domain.EntityType, localID string) (*domain.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM records WHERE entity_type = $1 AND local_id = $2`, recordColumns)
	row := r.db.QueryRow(ctx, query, entityType, localID)
	return scanRecord(row)
}

func (r *recordRepository) GetByRemoteItemID(ctx context.Context, entityType domain.EntityType, remoteItemID string) (*domain.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM records WHERE entity_type = $1 AND remote_item_id = $2`, recordColumns)
	row := r.db.QueryRow(ctx, query, entityType, remoteItemID)
	return scanRecord(row)
}

func (r *recordRepository) ListBySyncStatus(ctx context.Context, entityType domain.EntityType, statuses ...domain.SyncStatus) ([]domain.Record, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`
		SELECT %s FROM records
		WHERE entity_type = $1 AND sync_status = ANY($2)
		ORDER BY updated_at ASC`, recordColumns)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	rows, err := r.db.Query(ctx, query, entityType, statusStrings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *recordRepository) Create(ctx context.Context, record *domain.Record) error {
	fieldsJSON, err := json.Marshal(record.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	query := `
		INSERT INTO records (entity_type, local_id, name, fields, active, version,
			sync_status, remote_item_id, sync_error, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, 1, $6, NULLIF($7, ''), NULLIF($8, ''), $9)
	`
	_, err = r.db.Exec(ctx, query,
		record.EntityType, record.ID, record.Name, fieldsJSON, record.Active,
		record.SyncState.Status, record.SyncState.RemoteItemID,
		record.SyncState.SyncError, record.SyncState.LastSyncedAt)
	if err != nil {
		return err
	}
	record.Version = 1
	return nil
}

func (r *recordRepository) Update(ctx context.Context, record *domain.Record) error {
	fieldsJSON, err := json.Marshal(record.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	// Optimistic concurrency: the write only lands if nobody bumped the
	// version since this record was read. A conflict is surfaced to the
	// caller as retryable, never silently overwritten.
	query := `
		UPDATE records
		SET name = $1, fields = $2, active = $3, version = version + 1,
			sync_status = $4, remote_item_id = NULLIF($5, ''),
			sync_error = NULLIF($6, ''), last_synced_at = $7, updated_at = now()
		WHERE entity_type = $8 AND local_id = $9 AND version = $10
	`
	tag, err := r.db.Exec(ctx, query,
		record.Name, fieldsJSON, record.Active,
		record.SyncState.Status, record.SyncState.RemoteItemID,
		record.SyncState.SyncError, record.SyncState.LastSyncedAt,
		record.EntityType, record.ID, record.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from a stale version.
		if _, getErr := r.Get(ctx, record.EntityType, record.ID); getErr != nil {
			return getErr
		}
		return domain.ErrVersionConflict
	}
	record.Version++
	return nil
}

func (r *recordRepository) UpdateSyncState(ctx context.Context, entityType domain.EntityType, localID string, state domain.SyncState) error {
	query := `
		UPDATE records
		SET sync_status = $1, remote_item_id = NULLIF($2, ''),
			sync_error = NULLIF($3, ''), last_synced_at = $4
		WHERE entity_type = $5 AND local_id = $6
	`
	tag, err := r.db.Exec(ctx, query,
		state.Status, state.RemoteItemID, state.SyncError, state.LastSyncedAt,
		entityType, localID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *recordRepository) SoftDelete(ctx context.Context, entityType domain.EntityType, localID string) error {
	query := `
		UPDATE records
		SET active = FALSE, version = version + 1, updated_at = now()
		WHERE entity_type = $1 AND local_id = $2
	`
	tag, err := r.db.Exec(ctx, query, entityType, localID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *recordRepository) CountBySyncStatus(ctx context.Context, entityType domain.EntityType) (map[domain.SyncStatus]int, error) {
	query := `SELECT sync_status, COUNT(*) FROM records WHERE entity_type = $1 GROUP BY sync_status`
	rows, err := r.db.Query(ctx, query, entityType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.SyncStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[domain.SyncStatus(status)] = count
	}
	return counts, rows.Err()
}

// rowScanner lets scanRecord work with both QueryRow and Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var rec domain.Record
	var fieldsJSON []byte
	var remoteItemID, syncError *string
	var lastSyncedAt *time.Time

	err := row.Scan(
		&rec.EntityType, &rec.ID, &rec.Name, &fieldsJSON, &rec.Active, &rec.Version,
		&rec.SyncState.Status, &remoteItemID, &syncError, &lastSyncedAt,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(fieldsJSON, &rec.Fields); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}
	if remoteItemID != nil {
		rec.SyncState.RemoteItemID = *remoteItemID
	}
	if syncError != nil {
		rec.SyncState.SyncError = *syncError
	}
	rec.SyncState.LastSyncedAt = lastSyncedAt
	return &rec, nil
}
