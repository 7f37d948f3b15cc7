package sync

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ironloft/gymboard/internal/board"
	"github.com/ironloft/gymboard/internal/cache"
	"github.com/ironloft/gymboard/internal/concurrency"
	"github.com/ironloft/gymboard/internal/domain"
	"github.com/ironloft/gymboard/internal/event"
	"github.com/ironloft/gymboard/internal/logger"
	"github.com/ironloft/gymboard/internal/mapping"
	"github.com/ironloft/gymboard/internal/metrics"
	"github.com/ironloft/gymboard/internal/repository"
)

// Manager drives synchronization for one entity type against its board.
// All sweeps are sequential: one record at a time, paced by the board client,
// with an in-flight guard so overlapping triggers bounce instead of queueing.
type Manager interface {
	EntityType() domain.EntityType
	BoardID() int64

	// SyncOne pushes a single record to the board: update when a remote item
	// is linked, create otherwise. A classified remote not-found on update
	// falls back to create; any other failure marks the record error.
	SyncOne(ctx context.Context, localID string) (domain.SyncResult, error)

	// SyncAllPending sweeps every pending and error record outbound.
	// Returns domain.ErrSyncInProgress when a sweep is already running.
	SyncAllPending(ctx context.Context) (*domain.SyncReport, error)

	// FullSyncFromRemote pulls every board item and reconciles it into the
	// local store: linked items are merged, unknown items imported.
	FullSyncFromRemote(ctx context.Context) (*domain.SyncReport, error)

	// PerformBidirectionalSync runs the outbound sweep first, then the
	// inbound pull, under a single in-flight guard.
	PerformBidirectionalSync(ctx context.Context) (*domain.SyncReport, error)

	// ApplyRemoteEvent merges one webhook change notification into the
	// local store.
	ApplyRemoteEvent(ctx context.Context, evt domain.WebhookEvent) error

	// Status reports record counts per sync status.
	Status(ctx context.Context) (map[domain.SyncStatus]int, error)
}

// ManagerConfig wires one entity type to its board.
type ManagerConfig struct {
	EntityType        domain.EntityType
	BoardID           int64
	LowStockThreshold float64
}

type manager struct {
	entityType domain.EntityType
	boardID    int64
	repo       repository.Record
	client     board.Client
	bus        event.Bus
	signal     *cache.Signal
	locks      *concurrency.LockManager
	lowStock   float64
}

// NewManager creates a sync manager for one entity type.
func NewManager(cfg ManagerConfig, repo repository.Record, client board.Client, bus event.Bus, signal *cache.Signal, locks *concurrency.LockManager) Manager {
	threshold := cfg.LowStockThreshold
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return &manager{
		entityType: cfg.EntityType,
		boardID:    cfg.BoardID,
		repo:       repo,
		client:     client,
		bus:        bus,
		signal:     signal,
		locks:      locks,
		lowStock:   threshold,
	}
}

func (m *manager) EntityType() domain.EntityType { return m.entityType }
func (m *manager) BoardID() int64                { return m.boardID }

func (m *manager) lockKey() string {
	return "sync:" + string(m.entityType)
}

// encodeColumns translates a record's fields into wire column values.
// Unencodable fields are omitted, never nulled, so a partial update leaves
// the remote value untouched.
func (m *manager) encodeColumns(record *domain.Record) map[string]any {
	cols := make(map[string]any)
	for _, col := range mapping.ForEntity(m.entityType) {
		value, present := record.Field(col.LocalField)
		if !present {
			continue
		}
		wire, ok := mapping.Encode(col.Kind, value)
		if !ok {
			metrics.CodecDroppedFields.WithLabelValues(string(m.entityType), string(col.Kind)).Inc()
			continue
		}
		cols[col.ColumnID] = wire
	}
	return cols
}

func (m *manager) SyncOne(ctx context.Context, localID string) (domain.SyncResult, error) {
	record, err := m.repo.Get(ctx, m.entityType, localID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		// A missing record is a skip, not a failure: it must never feed the
		// failure counters used for alerting.
		logger.FromContext(ctx).Debug(LogMsgRecordMissing,
			"entity_type", m.entityType,
			"local_id", localID)
		return domain.SyncResult{LocalID: localID, Outcome: domain.OutcomeSkipped, Error: "not found"}, nil
	}
	if err != nil {
		return domain.SyncResult{LocalID: localID, Outcome: domain.OutcomeFailed, Error: err.Error()}, err
	}
	return m.syncRecord(ctx, record)
}

func (m *manager) syncRecord(ctx context.Context, record *domain.Record) (domain.SyncResult, error) {
	log := logger.FromContext(ctx)

	// Inactive records with a remote mirror get archived instead of updated.
	if !record.Active {
		return m.archiveRecord(ctx, record)
	}

	cols := m.encodeColumns(record)

	var remoteID int64
	var syncErr error

	if record.SyncState.RemoteItemID != "" {
		remoteID, _ = strconv.ParseInt(record.SyncState.RemoteItemID, 10, 64)
		syncErr = m.client.UpdateItem(ctx, m.boardID, remoteID, cols)

		// Only a classified not-found may trigger the create fallback.
		// Transient failures stay linked and retry on a later sweep.
		if errors.Is(syncErr, domain.ErrRemoteItemNotFound) {
			log.Warn(LogMsgFallbackCreate,
				"entity_type", m.entityType,
				"local_id", record.ID,
				"stale_item_id", record.SyncState.RemoteItemID)
			remoteID, syncErr = m.client.CreateItem(ctx, m.boardID, record.Name, cols)
		}
	} else {
		remoteID, syncErr = m.client.CreateItem(ctx, m.boardID, record.Name, cols)
	}

	if syncErr != nil {
		return m.markFailed(ctx, record, syncErr)
	}
	return m.markSynced(ctx, record, remoteID)
}

func (m *manager) archiveRecord(ctx context.Context, record *domain.Record) (domain.SyncResult, error) {
	if record.SyncState.RemoteItemID == "" {
		// Nothing to archive remotely; the record is already settled.
		return domain.SyncResult{LocalID: record.ID, Outcome: domain.OutcomeSkipped}, nil
	}

	remoteID, _ := strconv.ParseInt(record.SyncState.RemoteItemID, 10, 64)
	err := m.client.ArchiveItem(ctx, remoteID)
	if err != nil && !errors.Is(err, domain.ErrRemoteItemNotFound) {
		return m.markFailed(ctx, record, err)
	}

	logger.FromContext(ctx).Info(LogMsgRecordArchived,
		"entity_type", m.entityType,
		"local_id", record.ID,
		"item_id", remoteID)
	return m.markSynced(ctx, record, remoteID)
}

func (m *manager) markSynced(ctx context.Context, record *domain.Record, remoteID int64) (domain.SyncResult, error) {
	now := time.Now()
	state := domain.SyncState{
		Status:       domain.SyncStatusSynced,
		RemoteItemID: strconv.FormatInt(remoteID, 10),
		LastSyncedAt: &now,
	}
	if err := m.repo.UpdateSyncState(ctx, m.entityType, record.ID, state); err != nil {
		return domain.SyncResult{LocalID: record.ID, Outcome: domain.OutcomeFailed, Error: err.Error()}, err
	}

	logger.FromContext(ctx).Info(LogMsgRecordSynced,
		"entity_type", m.entityType,
		"local_id", record.ID,
		"item_id", remoteID)
	_ = m.bus.Publish(ctx, event.NewRecordSyncedEvent(m.entityType, record.ID, state.RemoteItemID, domain.DirectionOutbound))

	return domain.SyncResult{
		LocalID:      record.ID,
		RemoteItemID: state.RemoteItemID,
		Outcome:      domain.OutcomeSynced,
	}, nil
}

func (m *manager) markFailed(ctx context.Context, record *domain.Record, syncErr error) (domain.SyncResult, error) {
	state := domain.SyncState{
		Status:       domain.SyncStatusError,
		RemoteItemID: record.SyncState.RemoteItemID,
		SyncError:    syncErr.Error(),
		LastSyncedAt: record.SyncState.LastSyncedAt,
	}
	if err := m.repo.UpdateSyncState(ctx, m.entityType, record.ID, state); err != nil {
		logger.FromContext(ctx).Error(LogMsgRecordSyncFailed,
			"entity_type", m.entityType,
			"local_id", record.ID,
			"error", err)
	}

	logger.FromContext(ctx).Warn(LogMsgRecordSyncFailed,
		"entity_type", m.entityType,
		"local_id", record.ID,
		"error", syncErr)
	_ = m.bus.Publish(ctx, event.NewRecordSyncFailedEvent(m.entityType, record.ID, domain.DirectionOutbound, syncErr.Error()))

	return domain.SyncResult{
		LocalID: record.ID,
		Outcome: domain.OutcomeFailed,
		Error:   syncErr.Error(),
	}, syncErr
}

func (m *manager) SyncAllPending(ctx context.Context) (*domain.SyncReport, error) {
	release, ok := m.locks.TryAcquire(m.lockKey())
	if !ok {
		logger.FromContext(ctx).Warn(LogMsgSweepBounced, "entity_type", m.entityType)
		return nil, domain.ErrSyncInProgress
	}
	defer release()

	report, err := m.sweepPending(ctx)
	m.observeSweep(report, err)
	return report, err
}

// sweepPending runs the outbound sweep body. Callers hold the in-flight lock.
func (m *manager) sweepPending(ctx context.Context) (*domain.SyncReport, error) {
	report := &domain.SyncReport{
		EntityType: m.entityType,
		Direction:  domain.DirectionOutbound,
		StartedAt:  time.Now(),
	}
	defer func() { report.EndedAt = time.Now() }()

	logger.FromContext(ctx).Info(LogMsgSweepStarted,
		"entity_type", m.entityType,
		"direction", report.Direction)

	records, err := m.repo.ListBySyncStatus(ctx, m.entityType, domain.SyncStatusPending, domain.SyncStatusError)
	if err != nil {
		return report, err
	}

	// One record at a time. A per-record failure is recorded and the sweep
	// continues; only context cancellation stops it.
	for i := range records {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		result, _ := m.syncRecord(ctx, &records[i])
		report.Add(result)
		metrics.SyncRecords.WithLabelValues(string(m.entityType), report.Direction, string(result.Outcome)).Inc()
	}

	logger.FromContext(ctx).Info(LogMsgSweepCompleted,
		"entity_type", m.entityType,
		"direction", report.Direction,
		"total", report.TotalProcessed,
		"successful", report.Successful,
		"failed", report.Failed,
		"skipped", report.Skipped)
	return report, nil
}

func (m *manager) FullSyncFromRemote(ctx context.Context) (*domain.SyncReport, error) {
	release, ok := m.locks.TryAcquire(m.lockKey())
	if !ok {
		logger.FromContext(ctx).Warn(LogMsgSweepBounced, "entity_type", m.entityType)
		return nil, domain.ErrSyncInProgress
	}
	defer release()

	report, err := m.pullFromRemote(ctx)
	m.observeSweep(report, err)
	return report, err
}

// pullFromRemote runs the inbound reconciliation body. Callers hold the
// in-flight lock.
func (m *manager) pullFromRemote(ctx context.Context) (*domain.SyncReport, error) {
	report := &domain.SyncReport{
		EntityType: m.entityType,
		Direction:  domain.DirectionInbound,
		StartedAt:  time.Now(),
	}
	defer func() { report.EndedAt = time.Now() }()

	logger.FromContext(ctx).Info(LogMsgSweepStarted,
		"entity_type", m.entityType,
		"direction", report.Direction)

	items, err := m.client.ListItems(ctx, m.boardID)
	if err != nil {
		return report, err
	}

	for _, item := range items {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		result := m.reconcileItem(ctx, item)
		report.Add(result)
		metrics.SyncRecords.WithLabelValues(string(m.entityType), report.Direction, string(result.Outcome)).Inc()
	}

	logger.FromContext(ctx).Info(LogMsgSweepCompleted,
		"entity_type", m.entityType,
		"direction", report.Direction,
		"total", report.TotalProcessed,
		"successful", report.Successful,
		"failed", report.Failed,
		"skipped", report.Skipped)
	return report, nil
}

// reconcileItem merges one board item into the local store: linked records
// are updated, unknown items imported as new records.
func (m *manager) reconcileItem(ctx context.Context, item board.Item) domain.SyncResult {
	remoteItemID := strconv.FormatInt(item.ID, 10)

	record, err := m.repo.GetByRemoteItemID(ctx, m.entityType, remoteItemID)
	switch {
	case err == nil:
		if applyErr := m.applyItemValues(ctx, record, item); applyErr != nil {
			return domain.SyncResult{LocalID: record.ID, RemoteItemID: remoteItemID, Outcome: domain.OutcomeFailed, Error: applyErr.Error()}
		}
		return domain.SyncResult{LocalID: record.ID, RemoteItemID: remoteItemID, Outcome: domain.OutcomeSynced}

	case errors.Is(err, domain.ErrRecordNotFound):
		imported, importErr := m.importItem(ctx, item)
		if importErr != nil {
			return domain.SyncResult{RemoteItemID: remoteItemID, Outcome: domain.OutcomeFailed, Error: importErr.Error()}
		}
		return domain.SyncResult{LocalID: imported.ID, RemoteItemID: remoteItemID, Outcome: domain.OutcomeSynced}

	default:
		return domain.SyncResult{RemoteItemID: remoteItemID, Outcome: domain.OutcomeFailed, Error: err.Error()}
	}
}

// applyItemValues writes a board item's name and decodable column values onto
// an existing record, with one retry on a version conflict.
func (m *manager) applyItemValues(ctx context.Context, record *domain.Record, item board.Item) error {
	for attempt := 0; attempt < 2; attempt++ {
		record.Name = item.Name
		if record.Fields == nil {
			record.Fields = make(map[string]any)
		}
		for columnID, wire := range item.ColumnValues {
			col, ok := mapping.ByColumnID(m.entityType, columnID)
			if !ok {
				continue
			}
			if value, ok := mapping.Decode(col.Kind, wire); ok {
				record.Fields[col.LocalField] = value
			}
		}
		now := time.Now()
		record.SyncState.Status = domain.SyncStatusSynced
		record.SyncState.SyncError = ""
		record.SyncState.LastSyncedAt = &now

		err := m.repo.Update(ctx, record)
		if err == nil {
			_ = m.bus.Publish(ctx, event.NewRecordSyncedEvent(m.entityType, record.ID, record.SyncState.RemoteItemID, domain.DirectionInbound))
			m.inventorySideEffects(ctx, record)
			return nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return err
		}

		logger.FromContext(ctx).Warn(LogMsgConflictRetry,
			"entity_type", m.entityType,
			"local_id", record.ID)
		fresh, getErr := m.repo.Get(ctx, m.entityType, record.ID)
		if getErr != nil {
			return getErr
		}
		record = fresh
	}

	// The record keeps changing under us. Leave it pending so the next
	// outbound sweep reconciles from the local side.
	logger.FromContext(ctx).Warn(LogMsgConflictRePending,
		"entity_type", m.entityType,
		"local_id", record.ID)
	return m.repo.UpdateSyncState(ctx, m.entityType, record.ID, domain.SyncState{
		Status:       domain.SyncStatusPending,
		RemoteItemID: record.SyncState.RemoteItemID,
		LastSyncedAt: record.SyncState.LastSyncedAt,
	})
}

// importItem creates a local record mirroring a board item that has no local
// counterpart.
func (m *manager) importItem(ctx context.Context, item board.Item) (*domain.Record, error) {
	now := time.Now()
	record := &domain.Record{
		ID:         uuid.NewString(),
		EntityType: m.entityType,
		Name:       item.Name,
		Fields:     make(map[string]any),
		Active:     true,
		SyncState: domain.SyncState{
			Status:       domain.SyncStatusSynced,
			RemoteItemID: strconv.FormatInt(item.ID, 10),
			LastSyncedAt: &now,
		},
	}
	for columnID, wire := range item.ColumnValues {
		col, ok := mapping.ByColumnID(m.entityType, columnID)
		if !ok {
			continue
		}
		if value, ok := mapping.Decode(col.Kind, wire); ok {
			record.Fields[col.LocalField] = value
		}
	}

	if err := m.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgRemoteItemImported,
		"entity_type", m.entityType,
		"local_id", record.ID,
		"item_id", item.ID)
	_ = m.bus.Publish(ctx, event.NewRecordSyncedEvent(m.entityType, record.ID, record.SyncState.RemoteItemID, domain.DirectionInbound))
	m.inventorySideEffects(ctx, record)
	return record, nil
}

func (m *manager) PerformBidirectionalSync(ctx context.Context) (*domain.SyncReport, error) {
	release, ok := m.locks.TryAcquire(m.lockKey())
	if !ok {
		logger.FromContext(ctx).Warn(LogMsgSweepBounced, "entity_type", m.entityType)
		return nil, domain.ErrSyncInProgress
	}
	defer release()

	report := &domain.SyncReport{
		EntityType: m.entityType,
		Direction:  domain.DirectionBidirectional,
		StartedAt:  time.Now(),
	}

	// Outbound first: local edits win the push before the pull can see stale
	// remote values for records that were pending.
	outbound, err := m.sweepPending(ctx)
	mergeReport(report, outbound)
	if err != nil {
		report.EndedAt = time.Now()
		m.observeSweep(report, err)
		return report, err
	}

	inbound, err := m.pullFromRemote(ctx)
	mergeReport(report, inbound)
	report.EndedAt = time.Now()
	m.observeSweep(report, err)
	return report, err
}

func mergeReport(dst, src *domain.SyncReport) {
	if src == nil {
		return
	}
	for _, res := range src.Results {
		dst.Add(res)
	}
}

func (m *manager) observeSweep(report *domain.SyncReport, err error) {
	if report == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.SyncRuns.WithLabelValues(string(m.entityType), report.Direction, result).Inc()
	metrics.SyncDuration.WithLabelValues(string(m.entityType), report.Direction).
		Observe(report.EndedAt.Sub(report.StartedAt).Seconds())
}

func (m *manager) Status(ctx context.Context) (map[domain.SyncStatus]int, error) {
	return m.repo.CountBySyncStatus(ctx, m.entityType)
}

// ApplyRemoteEvent merges one webhook notification. Unknown columns and
// undecodable values are skipped, not errors: the board can carry columns the
// mapping does not know about.
func (m *manager) ApplyRemoteEvent(ctx context.Context, evt domain.WebhookEvent) error {
	log := logger.FromContext(ctx)

	if evt.IsDeletion() {
		return m.applyRemoteDeletion(ctx, evt)
	}

	remoteItemID := strconv.FormatInt(evt.ItemID, 10)
	record, err := m.repo.GetByRemoteItemID(ctx, m.entityType, remoteItemID)

	switch evt.Type {
	case domain.EventItemCreated:
		if err == nil {
			// Already mirrored: this is the echo of our own outbound create.
			log.Debug(LogMsgRemoteEventSkipped,
				"entity_type", m.entityType,
				"event_type", evt.Type,
				"item_id", evt.ItemID,
				"reason", "already linked")
			return nil
		}
		if !errors.Is(err, domain.ErrRecordNotFound) {
			return err
		}
		_, err = m.importItem(ctx, board.Item{ID: evt.ItemID, Name: evt.ItemName})
		return err

	case domain.EventItemNameChanged:
		if err != nil {
			return m.skipUnknownItem(ctx, evt, err)
		}
		return m.applyFieldChange(ctx, record, "name", func(r *domain.Record) {
			r.Name = evt.ItemName
		})

	case domain.EventColumnValueChange:
		if err != nil {
			return m.skipUnknownItem(ctx, evt, err)
		}
		col, ok := mapping.ByColumnID(m.entityType, evt.ColumnID)
		if !ok {
			log.Debug(LogMsgRemoteEventSkipped,
				"entity_type", m.entityType,
				"event_type", evt.Type,
				"column_id", evt.ColumnID,
				"reason", "unmapped column")
			return nil
		}
		wire := decodeRawValue(evt.Value)
		value, ok := mapping.Decode(col.Kind, wire)
		if !ok {
			log.Debug(LogMsgRemoteEventSkipped,
				"entity_type", m.entityType,
				"event_type", evt.Type,
				"column_id", evt.ColumnID,
				"reason", "undecodable value")
			return nil
		}
		return m.applyFieldChange(ctx, record, col.LocalField, func(r *domain.Record) {
			if r.Fields == nil {
				r.Fields = make(map[string]any)
			}
			r.Fields[col.LocalField] = value
		})
	}

	log.Debug(LogMsgRemoteEventSkipped,
		"entity_type", m.entityType,
		"event_type", evt.Type,
		"reason", "unhandled event type")
	return nil
}

func (m *manager) applyRemoteDeletion(ctx context.Context, evt domain.WebhookEvent) error {
	remoteItemID := strconv.FormatInt(evt.ItemID, 10)
	record, err := m.repo.GetByRemoteItemID(ctx, m.entityType, remoteItemID)
	if err != nil {
		return m.skipUnknownItem(ctx, evt, err)
	}

	if err := m.repo.SoftDelete(ctx, m.entityType, record.ID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgRemoteEventApplied,
		"entity_type", m.entityType,
		"event_type", evt.Type,
		"local_id", record.ID,
		"item_id", evt.ItemID)
	m.invalidateCaches(ctx)
	return nil
}

// applyFieldChange loads, mutates, and writes a record with one retry on a
// version conflict; a persistent conflict re-pends the record. changedField
// names what the mutation touches so side effects can be scoped to it.
func (m *manager) applyFieldChange(ctx context.Context, record *domain.Record, changedField string, mutate func(*domain.Record)) error {
	for attempt := 0; attempt < 2; attempt++ {
		mutate(record)
		now := time.Now()
		record.SyncState.Status = domain.SyncStatusSynced
		record.SyncState.SyncError = ""
		record.SyncState.LastSyncedAt = &now

		err := m.repo.Update(ctx, record)
		if err == nil {
			logger.FromContext(ctx).Info(LogMsgRemoteEventApplied,
				"entity_type", m.entityType,
				"local_id", record.ID)
			_ = m.bus.Publish(ctx, event.NewRecordSyncedEvent(m.entityType, record.ID, record.SyncState.RemoteItemID, domain.DirectionInbound))
			m.inventorySideEffects(ctx, record, changedField)
			return nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return err
		}

		logger.FromContext(ctx).Warn(LogMsgConflictRetry,
			"entity_type", m.entityType,
			"local_id", record.ID)
		fresh, getErr := m.repo.Get(ctx, m.entityType, record.ID)
		if getErr != nil {
			return getErr
		}
		record = fresh
	}

	logger.FromContext(ctx).Warn(LogMsgConflictRePending,
		"entity_type", m.entityType,
		"local_id", record.ID)
	return m.repo.UpdateSyncState(ctx, m.entityType, record.ID, domain.SyncState{
		Status:       domain.SyncStatusPending,
		RemoteItemID: record.SyncState.RemoteItemID,
		LastSyncedAt: record.SyncState.LastSyncedAt,
	})
}

func (m *manager) skipUnknownItem(ctx context.Context, evt domain.WebhookEvent, err error) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		logger.FromContext(ctx).Debug(LogMsgRemoteEventSkipped,
			"entity_type", m.entityType,
			"event_type", evt.Type,
			"item_id", evt.ItemID,
			"reason", "no linked record")
		return nil
	}
	return err
}

// inventorySideEffects applies the inventory rules after an inbound change:
// downstream read caches are invalidated and a low-stock alert fires when
// the stock level drops to or below the threshold. Callers that know which
// field changed pass it so a cosmetic change (a rename) does not churn the
// caches; an empty set means a full-record write and always counts.
func (m *manager) inventorySideEffects(ctx context.Context, record *domain.Record, changed ...string) {
	if m.entityType != domain.EntityInventory {
		return
	}
	if !touchesCachedInventoryFields(changed) {
		return
	}

	m.invalidateCaches(ctx)

	stock, ok := record.Field(FieldStock)
	if !ok {
		return
	}
	level, isNumber := stock.(float64)
	if !isNumber {
		return
	}
	if level > m.lowStock {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgLowStockDetected,
		"local_id", record.ID,
		"name", record.Name,
		"stock", level,
		"threshold", m.lowStock)
	metrics.LowStockAlerts.Inc()
	_ = m.bus.Publish(ctx, event.NewLowStockEvent(record.ID, record.Name, level, m.lowStock))
}

// touchesCachedInventoryFields reports whether any of the changed fields
// feeds the cached inventory views.
func touchesCachedInventoryFields(changed []string) bool {
	if len(changed) == 0 {
		return true
	}
	for _, field := range changed {
		switch field {
		case FieldStock, FieldPrice, FieldCategory:
			return true
		}
	}
	return false
}

func (m *manager) invalidateCaches(ctx context.Context) {
	if m.signal == nil {
		return
	}
	m.signal.MarkInvalidated()
	_ = m.bus.Publish(ctx, event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.CacheInvalidated,
		Payload: map[string]any{"entity_type": string(m.entityType), "timestamp": time.Now().Unix()},
	})
}

// decodeRawValue parses a webhook raw column value into the codec's input
// shape.
func decodeRawValue(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}
