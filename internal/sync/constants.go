package sync

// Inventory rule defaults
const (
	// DefaultLowStockThreshold triggers a low-stock alert when an inventory
	// record's stock level drops to or below it.
	DefaultLowStockThreshold = 5
)

// Inventory field names the inbound pipeline reacts to.
const (
	FieldStock    = "stock"
	FieldPrice    = "price"
	FieldCategory = "category"
)

// Log messages
const (
	LogMsgSweepStarted       = "Sync sweep started"
	LogMsgSweepCompleted     = "Sync sweep completed"
	LogMsgSweepBounced       = "Sync sweep already in progress, skipping"
	LogMsgRecordSynced       = "Record synced to board"
	LogMsgRecordMissing      = "Record not found, skipping sync"
	LogMsgRecordSyncFailed   = "Record sync failed"
	LogMsgRecordArchived     = "Remote item archived for inactive record"
	LogMsgFallbackCreate     = "Remote item missing, recreating"
	LogMsgRemoteEventApplied = "Remote event applied"
	LogMsgRemoteEventSkipped = "Remote event skipped"
	LogMsgRemoteItemImported = "Remote item imported as new record"
	LogMsgConflictRetry      = "Version conflict applying remote event, retrying"
	LogMsgConflictRePending  = "Version conflict persisted, marking record pending"
	LogMsgLowStockDetected   = "Low stock detected"
)

// Error messages
const (
	ErrMsgEncodeColumns = "failed to encode column values"
	ErrMsgNoMapping     = "no column mapping for entity type"
)
