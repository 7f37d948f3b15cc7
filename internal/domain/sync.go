package domain

import "time"

// SyncStatus is the per-record synchronization state.
type SyncStatus string

const (
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusPending SyncStatus = "pending"
	SyncStatusError   SyncStatus = "error"
)

// SyncState is the sync metadata attached to every synchronizable record.
// A record is created pending and stays pending until an outbound attempt
// resolves it; local edits reset it to pending, inbound applies set synced.
type SyncState struct {
	Status       SyncStatus `json:"sync_status"`
	RemoteItemID string     `json:"remote_item_id,omitempty"`
	SyncError    string     `json:"sync_error,omitempty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
}

// SyncOutcome classifies the result of syncing a single record.
type SyncOutcome string

const (
	OutcomeSynced  SyncOutcome = "synced"
	OutcomeFailed  SyncOutcome = "failed"
	OutcomeSkipped SyncOutcome = "skipped"
)

// SyncResult is the per-record entry in a SyncReport.
type SyncResult struct {
	LocalID      string      `json:"local_id"`
	RemoteItemID string      `json:"remote_item_id,omitempty"`
	Outcome      SyncOutcome `json:"outcome"`
	Error        string      `json:"error,omitempty"`
}

// SyncReport summarizes one sweep. Immutable once the sweep ends; used for
// observability only. Skipped records do not count as failures.
type SyncReport struct {
	EntityType     EntityType   `json:"entity_type"`
	Direction      string       `json:"direction"`
	TotalProcessed int          `json:"total_processed"`
	Successful     int          `json:"successful"`
	Failed         int          `json:"failed"`
	Skipped        int          `json:"skipped"`
	Results        []SyncResult `json:"results"`
	StartedAt      time.Time    `json:"started_at"`
	EndedAt        time.Time    `json:"ended_at"`
}

// Add records one per-item result and updates the counters.
func (r *SyncReport) Add(res SyncResult) {
	r.Results = append(r.Results, res)
	r.TotalProcessed++
	switch res.Outcome {
	case OutcomeSynced:
		r.Successful++
	case OutcomeFailed:
		r.Failed++
	case OutcomeSkipped:
		r.Skipped++
	}
}

// Sync sweep directions.
const (
	DirectionOutbound      = "outbound"
	DirectionInbound       = "inbound"
	DirectionBidirectional = "bidirectional"
)
