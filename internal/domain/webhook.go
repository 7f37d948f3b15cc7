package domain

import (
	"encoding/json"
	"time"
)

// WebhookEventType classifies inbound board events.
type WebhookEventType string

const (
	EventItemCreated       WebhookEventType = "create_pulse"
	EventItemNameChanged   WebhookEventType = "update_name"
	EventColumnValueChange WebhookEventType = "update_column_value"
	EventItemDeleted       WebhookEventType = "delete_pulse"
	EventItemArchived      WebhookEventType = "archive_pulse"
)

// WebhookEvent is one inbound change notification from the board platform.
// Ephemeral: it is never persisted in full except as an audit log row.
type WebhookEvent struct {
	Type          WebhookEventType `json:"type" validate:"required"`
	BoardID       int64            `json:"boardId" validate:"required"`
	ItemID        int64            `json:"pulseId"`
	ItemName      string           `json:"pulseName"`
	GroupID       string           `json:"groupId"`
	ColumnID      string           `json:"columnId"`
	Value         json.RawMessage  `json:"value"`
	PreviousValue json.RawMessage  `json:"previousValue"`
	ChangedAt     float64          `json:"changedAt"`
	ReceivedAt    time.Time        `json:"-"`
}

// IsDeletion reports whether the event removes the item from the board.
// Deleted and archived items both soft-delete the local record.
func (e WebhookEvent) IsDeletion() bool {
	return e.Type == EventItemDeleted || e.Type == EventItemArchived
}

// WebhookStatus tracks an audit log row through the inbound pipeline.
type WebhookStatus string

const (
	WebhookStatusReceived  WebhookStatus = "received"
	WebhookStatusProcessed WebhookStatus = "processed"
	WebhookStatusError     WebhookStatus = "error"
)
