package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ironloft/gymboard/internal/domain"
)

// EventSchemaVersion is the current event envelope version.
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string `json:"version"`
	Type    Type   `json:"type"`
	Payload any    `json:"payload"`
}

// Common event types
const (
	RecordSynced      Type = "record.synced"
	RecordSyncFailed  Type = "record.sync_failed"
	WebhookReceived   Type = "webhook.received"
	InventoryLowStock Type = "inventory.low_stock"
	CacheInvalidated  Type = "cache.invalidated"
)

// RecordSyncedPayloadV1 is the typed payload for record sync events
type RecordSyncedPayloadV1 struct {
	EntityType   string `json:"entity_type"`
	LocalID      string `json:"local_id"`
	RemoteItemID string `json:"remote_item_id,omitempty"`
	Direction    string `json:"direction"`
	Error        string `json:"error,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

// WebhookReceivedPayloadV1 is the typed payload for inbound webhook events
type WebhookReceivedPayloadV1 struct {
	EventType string `json:"event_type"`
	BoardID   int64  `json:"board_id"`
	ItemID    int64  `json:"item_id"`
	Timestamp int64  `json:"timestamp"`
}

// LowStockPayloadV1 is the typed payload for low-stock alerts
type LowStockPayloadV1 struct {
	LocalID   string  `json:"local_id"`
	Name      string  `json:"name"`
	Stock     float64 `json:"stock"`
	Threshold float64 `json:"threshold"`
	Timestamp int64   `json:"timestamp"`
}

// NewRecordSyncedEvent creates a record synced event
func NewRecordSyncedEvent(entityType domain.EntityType, localID, remoteItemID, direction string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RecordSynced,
		Payload: RecordSyncedPayloadV1{
			EntityType:   string(entityType),
			LocalID:      localID,
			RemoteItemID: remoteItemID,
			Direction:    direction,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewRecordSyncFailedEvent creates a record sync failure event
func NewRecordSyncFailedEvent(entityType domain.EntityType, localID, direction, errMsg string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RecordSyncFailed,
		Payload: RecordSyncedPayloadV1{
			EntityType: string(entityType),
			LocalID:    localID,
			Direction:  direction,
			Error:      errMsg,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewWebhookReceivedEvent creates an inbound webhook notification event
func NewWebhookReceivedEvent(evt domain.WebhookEvent) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WebhookReceived,
		Payload: WebhookReceivedPayloadV1{
			EventType: string(evt.Type),
			BoardID:   evt.BoardID,
			ItemID:    evt.ItemID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewLowStockEvent creates a low-stock alert event
func NewLowStockEvent(localID, name string, stock, threshold float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    InventoryLowStock,
		Payload: LowStockPayloadV1{
			LocalID:   localID,
			Name:      name,
			Stock:     stock,
			Threshold: threshold,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously;
// a failing handler never prevents the others from running.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler error(s) for %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
