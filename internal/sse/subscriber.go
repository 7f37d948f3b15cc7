package sse

import (
	"context"
	"log/slog"

	"github.com/ironloft/gymboard/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub so operators can
// watch sync activity live.
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.RecordSynced, s.forward(EventTypeRecordSynced))
	s.bus.Subscribe(event.RecordSyncFailed, s.forward(EventTypeSyncFailed))
	s.bus.Subscribe(event.WebhookReceived, s.forward(EventTypeWebhookReceived))
	s.bus.Subscribe(event.InventoryLowStock, s.forward(EventTypeLowStock))
	s.bus.Subscribe(event.CacheInvalidated, s.forward(EventTypeCacheInvalidated))

	slog.Info("SSE subscriber registered for event types",
		"types", []string{
			string(event.RecordSynced),
			string(event.RecordSyncFailed),
			string(event.WebhookReceived),
			string(event.InventoryLowStock),
			string(event.CacheInvalidated),
		})
}

// forward relays a bus event's payload to SSE clients under the given type.
// Bus payloads are already typed wire structs, so they pass through as-is.
func (s *Subscriber) forward(sseType string) event.Handler {
	return func(_ context.Context, evt event.Event) error {
		s.hub.Broadcast(sseType, evt.Payload)

		slog.Debug(LogMsgEventBroadcast,
			"event_type", sseType,
			"clients", s.hub.ClientCount())
		return nil
	}
}
