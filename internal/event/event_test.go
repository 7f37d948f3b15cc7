package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironloft/gymboard/internal/domain"
)

func TestMemoryBus_PublishReachesSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	var received []Event
	bus.Subscribe(RecordSynced, func(ctx context.Context, evt Event) error {
		received = append(received, evt)
		return nil
	})

	evt := NewRecordSyncedEvent(domain.EntityMember, "rec-1", "42", "outbound")
	require.NoError(t, bus.Publish(context.Background(), evt))

	require.Len(t, received, 1)
	assert.Equal(t, RecordSynced, received[0].Type)
	assert.Equal(t, EventSchemaVersion, received[0].Version)
}

func TestMemoryBus_NoSubscribersIsNotAnError(t *testing.T) {
	bus := NewMemoryBus()

	err := bus.Publish(context.Background(), NewLowStockEvent("rec-1", "Towels", 1, 5))

	assert.NoError(t, err)
}

func TestMemoryBus_FailingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewMemoryBus()

	var secondRan bool
	bus.Subscribe(WebhookReceived, func(ctx context.Context, evt Event) error {
		return errors.New("handler down")
	})
	bus.Subscribe(WebhookReceived, func(ctx context.Context, evt Event) error {
		secondRan = true
		return nil
	})

	err := bus.Publish(context.Background(), NewWebhookReceivedEvent(domain.WebhookEvent{
		Type:    domain.EventItemNameChanged,
		BoardID: 111,
		ItemID:  42,
	}))

	assert.Error(t, err)
	assert.True(t, secondRan)
}

func TestMemoryBus_SubscriptionsAreTypeScoped(t *testing.T) {
	bus := NewMemoryBus()

	var calls int
	bus.Subscribe(RecordSyncFailed, func(ctx context.Context, evt Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(),
		NewRecordSyncedEvent(domain.EntityMember, "rec-1", "42", "outbound")))

	assert.Zero(t, calls)
}

func TestNewRecordSyncFailedEvent(t *testing.T) {
	evt := NewRecordSyncFailedEvent(domain.EntityContract, "rec-2", "outbound", "board unavailable")

	require.Equal(t, RecordSyncFailed, evt.Type)
	payload, ok := evt.Payload.(RecordSyncedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, "contract", payload.EntityType)
	assert.Equal(t, "board unavailable", payload.Error)
	assert.NotZero(t, payload.Timestamp)
}

func TestNewWebhookReceivedEvent(t *testing.T) {
	evt := NewWebhookReceivedEvent(domain.WebhookEvent{
		Type:    domain.EventColumnValueChange,
		BoardID: 111,
		ItemID:  42,
	})

	payload, ok := evt.Payload.(WebhookReceivedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, string(domain.EventColumnValueChange), payload.EventType)
	assert.Equal(t, int64(111), payload.BoardID)
	assert.Equal(t, int64(42), payload.ItemID)
}

func TestNewLowStockEvent(t *testing.T) {
	evt := NewLowStockEvent("rec-3", "Protein Bars", 2, 5)

	payload, ok := evt.Payload.(LowStockPayloadV1)
	require.True(t, ok)
	assert.Equal(t, "Protein Bars", payload.Name)
	assert.Equal(t, float64(2), payload.Stock)
	assert.Equal(t, float64(5), payload.Threshold)
}
