package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Event types for SSE
const (
	// EventTypeRecordSynced is sent when a record syncs to or from the board
	EventTypeRecordSynced = "record.synced"

	// EventTypeSyncFailed is sent when a record fails to sync
	EventTypeSyncFailed = "record.sync_failed"

	// EventTypeWebhookReceived is sent when a board webhook arrives
	EventTypeWebhookReceived = "webhook.received"

	// EventTypeLowStock is sent when an inventory record drops below its
	// stock threshold
	EventTypeLowStock = "inventory.low_stock"

	// EventTypeCacheInvalidated is sent when downstream caches must refetch
	EventTypeCacheInvalidated = "cache.invalidated"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgWriteError         = "Failed to write SSE event"
)
