package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Sync operation error messages
	ErrMsgSyncRunFailed    = "Failed to run sync"
	ErrMsgSyncStatusFailed = "Failed to get sync status"

	// Record operation error messages
	ErrMsgGetRecordFailed    = "Failed to get record"
	ErrMsgCreateRecordFailed = "Failed to create record"
	ErrMsgUpdateRecordFailed = "Failed to update record"
	ErrMsgDeleteRecordFailed = "Failed to delete record"

	// Webhook error messages
	ErrMsgWebhookUnauthorized = "Invalid webhook signature"
	ErrMsgWebhookBadPayload   = "Invalid webhook payload"
	ErrMsgWebhookFailed       = "Failed to process webhook"
)

// Success messages for API responses
const (
	MsgRecordDeletedSuccess = "Record deleted successfully"
	MsgSyncStarted          = "Sync completed"
)
