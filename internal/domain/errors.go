package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Record errors
	ErrMsgRecordNotFound    = "record not found"
	ErrMsgUnknownEntityType = "unknown entity type"
	ErrMsgVersionConflict   = "record version conflict"

	// Sync errors
	ErrMsgSyncInProgress = "sync already in progress"

	// Remote board errors
	ErrMsgRemoteItemNotFound = "remote item not found"
	ErrMsgRemoteUnavailable  = "remote board unavailable"
	ErrMsgRemoteRateLimited  = "remote board rate limited"

	// Configuration errors
	ErrMsgMissingAPIToken    = "board API token is not configured"
	ErrMsgBoardNotConfigured = "no board configured for entity type"

	// Webhook errors
	ErrMsgMissingSignature = "missing signature"
	ErrMsgInvalidSignature = "invalid signature"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Record errors
	ErrRecordNotFound    = errors.New(ErrMsgRecordNotFound)
	ErrUnknownEntityType = errors.New(ErrMsgUnknownEntityType)
	ErrVersionConflict   = errors.New(ErrMsgVersionConflict)

	// Sync errors
	ErrSyncInProgress = errors.New(ErrMsgSyncInProgress)

	// Remote board errors. ErrRemoteItemNotFound is the only classification
	// the update-then-create fallback is allowed to act on; everything else
	// is treated as transient and retried on a later sweep.
	ErrRemoteItemNotFound = errors.New(ErrMsgRemoteItemNotFound)
	ErrRemoteUnavailable  = errors.New(ErrMsgRemoteUnavailable)
	ErrRemoteRateLimited  = errors.New(ErrMsgRemoteRateLimited)

	// Configuration errors
	ErrMissingAPIToken    = errors.New(ErrMsgMissingAPIToken)
	ErrBoardNotConfigured = errors.New(ErrMsgBoardNotConfigured)

	// Webhook errors
	ErrMissingSignature = errors.New(ErrMsgMissingSignature)
	ErrInvalidSignature = errors.New(ErrMsgInvalidSignature)
)
