package board

import "time"

// API defaults
const (
	DefaultEndpoint   = "https://api.monday.com/v2"
	DefaultAPIVersion = "2024-01"

	// DefaultMinCallInterval is the floor between consecutive API calls.
	// The platform quota is generous (5000 req/min) but bursts trip the
	// complexity budget, so outbound traffic is paced.
	DefaultMinCallInterval = 200 * time.Millisecond
	DefaultRatePerMinute   = 5000

	DefaultRetryAttempts = 3
	DefaultRetryBackoff  = 500 * time.Millisecond
	MaxRetryBackoff      = 10 * time.Second
	BackoffMultiplier    = 2.0

	RequestTimeout = 30 * time.Second

	// ListItems page size for cursor pagination.
	ItemsPageSize = 100
)

// GraphQL error codes returned by the platform
const (
	ErrorCodeNotFound      = "ResourceNotFoundException"
	ErrorCodeInvalidItem   = "InvalidItemIdException"
	ErrorCodeInvalidBoard  = "InvalidBoardIdException"
	ErrorCodeComplexity    = "ComplexityException"
	ErrorCodeRateLimited   = "RateLimitExceeded"
	ErrorCodeUnauthorized  = "UserUnauthorizedException"
)

// Log messages
const (
	LogMsgRequestFailed   = "Board API request failed"
	LogMsgRetrying        = "Retrying board API request"
	LogMsgRateLimited     = "Board API rate limited, backing off"
	LogMsgItemCreated     = "Created remote item"
	LogMsgItemUpdated     = "Updated remote item"
	LogMsgItemArchived    = "Archived remote item"
)
