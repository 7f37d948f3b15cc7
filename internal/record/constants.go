package record

// Log messages
const (
	LogMsgRecordCreated = "Record created"
	LogMsgRecordUpdated = "Record updated"
	LogMsgRecordDeleted = "Record deleted"
	LogMsgCacheHit      = "Record cache hit"
)
