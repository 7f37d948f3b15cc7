package webhook

// SignatureHeader carries the HMAC signature on inbound webhook requests.
const SignatureHeader = "Authorization"

// Log messages
const (
	LogMsgEventReceived      = "Webhook event received"
	LogMsgEventProcessed     = "Webhook event processed"
	LogMsgEventFailed        = "Webhook event processing failed"
	LogMsgChallengeAnswered  = "Webhook challenge answered"
	LogMsgSignatureSkipped   = "Webhook signature verification disabled, accepting unsigned request"
	LogMsgSignatureRejected  = "Webhook signature rejected"
	LogMsgUnroutableBoard    = "Webhook event for unconfigured board"
	LogMsgAuditInsertFailed  = "Webhook audit insert failed"
	LogMsgAuditUpdateFailed  = "Webhook audit update failed"
)

// Metric status labels
const (
	StatusProcessed = "processed"
	StatusError     = "error"
	StatusRejected  = "rejected"
	StatusChallenge = "challenge"
	StatusIgnored   = "ignored"
)
