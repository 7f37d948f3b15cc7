package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "gymboard_http_requests_total"
	MetricNameHTTPRequestDuration  = "gymboard_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "gymboard_http_requests_in_flight"

	MetricNameSyncRuns           = "gymboard_sync_runs_total"
	MetricNameSyncRecords        = "gymboard_sync_records_total"
	MetricNameSyncDuration       = "gymboard_sync_run_duration_seconds"
	MetricNameCodecDroppedFields = "gymboard_codec_dropped_fields_total"

	MetricNameWebhookEvents  = "gymboard_webhook_events_total"
	MetricNameBoardAPICalls  = "gymboard_board_api_requests_total"
	MetricNameCacheInvalid   = "gymboard_cache_invalidations_total"
	MetricNameLowStockAlerts = "gymboard_low_stock_alerts_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests processed"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextSyncRuns           = "Total number of sync sweeps per entity type and outcome"
	HelpTextSyncRecords        = "Total number of records processed by sync sweeps"
	HelpTextSyncDuration       = "Duration of sync sweeps in seconds"
	HelpTextCodecDroppedFields = "Fields omitted from outbound payloads because they could not be encoded"

	HelpTextWebhookEvents  = "Total number of inbound webhook events by type and status"
	HelpTextBoardAPICalls  = "Total number of board platform API requests by operation and result"
	HelpTextCacheInvalid   = "Total number of read-cache invalidations"
	HelpTextLowStockAlerts = "Total number of low-stock alerts raised from inbound events"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelEntity    = "entity_type"
	LabelDirection = "direction"
	LabelOutcome   = "outcome"
	LabelResult    = "result"
	LabelKind      = "kind"
	LabelType      = "type"
	LabelOperation = "operation"
)

// HTTPLatencyBuckets are tuned for a CRUD backend fronting a remote API.
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
