package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Sync Metrics
var (
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncRuns,
			Help: HelpTextSyncRuns,
		},
		[]string{LabelEntity, LabelDirection, LabelResult},
	)

	SyncRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncRecords,
			Help: HelpTextSyncRecords,
		},
		[]string{LabelEntity, LabelDirection, LabelOutcome},
	)

	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSyncDuration,
			Help:    HelpTextSyncDuration,
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
		[]string{LabelEntity, LabelDirection},
	)

	// CodecDroppedFields makes the codec's silent-degrade policy observable:
	// every unencodable field is counted, not just dropped.
	CodecDroppedFields = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCodecDroppedFields,
			Help: HelpTextCodecDroppedFields,
		},
		[]string{LabelEntity, LabelKind},
	)
)

// Webhook and Board API Metrics
var (
	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWebhookEvents,
			Help: HelpTextWebhookEvents,
		},
		[]string{LabelType, LabelStatus},
	)

	BoardAPIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBoardAPICalls,
			Help: HelpTextBoardAPICalls,
		},
		[]string{LabelOperation, LabelResult},
	)

	CacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCacheInvalid,
			Help: HelpTextCacheInvalid,
		},
	)

	LowStockAlerts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLowStockAlerts,
			Help: HelpTextLowStockAlerts,
		},
	)
)
