package config

import "time"

// Defaults applied when an environment variable is unset.
const (
	DefaultPort                = 8080
	DefaultSyncMinCallInterval = 200 * time.Millisecond
	DefaultSyncRatePerMinute   = 5000
	DefaultSyncRetryAttempts   = 3
	DefaultSyncRetryBackoff    = time.Second
	DefaultSyncSweepInterval   = 5 * time.Minute
	DefaultLowStockThreshold   = 5
	DefaultWorkerCount         = 4
	DefaultRecordCacheSize     = 1024
)
