package bootstrap

// Log messages for application startup
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting gymboard sync service"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgManagersInitialized = "Sync managers initialized"
	LogMsgSweepsScheduled     = "Periodic sync sweeps scheduled"
	LogMsgNoBoardConfigured   = "No board id configured for entity type, sync disabled"
)

// Log messages for shutdown
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
)
