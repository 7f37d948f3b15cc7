package bootstrap

import (
	"log/slog"

	"github.com/ironloft/gymboard/internal/config"
	"github.com/ironloft/gymboard/internal/handler"
	"github.com/ironloft/gymboard/internal/logger"
)

// SetupLogger installs the process-wide structured logger from app config.
func SetupLogger(cfg *config.Config) {
	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		"gymboard-sync",
		handler.Version,
		cfg.Environment,
		false,
	))

	slog.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat)
	slog.Info(LogMsgStartingService,
		"environment", cfg.Environment,
		"port", cfg.Port)
	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"sweep_interval", cfg.SyncSweepInterval,
		"boards_configured", len(cfg.BoardIDs))
}
