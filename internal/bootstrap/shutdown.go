package bootstrap

import (
	"context"
	"log/slog"

	"github.com/ironloft/gymboard/internal/scheduler"
	"github.com/ironloft/gymboard/internal/server"
	"github.com/ironloft/gymboard/internal/sse"
	"github.com/ironloft/gymboard/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server     *server.Server
	Scheduler  *scheduler.Scheduler
	WorkerPool *worker.Pool
	SSEHub     *sse.Hub
}

// GracefulShutdown performs graceful shutdown of all application components:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler (stop queueing new sweeps)
// 3. Worker pool (finish in-flight sweeps)
// 4. SSE hub (drop live connections)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}
	if components.SSEHub != nil {
		components.SSEHub.Stop()
	}

	slog.Info(LogMsgServerStopped)
}
