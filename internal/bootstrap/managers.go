package bootstrap

import (
	"log/slog"

	"github.com/ironloft/gymboard/internal/board"
	"github.com/ironloft/gymboard/internal/cache"
	"github.com/ironloft/gymboard/internal/concurrency"
	"github.com/ironloft/gymboard/internal/config"
	"github.com/ironloft/gymboard/internal/domain"
	"github.com/ironloft/gymboard/internal/event"
	"github.com/ironloft/gymboard/internal/scheduler"
	"github.com/ironloft/gymboard/internal/sync"
)

// InitializeSyncManagers builds one sync manager per configured board and
// indexes them in a registry. Entity types without a board id are skipped;
// they stay local-only until a board is provisioned.
func InitializeSyncManagers(cfg *config.Config, repos *Repositories, client board.Client, bus event.Bus, signal *cache.Signal) (*sync.Registry, error) {
	locks := concurrency.NewLockManager()

	var managers []sync.Manager
	for _, entityType := range domain.AllEntityTypes {
		boardID, ok := cfg.BoardIDs[entityType]
		if !ok {
			slog.Warn(LogMsgNoBoardConfigured, "entity_type", entityType)
			continue
		}
		managers = append(managers, sync.NewManager(sync.ManagerConfig{
			EntityType:        entityType,
			BoardID:           boardID,
			LowStockThreshold: cfg.LowStockThreshold,
		}, repos.Record, client, bus, signal, locks))
	}

	registry, err := sync.NewRegistry(managers...)
	if err != nil {
		return nil, err
	}

	slog.Info(LogMsgManagersInitialized, "count", len(managers))
	return registry, nil
}

// ScheduleSweeps registers a periodic outbound sweep per manager.
func ScheduleSweeps(cfg *config.Config, sched *scheduler.Scheduler, registry *sync.Registry) {
	for _, manager := range registry.Managers() {
		sched.Schedule(cfg.SyncSweepInterval, sync.NewSweepJob(manager))
	}
	slog.Info(LogMsgSweepsScheduled,
		"interval", cfg.SyncSweepInterval,
		"managers", len(registry.Managers()))
}
