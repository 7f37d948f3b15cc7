package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironloft/gymboard/internal/database/postgres"
	"github.com/ironloft/gymboard/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Record     repository.Record
	WebhookLog repository.WebhookLog
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Record:     postgres.NewRecordRepository(dbPool),
		WebhookLog: postgres.NewWebhookLogRepository(dbPool),
	}
}
