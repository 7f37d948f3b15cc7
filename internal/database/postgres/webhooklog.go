package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ironloft/gymboard/internal/domain"
	"github.com/ironloft/gymboard/internal/repository"
)

type webhookLogRepository struct {
	db *pgxpool.Pool
}

// NewWebhookLogRepository creates a new PostgreSQL webhook audit log repository
func NewWebhookLogRepository(db *pgxpool.Pool) repository.WebhookLog {
	return &webhookLogRepository{db: db}
}

func (r *webhookLogRepository) Insert(ctx context.Context, eventType string, payload []byte) (int64, error) {
	query := `
		INSERT INTO webhook_events (event_type, payload, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query, eventType, payload, domain.WebhookStatusReceived).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *webhookLogRepository) UpdateStatus(ctx context.Context, id int64, status domain.WebhookStatus, processErr string) error {
	query := `
		UPDATE webhook_events
		SET status = $1, error = NULLIF($2, ''), updated_at = now()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, status, processErr, id)
	return err
}
