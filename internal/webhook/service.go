package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ironloft/gymboard/internal/domain"
	"github.com/ironloft/gymboard/internal/event"
	"github.com/ironloft/gymboard/internal/logger"
	"github.com/ironloft/gymboard/internal/metrics"
	"github.com/ironloft/gymboard/internal/repository"
	"github.com/ironloft/gymboard/internal/sync"
	"github.com/ironloft/gymboard/internal/validation"
)

// Envelope is the wire shape of an inbound webhook post. Challenge handshakes
// carry only the challenge token; change notifications carry the event.
type Envelope struct {
	Challenge string           `json:"challenge,omitempty"`
	Event     *json.RawMessage `json:"event,omitempty"`
}

// Service runs the inbound webhook pipeline: audit, route by board, apply.
type Service interface {
	// Process handles one verified webhook payload. The returned error means
	// processing failed after receipt; the event is still audit logged.
	Process(ctx context.Context, payload []byte) error
}

type service struct {
	registry *sync.Registry
	audit    repository.WebhookLog
	bus      event.Bus
	schemas  validation.SchemaValidator
}

// NewService creates the webhook processing service.
func NewService(registry *sync.Registry, audit repository.WebhookLog, bus event.Bus) Service {
	return &service{
		registry: registry,
		audit:    audit,
		bus:      bus,
		schemas:  validation.NewSchemaValidator(),
	}
}

func (s *service) Process(ctx context.Context, payload []byte) error {
	var envelope Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		metrics.WebhookEvents.WithLabelValues("unparseable", StatusError).Inc()
		return fmt.Errorf("parse webhook payload: %w", err)
	}
	if envelope.Event == nil {
		metrics.WebhookEvents.WithLabelValues("empty", StatusError).Inc()
		return fmt.Errorf("webhook payload carries no event")
	}

	if err := s.schemas.ValidateBytes(*envelope.Event, validation.SchemaWebhookEvent); err != nil {
		metrics.WebhookEvents.WithLabelValues("invalid", StatusError).Inc()
		return fmt.Errorf("validate webhook event: %w", err)
	}

	var evt domain.WebhookEvent
	if err := json.Unmarshal(*envelope.Event, &evt); err != nil {
		metrics.WebhookEvents.WithLabelValues("unparseable", StatusError).Inc()
		return fmt.Errorf("parse webhook event: %w", err)
	}
	evt.ReceivedAt = time.Now()

	log := logger.FromContext(ctx)
	log.Info(LogMsgEventReceived,
		"event_type", evt.Type,
		"board_id", evt.BoardID,
		"item_id", evt.ItemID)
	_ = s.bus.Publish(ctx, event.NewWebhookReceivedEvent(evt))

	// Audit first, best effort: a failed audit write never drops the event.
	auditID, auditErr := s.audit.Insert(ctx, string(evt.Type), *envelope.Event)
	if auditErr != nil {
		log.Error(LogMsgAuditInsertFailed, "error", auditErr)
	}

	if err := s.apply(ctx, evt); err != nil {
		metrics.WebhookEvents.WithLabelValues(string(evt.Type), StatusError).Inc()
		log.Error(LogMsgEventFailed,
			"event_type", evt.Type,
			"board_id", evt.BoardID,
			"item_id", evt.ItemID,
			"error", err)
		s.updateAudit(ctx, auditID, auditErr, domain.WebhookStatusError, err.Error())
		return err
	}

	metrics.WebhookEvents.WithLabelValues(string(evt.Type), StatusProcessed).Inc()
	log.Info(LogMsgEventProcessed,
		"event_type", evt.Type,
		"board_id", evt.BoardID,
		"item_id", evt.ItemID)
	s.updateAudit(ctx, auditID, auditErr, domain.WebhookStatusProcessed, "")
	return nil
}

func (s *service) apply(ctx context.Context, evt domain.WebhookEvent) error {
	manager, err := s.registry.ManagerForBoard(evt.BoardID)
	if errors.Is(err, domain.ErrBoardNotConfigured) {
		// The platform can notify about boards this deployment does not
		// mirror. Those events are logged and ignored, never failed.
		logger.FromContext(ctx).Warn(LogMsgUnroutableBoard, "board_id", evt.BoardID)
		metrics.WebhookEvents.WithLabelValues(string(evt.Type), StatusIgnored).Inc()
		return nil
	}
	if err != nil {
		return err
	}
	return manager.ApplyRemoteEvent(ctx, evt)
}

func (s *service) updateAudit(ctx context.Context, auditID int64, insertErr error, status domain.WebhookStatus, errMsg string) {
	if insertErr != nil {
		return
	}
	if err := s.audit.UpdateStatus(ctx, auditID, status, errMsg); err != nil {
		logger.FromContext(ctx).Error(LogMsgAuditUpdateFailed, "audit_id", auditID, "error", err)
	}
}

// ParseChallenge reports whether a payload is a verification handshake and
// returns the token to echo back.
func ParseChallenge(payload []byte) (string, bool) {
	var envelope Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return "", false
	}
	if envelope.Challenge == "" {
		return "", false
	}
	return envelope.Challenge, true
}
