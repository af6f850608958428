package crm

import (
	"context"
	"fmt"

	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditLogHandler writes one structured log line per catalog change
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new AuditLogHandler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditLogHandler{logger: logger.Named("audit")}
}

// EventTypes returns the event types this handler is interested in
func (h *AuditLogHandler) EventTypes() []string {
	return []string{
		crm.EventTypeEntityCreated,
		crm.EventTypeEntityUpdated,
		crm.EventTypeEntityDeleted,
	}
}

// Handle logs an EntityChangedEvent
func (h *AuditLogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*crm.EntityChangedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	fields := []zap.Field{
		zap.String("event_id", changed.EventID().String()),
		zap.String("event_type", changed.EventType()),
		zap.String("tenant_id", changed.TenantID().String()),
		zap.String("entity", changed.Entity),
		zap.String("table", changed.Table),
		zap.String("record_id", changed.AggregateID().String()),
		zap.Int("version", changed.Version),
		zap.Time("occurred_at", changed.OccurredAt()),
	}
	if changed.ActorID != nil {
		fields = append(fields, zap.String("actor_id", changed.ActorID.String()))
	}
	h.logger.Info("entity changed", fields...)
	return nil
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)
