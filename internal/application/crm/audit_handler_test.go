package crm

import (
	"context"
	"testing"

	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type otherEvent struct {
	shared.BaseDomainEvent
}

func TestAuditLogHandler(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := NewAuditLogHandler(zap.New(core))

	assert.ElementsMatch(t, []string{
		crm.EventTypeEntityCreated,
		crm.EventTypeEntityUpdated,
		crm.EventTypeEntityDeleted,
	}, h.EventTypes())

	d, ok := crm.Lookup("Deal")
	require.True(t, ok)
	deal := &crm.Deal{Title: "Renewal"}
	deal.TenantEntity = shared.NewTenantEntity(uuid.New())
	actor := uuid.New()

	event := crm.NewEntityChangedEvent(crm.EventTypeEntityUpdated, d, deal, &actor)
	require.NoError(t, h.Handle(context.Background(), event))

	entries := logs.FilterMessage("entity changed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Deal", fields["entity"])
	assert.Equal(t, "deals", fields["table"])
	assert.Equal(t, deal.ID.String(), fields["record_id"])
	assert.Equal(t, actor.String(), fields["actor_id"])
	assert.Equal(t, int64(1), fields["version"])
	assert.Equal(t, "audit", entries[0].LoggerName)
}

func TestAuditLogHandler_RejectsForeignEvents(t *testing.T) {
	h := NewAuditLogHandler(nil)
	event := &otherEvent{BaseDomainEvent: shared.NewBaseDomainEvent("other.thing", "Other", uuid.New(), uuid.New())}

	assert.Error(t, h.Handle(context.Background(), event))
}
