package crm

import (
	"github.com/erp/crm/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types published after catalog records change
const (
	EventTypeEntityCreated = "crm.entity.created"
	EventTypeEntityUpdated = "crm.entity.updated"
	EventTypeEntityDeleted = "crm.entity.deleted"
)

// EntityChangedEvent is published after a catalog record is persisted or removed
type EntityChangedEvent struct {
	shared.BaseDomainEvent
	Entity  string     `json:"entity"`
	Table   string     `json:"table"`
	Version int        `json:"version"`
	ActorID *uuid.UUID `json:"actor_id,omitempty"`
}

// NewEntityChangedEvent builds a change event for rec
func NewEntityChangedEvent(eventType string, d Descriptor, rec Record, actorID *uuid.UUID) *EntityChangedEvent {
	base := rec.Base()
	return &EntityChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, d.Name, base.ID, base.TenantID),
		Entity:          d.Name,
		Table:           d.Table,
		Version:         base.Version,
		ActorID:         actorID,
	}
}
