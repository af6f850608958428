package event

import (
	"testing"

	"github.com/erp/crm/internal/domain/crm"
	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry(t *testing.T) {
	r := NewHandlerRegistry()
	typed := newTestHandler()
	wildcard := newTestHandler()

	r.Register(typed, crm.EventTypeEntityCreated, crm.EventTypeEntityUpdated)
	r.Register(typed, crm.EventTypeEntityCreated)
	r.Register(wildcard)

	assert.Len(t, r.GetHandlers(crm.EventTypeEntityCreated), 2)
	assert.Len(t, r.GetHandlers(crm.EventTypeEntityDeleted), 1)
	assert.Equal(t, 2, r.Count())

	r.Unregister(typed)
	assert.Len(t, r.GetHandlers(crm.EventTypeEntityCreated), 1)
	assert.Equal(t, 1, r.Count())
}

func TestHandlerRegistry_WildcardNotDuplicated(t *testing.T) {
	r := NewHandlerRegistry()
	h := newTestHandler()
	r.Register(h, crm.EventTypeEntityCreated)
	r.Register(h)

	assert.Len(t, r.GetHandlers(crm.EventTypeEntityCreated), 1)
}
