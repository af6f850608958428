package crm

import (
	"context"

	"github.com/erp/crm/internal/domain/shared"
	"github.com/google/uuid"
)

// EntityRepository persists catalog records of any entity
type EntityRepository interface {
	FindByIDForTenant(ctx context.Context, d Descriptor, tenantID, id uuid.UUID) (Record, error)
	FindAllForTenant(ctx context.Context, d Descriptor, tenantID uuid.UUID, filter shared.Filter) ([]Record, error)
	CountForTenant(ctx context.Context, d Descriptor, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Create(ctx context.Context, rec Record) error
	// Update saves rec if its stored version still equals expectedVersion
	Update(ctx context.Context, rec Record, expectedVersion int) error
	DeleteForTenant(ctx context.Context, d Descriptor, tenantID, id uuid.UUID) (Record, error)
}
