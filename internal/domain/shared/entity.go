package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// TenantEntity carries the columns every tenant-scoped CRM table shares.
// Generated entity structs embed it as their only non-column field.
type TenantEntity struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TenantID  uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	CreatedBy *uuid.UUID `gorm:"column:created_by;type:uuid" json:"created_by,omitempty"`
	Version   int        `gorm:"column:version;not null" json:"version"`
	CreatedAt time.Time  `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`
}

// NewTenantEntity creates a new tenant entity with generated ID and version 1
func NewTenantEntity(tenantID uuid.UUID) TenantEntity {
	now := time.Now()
	return TenantEntity{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Base exposes the shared columns of any struct embedding TenantEntity
func (e *TenantEntity) Base() *TenantEntity {
	return e
}

// GetID returns the entity ID
func (e *TenantEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *TenantEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *TenantEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch increments the version and refreshes UpdatedAt
func (e *TenantEntity) Touch() {
	e.Version++
	e.UpdatedAt = time.Now()
}
