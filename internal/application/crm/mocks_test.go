package crm

import (
	"context"
	"time"

	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockEntityRepository is a mock implementation of crm.EntityRepository
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) FindByIDForTenant(ctx context.Context, d crm.Descriptor, tenantID, id uuid.UUID) (crm.Record, error) {
	args := m.Called(ctx, d.Name, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(crm.Record), args.Error(1)
}

func (m *MockEntityRepository) FindAllForTenant(ctx context.Context, d crm.Descriptor, tenantID uuid.UUID, filter shared.Filter) ([]crm.Record, error) {
	args := m.Called(ctx, d.Name, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Record), args.Error(1)
}

func (m *MockEntityRepository) CountForTenant(ctx context.Context, d crm.Descriptor, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, d.Name, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntityRepository) Create(ctx context.Context, rec crm.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockEntityRepository) Update(ctx context.Context, rec crm.Record, expectedVersion int) error {
	args := m.Called(ctx, rec, expectedVersion)
	return args.Error(0)
}

func (m *MockEntityRepository) DeleteForTenant(ctx context.Context, d crm.Descriptor, tenantID, id uuid.UUID) (crm.Record, error) {
	args := m.Called(ctx, d.Name, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(crm.Record), args.Error(1)
}

// bumpVersion makes a mocked Update behave like the repository
func bumpVersion(args mock.Arguments) {
	rec := args.Get(1).(crm.Record)
	rec.Base().Version = args.Int(2) + 1
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (PresignedURL, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.Get(0).(PresignedURL), args.Error(1)
}

func (m *MockObjectStorage) PresignDownload(ctx context.Context, key string, expiresIn time.Duration) (PresignedURL, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.Get(0).(PresignedURL), args.Error(1)
}

func (m *MockObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

var (
	_ crm.EntityRepository  = (*MockEntityRepository)(nil)
	_ shared.EventPublisher = (*MockEventPublisher)(nil)
	_ ObjectStorage         = (*MockObjectStorage)(nil)
)
