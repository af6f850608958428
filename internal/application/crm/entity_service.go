// Package crm implements the application services of the CRM catalog:
// generic CRUD over every catalog entity plus TalkMessage attachments.
package crm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/domain/shared"
	"github.com/erp/crm/internal/infrastructure/telemetry"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entity operations, used for metrics and profiling labels
const (
	OperationCreate = "create"
	OperationGet    = "get"
	OperationList   = "list"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// Page size bounds for List
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// EntityDescriptor is the public view of a catalog entry
type EntityDescriptor struct {
	Name         string   `json:"name"`
	Table        string   `json:"table"`
	Description  string   `json:"description"`
	Columns      []string `json:"columns"`
	SearchFields []string `json:"search_fields"`
	SortFields   []string `json:"sort_fields"`
}

func toEntityDescriptor(d crm.Descriptor) EntityDescriptor {
	return EntityDescriptor{
		Name:         d.Name,
		Table:        d.Table,
		Description:  d.Description,
		Columns:      append(crm.BaseColumns(), d.Columns...),
		SearchFields: append([]string{}, d.SearchFields...),
		SortFields:   append([]string{}, d.SortFields...),
	}
}

// EntityService handles CRUD operations for every catalog entity
type EntityService struct {
	repo      crm.EntityRepository
	hooks     *crm.HookRegistry
	cache     *EntityCache
	publisher shared.EventPublisher
	metrics   *telemetry.EntityMetrics
	validate  *validator.Validate
	logger    *zap.Logger
}

// EntityServiceOption configures an EntityService
type EntityServiceOption func(*EntityService)

// WithHookRegistry runs the before and validate hooks of an entity ahead of
// the struct tag validation, so normalised values are what gets validated
func WithHookRegistry(hooks *crm.HookRegistry) EntityServiceOption {
	return func(s *EntityService) {
		s.hooks = hooks
	}
}

// WithEntityCache enables the read-through record cache
func WithEntityCache(cache *EntityCache) EntityServiceOption {
	return func(s *EntityService) {
		s.cache = cache
	}
}

// WithEventPublisher publishes EntityChangedEvent after every mutation
func WithEventPublisher(publisher shared.EventPublisher) EntityServiceOption {
	return func(s *EntityService) {
		s.publisher = publisher
	}
}

// WithEntityMetrics records operation counts and durations
func WithEntityMetrics(metrics *telemetry.EntityMetrics) EntityServiceOption {
	return func(s *EntityService) {
		s.metrics = metrics
	}
}

// WithServiceLogger sets the logger
func WithServiceLogger(logger *zap.Logger) EntityServiceOption {
	return func(s *EntityService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewEntityService creates a new EntityService
func NewEntityService(repo crm.EntityRepository, opts ...EntityServiceOption) *EntityService {
	s := &EntityService{
		repo:     repo,
		validate: newValidator(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog lists every entity of the catalog sorted by name
func (s *EntityService) Catalog() []EntityDescriptor {
	all := crm.All()
	out := make([]EntityDescriptor, len(all))
	for i, d := range all {
		out[i] = toEntityDescriptor(d)
	}
	return out
}

// Describe returns one catalog entry by entity or table name
func (s *EntityService) Describe(entity string) (EntityDescriptor, error) {
	d, err := crm.Resolve(entity)
	if err != nil {
		return EntityDescriptor{}, err
	}
	return toEntityDescriptor(d), nil
}

// Create decodes payload into a new record of entity and persists it
func (s *EntityService) Create(ctx context.Context, tenantID, userID uuid.UUID, entity string, payload json.RawMessage) (crm.Record, error) {
	d, err := crm.Resolve(entity)
	if err != nil {
		return nil, err
	}

	var rec crm.Record
	err = s.observe(ctx, d, OperationCreate, tenantID, uuid.Nil, func(ctx context.Context) error {
		rec = d.New()
		if err := decodePayload(d, payload, rec); err != nil {
			return err
		}
		base := rec.Base()
		*base = shared.NewTenantEntity(tenantID)
		if userID != uuid.Nil {
			actor := userID
			base.CreatedBy = &actor
		}
		writeCtx, err := s.prepare(ctx, crm.PhaseBeforeCreate, d, rec)
		if err != nil {
			return err
		}
		if err := s.repo.Create(writeCtx, rec); err != nil {
			return err
		}
		s.publish(ctx, crm.EventTypeEntityCreated, d, rec, userID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Get returns one record, served from the cache when present
func (s *EntityService) Get(ctx context.Context, tenantID uuid.UUID, entity string, id uuid.UUID) (crm.Record, error) {
	d, err := crm.Resolve(entity)
	if err != nil {
		return nil, err
	}

	var rec crm.Record
	err = s.observe(ctx, d, OperationGet, tenantID, id, func(ctx context.Context) error {
		found, err := s.find(ctx, d, tenantID, id)
		rec = found
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns one page of records matching filter
func (s *EntityService) List(ctx context.Context, tenantID uuid.UUID, entity string, filter shared.Filter) (shared.Paginated[crm.Record], error) {
	d, err := crm.Resolve(entity)
	if err != nil {
		return shared.Paginated[crm.Record]{}, err
	}

	var page shared.Paginated[crm.Record]
	err = s.observe(ctx, d, OperationList, tenantID, uuid.Nil, func(ctx context.Context) error {
		if filter.Page < 1 {
			filter.Page = 1
		}
		if filter.PageSize < 1 {
			filter.PageSize = DefaultPageSize
		}
		if filter.PageSize > MaxPageSize {
			filter.PageSize = MaxPageSize
		}
		filters, err := coerceFilters(d, filter.Filters)
		if err != nil {
			return err
		}
		filter.Filters = filters

		items, err := s.repo.FindAllForTenant(ctx, d, tenantID, filter)
		if err != nil {
			return err
		}
		total, err := s.repo.CountForTenant(ctx, d, tenantID, filter)
		if err != nil {
			return err
		}
		page = shared.NewPaginated(items, total, filter.Page, filter.PageSize)
		return nil
	})
	if err != nil {
		return shared.Paginated[crm.Record]{}, err
	}
	return page, nil
}

// Update merges payload into the stored record. The stored version must
// equal version, otherwise CONCURRENCY_CONFLICT is returned.
func (s *EntityService) Update(ctx context.Context, tenantID, userID uuid.UUID, entity string, id uuid.UUID, version int, payload json.RawMessage) (crm.Record, error) {
	d, err := crm.Resolve(entity)
	if err != nil {
		return nil, err
	}

	var rec crm.Record
	err = s.observe(ctx, d, OperationUpdate, tenantID, id, func(ctx context.Context) error {
		stored, err := s.repo.FindByIDForTenant(ctx, d, tenantID, id)
		if err != nil {
			return err
		}
		if stored.Base().Version != version {
			return shared.ErrConcurrencyConflict
		}
		identity := *stored.Base()
		if err := decodePayload(d, payload, stored); err != nil {
			return err
		}
		restoreIdentity(stored.Base(), identity)
		if err := s.save(ctx, d, stored, version, userID); err != nil {
			return err
		}
		rec = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes one record
func (s *EntityService) Delete(ctx context.Context, tenantID, userID uuid.UUID, entity string, id uuid.UUID) error {
	d, err := crm.Resolve(entity)
	if err != nil {
		return err
	}

	return s.observe(ctx, d, OperationDelete, tenantID, id, func(ctx context.Context) error {
		rec, err := s.repo.DeleteForTenant(ctx, d, tenantID, id)
		if err != nil {
			return err
		}
		s.cache.Invalidate(ctx, d, tenantID, id)
		s.publish(ctx, crm.EventTypeEntityDeleted, d, rec, userID)
		return nil
	})
}

func (s *EntityService) find(ctx context.Context, d crm.Descriptor, tenantID, id uuid.UUID) (crm.Record, error) {
	if rec := s.cache.Get(ctx, d, tenantID, id); rec != nil {
		return rec, nil
	}
	rec, err := s.repo.FindByIDForTenant(ctx, d, tenantID, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, d, rec)
	return rec, nil
}

// save validates and persists a modified record, then invalidates and
// announces it
func (s *EntityService) save(ctx context.Context, d crm.Descriptor, rec crm.Record, expectedVersion int, userID uuid.UUID) error {
	writeCtx, err := s.prepare(ctx, crm.PhaseBeforeUpdate, d, rec)
	if err != nil {
		return err
	}
	if err := s.repo.Update(writeCtx, rec, expectedVersion); err != nil {
		return err
	}
	base := rec.Base()
	s.cache.Invalidate(ctx, d, base.TenantID, base.ID)
	s.publish(ctx, crm.EventTypeEntityUpdated, d, rec, userID)
	return nil
}

// prepare runs the before hooks of phase, then the struct tag validator and
// finally the validate hooks. The returned context tells the persistence
// layer these phases already ran.
func (s *EntityService) prepare(ctx context.Context, phase crm.Phase, d crm.Descriptor, rec crm.Record) (context.Context, error) {
	if s.hooks != nil {
		if err := s.hooks.Run(ctx, phase, d.Name, rec); err != nil {
			return ctx, err
		}
	}
	if err := validateRecord(ctx, s.validate, d.Name, rec); err != nil {
		return ctx, err
	}
	if s.hooks == nil {
		return ctx, nil
	}
	if err := s.hooks.Run(ctx, crm.PhaseValidate, d.Name, rec); err != nil {
		return ctx, err
	}
	return crm.WithBeforeHooksApplied(ctx), nil
}

// restoreIdentity puts back the columns a merge must never change
func restoreIdentity(base *shared.TenantEntity, stored shared.TenantEntity) {
	base.ID = stored.ID
	base.TenantID = stored.TenantID
	base.CreatedBy = stored.CreatedBy
	base.CreatedAt = stored.CreatedAt
	base.Version = stored.Version
	base.UpdatedAt = stored.UpdatedAt
}

// publish announces a committed change. Failures are logged because the
// change itself has already been persisted.
func (s *EntityService) publish(ctx context.Context, eventType string, d crm.Descriptor, rec crm.Record, userID uuid.UUID) {
	if s.publisher == nil {
		return
	}
	var actor *uuid.UUID
	if userID != uuid.Nil {
		actor = &userID
	}
	event := crm.NewEntityChangedEvent(eventType, d, rec, actor)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish entity event",
			zap.String("event_type", eventType),
			zap.String("entity", d.Name),
			zap.String("record_id", rec.Base().ID.String()),
			zap.Error(err),
		)
	}
}

// observe runs fn inside a span and profiling labels and records its outcome
func (s *EntityService) observe(ctx context.Context, d crm.Descriptor, operation string, tenantID, id uuid.UUID, fn func(context.Context) error) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "crm", operation)
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrEntity, d.Name,
		telemetry.SpanAttrTable, d.Table,
		telemetry.SpanAttrTenantID, tenantID.String(),
	)
	if id != uuid.Nil {
		telemetry.SetAttributes(span, telemetry.SpanAttrRecordID, id.String())
	}

	start := time.Now()
	var err error
	telemetry.WithProfilingLabels(ctx, telemetry.EntityLabels(d.Name, operation), func(c context.Context) {
		err = fn(c)
	})
	s.metrics.RecordOperation(ctx, d.Name, operation, time.Since(start), err)

	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	telemetry.SetOK(span)
	return nil
}
