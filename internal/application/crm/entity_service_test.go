package crm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/domain/shared"
	"github.com/erp/crm/internal/infrastructure/cache"
	"github.com/erp/crm/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

type serviceFixture struct {
	repo      *MockEntityRepository
	publisher *MockEventPublisher
	cache     *EntityCache
	service   *EntityService
}

func newServiceFixture(t *testing.T, opts ...EntityServiceOption) *serviceFixture {
	t.Helper()
	mem := cache.NewInMemoryCache(time.Minute)
	t.Cleanup(func() { _ = mem.Close() })

	f := &serviceFixture{
		repo:      new(MockEntityRepository),
		publisher: new(MockEventPublisher),
	}
	f.cache = NewEntityCache(mem, time.Minute, zaptest.NewLogger(t))
	opts = append([]EntityServiceOption{
		WithEntityCache(f.cache),
		WithEventPublisher(f.publisher),
		WithServiceLogger(zaptest.NewLogger(t)),
	}, opts...)
	f.service = NewEntityService(f.repo, opts...)
	return f
}

func publishedType(eventType string) any {
	return mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == eventType
	})
}

func storedTag(tenantID uuid.UUID, version int) *crm.Tag {
	tag := &crm.Tag{Name: "VIP", Color: "#000000"}
	tag.TenantEntity = shared.NewTenantEntity(tenantID)
	tag.Version = version
	return tag
}

func TestEntityService_Catalog(t *testing.T) {
	f := newServiceFixture(t)

	entries := f.service.Catalog()
	require.Len(t, entries, 52)
	assert.Equal(t, "Agent", entries[0].Name)
	for _, e := range entries {
		assert.Equal(t, crm.BaseColumns(), e.Columns[:len(crm.BaseColumns())], e.Name)
	}

	d, err := f.service.Describe("talk_messages")
	require.NoError(t, err)
	assert.Equal(t, "TalkMessage", d.Name)
	assert.Contains(t, d.Columns, "attachment_key")

	_, err = f.service.Describe("Unicorn")
	assert.True(t, errors.Is(err, shared.ErrUnknownEntity))
}

func TestEntityService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID, userID := uuid.New(), uuid.New()

	t.Run("persists and publishes", func(t *testing.T) {
		f := newServiceFixture(t)
		f.repo.On("Create", mock.Anything, mock.AnythingOfType("*crm.Tag")).Return(nil).Once()
		f.publisher.On("Publish", mock.Anything, publishedType(crm.EventTypeEntityCreated)).Return(nil).Once()

		rec, err := f.service.Create(ctx, tenantID, userID, "tags", json.RawMessage(`{"name":"VIP","color":"#FF0000"}`))
		require.NoError(t, err)

		tag := rec.(*crm.Tag)
		assert.Equal(t, "VIP", tag.Name)
		assert.Equal(t, "#FF0000", tag.Color)
		assert.Equal(t, tenantID, tag.TenantID)
		assert.Equal(t, 1, tag.Version)
		assert.NotEqual(t, uuid.Nil, tag.ID)
		require.NotNil(t, tag.CreatedBy)
		assert.Equal(t, userID, *tag.CreatedBy)
		f.repo.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("accepts entity name", func(t *testing.T) {
		f := newServiceFixture(t)
		f.repo.On("Create", mock.Anything, mock.AnythingOfType("*crm.Tag")).Return(nil).Once()
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		_, err := f.service.Create(ctx, tenantID, uuid.Nil, "Tag", json.RawMessage(`{"name":"VIP"}`))
		require.NoError(t, err)
	})

	t.Run("publish failure does not fail the call", func(t *testing.T) {
		f := newServiceFixture(t)
		f.repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus down")).Once()

		_, err := f.service.Create(ctx, tenantID, userID, "tags", json.RawMessage(`{"name":"VIP"}`))
		assert.NoError(t, err)
	})

	rejected := []struct {
		name    string
		entity  string
		payload string
	}{
		{"protected id", "tags", `{"name":"VIP","id":"` + uuid.NewString() + `"}`},
		{"protected tenant", "tags", `{"name":"VIP","tenant_id":"` + uuid.NewString() + `"}`},
		{"protected version", "tags", `{"name":"VIP","version":7}`},
		{"protected id in upper case", "tags", `{"name":"VIP","ID":"` + uuid.NewString() + `"}`},
		{"protected tenant in upper case", "tags", `{"name":"VIP","TENANT_ID":"` + uuid.NewString() + `"}`},
		{"protected version in mixed case", "tags", `{"name":"VIP","Version":7}`},
		{"attachment key", "talk_messages", `{"talk_id":"` + uuid.NewString() + `","body":"hi","attachment_key":"talk-messages/x/y/z.pdf"}`},
		{"attachment name in mixed case", "talk_messages", `{"talk_id":"` + uuid.NewString() + `","body":"hi","Attachment_Name":"z.pdf"}`},
		{"unknown field", "tags", `{"name":"VIP","priority":1}`},
		{"wrong type", "tags", `{"name":42}`},
		{"not an object", "tags", `["VIP"]`},
		{"empty body", "tags", ``},
		{"null body", "tags", `null`},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)

			_, err := f.service.Create(ctx, tenantID, userID, tt.entity, json.RawMessage(tt.payload))
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput), err.Error())
			f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}

	t.Run("validation lists failing fields", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.Create(ctx, tenantID, userID, "deals", json.RawMessage(`{"status":"maybe","probability":150}`))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ElementsMatch(t, []string{"title", "pipeline_id", "status", "probability"}, verr.Fields())
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown entity", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.Create(ctx, tenantID, userID, "unicorns", json.RawMessage(`{}`))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNKNOWN_ENTITY", domainErr.Code)
	})

	t.Run("repository error is returned", func(t *testing.T) {
		f := newServiceFixture(t)
		f.repo.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists).Once()

		_, err := f.service.Create(ctx, tenantID, userID, "tags", json.RawMessage(`{"name":"VIP"}`))
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestEntityService_GetUsesCache(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newServiceFixture(t)
	tag := storedTag(tenantID, 1)
	f.repo.On("FindByIDForTenant", mock.Anything, "Tag", tenantID, tag.ID).Return(tag, nil).Once()

	first, err := f.service.Get(ctx, tenantID, "tags", tag.ID)
	require.NoError(t, err)
	second, err := f.service.Get(ctx, tenantID, "tags", tag.ID)
	require.NoError(t, err)

	assert.Equal(t, tag.Name, second.(*crm.Tag).Name)
	assert.Equal(t, first.Base().ID, second.Base().ID)
	f.repo.AssertNumberOfCalls(t, "FindByIDForTenant", 1)
}

func TestEntityService_GetNotFound(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	tenantID, id := uuid.New(), uuid.New()
	f.repo.On("FindByIDForTenant", mock.Anything, "Contact", tenantID, id).Return(nil, shared.ErrNotFound)

	_, err := f.service.Get(ctx, tenantID, "contacts", id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Nil(t, f.cache.Get(ctx, mustLookup(t, "Contact"), tenantID, id))
}

func TestEntityService_List(t *testing.T) {
	ctx := context.Background()
	tenantID, pipelineID := uuid.New(), uuid.New()

	t.Run("coerces filters and clamps page size", func(t *testing.T) {
		f := newServiceFixture(t)
		matches := mock.MatchedBy(func(filter shared.Filter) bool {
			_, hasClosed := filter.Filters["closed_at"]
			return filter.Page == 1 &&
				filter.PageSize == MaxPageSize &&
				filter.Filters["probability"] == 50 &&
				filter.Filters["pipeline_id"] == pipelineID &&
				filter.Filters["status"] == "open" &&
				hasClosed && filter.Filters["closed_at"] == nil
		})
		deal := &crm.Deal{Title: "Renewal"}
		f.repo.On("FindAllForTenant", mock.Anything, "Deal", tenantID, matches).Return([]crm.Record{deal}, nil).Once()
		f.repo.On("CountForTenant", mock.Anything, "Deal", tenantID, matches).Return(int64(101), nil).Once()

		page, err := f.service.List(ctx, tenantID, "deals", shared.Filter{
			PageSize: 500,
			Filters: map[string]any{
				"probability": "50",
				"pipeline_id": pipelineID.String(),
				"status":      "open",
				"closed_at":   "null",
			},
		})
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, int64(101), page.Total)
		assert.Equal(t, 2, page.TotalPages)
		f.repo.AssertExpectations(t)
	})

	invalid := []struct {
		name    string
		filters map[string]any
	}{
		{"unknown column", map[string]any{"nickname": "x"}},
		{"tenant column", map[string]any{"tenant_id": tenantID.String()}},
		{"bad int", map[string]any{"probability": "high"}},
		{"bad uuid", map[string]any{"pipeline_id": "not-a-uuid"}},
		{"null on required column", map[string]any{"pipeline_id": "null"}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)

			_, err := f.service.List(ctx, tenantID, "deals", shared.Filter{Filters: tt.filters})
			assert.True(t, errors.Is(err, shared.ErrInvalidInput), "got %v", err)
			f.repo.AssertNotCalled(t, "FindAllForTenant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestEntityService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID, userID := uuid.New(), uuid.New()

	t.Run("merges payload and invalidates cache", func(t *testing.T) {
		f := newServiceFixture(t)
		d := mustLookup(t, "Tag")
		tag := storedTag(tenantID, 2)
		f.cache.Set(ctx, d, tag)

		f.repo.On("FindByIDForTenant", mock.Anything, "Tag", tenantID, tag.ID).Return(tag, nil).Once()
		f.repo.On("Update", mock.Anything, mock.AnythingOfType("*crm.Tag"), 2).Run(bumpVersion).Return(nil).Once()
		f.publisher.On("Publish", mock.Anything, publishedType(crm.EventTypeEntityUpdated)).Return(nil).Once()

		rec, err := f.service.Update(ctx, tenantID, userID, "tags", tag.ID, 2, json.RawMessage(`{"color":"#ffffff"}`))
		require.NoError(t, err)

		updated := rec.(*crm.Tag)
		assert.Equal(t, "VIP", updated.Name)
		assert.Equal(t, "#ffffff", updated.Color)
		assert.Equal(t, 3, updated.Version)
		assert.Nil(t, f.cache.Get(ctx, d, tenantID, tag.ID))
		f.repo.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("null clears nullable column", func(t *testing.T) {
		f := newServiceFixture(t)
		companyID := uuid.New()
		contact := &crm.Contact{FirstName: "Ada", CompanyID: &companyID}
		contact.TenantEntity = shared.NewTenantEntity(tenantID)
		f.repo.On("FindByIDForTenant", mock.Anything, "Contact", tenantID, contact.ID).Return(contact, nil).Once()
		f.repo.On("Update", mock.Anything, mock.Anything, 1).Run(bumpVersion).Return(nil).Once()
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		rec, err := f.service.Update(ctx, tenantID, userID, "contacts", contact.ID, 1, json.RawMessage(`{"company_id":null}`))
		require.NoError(t, err)
		assert.Nil(t, rec.(*crm.Contact).CompanyID)
		assert.Equal(t, "Ada", rec.(*crm.Contact).FirstName)
	})

	t.Run("stale version", func(t *testing.T) {
		f := newServiceFixture(t)
		tag := storedTag(tenantID, 4)
		f.repo.On("FindByIDForTenant", mock.Anything, "Tag", tenantID, tag.ID).Return(tag, nil).Once()

		_, err := f.service.Update(ctx, tenantID, userID, "tags", tag.ID, 3, json.RawMessage(`{"name":"New"}`))
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent writer wins", func(t *testing.T) {
		f := newServiceFixture(t)
		tag := storedTag(tenantID, 1)
		f.repo.On("FindByIDForTenant", mock.Anything, "Tag", tenantID, tag.ID).Return(tag, nil).Once()
		f.repo.On("Update", mock.Anything, mock.Anything, 1).Return(shared.ErrConcurrencyConflict).Once()

		_, err := f.service.Update(ctx, tenantID, userID, "tags", tag.ID, 1, json.RawMessage(`{"name":"New"}`))
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("protected field", func(t *testing.T) {
		f := newServiceFixture(t)
		tag := storedTag(tenantID, 1)
		f.repo.On("FindByIDForTenant", mock.Anything, "Tag", tenantID, tag.ID).Return(tag, nil).Once()

		_, err := f.service.Update(ctx, tenantID, userID, "tags", tag.ID, 1, json.RawMessage(`{"created_at":"2020-01-01T00:00:00Z"}`))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("case variant keys cannot retarget the row", func(t *testing.T) {
		f := newServiceFixture(t)
		tag := storedTag(tenantID, 1)
		f.repo.On("FindByIDForTenant", mock.Anything, "Tag", tenantID, tag.ID).Return(tag, nil).Once()

		payload := `{"ID":"` + uuid.NewString() + `","TENANT_ID":"` + uuid.NewString() + `","name":"hijacked"}`
		_, err := f.service.Update(ctx, tenantID, userID, "tags", tag.ID, 1, json.RawMessage(payload))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Equal(t, "VIP", tag.Name)
		f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("merged record is validated", func(t *testing.T) {
		f := newServiceFixture(t)
		tag := storedTag(tenantID, 1)
		f.repo.On("FindByIDForTenant", mock.Anything, "Tag", tenantID, tag.ID).Return(tag, nil).Once()

		_, err := f.service.Update(ctx, tenantID, userID, "tags", tag.ID, 1, json.RawMessage(`{"name":""}`))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"name"}, verr.Fields())
	})
}

func TestEntityService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID, userID := uuid.New(), uuid.New()

	t.Run("removes, invalidates and publishes", func(t *testing.T) {
		f := newServiceFixture(t)
		d := mustLookup(t, "Tag")
		tag := storedTag(tenantID, 1)
		f.cache.Set(ctx, d, tag)
		f.repo.On("DeleteForTenant", mock.Anything, "Tag", tenantID, tag.ID).Return(tag, nil).Once()
		f.publisher.On("Publish", mock.Anything, publishedType(crm.EventTypeEntityDeleted)).Return(nil).Once()

		require.NoError(t, f.service.Delete(ctx, tenantID, userID, "tags", tag.ID))
		assert.Nil(t, f.cache.Get(ctx, d, tenantID, tag.ID))
		f.publisher.AssertExpectations(t)
	})

	t.Run("missing record", func(t *testing.T) {
		f := newServiceFixture(t)
		id := uuid.New()
		f.repo.On("DeleteForTenant", mock.Anything, "Tag", tenantID, id).Return(nil, shared.ErrNotFound).Once()

		err := f.service.Delete(ctx, tenantID, userID, "tags", id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestEntityService_RecordsMetrics(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	metrics, err := telemetry.NewEntityMetrics(provider.Meter("test"))
	require.NoError(t, err)

	f := newServiceFixture(t, WithEntityMetrics(metrics))
	tenantID, id := uuid.New(), uuid.New()
	f.repo.On("FindByIDForTenant", mock.Anything, "Tag", tenantID, id).Return(nil, shared.ErrNotFound)

	_, err = f.service.Get(ctx, tenantID, "tags", id)
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	var found bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "crm.entity.operations" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			require.Len(t, sum.DataPoints, 1)
			dp := sum.DataPoints[0]
			assert.Equal(t, int64(1), dp.Value)
			outcome, _ := dp.Attributes.Value(telemetry.AttrOutcome)
			assert.Equal(t, telemetry.OutcomeNotFound, outcome.AsString())
			operation, _ := dp.Attributes.Value(telemetry.AttrOperation)
			assert.Equal(t, OperationGet, operation.AsString())
			found = true
		}
	}
	assert.True(t, found)
}

func mustLookup(t *testing.T, name string) crm.Descriptor {
	t.Helper()
	d, ok := crm.Lookup(name)
	require.True(t, ok, name)
	return d
}

func TestEntityService_NormalizesBeforeValidating(t *testing.T) {
	ctx := context.Background()
	tenantID, userID := uuid.New(), uuid.New()
	reg := crm.NewHookRegistry()
	require.NoError(t, crm.RegisterBuiltinRules(reg))

	t.Run("deal status and currency", func(t *testing.T) {
		f := newServiceFixture(t, WithHookRegistry(reg))
		var hooksApplied bool
		f.repo.On("Create", mock.Anything, mock.AnythingOfType("*crm.Deal")).
			Run(func(args mock.Arguments) {
				hooksApplied = crm.BeforeHooksApplied(args.Get(0).(context.Context))
			}).Return(nil).Once()
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		payload := `{"title":"Renewal","pipeline_id":"` + uuid.NewString() + `","status":" Won","currency_code":"usd"}`
		rec, err := f.service.Create(ctx, tenantID, userID, "deals", json.RawMessage(payload))
		require.NoError(t, err)

		deal := rec.(*crm.Deal)
		assert.Equal(t, crm.DealStatusWon, deal.Status)
		assert.Equal(t, "USD", deal.CurrencyCode)
		assert.NotNil(t, deal.ClosedAt)
		assert.True(t, hooksApplied)
	})

	t.Run("padded country code", func(t *testing.T) {
		f := newServiceFixture(t, WithHookRegistry(reg))
		f.repo.On("Create", mock.Anything, mock.AnythingOfType("*crm.Country")).Return(nil).Once()
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		rec, err := f.service.Create(ctx, tenantID, userID, "countries", json.RawMessage(`{"name":"United States","iso2_code":" us"}`))
		require.NoError(t, err)
		assert.Equal(t, "US", rec.(*crm.Country).Iso2Code)
	})

	t.Run("update is normalised too", func(t *testing.T) {
		f := newServiceFixture(t, WithHookRegistry(reg))
		deal := &crm.Deal{Title: "Renewal", PipelineID: uuid.New(), Status: crm.DealStatusOpen}
		deal.TenantEntity = shared.NewTenantEntity(tenantID)
		f.repo.On("FindByIDForTenant", mock.Anything, "Deal", tenantID, deal.ID).Return(deal, nil).Once()
		f.repo.On("Update", mock.Anything, mock.Anything, 1).Run(bumpVersion).Return(nil).Once()
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		rec, err := f.service.Update(ctx, tenantID, userID, "deals", deal.ID, 1, json.RawMessage(`{"status":"LOST"}`))
		require.NoError(t, err)
		assert.Equal(t, crm.DealStatusLost, rec.(*crm.Deal).Status)
	})

	t.Run("validate hooks still reject", func(t *testing.T) {
		f := newServiceFixture(t, WithHookRegistry(reg))

		_, err := f.service.Create(ctx, tenantID, userID, "pipeline_stages",
			json.RawMessage(`{"pipeline_id":"`+uuid.NewString()+`","name":"Limbo","is_won":true,"is_lost":true}`))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRestoreIdentity(t *testing.T) {
	stored := shared.NewTenantEntity(uuid.New())
	creator := uuid.New()
	stored.CreatedBy = &creator

	merged := shared.NewTenantEntity(uuid.New())
	merged.Version = 9
	restoreIdentity(&merged, stored)

	assert.Equal(t, stored, merged)
}
