package persistence

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEntityRepository implements crm.EntityRepository for every catalog entity
type GormEntityRepository struct {
	db *gorm.DB
}

// NewGormEntityRepository creates a new GormEntityRepository
func NewGormEntityRepository(db *gorm.DB) *GormEntityRepository {
	return &GormEntityRepository{db: db}
}

// FindByIDForTenant finds a record by ID within a tenant
func (r *GormEntityRepository) FindByIDForTenant(ctx context.Context, d crm.Descriptor, tenantID, id uuid.UUID) (crm.Record, error) {
	rec := d.New()
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// FindAllForTenant finds all records of an entity for a tenant
func (r *GormEntityRepository) FindAllForTenant(ctx context.Context, d crm.Descriptor, tenantID uuid.UUID, filter shared.Filter) ([]crm.Record, error) {
	query, err := r.applyFilter(r.scoped(ctx, d, tenantID), d, filter)
	if err != nil {
		return nil, err
	}

	// *[]*Entity for the concrete type behind the descriptor
	slice := reflect.New(reflect.SliceOf(reflect.TypeOf(d.New())))
	if err := query.Find(slice.Interface()).Error; err != nil {
		return nil, err
	}

	items := slice.Elem()
	out := make([]crm.Record, items.Len())
	for i := range out {
		out[i] = items.Index(i).Interface().(crm.Record)
	}
	return out, nil
}

// CountForTenant counts records of an entity for a tenant
func (r *GormEntityRepository) CountForTenant(ctx context.Context, d crm.Descriptor, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	query, err := r.applyFilterWithoutPagination(r.scoped(ctx, d, tenantID), d, filter)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a record. A zero ID or version is filled in.
func (r *GormEntityRepository) Create(ctx context.Context, rec crm.Record) error {
	base := rec.Base()
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.Version == 0 {
		base.Version = 1
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Update saves every column of rec provided the stored version still equals
// expectedVersion, then advances the version by one.
func (r *GormEntityRepository) Update(ctx context.Context, rec crm.Record, expectedVersion int) error {
	base := rec.Base()
	updatedAt := base.UpdatedAt
	base.Version = expectedVersion
	base.Touch()

	result := r.db.WithContext(ctx).Model(rec).
		Where("tenant_id = ? AND version = ?", base.TenantID, expectedVersion).
		Select("*").
		Omit("id", "tenant_id", "created_by", "created_at").
		Updates(rec)
	if result.Error != nil {
		base.Version, base.UpdatedAt = expectedVersion, updatedAt
		return translateError(result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	base.Version, base.UpdatedAt = expectedVersion, updatedAt
	var count int64
	if err := r.db.WithContext(ctx).Table(rec.TableName()).
		Where("tenant_id = ? AND id = ?", base.TenantID, base.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return shared.ErrConcurrencyConflict
}

// DeleteForTenant deletes a record within a tenant and returns what was removed
func (r *GormEntityRepository) DeleteForTenant(ctx context.Context, d crm.Descriptor, tenantID, id uuid.UUID) (crm.Record, error) {
	rec, err := r.FindByIDForTenant(ctx, d, tenantID, id)
	if err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Delete(rec)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return rec, nil
}

func (r *GormEntityRepository) scoped(ctx context.Context, d crm.Descriptor, tenantID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(d.New()).Where("tenant_id = ?", tenantID)
}

// applyFilter applies filter options to the query
func (r *GormEntityRepository) applyFilter(query *gorm.DB, d crm.Descriptor, filter shared.Filter) (*gorm.DB, error) {
	query, err := r.applyFilterWithoutPagination(query, d, filter)
	if err != nil {
		return nil, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SortFieldsFor(d), DefaultSortField)
	query = query.Order(clause.OrderByColumn{
		Column: clause.Column{Name: orderBy},
		Desc:   ValidateSortOrder(filter.OrderDir) == "DESC",
	})
	if orderBy != "id" {
		// stable pages when the sort column has ties
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	return query, nil
}

// likeEscaper makes search input match literally inside a LIKE pattern
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// applyFilterWithoutPagination applies search and equality filters
func (r *GormEntityRepository) applyFilterWithoutPagination(query *gorm.DB, d crm.Descriptor, filter shared.Filter) (*gorm.DB, error) {
	if search := strings.TrimSpace(filter.Search); search != "" && len(d.SearchFields) > 0 {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		conds := make([]string, len(d.SearchFields))
		args := make([]any, len(d.SearchFields))
		for i, f := range d.SearchFields {
			conds[i] = "LOWER(" + f + ") LIKE ? ESCAPE '\\'"
			args[i] = pattern
		}
		query = query.Where(strings.Join(conds, " OR "), args...)
	}

	keys := make([]string, 0, len(filter.Filters))
	for k := range filter.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !d.HasColumn(key) || key == "tenant_id" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown filter field for "+d.Name+": "+key)
		}
		// a nil value renders as IS NULL
		query = query.Where(clause.Eq{Column: clause.Column{Name: key}, Value: filter.Filters[key]})
	}
	return query, nil
}

func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewDomainError("INVALID_INPUT", "Referenced record does not exist")
	default:
		return err
	}
}
