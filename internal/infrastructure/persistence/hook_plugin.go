package persistence

import (
	"reflect"

	"github.com/erp/crm/internal/domain/crm"
	"gorm.io/gorm"
)

// HookPluginName is the name the hook plugin registers under
const HookPluginName = "crm:hooks"

// HookPlugin runs the hook chains of catalog entities around GORM's create,
// update and delete callbacks. Models outside the catalog pass through. The
// before and validate phases are skipped for statements whose context is
// marked with crm.WithBeforeHooksApplied.
type HookPlugin struct {
	registry *crm.HookRegistry
}

// NewHookPlugin creates a plugin backed by registry
func NewHookPlugin(registry *crm.HookRegistry) *HookPlugin {
	return &HookPlugin{registry: registry}
}

// Name implements gorm.Plugin
func (p *HookPlugin) Name() string {
	return HookPluginName
}

// Initialize implements gorm.Plugin
func (p *HookPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register("crm:before_create",
		p.runBefore(crm.PhaseBeforeCreate, crm.PhaseValidate)); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("crm:after_create",
		p.run(crm.PhaseAfterCreate)); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("crm:before_update",
		p.runBefore(crm.PhaseBeforeUpdate, crm.PhaseValidate)); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("crm:after_update",
		p.run(crm.PhaseAfterUpdate)); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("crm:before_delete",
		p.run(crm.PhaseBeforeDelete)); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("crm:after_delete",
		p.run(crm.PhaseAfterDelete))
}

func (p *HookPlugin) runBefore(phases ...crm.Phase) func(*gorm.DB) {
	run := p.run(phases...)
	return func(db *gorm.DB) {
		if crm.BeforeHooksApplied(db.Statement.Context) {
			return
		}
		run(db)
	}
}

func (p *HookPlugin) run(phases ...crm.Phase) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Error != nil || db.Statement.Schema == nil {
			return
		}
		d, ok := crm.Lookup(db.Statement.Schema.Name)
		if !ok || d.Table != db.Statement.Schema.Table {
			return
		}
		ctx := db.Statement.Context
		for _, rec := range statementRecords(db.Statement.ReflectValue) {
			for _, phase := range phases {
				if err := p.registry.Run(ctx, phase, d.Name, rec); err != nil {
					_ = db.AddError(err)
					return
				}
			}
		}
	}
}

// statementRecords returns the records a statement operates on, one per
// element for batch statements.
func statementRecords(rv reflect.Value) []crm.Record {
	rv = reflect.Indirect(rv)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]crm.Record, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if rec, ok := asRecord(reflect.Indirect(rv.Index(i))); ok {
				out = append(out, rec)
			}
		}
		return out
	case reflect.Struct:
		if rec, ok := asRecord(rv); ok {
			return []crm.Record{rec}
		}
	}
	return nil
}

func asRecord(rv reflect.Value) (crm.Record, bool) {
	if !rv.IsValid() || !rv.CanAddr() {
		return nil, false
	}
	rec, ok := rv.Addr().Interface().(crm.Record)
	return rec, ok
}
