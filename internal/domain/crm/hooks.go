package crm

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/erp/crm/internal/domain/shared"
)

// Phase identifies when a hook runs relative to a persistence statement
type Phase string

// Hook phases
const (
	PhaseBeforeCreate Phase = "before_create"
	PhaseAfterCreate  Phase = "after_create"
	PhaseBeforeUpdate Phase = "before_update"
	PhaseAfterUpdate  Phase = "after_update"
	PhaseBeforeDelete Phase = "before_delete"
	PhaseAfterDelete  Phase = "after_delete"
	PhaseValidate     Phase = "validate"
)

// HookFunc is hand-written extension logic for one entity
type HookFunc func(ctx context.Context, rec Record) error

// Hooks is the extension point of an entity. It carries functions only;
// any field left nil is skipped. Validate runs after BeforeCreate or
// BeforeUpdate on the same statement.
type Hooks struct {
	BeforeCreate HookFunc
	AfterCreate  HookFunc
	BeforeUpdate HookFunc
	AfterUpdate  HookFunc
	BeforeDelete HookFunc
	AfterDelete  HookFunc
	Validate     HookFunc
}

func (h Hooks) forPhase(p Phase) HookFunc {
	switch p {
	case PhaseBeforeCreate:
		return h.BeforeCreate
	case PhaseAfterCreate:
		return h.AfterCreate
	case PhaseBeforeUpdate:
		return h.BeforeUpdate
	case PhaseAfterUpdate:
		return h.AfterUpdate
	case PhaseBeforeDelete:
		return h.BeforeDelete
	case PhaseAfterDelete:
		return h.AfterDelete
	case PhaseValidate:
		return h.Validate
	default:
		return nil
	}
}

// HookRegistry attaches Hooks to catalog entities by name
type HookRegistry struct {
	mu    sync.RWMutex
	hooks map[string][]Hooks
}

// NewHookRegistry creates an empty registry
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		hooks: make(map[string][]Hooks),
	}
}

// Register appends hooks to the chain of an entity. Chains run in
// registration order.
func (r *HookRegistry) Register(entity string, h Hooks) error {
	if _, ok := Lookup(entity); !ok {
		return shared.NewDomainError("UNKNOWN_ENTITY", "Cannot register hooks for unknown entity: "+entity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[entity] = append(r.hooks[entity], h)
	return nil
}

// Lookup returns a copy of the hook chain registered for an entity
func (r *HookRegistry) Lookup(entity string) []Hooks {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chain := r.hooks[entity]
	if len(chain) == 0 {
		return nil
	}
	out := make([]Hooks, len(chain))
	copy(out, chain)
	return out
}

// Entities returns the sorted names of entities with at least one hook set
func (r *HookRegistry) Entities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.hooks))
	for name := range r.hooks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the hooks of one phase for an entity, stopping at the first error
func (r *HookRegistry) Run(ctx context.Context, phase Phase, entity string, rec Record) error {
	for _, h := range r.Lookup(entity) {
		fn := h.forPhase(phase)
		if fn == nil {
			continue
		}
		if err := fn(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

type beforeHooksAppliedKey struct{}

// WithBeforeHooksApplied marks ctx after the before and validate hooks of a
// write ran, so the persistence layer does not run them a second time
func WithBeforeHooksApplied(ctx context.Context) context.Context {
	return context.WithValue(ctx, beforeHooksAppliedKey{}, true)
}

// BeforeHooksApplied reports whether ctx carries WithBeforeHooksApplied
func BeforeHooksApplied(ctx context.Context) bool {
	applied, _ := ctx.Value(beforeHooksAppliedKey{}).(bool)
	return applied
}

// For adapts a hook written against a concrete entity type
func For[T Record](fn func(ctx context.Context, rec T) error) HookFunc {
	return func(ctx context.Context, rec Record) error {
		typed, ok := rec.(T)
		if !ok {
			var zero T
			return fmt.Errorf("crm: hook expects %T, got %T", zero, rec)
		}
		return fn(ctx, typed)
	}
}
