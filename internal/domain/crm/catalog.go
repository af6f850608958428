// Package crm holds the CRM entity catalog. Row shapes and descriptors are
// generated by cmd/crmgen from internal/codegen/catalog.yaml; extension logic
// is attached separately through a HookRegistry keyed by entity name.
package crm

import (
	"sort"
	"strings"
	"unicode"

	"github.com/erp/crm/internal/domain/shared"
	"gorm.io/gorm/schema"
)

// Record is implemented by every generated entity pointer
type Record interface {
	schema.Tabler
	Base() *shared.TenantEntity
}

// Descriptor describes one catalog entity and the table it maps to
type Descriptor struct {
	Name         string
	Table        string
	Description  string
	Columns      []string
	SearchFields []string
	SortFields   []string
	New          func() Record
}

// HasColumn reports whether column is declared by the entity or its shared base
func (d Descriptor) HasColumn(column string) bool {
	if _, ok := baseColumns[column]; ok {
		return true
	}
	for _, c := range d.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// baseColumns are the columns contributed by shared.TenantEntity
var baseColumns = map[string]struct{}{
	"id":         {},
	"tenant_id":  {},
	"created_by": {},
	"version":    {},
	"created_at": {},
	"updated_at": {},
}

// BaseColumns returns the shared column names in declaration order
func BaseColumns() []string {
	return []string{"id", "tenant_id", "created_by", "version", "created_at", "updated_at"}
}

var (
	byName  = make(map[string]Descriptor, len(descriptors))
	byTable = make(map[string]Descriptor, len(descriptors))
)

func init() {
	for _, d := range descriptors {
		if _, dup := byName[d.Name]; dup {
			panic("crm: duplicate entity " + d.Name)
		}
		if _, dup := byTable[d.Table]; dup {
			panic("crm: duplicate table " + d.Table)
		}
		byName[d.Name] = d
		byTable[d.Table] = d
	}
}

// All returns every descriptor sorted by entity name
func All() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns every entity name sorted
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, d := range all {
		names[i] = d.Name
	}
	return names
}

// Lookup finds a descriptor by entity name
func Lookup(name string) (Descriptor, bool) {
	d, ok := byName[name]
	return d, ok
}

// LookupTable finds a descriptor by table name
func LookupTable(table string) (Descriptor, bool) {
	d, ok := byTable[table]
	return d, ok
}

// Resolve accepts an entity name or table name, as used in URL paths
func Resolve(s string) (Descriptor, error) {
	if d, ok := byTable[s]; ok {
		return d, nil
	}
	if d, ok := byName[s]; ok {
		return d, nil
	}
	if d, ok := byTable[strings.ToLower(s)]; ok {
		return d, nil
	}
	return Descriptor{}, shared.NewDomainError("UNKNOWN_ENTITY", "Unknown entity: "+s)
}

// TableNameFor derives the table name of an entity: the snake_case name
// with its last word pluralised. Data and Media are uncountable.
func TableNameFor(name string) string {
	words := strings.Split(SnakeCase(name), "_")
	words[len(words)-1] = pluralize(words[len(words)-1])
	return strings.Join(words, "_")
}

// SnakeCase converts a Go identifier to snake_case, keeping initialisms
// such as ID or URL together.
func SnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func pluralize(w string) string {
	switch w {
	case "data", "media":
		return w
	}
	if strings.HasSuffix(w, "y") && len(w) > 1 && !strings.ContainsRune("aeiou", rune(w[len(w)-2])) {
		return w[:len(w)-1] + "ies"
	}
	for _, suffix := range []string{"s", "x", "ch", "sh"} {
		if strings.HasSuffix(w, suffix) {
			return w + "es"
		}
	}
	return w + "s"
}
