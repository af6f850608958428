// Package codegen renders the generated half of the CRM entity catalog:
// one row-shape struct per entity plus the descriptor list the persistence
// layer resolves entities from.
package codegen

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/erp/crm/internal/domain/crm"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Field types understood by the renderer
const (
	TypeString   = "string"
	TypeText     = "text"
	TypeBool     = "bool"
	TypeInt      = "int"
	TypeDecimal  = "decimal"
	TypeRef      = "ref"
	TypeRefOpt   = "ref?"
	TypeUUIDOpt  = "uuid?"
	TypeTime     = "time"
	TypeTimeOpt  = "time?"
	TypeDate     = "date"
	TypeDateOpt  = "date?"
	reservedBase = "TenantEntity"
)

var goTypes = map[string]string{
	TypeString:  "string",
	TypeText:    "string",
	TypeBool:    "bool",
	TypeInt:     "int",
	TypeDecimal: "decimal.Decimal",
	TypeRef:     "uuid.UUID",
	TypeRefOpt:  "*uuid.UUID",
	TypeUUIDOpt: "*uuid.UUID",
	TypeTime:    "time.Time",
	TypeTimeOpt: "*time.Time",
	TypeDate:    "time.Time",
	TypeDateOpt: "*time.Time",
}

// Catalog is the parsed catalog.yaml
type Catalog struct {
	Entities []Entity `yaml:"entities"`
}

// Entity is one catalog entry
type Entity struct {
	Name        string  `yaml:"name"`
	Table       string  `yaml:"table"`
	Description string  `yaml:"description"`
	Fields      []Field `yaml:"fields"`
}

// Field is one column of an entity
type Field struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Size     int    `yaml:"size"`
	Ref      string `yaml:"ref"`
	Required bool   `yaml:"required"`
	Index    bool   `yaml:"index"`
	Search   bool   `yaml:"search"`
	Sort     bool   `yaml:"sort"`
	Validate string `yaml:"validate"`
}

// Default parses the catalog embedded in the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads and parses a catalog file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks names, tables, field types and references
func (c *Catalog) Validate() error {
	if len(c.Entities) == 0 {
		return fmt.Errorf("catalog has no entities")
	}

	names := make(map[string]bool, len(c.Entities))
	tables := make(map[string]string, len(c.Entities))
	for _, e := range c.Entities {
		if e.Name == "" {
			return fmt.Errorf("entity without name")
		}
		if names[e.Name] {
			return fmt.Errorf("duplicate entity %s", e.Name)
		}
		names[e.Name] = true

		if want := crm.TableNameFor(e.Name); e.Table != want {
			return fmt.Errorf("entity %s: table %q does not follow naming rule, want %q", e.Name, e.Table, want)
		}
		if other, dup := tables[e.Table]; dup {
			return fmt.Errorf("entity %s: table %s already used by %s", e.Name, e.Table, other)
		}
		tables[e.Table] = e.Name
	}

	for _, e := range c.Entities {
		if err := e.validate(names); err != nil {
			return err
		}
	}
	return nil
}

func (e Entity) validate(names map[string]bool) error {
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("entity %s: description is required", e.Name)
	}
	if len(e.Fields) == 0 {
		return fmt.Errorf("entity %s: no fields", e.Name)
	}

	base := make(map[string]bool)
	for _, col := range crm.BaseColumns() {
		base[col] = true
	}

	seen := make(map[string]bool, len(e.Fields))
	for _, f := range e.Fields {
		if f.Name == "" || f.Name == reservedBase {
			return fmt.Errorf("entity %s: invalid field name %q", e.Name, f.Name)
		}
		col := f.Column()
		if seen[col] || base[col] {
			return fmt.Errorf("entity %s: duplicate column %s", e.Name, col)
		}
		seen[col] = true

		if _, ok := goTypes[f.Type]; !ok {
			return fmt.Errorf("entity %s: field %s has unknown type %q", e.Name, f.Name, f.Type)
		}
		if f.Type == TypeString && f.Size <= 0 {
			return fmt.Errorf("entity %s: string field %s needs a size", e.Name, f.Name)
		}
		if f.Type == TypeRef || f.Type == TypeRefOpt {
			if !names[f.Ref] {
				return fmt.Errorf("entity %s: field %s references unknown entity %q", e.Name, f.Name, f.Ref)
			}
		} else if f.Ref != "" {
			return fmt.Errorf("entity %s: field %s of type %s cannot declare a reference", e.Name, f.Name, f.Type)
		}
		if f.Search && f.Type != TypeString && f.Type != TypeText {
			return fmt.Errorf("entity %s: search field %s must be textual", e.Name, f.Name)
		}
	}
	return nil
}

// Column returns the snake_case column name of the field
func (f Field) Column() string {
	return crm.SnakeCase(f.Name)
}

// GoType returns the Go type the field is rendered with
func (f Field) GoType() string {
	return goTypes[f.Type]
}

// Nullable reports whether the column is rendered as a pointer
func (f Field) Nullable() bool {
	return strings.HasSuffix(f.Type, "?")
}

// Tag renders the struct tag of the field, without backquotes
func (f Field) Tag() string {
	col := f.Column()

	gormParts := []string{"column:" + col}
	switch f.Type {
	case TypeString:
		gormParts = append(gormParts, fmt.Sprintf("type:varchar(%d)", f.Size))
	case TypeText:
		gormParts = append(gormParts, "type:text")
	case TypeDecimal:
		gormParts = append(gormParts, "type:decimal(18,4)")
	case TypeRef, TypeRefOpt, TypeUUIDOpt:
		gormParts = append(gormParts, "type:uuid")
	case TypeDate, TypeDateOpt:
		gormParts = append(gormParts, "type:date")
	}
	if !f.Nullable() {
		gormParts = append(gormParts, "not null")
	}
	if f.Indexed() {
		gormParts = append(gormParts, "index")
	}

	jsonName := col
	if f.Nullable() {
		jsonName += ",omitempty"
	}

	var rules []string
	switch {
	case f.Required || f.Type == TypeRef:
		rules = append(rules, "required")
	case f.Type == TypeString || f.Type == TypeText || f.Nullable():
		rules = append(rules, "omitempty")
	}
	if f.Type == TypeString {
		rules = append(rules, fmt.Sprintf("max=%d", f.Size))
	}
	if f.Validate != "" {
		rules = append(rules, f.Validate)
	}
	if len(rules) == 1 && rules[0] == "omitempty" {
		rules = nil
	}

	tag := fmt.Sprintf(`gorm:"%s" json:"%s"`, strings.Join(gormParts, ";"), jsonName)
	if len(rules) > 0 {
		tag += fmt.Sprintf(` validate:"%s"`, strings.Join(rules, ","))
	}
	return tag
}

// Columns returns the column names of the entity in declaration order
func (e Entity) Columns() []string {
	cols := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		cols[i] = f.Column()
	}
	return cols
}

// SearchColumns returns the columns flagged for free-text search
func (e Entity) SearchColumns() []string {
	var cols []string
	for _, f := range e.Fields {
		if f.Search {
			cols = append(cols, f.Column())
		}
	}
	return cols
}

// SortColumns returns the columns flagged as sortable
func (e Entity) SortColumns() []string {
	var cols []string
	for _, f := range e.Fields {
		if f.Sort {
			cols = append(cols, f.Column())
		}
	}
	return cols
}
