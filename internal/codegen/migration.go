package codegen

import (
	"fmt"
	"sort"
	"strings"
)

// Generated migration names, relative to the migrations directory
const (
	MigrationUpFile   = "000001_create_crm_catalog.up.sql"
	MigrationDownFile = "000001_create_crm_catalog.down.sql"
)

var baseColumnsDDL = []string{
	"id UUID PRIMARY KEY",
	"tenant_id UUID NOT NULL",
	"created_by UUID",
	"version INTEGER NOT NULL DEFAULT 1",
	"created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()",
	"updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()",
}

// SQLType returns the PostgreSQL column type of the field
func (f Field) SQLType() string {
	switch f.Type {
	case TypeString:
		return fmt.Sprintf("VARCHAR(%d)", f.Size)
	case TypeText:
		return "TEXT"
	case TypeBool:
		return "BOOLEAN"
	case TypeInt:
		return "BIGINT"
	case TypeDecimal:
		return "NUMERIC(18,4)"
	case TypeRef, TypeRefOpt, TypeUUIDOpt:
		return "UUID"
	case TypeTime, TypeTimeOpt:
		return "TIMESTAMPTZ"
	case TypeDate, TypeDateOpt:
		return "DATE"
	default:
		return ""
	}
}

// Indexed reports whether the column gets a secondary index
func (f Field) Indexed() bool {
	return f.Type == TypeRef || f.Type == TypeRefOpt || f.Index
}

// RenderMigration produces the PostgreSQL up and down migration creating
// every catalog table, keyed by file name. Index names follow GORM's
// idx_<table>_<column> so AutoMigrate and the SQL migration agree.
func RenderMigration(c *Catalog) map[string][]byte {
	entities := make([]Entity, len(c.Entities))
	copy(entities, c.Entities)
	sort.Slice(entities, func(i, j int) bool { return entities[i].Name < entities[j].Name })

	var up strings.Builder
	up.WriteString("-- Code generated by crmgen. DO NOT EDIT.\n")
	for _, e := range entities {
		cols := append([]string{}, baseColumnsDDL...)
		indexes := []string{"tenant_id"}
		for _, f := range e.Fields {
			col := f.Column() + " " + f.SQLType()
			if !f.Nullable() {
				col += " NOT NULL"
			}
			cols = append(cols, col)
			if f.Indexed() {
				indexes = append(indexes, f.Column())
			}
		}

		fmt.Fprintf(&up, "\nCREATE TABLE IF NOT EXISTS %s (\n    %s\n);\n", e.Table, strings.Join(cols, ",\n    "))
		for _, col := range indexes {
			fmt.Fprintf(&up, "CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (%s);\n", e.Table, col, e.Table, col)
		}
	}

	var down strings.Builder
	down.WriteString("-- Code generated by crmgen. DO NOT EDIT.\n\n")
	for i := len(entities) - 1; i >= 0; i-- {
		fmt.Fprintf(&down, "DROP TABLE IF EXISTS %s;\n", entities[i].Table)
	}

	return map[string][]byte{
		MigrationUpFile:   []byte(up.String()),
		MigrationDownFile: []byte(down.String()),
	}
}
