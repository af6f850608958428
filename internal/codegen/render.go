package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strconv"
	"strings"
	"text/template"
)

// Header marks every rendered file
const Header = "// Code generated by crmgen. DO NOT EDIT."

// Generated file names, relative to the crm package directory
const (
	EntitiesFile = "entities_gen.go"
	CatalogFile  = "catalog_gen.go"
)

var funcs = template.FuncMap{
	"quote":   strconv.Quote,
	"strlist": stringList,
}

var entitiesTmpl = template.Must(template.New(EntitiesFile).Funcs(funcs).Parse(`{{.Header}}

package crm

{{.ImportBlock}}
{{range .Entities}}
// {{.Name}} maps the {{.Table}} table. {{.Description}}
type {{.Name}} struct {
	shared.TenantEntity
{{range .Fields}}
	{{.Name}} {{.GoType}} ` + "`{{.Tag}}`" + `
{{- end}}
}

// TableName returns the table backing {{.Name}}.
func ({{.Name}}) TableName() string { return {{quote .Table}} }
{{end}}`))

var catalogTmpl = template.Must(template.New(CatalogFile).Funcs(funcs).Parse(`{{.Header}}

package crm

var descriptors = []Descriptor{
{{- range .Entities}}
	{
		Name: {{quote .Name}},
		Table: {{quote .Table}},
		Description: {{quote .Description}},
		Columns: {{strlist .Columns}},
{{- with .SearchColumns}}
		SearchFields: {{strlist .}},
{{- end}}
{{- with .SortColumns}}
		SortFields: {{strlist .}},
{{- end}}
		New: func() Record { return &{{.Name}}{} },
	},
{{- end}}
}
`))

type templateData struct {
	Header      string
	ImportBlock string
	Entities    []Entity
}

// Render produces the gofmt-ed generated files keyed by file name.
// Entities are emitted sorted by name so output is deterministic.
func Render(c *Catalog) (map[string][]byte, error) {
	entities := make([]Entity, len(c.Entities))
	copy(entities, c.Entities)
	sort.Slice(entities, func(i, j int) bool { return entities[i].Name < entities[j].Name })

	data := templateData{
		Header:      Header,
		ImportBlock: importBlock(imports(entities)),
		Entities:    entities,
	}

	out := make(map[string][]byte, 2)
	for name, tmpl := range map[string]*template.Template{
		EntitiesFile: entitiesTmpl,
		CatalogFile:  catalogTmpl,
	} {
		src, err := execute(tmpl, data)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		out[name] = src
	}
	return out, nil
}

func execute(tmpl *template.Template, data templateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	return formatted, nil
}

// imports returns the standard library and third-party imports the
// entity file needs, each sorted.
func imports(entities []Entity) (std, third []string) {
	need := map[string]bool{"github.com/erp/crm/internal/domain/shared": true}
	for _, e := range entities {
		for _, f := range e.Fields {
			goType := f.GoType()
			switch {
			case strings.Contains(goType, "time."):
				need["time"] = true
			case strings.Contains(goType, "uuid."):
				need["github.com/google/uuid"] = true
			case strings.Contains(goType, "decimal."):
				need["github.com/shopspring/decimal"] = true
			}
		}
	}
	for path := range need {
		if strings.Contains(path, ".") {
			third = append(third, path)
		} else {
			std = append(std, path)
		}
	}
	sort.Strings(std)
	sort.Strings(third)
	return std, third
}

func importBlock(std, third []string) string {
	var b strings.Builder
	b.WriteString("import (\n")
	for _, p := range std {
		fmt.Fprintf(&b, "\t%q\n", p)
	}
	if len(std) > 0 && len(third) > 0 {
		b.WriteString("\n")
	}
	for _, p := range third {
		fmt.Fprintf(&b, "\t%q\n", p)
	}
	b.WriteString(")")
	return b.String()
}

func stringList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}
