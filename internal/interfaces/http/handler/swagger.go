package handler

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/erp/crm/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/swaggo/swag/v2"
)

// SwaggerInstance is the swag registry name of the catalog document
const SwaggerInstance = swag.Name

// OpenAPIDoc is a Swagger 2.0 document describing the generic CRUD routes of
// every catalog entity. It is rendered once from the catalog.
type OpenAPIDoc struct {
	doc string
}

// NewOpenAPIDoc renders the document for routes mounted under basePath
func NewOpenAPIDoc(title, version, basePath string) (*OpenAPIDoc, error) {
	spec := map[string]any{
		"swagger": "2.0",
		"info": map[string]any{
			"title":       title,
			"version":     version,
			"description": "Generic CRUD over the CRM entity catalog",
		},
		"basePath": basePath,
		"securityDefinitions": map[string]any{
			"BearerAuth": map[string]any{
				"type": "apiKey",
				"in":   "header",
				"name": "Authorization",
			},
		},
		"security":    []any{map[string]any{"BearerAuth": []string{}}},
		"paths":       catalogPaths(),
		"definitions": catalogDefinitions(),
	}
	raw, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}
	return &OpenAPIDoc{doc: string(raw)}, nil
}

// ReadDoc implements swag.Swagger
func (d *OpenAPIDoc) ReadDoc() string {
	return d.doc
}

// RegisterOpenAPIDoc renders the document and registers it with swag so
// gin-swagger serves it as doc.json
func RegisterOpenAPIDoc(title, version, basePath string) error {
	doc, err := NewOpenAPIDoc(title, version, basePath)
	if err != nil {
		return err
	}
	swag.Register(SwaggerInstance, doc)
	return nil
}

func catalogPaths() map[string]any {
	paths := map[string]any{
		"/crm/entities": map[string]any{
			"get": operation("List the entity catalog", "catalog", nil, nil),
		},
		"/crm/entities/{entity}": map[string]any{
			"get": operation("Describe one catalog entity", "catalog", []any{pathParam("entity", "string")}, nil),
		},
		"/crm/talk_messages/{id}/attachment-url": map[string]any{
			"get": operation("Presigned download URL of a message attachment", "attachments",
				[]any{pathParam("id", "string")}, nil),
			"post": operation("Presigned upload URL for a message attachment", "attachments",
				[]any{pathParam("id", "string"), bodyParam("#/definitions/AttachmentUploadRequest")}, nil),
		},
	}

	for _, d := range crm.All() {
		ref := "#/definitions/" + d.Name
		idParam := pathParam("id", "string")
		paths["/crm/"+d.Table] = map[string]any{
			"get":  operation("List "+d.Table, d.Table, listParams(), schemaRef(ref, true)),
			"post": operation("Create a "+d.Name, d.Table, []any{bodyParam(ref)}, schemaRef(ref, false)),
		}
		versionParam := map[string]any{"name": "version", "in": "query", "type": "integer", "description": "Expected version, or send If-Match"}
		paths["/crm/"+d.Table+"/{id}"] = map[string]any{
			"get":    operation("Get a "+d.Name, d.Table, []any{idParam}, schemaRef(ref, false)),
			"put":    operation("Update a "+d.Name, d.Table, []any{idParam, versionParam, bodyParam(ref)}, schemaRef(ref, false)),
			"delete": operation("Delete a "+d.Name, d.Table, []any{idParam}, nil),
		}
	}
	return paths
}

func operation(summary, tag string, params []any, schema map[string]any) map[string]any {
	ok := map[string]any{"description": "OK"}
	if schema != nil {
		ok["schema"] = schema
	}
	op := map[string]any{
		"summary":   summary,
		"tags":      []string{tag},
		"produces":  []string{"application/json"},
		"responses": map[string]any{"200": ok},
	}
	if len(params) > 0 {
		op["parameters"] = params
	}
	return op
}

func pathParam(name, typ string) map[string]any {
	return map[string]any{"name": name, "in": "path", "required": true, "type": typ}
}

func bodyParam(ref string) map[string]any {
	return map[string]any{"name": "body", "in": "body", "required": true, "schema": map[string]any{"$ref": ref}}
}

func listParams() []any {
	return []any{
		map[string]any{"name": "page", "in": "query", "type": "integer"},
		map[string]any{"name": "page_size", "in": "query", "type": "integer", "maximum": 100},
		map[string]any{"name": "order_by", "in": "query", "type": "string"},
		map[string]any{"name": "order_dir", "in": "query", "type": "string", "enum": []string{"asc", "desc"}},
		map[string]any{"name": "search", "in": "query", "type": "string"},
	}
}

func schemaRef(ref string, list bool) map[string]any {
	data := map[string]any{"$ref": ref}
	if list {
		data = map[string]any{"type": "array", "items": data}
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"success": map[string]any{"type": "boolean"},
			"data":    data,
		},
	}
}

func catalogDefinitions() map[string]any {
	defs := map[string]any{
		"AttachmentUploadRequest": map[string]any{
			"type":     "object",
			"required": []string{"file_name", "content_type", "file_size"},
			"properties": map[string]any{
				"file_name":    map[string]any{"type": "string"},
				"content_type": map[string]any{"type": "string"},
				"file_size":    map[string]any{"type": "integer"},
			},
		},
	}
	for _, d := range crm.All() {
		props := make(map[string]any)
		var required []string
		collectProperties(reflect.TypeOf(d.New()).Elem(), props, &required)
		def := map[string]any{
			"type":        "object",
			"description": d.Description,
			"properties":  props,
		}
		if len(required) > 0 {
			def["required"] = required
		}
		defs[d.Name] = def
	}
	return defs
}

var (
	uuidType    = reflect.TypeOf(uuid.UUID{})
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

func collectProperties(t reflect.Type, props map[string]any, required *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			collectProperties(f.Type, props, required)
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		props[name] = propertySchema(f.Type)
		if strings.Contains(f.Tag.Get("validate"), "required") {
			*required = append(*required, name)
		}
	}
}

func propertySchema(t reflect.Type) map[string]any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch {
	case t == uuidType:
		return map[string]any{"type": "string", "format": "uuid"}
	case t == timeType:
		return map[string]any{"type": "string", "format": "date-time"}
	case t == decimalType:
		return map[string]any{"type": "string", "format": "decimal"}
	}
	switch t.Kind() {
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	default:
		return map[string]any{"type": "string"}
	}
}
