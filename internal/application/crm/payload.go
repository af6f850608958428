package crm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProtectedFields are maintained by the service and rejected in payloads
var ProtectedFields = []string{"id", "tenant_id", "version", "created_at", "updated_at", "created_by"}

// serviceManagedFields are columns of one entity that only a dedicated
// service writes, such as the attachment of a talk message
var serviceManagedFields = map[string][]string{
	"TalkMessage": {"attachment_key", "attachment_name", "attachment_type"},
}

// protectedFieldFor returns the protected column that key names, or "" when key
// may be set. Matching folds case the way encoding/json does.
func protectedFieldFor(d crm.Descriptor, key string) string {
	for _, f := range ProtectedFields {
		if strings.EqualFold(key, f) {
			return f
		}
	}
	for _, f := range serviceManagedFields[d.Name] {
		if strings.EqualFold(key, f) {
			return f
		}
	}
	return ""
}

func invalidInput(msg string) error {
	return shared.NewDomainError(shared.ErrInvalidInput.Code, msg)
}

// decodePayload applies a JSON object onto rec. Keys missing from the
// payload leave rec untouched, so decoding onto a loaded record merges.
func decodePayload(d crm.Descriptor, payload json.RawMessage, rec crm.Record) error {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		return invalidInput("Request body is required")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil || fields == nil {
		return invalidInput("Request body must be a JSON object")
	}
	var rejected []string
	for key := range fields {
		if f := protectedFieldFor(d, key); f != "" {
			rejected = append(rejected, f)
		}
	}
	if len(rejected) > 0 {
		sort.Strings(rejected)
		rejected = slices.Compact(rejected)
		return invalidInput("Fields cannot be set by clients: " + strings.Join(rejected, ", "))
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(rec); err != nil {
		return decodeError(d, err)
	}
	return nil
}

func decodeError(d crm.Descriptor, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return invalidInput(fmt.Sprintf("Field %s of %s must be %s", typeErr.Field, d.Name, typeErr.Type.String()))
	}
	if msg := err.Error(); strings.HasPrefix(msg, "json: unknown field ") {
		return invalidInput(fmt.Sprintf("Unknown field for %s: %s", d.Name, strings.TrimPrefix(msg, "json: unknown field ")))
	}
	return invalidInput(fmt.Sprintf("Invalid %s payload: %v", d.Name, err))
}

var (
	uuidType    = reflect.TypeOf(uuid.UUID{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
	timeType    = reflect.TypeOf(time.Time{})
)

// columnTypes caches the Go type of every column per entity
var columnTypes sync.Map // entity name -> map[string]reflect.Type

func columnTypesOf(d crm.Descriptor) map[string]reflect.Type {
	if cached, ok := columnTypes.Load(d.Name); ok {
		return cached.(map[string]reflect.Type)
	}
	types := make(map[string]reflect.Type)
	collectColumns(reflect.TypeOf(d.New()).Elem(), types)
	columnTypes.Store(d.Name, types)
	return types
}

func collectColumns(t reflect.Type, out map[string]reflect.Type) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			collectColumns(f.Type, out)
			continue
		}
		for _, part := range strings.Split(f.Tag.Get("gorm"), ";") {
			if col, ok := strings.CutPrefix(part, "column:"); ok {
				out[col] = f.Type
			}
		}
	}
}

// coerceFilters converts query-string filter values to the Go type of their
// column. "null" on a nullable column filters for IS NULL.
func coerceFilters(d crm.Descriptor, filters map[string]any) (map[string]any, error) {
	if len(filters) == 0 {
		return filters, nil
	}
	types := columnTypesOf(d)
	out := make(map[string]any, len(filters))
	for key, raw := range filters {
		typ, ok := types[key]
		if !ok || key == "tenant_id" {
			return nil, invalidInput("Unknown filter field for " + d.Name + ": " + key)
		}
		s, isString := raw.(string)
		if !isString {
			out[key] = raw
			continue
		}
		v, err := coerceValue(typ, s)
		if err != nil {
			return nil, invalidInput(fmt.Sprintf("Invalid value for filter %s: %v", key, err))
		}
		out[key] = v
	}
	return out, nil
}

func coerceValue(typ reflect.Type, s string) (any, error) {
	if typ.Kind() == reflect.Ptr {
		if s == "null" {
			return nil, nil
		}
		typ = typ.Elem()
	}
	switch typ {
	case uuidType:
		return uuid.Parse(s)
	case decimalType:
		return decimal.NewFromString(s)
	case timeType:
		return parseTime(s)
	}
	switch typ.Kind() {
	case reflect.String:
		return s, nil
	case reflect.Bool:
		return strconv.ParseBool(s)
	case reflect.Int, reflect.Int32, reflect.Int64:
		return strconv.Atoi(s)
	default:
		return nil, fmt.Errorf("unsupported column type %s", typ)
	}
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errors.New("expected RFC 3339 timestamp or YYYY-MM-DD date")
	}
	return t, nil
}
