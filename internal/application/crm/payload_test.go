package crm

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnTypesOf(t *testing.T) {
	for _, d := range crm.All() {
		types := columnTypesOf(d)
		for _, col := range crm.BaseColumns() {
			assert.Contains(t, types, col, d.Name)
		}
		for _, col := range d.Columns {
			assert.Contains(t, types, col, d.Name)
		}
		assert.Len(t, types, len(crm.BaseColumns())+len(d.Columns), d.Name)
	}
}

func TestCoerceValue(t *testing.T) {
	id := uuid.New()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		typ   reflect.Type
		input string
		want  any
	}{
		{"string", reflect.TypeOf(""), "open", "open"},
		{"bool", reflect.TypeOf(true), "true", true},
		{"int", reflect.TypeOf(0), "42", 42},
		{"uuid", uuidType, id.String(), id},
		{"nullable uuid", reflect.TypeOf(&id), id.String(), id},
		{"null", reflect.TypeOf(&id), "null", nil},
		{"decimal", decimalType, "12.50", decimal.RequireFromString("12.50")},
		{"date", timeType, "2024-03-01", day},
		{"timestamp", timeType, "2024-03-01T00:00:00Z", day},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerceValue(tt.typ, tt.input)
			require.NoError(t, err)
			if want, ok := tt.want.(decimal.Decimal); ok {
				assert.True(t, want.Equal(got.(decimal.Decimal)))
				return
			}
			if want, ok := tt.want.(time.Time); ok {
				assert.True(t, want.Equal(got.(time.Time)))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := coerceValue(reflect.TypeOf(0), "1.5")
	assert.Error(t, err)
	_, err = coerceValue(timeType, "March 1st")
	assert.Error(t, err)
}

func TestDecodePayload_Merges(t *testing.T) {
	d, ok := crm.Lookup("Deal")
	require.True(t, ok)

	deal := &crm.Deal{Title: "Renewal", Probability: 20, Status: "open"}
	deal.TenantEntity = shared.NewTenantEntity(uuid.New())

	require.NoError(t, decodePayload(d, json.RawMessage(`{"probability":80,"amount":"1500.25"}`), deal))
	assert.Equal(t, "Renewal", deal.Title)
	assert.Equal(t, 80, deal.Probability)
	assert.True(t, decimal.RequireFromString("1500.25").Equal(deal.Amount))
	assert.Equal(t, 1, deal.Version)
}

func TestDecodePayload_ReportsProtectedFields(t *testing.T) {
	d, ok := crm.Lookup("Tag")
	require.True(t, ok)

	err := decodePayload(d, json.RawMessage(`{"version":2,"id":"x","name":"a"}`), &crm.Tag{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id, version")
}
