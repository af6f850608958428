package persistence

import (
	"testing"

	"github.com/erp/crm/internal/domain/crm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"desc returns DESC", "desc", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE deals;--", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	deal, ok := crm.Lookup("Deal")
	require.True(t, ok)
	allowed := SortFieldsFor(deal)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns default", "", DefaultSortField},
		{"entity sort field", "amount", "amount"},
		{"common sort field", "updated_at", "updated_at"},
		{"column that is not sortable", "pipeline_id", DefaultSortField},
		{"sql injection attempt returns default", "amount; DROP TABLE deals;--", DefaultSortField},
		{"case sensitive", "AMOUNT", DefaultSortField},
		{"whitespace around valid field", "  title  ", "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, allowed, DefaultSortField))
		})
	}
}

func TestSortFieldsFor_EveryEntity(t *testing.T) {
	for _, d := range crm.All() {
		allowed := SortFieldsFor(d)
		for f := range allowed {
			assert.True(t, d.HasColumn(f), "%s: sort field %s is not a column", d.Name, f)
		}
		assert.True(t, allowed[DefaultSortField], d.Name)
	}
}
