package persistence

import (
	"strings"

	"github.com/erp/crm/internal/domain/crm"
)

// DefaultSortField orders listings newest first
const DefaultSortField = "created_at"

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains the sortable columns every catalog table shares
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"version":    true,
}

// SortFieldsFor returns the sortable columns of an entity
func SortFieldsFor(d crm.Descriptor) map[string]bool {
	allowed := make(map[string]bool, len(CommonSortFields)+len(d.SortFields))
	for f := range CommonSortFields {
		allowed[f] = true
	}
	for _, f := range d.SortFields {
		allowed[f] = true
	}
	return allowed
}
