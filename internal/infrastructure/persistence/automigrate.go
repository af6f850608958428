package persistence

import (
	"fmt"

	"github.com/erp/crm/internal/domain/crm"
	"gorm.io/gorm"
)

// AutoMigrate creates or alters the table of every catalog entity
func AutoMigrate(db *gorm.DB) error {
	all := crm.All()
	models := make([]any, len(all))
	for i, d := range all {
		models[i] = d.New()
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate catalog: %w", err)
	}
	return nil
}
