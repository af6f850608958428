package persistence

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/infrastructure/config"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockGorm creates a postgres-dialect GORM DB over sqlmock
func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return gormDB, mock, mockDB
}

// newTestDatabase opens an in-memory sqlite database with the catalog
// migrated and the built-in rules attached.
func newTestDatabase(t *testing.T, reg *crm.HookRegistry) *Database {
	t.Helper()
	if reg == nil {
		reg = crm.NewHookRegistry()
		require.NoError(t, crm.RegisterBuiltinRules(reg))
	}

	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: ":memory:",
	}, WithPlugins(NewHookPlugin(reg)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, AutoMigrate(db.DB))
	return db
}

func mustDescriptor(t *testing.T, name string) crm.Descriptor {
	t.Helper()
	d, ok := crm.Lookup(name)
	require.True(t, ok, name)
	return d
}
