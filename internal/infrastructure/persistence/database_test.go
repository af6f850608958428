package persistence

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/domain/shared"
	"github.com/erp/crm/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestNewDatabase_SQLiteMemory(t *testing.T) {
	db := newTestDatabase(t, nil)

	assert.Equal(t, config.DriverSQLite, db.Driver)
	require.NoError(t, db.Ping())

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
}

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	_, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestAutoMigrate_CreatesEveryTable(t *testing.T) {
	db := newTestDatabase(t, nil)

	for _, d := range crm.All() {
		assert.True(t, db.DB.Migrator().HasTable(d.Table), d.Table)
	}
}

func TestDatabase_Transaction(t *testing.T) {
	db := newTestDatabase(t, nil)
	tenantID := uuid.New()

	t.Run("rolls back on error", func(t *testing.T) {
		err := db.Transaction(func(tx *gorm.DB) error {
			tag := &crm.Tag{TenantEntity: shared.NewTenantEntity(tenantID), Name: "vip"}
			require.NoError(t, tx.Create(tag).Error)
			return errors.New("abort")
		})
		require.Error(t, err)

		var count int64
		require.NoError(t, db.DB.Model(&crm.Tag{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("commits on success", func(t *testing.T) {
		err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&crm.Tag{TenantEntity: shared.NewTenantEntity(tenantID), Name: "vip"}).Error
		})
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.DB.Model(&crm.Tag{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestDatabase_Ping(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectPing()
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{})
	require.NoError(t, err)

	db := &Database{DB: gormDB, Driver: config.DriverPostgres}
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, db.Ping())
}
