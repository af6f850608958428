package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openGorm(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := openGorm(t).DB()
	require.NoError(t, err)
	return sqlDB
}

type tracedNote struct {
	ID   uint
	Body string
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	db := openGorm(t)
	p := NewDBTracingPlugin(DBTracingConfig{}, zaptest.NewLogger(t))
	assert.Equal(t, "crm:db_tracing", p.Name())
	require.NoError(t, db.Use(p))
	assert.Nil(t, db.Callback().Query().Get("crm_timing:after_query"))
}

func TestDBTracingPlugin_RecordsStatementSpans(t *testing.T) {
	recorder := installRecorder(t)
	db := openGorm(t)

	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.DBSystem = "sqlite"
	require.NoError(t, db.Use(NewDBTracingPlugin(cfg, zaptest.NewLogger(t))))
	assert.NotNil(t, db.Callback().Query().Get("crm_timing:after_query"))

	require.NoError(t, db.AutoMigrate(&tracedNote{}))
	ctx, span := StartSpan(context.Background(), "test.root")
	require.NoError(t, db.WithContext(ctx).Create(&tracedNote{Body: "hello"}).Error)
	var notes []tracedNote
	require.NoError(t, db.WithContext(ctx).Find(&notes).Error)
	span.End()

	assert.Len(t, notes, 1)
	var children int
	for _, s := range recorder.Ended() {
		if s.Parent().SpanID() == span.SpanContext().SpanID() {
			children++
		}
	}
	assert.GreaterOrEqual(t, children, 2)
}

func TestDBTracingPlugin_Annotate(t *testing.T) {
	recorder := installRecorder(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true, SlowQueryThresh: time.Millisecond}, zaptest.NewLogger(t))

	ctx, span := StartSpan(context.Background(), "statement")
	ctx = context.WithValue(ctx, queryStartTimeKey, time.Now().Add(-time.Second))
	db := &gorm.DB{
		Statement: &gorm.Statement{Context: ctx, Table: "crm_tags", DB: &gorm.DB{RowsAffected: 2}},
		Error:     errors.New("constraint failed"),
	}
	p.annotate(db)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	got := ended[0]
	attrs := attrMap(got.Attributes())
	assert.Equal(t, "crm_tags", attrs["db.sql.table"])
	assert.Equal(t, "2", attrs["db.rows_affected"])
	assert.Equal(t, "true", attrs["db.slow_query"])
	assert.Equal(t, codes.Error, got.Status().Code)

	var names []string
	for _, e := range got.Events() {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "slow_query_warning")
}

func TestDBTracingPlugin_AnnotateIgnoresNotFound(t *testing.T) {
	recorder := installRecorder(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zaptest.NewLogger(t))

	ctx, span := StartSpan(context.Background(), "statement")
	p.annotate(&gorm.DB{Statement: &gorm.Statement{DB: &gorm.DB{}, Context: ctx}, Error: gorm.ErrRecordNotFound})
	span.End()

	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, codes.Unset, recorder.Ended()[0].Status().Code)
}
