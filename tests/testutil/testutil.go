// Package testutil provides helpers shared by the CRM integration tests.
package testutil

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestUUID generates a deterministic UUID from seed.
func NewTestUUID(seed string) uuid.UUID {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	return uuid.NewSHA1(namespace, []byte(seed))
}

// TestTenantID returns a standard tenant ID for tests.
func TestTenantID() uuid.UUID {
	return NewTestUUID("test-tenant")
}

// TestUserID returns a standard user ID for tests.
func TestUserID() uuid.UUID {
	return NewTestUUID("test-user")
}

// NewLogger returns a logger writing to the test output at info level.
func NewLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel))
}

// TenantHeaders identifies a caller when JWT authentication is disabled.
func TenantHeaders(tenantID, userID uuid.UUID) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("X-Tenant-ID", tenantID.String())
	h.Set("X-User-ID", userID.String())
	return h
}

// IfMatch formats a weak ETag for version.
func IfMatch(version int) string {
	return fmt.Sprintf(`W/"%d"`, version)
}

// WaitForCondition polls condition until it holds or timeout passes.
func WaitForCondition(t *testing.T, condition func() bool, timeout, interval time.Duration) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(interval)
	}
	return condition()
}
