package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/erp/crm/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestProfiling_LabelsRequestContext(t *testing.T) {
	router := gin.New()
	router.Use(Profiling(true))

	var labels map[string]string
	capture := func(c *gin.Context) {
		labels = map[string]string{}
		pprof.ForLabels(c.Request.Context(), func(key, value string) bool {
			labels[key] = value
			return true
		})
		c.Status(http.StatusOK)
	}
	router.DELETE("/api/v1/crm/:entity/:id", capture)
	router.GET("/health", capture)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/crm/tasks/42", nil))
	assert.Equal(t, "/api/v1/crm/:entity/:id", labels[telemetry.ProfilingLabelRoute])
	assert.Equal(t, "tasks", labels[telemetry.ProfilingLabelEntity])
	assert.Equal(t, "delete", labels[telemetry.ProfilingLabelOperation])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, labels)
}

func TestProfiling_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(Profiling(false))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
