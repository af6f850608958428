package middleware

import (
	"context"
	"strings"

	"github.com/erp/crm/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// profilingSkipPrefixes are routes that carry no profiling labels
var profilingSkipPrefixes = []string{"/health", "/ready", "/swagger"}

// Profiling tags the request goroutine with pyroscope labels for route,
// entity and operation so CPU profiles can be filtered per entity.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return passThrough
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range profilingSkipPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		telemetry.WithProfilingLabels(c.Request.Context(), profilingLabels(c), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func profilingLabels(c *gin.Context) map[string]string {
	labels := make(map[string]string, 3)
	if route := c.FullPath(); route != "" {
		labels[telemetry.ProfilingLabelRoute] = route
	}
	if entity := c.Param(EntityParam); entity != "" {
		labels[telemetry.ProfilingLabelEntity] = entity
	}
	labels[telemetry.ProfilingLabelOperation] = methodToAction(c.Request.Method)
	return labels
}
