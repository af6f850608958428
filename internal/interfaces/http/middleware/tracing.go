// Package middleware provides the gin middleware chain of the CRM API.
package middleware

import (
	"net/http"

	"github.com/erp/crm/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// EntityParam is the route parameter naming the catalog entity
const EntityParam = "entity"

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "crm",
		Enabled:     true,
	}
}

// TracingWithConfig returns the otelgin server middleware.
// Span names follow "METHOD route" (e.g. "GET /api/v1/crm/:entity/:id").
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return passThrough
	}
	return otelgin.Middleware(cfg.ServiceName)
}

func enrichSpan(c *gin.Context, span trace.Span) {
	if requestID := c.GetString(RequestIDKey); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}
	if tenantID := traceTenantID(c); tenantID != "" {
		span.SetAttributes(attribute.String(telemetry.SpanAttrTenantID, tenantID))
	}
	if userID := GetJWTUserID(c); userID != "" {
		span.SetAttributes(attribute.String("user_id", userID))
	}
	if entity := c.Param(EntityParam); entity != "" {
		span.SetAttributes(attribute.String(telemetry.SpanAttrEntity, entity))
	}
}

// traceTenantID prefers the JWT claim and accepts the header only when it parses as a UUID
func traceTenantID(c *gin.Context) string {
	if id := GetJWTTenantID(c); id != "" {
		return id
	}
	if header := c.GetHeader("X-Tenant-ID"); header != "" {
		if _, err := uuid.Parse(header); err == nil {
			return header
		}
	}
	return ""
}

// SpanEnricher runs inside the otelgin span. Once the handlers returned it
// adds request_id, tenant_id, user_id and crm.entity, and marks 4xx and 5xx
// responses as failed.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		enrichSpan(c, span)

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}
		message := http.StatusText(status)
		if status >= http.StatusInternalServerError {
			message = "Internal Server Error"
		}
		span.SetStatus(codes.Error, message)
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
}
