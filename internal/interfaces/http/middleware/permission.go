package middleware

import (
	"net/http"
	"strings"

	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	Logger *zap.Logger
	// OnDenied replaces the default 403 response
	OnDenied func(c *gin.Context, permission string)
}

// EntityPermission builds the "<table>:<action>" permission checked for entity routes
func EntityPermission(table, action string) string {
	return table + ":" + action
}

// RequireEntityPermission checks "<table>:<action>" for the entity named by
// the :entity route parameter, with the action derived from the HTTP method.
// Unknown entities pass through so the handler can answer 404.
func RequireEntityPermission(cfg PermissionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := crm.Resolve(c.Param(EntityParam))
		if err != nil {
			c.Next()
			return
		}
		checkPermission(c, cfg, EntityPermission(d.Table, methodToAction(c.Request.Method)))
	}
}

// RequireResourceAction checks a fixed resource:action permission
func RequireResourceAction(resource, action string, cfg PermissionConfig) gin.HandlerFunc {
	permission := EntityPermission(resource, action)
	return func(c *gin.Context) {
		checkPermission(c, cfg, permission)
	}
}

func checkPermission(c *gin.Context, cfg PermissionConfig, permission string) {
	claims := GetJWTClaims(c)
	if claims == nil {
		denyPermission(c, cfg, permission, "No authentication claims found")
		return
	}
	if !claims.HasPermission(permission) {
		denyPermission(c, cfg, permission, "User lacks required permission")
		return
	}

	if cfg.Logger != nil {
		cfg.Logger.Debug("Permission check passed",
			zap.String("user_id", claims.UserID),
			zap.String("permission", permission),
		)
	}
	c.Next()
}

// methodToAction converts HTTP method to permission action
func methodToAction(method string) string {
	switch strings.ToUpper(method) {
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

func denyPermission(c *gin.Context, cfg PermissionConfig, permission, reason string) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, permission)
		return
	}

	if cfg.Logger != nil {
		fields := []zap.Field{
			zap.String("reason", reason),
			zap.String("required_permission", permission),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		}
		if claims := GetJWTClaims(c); claims != nil {
			fields = append(fields, zap.String("user_id", claims.UserID))
		}
		cfg.Logger.Warn("Permission denied", fields...)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeForbidden,
		"Access denied: missing permission "+permission,
		c.GetString(RequestIDKey),
	))
}
