package handler

import (
	"net/http"
	"time"

	"github.com/erp/crm/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger is satisfied by persistence.Database
type Pinger interface {
	Ping() error
}

// BackendNamer is satisfied by shared.Cache
type BackendNamer interface {
	Backend() string
}

// HealthHandler reports database reachability and the active cache backend
type HealthHandler struct {
	db    Pinger
	cache BackendNamer
	now   func() time.Time
}

// NewHealthHandler creates a new HealthHandler. cache may be nil.
func NewHealthHandler(db Pinger, cache BackendNamer) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, now: time.Now}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Database string `json:"database"`
	Cache    string `json:"cache,omitempty"`
}

// Check answers 200 when the database responds and 503 otherwise
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	resp := HealthResponse{
		Status:   "healthy",
		Time:     h.now().Format(time.RFC3339),
		Database: "ok",
	}
	if h.cache != nil {
		resp.Cache = h.cache.Backend()
	}

	if err := h.db.Ping(); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Database = "error"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
