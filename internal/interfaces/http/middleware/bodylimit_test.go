package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/crm/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func bodyLimitRouter(limit int64) *gin.Engine {
	router := gin.New()
	router.Use(BodyLimit(limit))
	router.POST("/test", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, string(body))
	})
	return router
}

func TestBodyLimit(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		bodyLimitRouter(16).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"name":"x"}`)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `{"name":"x"}`, rec.Body.String())
	})

	t.Run("declared length too large", func(t *testing.T) {
		rec := httptest.NewRecorder()
		bodyLimitRouter(4).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("0123456789")))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, dto.ErrCodeRequestTooLarge, decodeError(t, rec).Code)
	})

	t.Run("streamed body capped", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("0123456789"))
		req.ContentLength = -1
		rec := httptest.NewRecorder()
		bodyLimitRouter(4).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("zero disables", func(t *testing.T) {
		rec := httptest.NewRecorder()
		bodyLimitRouter(0).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("0123456789")))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
