package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/crm/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadBody struct {
	FileName string `json:"file_name" binding:"required,max=8"`
	FileSize int64  `json:"file_size" binding:"required,min=1"`
}

func TestValidationDetails(t *testing.T) {
	SetupValidator()

	router := gin.New()
	var details []dto.ValidationDetail
	router.POST("/test", func(c *gin.Context) {
		var body uploadBody
		details = ValidationDetails(c.ShouldBindJSON(&body))
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"file_name":"much-too-long.pdf"}`)))

	require.Len(t, details, 2)
	assert.Equal(t, dto.ValidationDetail{Field: "file_name", Message: "Must be at most 8 characters"}, details[0])
	assert.Equal(t, dto.ValidationDetail{Field: "file_size", Message: "This field is required"}, details[1])
}

func TestValidationDetails_NonValidatorError(t *testing.T) {
	assert.Nil(t, ValidationDetails(assert.AnError))
	assert.Nil(t, ValidationDetails(nil))
}

func TestValidationMessage(t *testing.T) {
	assert.Equal(t, "Must be at least 3", ValidationMessage("min", "3", false))
	assert.Equal(t, "Must be at least 3 characters", ValidationMessage("gte", "3", true))
	assert.Equal(t, "Must be one of: open won lost", ValidationMessage("oneof", "open won lost", true))
	assert.Equal(t, "Invalid value", ValidationMessage("custom", "", false))
}
