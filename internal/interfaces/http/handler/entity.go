package handler

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	crmapp "github.com/erp/crm/internal/application/crm"
	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/domain/shared"
	"github.com/erp/crm/internal/interfaces/http/dto"
	"github.com/erp/crm/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EntityService is the part of the application service the handler drives
type EntityService interface {
	Catalog() []crmapp.EntityDescriptor
	Describe(entity string) (crmapp.EntityDescriptor, error)
	Create(ctx context.Context, tenantID, userID uuid.UUID, entity string, payload json.RawMessage) (crm.Record, error)
	Get(ctx context.Context, tenantID uuid.UUID, entity string, id uuid.UUID) (crm.Record, error)
	List(ctx context.Context, tenantID uuid.UUID, entity string, filter shared.Filter) (shared.Paginated[crm.Record], error)
	Update(ctx context.Context, tenantID, userID uuid.UUID, entity string, id uuid.UUID, version int, payload json.RawMessage) (crm.Record, error)
	Delete(ctx context.Context, tenantID, userID uuid.UUID, entity string, id uuid.UUID) error
}

// EntityHandler serves the generic CRUD API over every catalog entity
type EntityHandler struct {
	BaseHandler
	service EntityService
}

// NewEntityHandler creates a new EntityHandler
func NewEntityHandler(service EntityService) *EntityHandler {
	return &EntityHandler{service: service}
}

// ListEntities returns the catalog
// GET /crm/entities
func (h *EntityHandler) ListEntities(c *gin.Context) {
	h.Success(c, h.service.Catalog())
}

// DescribeEntity returns one catalog descriptor
// GET /crm/entities/:entity
func (h *EntityHandler) DescribeEntity(c *gin.Context) {
	d, err := h.service.Describe(c.Param(middleware.EntityParam))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, d)
}

// List returns a page of records
// GET /crm/:entity
func (h *EntityHandler) List(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = strings.ToLower(req.OrderDir)
	}
	filter.Search = req.Search
	for key, values := range c.Request.URL.Query() {
		if dto.ListParams[key] || len(values) == 0 {
			continue
		}
		filter.Filters[key] = values[0]
	}

	page, err := h.service.List(c.Request.Context(), tenantID, c.Param(middleware.EntityParam), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one record
// GET /crm/:entity/:id
func (h *EntityHandler) Get(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.recordID(c)
	if !ok {
		return
	}

	rec, err := h.service.Get(c.Request.Context(), tenantID, c.Param(middleware.EntityParam), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	setETag(c, rec)
	h.Success(c, rec)
}

// Create inserts a record
// POST /crm/:entity
func (h *EntityHandler) Create(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	payload, ok := h.readPayload(c)
	if !ok {
		return
	}

	rec, err := h.service.Create(c.Request.Context(), tenantID, userID, c.Param(middleware.EntityParam), payload)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	setETag(c, rec)
	h.Created(c, rec)
}

// Update applies a partial update guarded by the expected version,
// taken from ?version= or an If-Match header.
// PUT /crm/:entity/:id
func (h *EntityHandler) Update(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.recordID(c)
	if !ok {
		return
	}
	version, ok := h.expectedVersion(c)
	if !ok {
		return
	}
	payload, ok := h.readPayload(c)
	if !ok {
		return
	}

	rec, err := h.service.Update(c.Request.Context(), tenantID, userID, c.Param(middleware.EntityParam), id, version, payload)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	setETag(c, rec)
	h.Success(c, rec)
}

// Delete removes a record
// DELETE /crm/:entity/:id
func (h *EntityHandler) Delete(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := h.recordID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, userID, c.Param(middleware.EntityParam), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *EntityHandler) recordID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeInvalidInput, "Invalid record ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *EntityHandler) expectedVersion(c *gin.Context) (int, bool) {
	raw := c.Query("version")
	if raw == "" {
		raw = strings.Trim(strings.TrimPrefix(c.GetHeader("If-Match"), "W/"), `"`)
	}
	if raw == "" {
		h.ErrorWithCode(c, dto.ErrCodeInvalidInput, "version query parameter or If-Match header is required")
		return 0, false
	}
	version, err := strconv.Atoi(raw)
	if err != nil || version < 1 {
		h.ErrorWithCode(c, dto.ErrCodeInvalidInput, "version must be a positive integer")
		return 0, false
	}
	return version, true
}

func (h *EntityHandler) readPayload(c *gin.Context) (json.RawMessage, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
		return nil, false
	}
	if !json.Valid(body) {
		h.ErrorWithCode(c, dto.ErrCodeInvalidJSON, "Request body must be valid JSON")
		return nil, false
	}
	return body, true
}

func setETag(c *gin.Context, rec crm.Record) {
	c.Header("ETag", `"`+strconv.Itoa(rec.Base().Version)+`"`)
}
