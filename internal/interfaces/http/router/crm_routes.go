package router

import (
	"github.com/erp/crm/internal/interfaces/http/handler"
	"github.com/erp/crm/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CRMHandlers are the handlers mounted under /crm
type CRMHandlers struct {
	Entities    *handler.EntityHandler
	Attachments *handler.AttachmentHandler
}

// CRMRouteOptions controls permission enforcement on the CRM routes.
// Permissions are only checked when Enforce is set, which requires JWT claims.
type CRMRouteOptions struct {
	Enforce     bool
	Permissions middleware.PermissionConfig
}

// NewCRMGroup builds the /crm route group. The static entities and
// talk_messages segments take precedence over the :entity parameter.
func NewCRMGroup(h CRMHandlers, opts CRMRouteOptions) *DomainGroup {
	crm := NewDomainGroup("crm", "/crm")

	crm.GET("/entities", h.Entities.ListEntities)
	crm.GET("/entities/:"+middleware.EntityParam, h.Entities.DescribeEntity)

	if h.Attachments != nil {
		upload := []gin.HandlerFunc{h.Attachments.RequestUpload}
		download := []gin.HandlerFunc{h.Attachments.DownloadURL}
		if opts.Enforce {
			upload = append([]gin.HandlerFunc{middleware.RequireResourceAction("talk_messages", "update", opts.Permissions)}, upload...)
			download = append([]gin.HandlerFunc{middleware.RequireResourceAction("talk_messages", "read", opts.Permissions)}, download...)
		}
		crm.POST("/talk_messages/:id/attachment-url", upload...)
		crm.GET("/talk_messages/:id/attachment-url", download...)
	}

	records := crm.Group("records", "")
	if opts.Enforce {
		records.Use(middleware.RequireEntityPermission(opts.Permissions))
	}
	entity := "/:" + middleware.EntityParam
	records.GET(entity, h.Entities.List)
	records.POST(entity, h.Entities.Create)
	records.GET(entity+"/:id", h.Entities.Get)
	records.PUT(entity+"/:id", h.Entities.Update)
	records.DELETE(entity+"/:id", h.Entities.Delete)

	return crm
}
