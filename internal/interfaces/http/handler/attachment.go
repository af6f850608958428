package handler

import (
	"context"

	crmapp "github.com/erp/crm/internal/application/crm"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AttachmentService issues presigned URLs for talk message attachments
type AttachmentService interface {
	RequestUpload(ctx context.Context, tenantID, userID, messageID uuid.UUID, req crmapp.AttachmentUploadRequest) (*crmapp.AttachmentUploadResponse, error)
	DownloadURL(ctx context.Context, tenantID, messageID uuid.UUID) (*crmapp.AttachmentDownloadResponse, error)
}

// AttachmentHandler serves the talk message attachment endpoints
type AttachmentHandler struct {
	BaseHandler
	service AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(service AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

// RequestUpload returns a presigned PUT URL and records the attachment on the message
// POST /crm/talk_messages/:id/attachment-url
func (h *AttachmentHandler) RequestUpload(c *gin.Context) {
	tenantID, userID, ok := h.identity(c)
	if !ok {
		return
	}
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid message ID")
		return
	}

	var req crmapp.AttachmentUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.RequestUpload(c.Request.Context(), tenantID, userID, messageID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// DownloadURL returns a presigned GET URL for the uploaded attachment
// GET /crm/talk_messages/:id/attachment-url
func (h *AttachmentHandler) DownloadURL(c *gin.Context) {
	tenantID, _, ok := h.identity(c)
	if !ok {
		return
	}
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid message ID")
		return
	}

	resp, err := h.service.DownloadURL(c.Request.Context(), tenantID, messageID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
