package crm

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AllowedContentTypes is the whitelist of attachment content types.
// SVG is excluded because it can carry scripts.
var AllowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
	"image/tiff": true,
	// Documents
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	// Text
	"text/plain": true,
	"text/csv":   true,
	// Audio recordings of calls
	"audio/mpeg": true,
	"audio/ogg":  true,
	"audio/wav":  true,
	// Archives
	"application/zip": true,
}

// AttachmentKeyPrefix starts every talk message attachment key
const AttachmentKeyPrefix = "talk-messages"

// maxFileNameLength matches the talk_messages.attachment_name column
const maxFileNameLength = 255

// AttachmentConfig holds attachment URL lifetimes and size limits
type AttachmentConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
	MaxFileSize       int64
}

// DefaultAttachmentConfig returns the default configuration
func DefaultAttachmentConfig() AttachmentConfig {
	return AttachmentConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
		MaxFileSize:       25 << 20,
	}
}

// AttachmentUploadRequest asks for an upload URL for a message attachment
type AttachmentUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	FileSize    int64  `json:"file_size" binding:"required,min=1"`
}

// AttachmentUploadResponse carries the presigned upload URL
type AttachmentUploadResponse struct {
	MessageID uuid.UUID    `json:"message_id"`
	Key       string       `json:"key"`
	Version   int          `json:"version"`
	Upload    PresignedURL `json:"upload"`
}

// AttachmentDownloadResponse carries the presigned download URL
type AttachmentDownloadResponse struct {
	MessageID   uuid.UUID    `json:"message_id"`
	Key         string       `json:"key"`
	FileName    string       `json:"file_name"`
	ContentType string       `json:"content_type"`
	Download    PresignedURL `json:"download"`
}

// AttachmentService issues presigned URLs for TalkMessage attachments and
// records the attachment on the message
type AttachmentService struct {
	entities *EntityService
	storage  ObjectStorage
	config   AttachmentConfig
	logger   *zap.Logger
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(entities *EntityService, storage ObjectStorage, cfg AttachmentConfig) *AttachmentService {
	defaults := DefaultAttachmentConfig()
	if cfg.UploadURLExpiry <= 0 {
		cfg.UploadURLExpiry = defaults.UploadURLExpiry
	}
	if cfg.DownloadURLExpiry <= 0 {
		cfg.DownloadURLExpiry = defaults.DownloadURLExpiry
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = defaults.MaxFileSize
	}
	return &AttachmentService{
		entities: entities,
		storage:  storage,
		config:   cfg,
		logger:   entities.logger,
	}
}

// AttachmentKey returns the storage key of a message attachment
func AttachmentKey(tenantID, messageID uuid.UUID, fileName string) string {
	return fmt.Sprintf("%s/%s/%s/%s", AttachmentKeyPrefix, tenantID, messageID, fileName)
}

// ownsAttachmentKey reports whether key lies under the storage prefix of
// one message of one tenant
func ownsAttachmentKey(tenantID, messageID uuid.UUID, key string) bool {
	prefix := fmt.Sprintf("%s/%s/%s/", AttachmentKeyPrefix, tenantID, messageID)
	return strings.HasPrefix(key, prefix) && !strings.Contains(key[len(prefix):], "/")
}

// RequestUpload records the attachment on the message and returns a URL the
// client uploads the file to. A previous attachment object is removed.
func (s *AttachmentService) RequestUpload(ctx context.Context, tenantID, userID, messageID uuid.UUID, req AttachmentUploadRequest) (*AttachmentUploadResponse, error) {
	fileName, err := sanitizeFileName(req.FileName)
	if err != nil {
		return nil, err
	}
	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if !AllowedContentTypes[contentType] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed. Allowed types: images, audio, PDF, Office documents, text and zip files.", req.ContentType))
	}
	if req.FileSize <= 0 || req.FileSize > s.config.MaxFileSize {
		return nil, shared.NewDomainError("ATTACHMENT_TOO_LARGE",
			fmt.Sprintf("Attachment size must be between 1 and %d bytes", s.config.MaxFileSize))
	}

	d, msg, err := s.loadMessage(ctx, tenantID, messageID)
	if err != nil {
		return nil, err
	}

	key := AttachmentKey(tenantID, messageID, fileName)
	upload, err := s.storage.PresignUpload(ctx, key, contentType, s.config.UploadURLExpiry)
	if err != nil {
		s.logger.Error("failed to presign attachment upload", zap.String("key", key), zap.Error(err))
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	previous := msg.AttachmentKey
	msg.AttachmentKey = key
	msg.AttachmentName = fileName
	msg.AttachmentType = contentType
	if err := s.entities.save(ctx, d, msg, msg.Version, userID); err != nil {
		return nil, err
	}

	if previous != "" && previous != key && ownsAttachmentKey(tenantID, messageID, previous) {
		if err := s.storage.Delete(ctx, previous); err != nil {
			s.logger.Warn("failed to delete replaced attachment", zap.String("key", previous), zap.Error(err))
		}
	}

	return &AttachmentUploadResponse{
		MessageID: messageID,
		Key:       key,
		Version:   msg.Version,
		Upload:    upload,
	}, nil
}

// DownloadURL returns a URL for the attachment of a message once it has
// been uploaded
func (s *AttachmentService) DownloadURL(ctx context.Context, tenantID, messageID uuid.UUID) (*AttachmentDownloadResponse, error) {
	d, ok := crm.Lookup("TalkMessage")
	if !ok {
		return nil, shared.ErrUnknownEntity
	}
	rec, err := s.entities.find(ctx, d, tenantID, messageID)
	if err != nil {
		return nil, err
	}
	msg, ok := rec.(*crm.TalkMessage)
	if !ok {
		return nil, fmt.Errorf("unexpected record type %T", rec)
	}
	if msg.AttachmentKey == "" {
		return nil, shared.NewDomainError("ATTACHMENT_NOT_FOUND", "Talk message has no attachment")
	}
	if !ownsAttachmentKey(tenantID, messageID, msg.AttachmentKey) {
		s.logger.Warn("talk message references a foreign attachment key",
			zap.String("message_id", messageID.String()),
			zap.String("key", msg.AttachmentKey),
		)
		return nil, shared.NewDomainError("ATTACHMENT_NOT_FOUND", "Talk message has no attachment")
	}

	exists, err := s.storage.Exists(ctx, msg.AttachmentKey)
	if err != nil {
		s.logger.Error("failed to check attachment", zap.String("key", msg.AttachmentKey), zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify attachment")
	}
	if !exists {
		return nil, shared.NewDomainError("ATTACHMENT_NOT_FOUND", "Attachment has not been uploaded yet")
	}

	download, err := s.storage.PresignDownload(ctx, msg.AttachmentKey, s.config.DownloadURLExpiry)
	if err != nil {
		s.logger.Error("failed to presign attachment download", zap.String("key", msg.AttachmentKey), zap.Error(err))
		return nil, shared.NewDomainError("DOWNLOAD_URL_FAILED", "Failed to generate download URL")
	}

	return &AttachmentDownloadResponse{
		MessageID:   messageID,
		Key:         msg.AttachmentKey,
		FileName:    msg.AttachmentName,
		ContentType: msg.AttachmentType,
		Download:    download,
	}, nil
}

func (s *AttachmentService) loadMessage(ctx context.Context, tenantID, messageID uuid.UUID) (crm.Descriptor, *crm.TalkMessage, error) {
	d, ok := crm.Lookup("TalkMessage")
	if !ok {
		return crm.Descriptor{}, nil, shared.ErrUnknownEntity
	}
	rec, err := s.entities.repo.FindByIDForTenant(ctx, d, tenantID, messageID)
	if err != nil {
		return crm.Descriptor{}, nil, err
	}
	msg, ok := rec.(*crm.TalkMessage)
	if !ok {
		return crm.Descriptor{}, nil, fmt.Errorf("unexpected record type %T", rec)
	}
	return d, msg, nil
}

// sanitizeFileName keeps the last path element of name
func sanitizeFileName(name string) (string, error) {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	name = path.Base(name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return "", shared.NewDomainError("INVALID_INPUT", "A file name is required")
	}
	if len(name) > maxFileNameLength {
		return "", shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("File name must be at most %d characters", maxFileNameLength))
	}
	return name, nil
}
