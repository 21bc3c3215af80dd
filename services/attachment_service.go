package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"app-purchase-request-workflow/apperr"
	"app-purchase-request-workflow/blob"
	"app-purchase-request-workflow/config"
	"app-purchase-request-workflow/models"
	"app-purchase-request-workflow/repositories"
	"app-purchase-request-workflow/utils"
)

// AttachmentService is the service layer for C6: extension/size
// validation, blob storage, and required-category coverage checks
// (spec.md §4.6, supplemented from original_source/ attachments/models.py).
type AttachmentService struct {
	cfg   *config.Config
	repo  *repositories.AttachmentRepository
	blob  blob.Backend
	clock utils.Clock
}

func NewAttachmentService(cfg *config.Config, repo *repositories.AttachmentRepository, backend blob.Backend, clock utils.Clock) *AttachmentService {
	return &AttachmentService{cfg: cfg, repo: repo, blob: backend, clock: clock}
}

// Upload validates filename/size against config, writes the bytes
// through the blob backend, and persists the Attachment row inside tx.
// approvalHistoryID is non-nil when the upload accompanies an
// approve/reject action.
func (s *AttachmentService) Upload(ctx context.Context, tx *gorm.DB, requestID uuid.UUID, categoryID *uuid.UUID, approvalHistoryID *uuid.UUID, uploadedBy uuid.UUID, filename string, size int64, mimeType string, data io.Reader) (*models.Attachment, error) {
	if err := s.validate(filename, size); err != nil {
		return nil, err
	}

	storageRef, err := s.blob.Put(ctx, requestID.String(), data, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.New(apperr.KindStorageFailure, err.Error()), "blob put")
	}

	a := &models.Attachment{
		RequestID:         requestID,
		CategoryID:        categoryID,
		ApprovalHistoryID: approvalHistoryID,
		Filename:          filename,
		StorageRef:        storageRef,
		FileSize:          size,
		MimeType:          mimeType,
		UploadedBy:        uploadedBy,
		UploadedAt:        s.clock.Now(),
	}
	a.Active = true
	if err := tx.Create(a).Error; err != nil {
		return nil, fmt.Errorf("persist attachment: %w", err)
	}
	return a, nil
}

func (s *AttachmentService) validate(filename string, size int64) error {
	max := s.cfg.MaxAttachmentBytes
	if max <= 0 {
		max = models.DefaultMaxAttachmentBytes
	}
	if size > max {
		return apperr.Newf(apperr.KindValidationFailed, "attachment %q exceeds max size of %d bytes", filename, max)
	}

	allowed := s.cfg.AllowedAttachmentExtensions
	if len(allowed) == 0 {
		allowed = models.DefaultAllowedAttachmentExtensions
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return nil
		}
	}
	return apperr.Newf(apperr.KindValidationFailed, "attachment %q has disallowed extension %q", filename, ext)
}

// RequiredCategoriesSatisfied reports the names of any required
// AttachmentCategory of teamID not yet covered by an attachment on
// requestID — submit() blocks on a non-empty result (spec.md §4.6, §4.7).
func (s *AttachmentService) RequiredCategoriesSatisfied(teamID, requestID uuid.UUID) ([]string, error) {
	required, err := s.repo.RequiredCategoriesForTeam(teamID)
	if err != nil {
		return nil, fmt.Errorf("load required categories: %w", err)
	}
	if len(required) == 0 {
		return nil, nil
	}

	attachments, err := s.repo.ForRequest(requestID)
	if err != nil {
		return nil, fmt.Errorf("load request attachments: %w", err)
	}
	covered := make(map[uuid.UUID]bool, len(attachments))
	for _, a := range attachments {
		if a.CategoryID != nil {
			covered[*a.CategoryID] = true
		}
	}

	var missing []string
	for _, cat := range required {
		if !covered[cat.ID] {
			missing = append(missing, cat.Name)
		}
	}
	return missing, nil
}
