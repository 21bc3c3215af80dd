package models

import (
	"time"

	"github.com/google/uuid"
)

// Attachment size/extension ceilings (spec.md §3, §6 config surface
// defaults; overridable via config.Config).
const (
	DefaultMaxAttachmentBytes = 10 * 1024 * 1024
)

// DefaultAllowedAttachmentExtensions is the fixed allow-list from
// spec.md §3, mirrored from the teacher's attachments FileExtensionValidator.
var DefaultAllowedAttachmentExtensions = []string{
	"pdf", "jpg", "jpeg", "png", "doc", "docx", "xls", "xlsx",
}

// AttachmentCategory is a team-scoped bucket attachments are filed
// under. Required categories apply team-wide across all of that team's
// form templates (spec.md §9 Open Question — left team-wide, not
// per-template, per the spec's own framing).
type AttachmentCategory struct {
	Base
	TeamID   uuid.UUID `json:"team_id" gorm:"type:uuid;not null;uniqueIndex:idx_attachment_category_team_name"`
	Name     string    `json:"name" gorm:"not null;size:128;uniqueIndex:idx_attachment_category_team_name"`
	Required bool      `json:"required"`
}

// Attachment is a file bound to a request, optionally categorized and
// optionally tied to the ApprovalHistory row it was uploaded alongside.
type Attachment struct {
	Base
	RequestID         uuid.UUID  `json:"request_id" gorm:"type:uuid;not null;index"`
	CategoryID        *uuid.UUID `json:"category_id" gorm:"type:uuid;index"`
	ApprovalHistoryID *uuid.UUID `json:"approval_history_id" gorm:"type:uuid;index"`

	Filename   string `json:"filename" gorm:"not null;size:255"`
	StorageRef string `json:"storage_ref" gorm:"not null;size:512"`
	FileSize   int64  `json:"file_size" gorm:"not null"`
	MimeType   string `json:"mime_type" gorm:"size:100"`
	UploadedBy uuid.UUID `json:"uploaded_by" gorm:"type:uuid;not null"`
	UploadedAt time.Time `json:"uploaded_at"`
}
