package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit event types (spec.md §3).
const (
	EventRequestCreated     = "REQUEST_CREATED"
	EventRequestSubmitted   = "REQUEST_SUBMITTED"
	EventApproval           = "APPROVAL"
	EventRejection          = "REJECTION"
	EventResubmission       = "RESUBMISSION"
	EventWorkflowStepChange = "WORKFLOW_STEP_CHANGE"
	EventRequestCompleted   = "REQUEST_COMPLETED"
	EventFieldUpdate        = "FIELD_UPDATE"
	EventAttachmentUpload   = "ATTACHMENT_UPLOAD"
	EventAttachmentRemoved  = "ATTACHMENT_REMOVED"
	EventStatusChange       = "STATUS_CHANGE"
)

// AuditEvent is an append-only record of one domain mutation. No update
// or delete API exists for this type (spec.md §4.9, §8 property 5).
type AuditEvent struct {
	Base
	EventType  string     `json:"event_type" gorm:"not null;size:32;index"`
	ActorUserID *uuid.UUID `json:"actor_user_id" gorm:"type:uuid;index"`
	RequestID  *uuid.UUID `json:"request_id" gorm:"type:uuid;index"`
	Metadata   map[string]any `json:"metadata,omitempty" gorm:"serializer:json"`
	Timestamp  time.Time  `json:"timestamp"`

	FieldChanges []FieldChange `json:"field_changes,omitempty" gorm:"foreignKey:AuditEventID"`
}

// FieldChange is a child record of a FIELD_UPDATE AuditEvent capturing
// the old and new value of one form field.
type FieldChange struct {
	Base
	AuditEventID uuid.UUID  `json:"audit_event_id" gorm:"type:uuid;not null;index"`
	FieldID      *uuid.UUID `json:"field_id" gorm:"type:uuid"`
	FieldName    string     `json:"field_name"`
	OldValue     string     `json:"old_value"`
	NewValue     string     `json:"new_value"`
}
