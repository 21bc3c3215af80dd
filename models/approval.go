package models

import (
	"time"

	"github.com/google/uuid"
)

// Approval actions.
const (
	ApprovalActionApprove = "APPROVE"
	ApprovalActionReject  = "REJECT"
)

// RejectionMinCommentChars is the default minimum comment length
// required on a rejection (spec.md §6 REJECTION_MIN_COMMENT_CHARS),
// overridable via config.Config.
const RejectionMinCommentChars = 10

// ApprovalHistory is an append-only record of one approve/reject action
// at one workflow template step. It is never updated or deleted.
type ApprovalHistory struct {
	Base
	RequestID      uuid.UUID `json:"request_id" gorm:"type:uuid;not null;index"`
	TemplateStepID uuid.UUID `json:"template_step_id" gorm:"type:uuid;not null;index"`
	ApproverUserID uuid.UUID `json:"approver_user_id" gorm:"type:uuid;not null;index"`
	RoleLookupID   uuid.UUID `json:"role_lookup_id" gorm:"type:uuid;not null"`
	Action         string    `json:"action" gorm:"not null;size:16"`
	Comment        string    `json:"comment"`
	Timestamp      time.Time `json:"timestamp"`
}
