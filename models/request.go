package models

import "github.com/google/uuid"
import "time"
import "github.com/shopspring/decimal"

// PurchaseRequest is the primary lifecycle entity. PinnedFormTemplateID
// and PinnedWorkflowTemplateID are immutable references fixed at draft
// creation; they survive later template edits (spec.md §8 property 1).
type PurchaseRequest struct {
	Base
	RequestorUserID uuid.UUID `json:"requestor_user_id" gorm:"type:uuid;not null;index"`
	TeamID          uuid.UUID `json:"team_id" gorm:"type:uuid;not null;index"`
	PurchaseTypeLookupID uuid.UUID `json:"purchase_type_lookup_id" gorm:"type:uuid;not null"`
	StatusLookupID  uuid.UUID `json:"status_lookup_id" gorm:"type:uuid;not null;index"`

	PinnedFormTemplateID     uuid.UUID  `json:"pinned_form_template_id" gorm:"type:uuid;not null"`
	PinnedWorkflowTemplateID uuid.UUID  `json:"pinned_workflow_template_id" gorm:"type:uuid;not null"`
	CurrentTemplateStepID    *uuid.UUID `json:"current_template_step_id" gorm:"type:uuid;index"`

	VendorName    string `json:"vendor_name"`
	VendorAccount string `json:"vendor_account"`
	Subject       string `json:"subject"`
	Description   string `json:"description"`

	SubmittedAt      *time.Time `json:"submitted_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	RejectionComment string     `json:"rejection_comment"`

	FieldValues []RequestFieldValue `json:"field_values,omitempty" gorm:"foreignKey:RequestID"`
}

// RequestFieldValue holds the typed value captured for one FormField of
// the request's pinned form template. Exactly one of the five typed
// slots is populated (spec.md §8 property 2) — the engine fills one slot
// per field type; PopulatedSlots below counts the populated slots.
type RequestFieldValue struct {
	Base
	RequestID uuid.UUID `json:"request_id" gorm:"type:uuid;not null;uniqueIndex:idx_field_value_request_field"`
	FieldID   uuid.UUID `json:"field_id" gorm:"type:uuid;not null;uniqueIndex:idx_field_value_request_field"`

	ValueText *string `json:"value_text,omitempty"`
	// ValueNumber uses decimal.Decimal, not float64, so currency-bearing
	// NUMBER fields (e.g. a requested amount) don't accrue binary
	// floating-point rounding error across drafts/resubmissions.
	ValueNumber   *decimal.Decimal `json:"value_number,omitempty" gorm:"type:numeric"`
	ValueBool     *bool            `json:"value_bool,omitempty"`
	ValueDate     *time.Time       `json:"value_date,omitempty"`
	ValueDropdown *string          `json:"value_dropdown,omitempty"`
}

// IsEmpty reports whether no typed slot is populated, or the populated
// slot holds an empty string — used by submit validation to detect a
// required field with no recorded value (spec.md §4.7 submit(): a
// required field needs a "non-empty typed value").
func (v RequestFieldValue) IsEmpty() bool {
	if v.ValueText == nil && v.ValueNumber == nil && v.ValueBool == nil &&
		v.ValueDate == nil && v.ValueDropdown == nil {
		return true
	}
	if v.ValueText != nil && *v.ValueText == "" {
		return true
	}
	if v.ValueDropdown != nil && *v.ValueDropdown == "" {
		return true
	}
	return false
}

// PopulatedSlots counts how many typed value columns are non-nil; the
// single-value-column invariant requires this to be exactly 1 for any
// persisted row.
func (v RequestFieldValue) PopulatedSlots() int {
	n := 0
	if v.ValueText != nil {
		n++
	}
	if v.ValueNumber != nil {
		n++
	}
	if v.ValueBool != nil {
		n++
	}
	if v.ValueDate != nil {
		n++
	}
	if v.ValueDropdown != nil {
		n++
	}
	return n
}
