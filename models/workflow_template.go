package models

import "github.com/google/uuid"

// WorkflowTemplate is a globally versioned, team-agnostic ordered step
// sequence. Exactly one step is the terminal finance-review step, and it
// must be the highest-ordered step (enforced by services.WorkflowTemplateService;
// the last-step rule is skipped when Config.RequireFinanceReviewLast is false).
type WorkflowTemplate struct {
	Base
	Name          string `json:"name" gorm:"not null;size:128;uniqueIndex:idx_workflow_template_name_version"`
	VersionNumber int    `json:"version_number" gorm:"not null;uniqueIndex:idx_workflow_template_name_version"`
	Description   string `json:"description"`

	Steps []WorkflowTemplateStep `json:"steps,omitempty" gorm:"foreignKey:TemplateID"`
}

// WorkflowTemplateStep is one node in a template's total order.
type WorkflowTemplateStep struct {
	Base
	TemplateID      uuid.UUID `json:"template_id" gorm:"type:uuid;not null;uniqueIndex:idx_wf_step_template_order"`
	StepOrder       int       `json:"step_order" gorm:"not null;uniqueIndex:idx_wf_step_template_order"`
	StepName        string    `json:"step_name" gorm:"not null;size:128"`
	IsFinanceReview bool      `json:"is_finance_review"`

	Approvers []WorkflowTemplateStepApprover `json:"approvers,omitempty" gorm:"foreignKey:StepID"`
}

// WorkflowTemplateStepApprover is one role authorized to act at a step.
// A step with more than one approver role requires AND-approval: every
// role in the set must record an APPROVE before the step advances.
type WorkflowTemplateStepApprover struct {
	Base
	StepID       uuid.UUID `json:"step_id" gorm:"type:uuid;not null;uniqueIndex:idx_wf_step_approver"`
	RoleLookupID uuid.UUID `json:"role_lookup_id" gorm:"type:uuid;not null;uniqueIndex:idx_wf_step_approver"`
}
