package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app-purchase-request-workflow/apperr"
	"app-purchase-request-workflow/config"
	"app-purchase-request-workflow/models"
	"app-purchase-request-workflow/services"
)

// TestWorkflowTemplateService_Create_EnforcesStepInvariants covers
// spec.md §4.3: contiguous ascending step order from 1, every step has
// at least one approver role, and exactly one step — the last — is the
// finance-review step.
func TestWorkflowTemplateService_Create_EnforcesStepInvariants(t *testing.T) {
	h := newHarness(t)
	role := h.ensureRole(t, "MANAGER")
	finance := h.ensureRole(t, "FINANCE")

	tests := []struct {
		name  string
		steps []models.WorkflowTemplateStep
	}{
		{
			name: "gap in step order",
			steps: []models.WorkflowTemplateStep{
				{StepOrder: 1, StepName: "a", Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: role.ID}}},
				{StepOrder: 3, StepName: "b", IsFinanceReview: true, Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: finance.ID}}},
			},
		},
		{
			name: "no finance review step",
			steps: []models.WorkflowTemplateStep{
				{StepOrder: 1, StepName: "a", Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: role.ID}}},
				{StepOrder: 2, StepName: "b", Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: role.ID}}},
			},
		},
		{
			name: "fewer than 2 steps",
			steps: []models.WorkflowTemplateStep{
				{StepOrder: 1, StepName: "finance only", IsFinanceReview: true, Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: finance.ID}}},
			},
		},
		{
			name: "finance review step not last",
			steps: []models.WorkflowTemplateStep{
				{StepOrder: 1, StepName: "a", IsFinanceReview: true, Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: finance.ID}}},
				{StepOrder: 2, StepName: "b", Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: role.ID}}},
			},
		},
		{
			name: "step with no approvers",
			steps: []models.WorkflowTemplateStep{
				{StepOrder: 1, StepName: "a"},
				{StepOrder: 2, StepName: "b", IsFinanceReview: true, Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: finance.ID}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.workflowSvc.Create(uuid.NewString(), "", tt.steps)
			require.Error(t, err)
			kind, ok := apperr.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, apperr.KindTemplateInvariantViolated, kind)
		})
	}
}

// TestWorkflowTemplateService_CloneAndBump_PreservesApproverSets covers
// spec.md §8 property 1: cloning a template for an edit produces a new
// version while the original remains fully intact.
func TestWorkflowTemplateService_CloneAndBump_PreservesApproverSets(t *testing.T) {
	h := newHarness(t)
	manager := h.ensureRole(t, "MANAGER")
	finance := h.ensureRole(t, "FINANCE")
	director := h.ensureRole(t, "DIRECTOR")

	name := uuid.NewString()
	original, err := h.workflowSvc.Create(name, "v1", []models.WorkflowTemplateStep{
		{StepOrder: 1, StepName: "Manager approval", Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: manager.ID}}},
		{StepOrder: 2, StepName: "Finance review", IsFinanceReview: true, Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: finance.ID}}},
	})
	require.NoError(t, err)

	cloned, err := h.workflowSvc.CloneAndBump(name, func(steps []models.WorkflowTemplateStep) []models.WorkflowTemplateStep {
		steps[0].Approvers = append(steps[0].Approvers, models.WorkflowTemplateStepApprover{RoleLookupID: director.ID})
		return steps
	})
	require.NoError(t, err)
	assert.Equal(t, original.VersionNumber+1, cloned.VersionNumber)

	reloadedOriginal, err := h.workflowSvc.GetWithSteps(original.ID)
	require.NoError(t, err)
	assert.Len(t, reloadedOriginal.Steps[0].Approvers, 1, "cloning must not mutate the original version")

	reloadedClone, err := h.workflowSvc.GetWithSteps(cloned.ID)
	require.NoError(t, err)
	assert.Len(t, reloadedClone.Steps[0].Approvers, 2)
}

// TestWorkflowTemplateService_NextStep_EndOfSequence returns
// gorm.ErrRecordNotFound once the last step is passed.
func TestWorkflowTemplateService_NextStep_EndOfSequence(t *testing.T) {
	h := newHarness(t)
	manager := h.ensureRole(t, "MANAGER")
	finance := h.ensureRole(t, "FINANCE")

	tmpl, err := h.workflowSvc.Create(uuid.NewString(), "", []models.WorkflowTemplateStep{
		{StepOrder: 1, StepName: "Manager approval", Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: manager.ID}}},
		{StepOrder: 2, StepName: "Finance review", IsFinanceReview: true, Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: finance.ID}}},
	})
	require.NoError(t, err)

	_, err = h.workflowSvc.NextStep(tmpl.ID, 2)
	require.Error(t, err)
}

// TestWorkflowTemplateService_Create_FinanceReviewCanSkipLastPosition
// covers spec.md §6: RequireFinanceReviewLast=false drops only the
// terminal-position requirement, leaving the mandatory-single-finance-step
// invariant intact.
func TestWorkflowTemplateService_Create_FinanceReviewCanSkipLastPosition(t *testing.T) {
	h := newHarness(t)
	manager := h.ensureRole(t, "MANAGER")
	finance := h.ensureRole(t, "FINANCE")

	lenient := services.NewWorkflowTemplateService(h.db, h.workflows, &config.Config{RequireFinanceReviewLast: false})

	_, err := lenient.Create(uuid.NewString(), "", []models.WorkflowTemplateStep{
		{StepOrder: 1, StepName: "Finance review", IsFinanceReview: true, Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: finance.ID}}},
		{StepOrder: 2, StepName: "Manager approval", Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: manager.ID}}},
	})
	require.NoError(t, err, "disabling RequireFinanceReviewLast must allow a non-terminal finance step")

	_, err = lenient.Create(uuid.NewString(), "", []models.WorkflowTemplateStep{
		{StepOrder: 1, StepName: "a", Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: manager.ID}}},
		{StepOrder: 2, StepName: "b", Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: manager.ID}}},
	})
	require.Error(t, err, "a mandatory finance step is still required even with RequireFinanceReviewLast=false")
	kind, ok := apperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindTemplateInvariantViolated, kind)
}
