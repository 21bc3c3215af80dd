package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"app-purchase-request-workflow/apperr"
	"app-purchase-request-workflow/config"
	"app-purchase-request-workflow/models"
	"app-purchase-request-workflow/repositories"
)

// WorkflowTemplateService is the service layer for C3: create-and-version
// with the step-sequence invariants enforced on every save (spec.md §4.3).
type WorkflowTemplateService struct {
	db   *gorm.DB
	repo *repositories.WorkflowTemplateRepository
	cfg  *config.Config
}

func NewWorkflowTemplateService(db *gorm.DB, repo *repositories.WorkflowTemplateRepository, cfg *config.Config) *WorkflowTemplateService {
	return &WorkflowTemplateService{db: db, repo: repo, cfg: cfg}
}

// validateSteps enforces: a template has at least 2 steps; step orders
// form a contiguous ascending sequence starting at 1; every step names
// at least one approver role; exactly one step is the finance-review
// step. Whether that finance step must also be the last one is gated by
// cfg.RequireFinanceReviewLast (spec.md §6; default true — disabling it
// drops only the terminal-position requirement, discouraged).
func (s *WorkflowTemplateService) validateSteps(steps []models.WorkflowTemplateStep) error {
	if len(steps) < 2 {
		return apperr.New(apperr.KindTemplateInvariantViolated, "workflow template must have at least 2 steps")
	}

	financeCount := 0
	for i, st := range steps {
		if st.StepOrder != i+1 {
			return apperr.Newf(apperr.KindTemplateInvariantViolated,
				"step orders must be contiguous starting at 1, got %d at position %d", st.StepOrder, i)
		}
		if len(st.Approvers) == 0 {
			return apperr.Newf(apperr.KindTemplateInvariantViolated,
				"step %d has no approver roles", st.StepOrder)
		}
		if st.IsFinanceReview {
			financeCount++
		}
	}

	if financeCount != 1 {
		return apperr.Newf(apperr.KindTemplateInvariantViolated,
			"exactly one step must be the finance review step, found %d", financeCount)
	}
	if s.requireFinanceReviewLast() && !steps[len(steps)-1].IsFinanceReview {
		return apperr.New(apperr.KindTemplateInvariantViolated, "the finance review step must be the last step")
	}
	return nil
}

// requireFinanceReviewLast defaults to true (spec.md §6) when no config
// is supplied, matching every other optional Config knob's fallback
// behavior in this module.
func (s *WorkflowTemplateService) requireFinanceReviewLast() bool {
	if s.cfg == nil {
		return true
	}
	return s.cfg.RequireFinanceReviewLast
}

// Create persists a brand-new workflow template family at version 1.
func (s *WorkflowTemplateService) Create(name, description string, steps []models.WorkflowTemplateStep) (*models.WorkflowTemplate, error) {
	if err := s.validateSteps(steps); err != nil {
		return nil, err
	}

	var created *models.WorkflowTemplate
	err := s.db.Transaction(func(tx *gorm.DB) error {
		next, err := s.repo.NextVersionNumber(tx, name)
		if err != nil {
			return fmt.Errorf("resolve next version: %w", err)
		}
		t := &models.WorkflowTemplate{
			Name:          name,
			VersionNumber: next,
			Description:   description,
			Steps:         steps,
		}
		if err := s.repo.Create(tx, t); err != nil {
			return fmt.Errorf("create workflow template: %w", err)
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CloneAndBump copies the latest version of name, applying mutate to a
// shallow copy of its steps (preserving each step's approver role set
// by role lookup ID), re-validates invariants, and persists the next
// version.
func (s *WorkflowTemplateService) CloneAndBump(name string, mutate func([]models.WorkflowTemplateStep) []models.WorkflowTemplateStep) (*models.WorkflowTemplate, error) {
	versions, err := s.repo.ListVersions(name)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	if len(versions) == 0 {
		return nil, apperr.Newf(apperr.KindLookupNotFound, "no existing workflow template named %q to clone", name)
	}
	latest, err := s.repo.GetWithSteps(versions[0].ID)
	if err != nil {
		return nil, fmt.Errorf("load latest version: %w", err)
	}

	cloned := make([]models.WorkflowTemplateStep, len(latest.Steps))
	for i, st := range latest.Steps {
		approvers := make([]models.WorkflowTemplateStepApprover, len(st.Approvers))
		for j, a := range st.Approvers {
			approvers[j] = models.WorkflowTemplateStepApprover{RoleLookupID: a.RoleLookupID}
		}
		cloned[i] = models.WorkflowTemplateStep{
			StepOrder:       st.StepOrder,
			StepName:        st.StepName,
			IsFinanceReview: st.IsFinanceReview,
			Approvers:       approvers,
		}
	}
	newSteps := mutate(cloned)
	if err := s.validateSteps(newSteps); err != nil {
		return nil, err
	}

	var created *models.WorkflowTemplate
	err = s.db.Transaction(func(tx *gorm.DB) error {
		next, err := s.repo.NextVersionNumber(tx, name)
		if err != nil {
			return fmt.Errorf("resolve next version: %w", err)
		}
		t := &models.WorkflowTemplate{
			Name:          name,
			VersionNumber: next,
			Description:   latest.Description,
			Steps:         newSteps,
		}
		if err := s.repo.Create(tx, t); err != nil {
			return fmt.Errorf("create cloned workflow template: %w", err)
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *WorkflowTemplateService) GetWithSteps(id uuid.UUID) (*models.WorkflowTemplate, error) {
	return s.repo.GetWithSteps(id)
}

// FirstStep returns the step at order 1 for a template.
func (s *WorkflowTemplateService) FirstStep(templateID uuid.UUID) (*models.WorkflowTemplateStep, error) {
	return s.repo.StepByOrder(templateID, 1)
}

// NextStep returns the step immediately after currentOrder, or
// gorm.ErrRecordNotFound if currentOrder is the last step.
func (s *WorkflowTemplateService) NextStep(templateID uuid.UUID, currentOrder int) (*models.WorkflowTemplateStep, error) {
	return s.repo.StepByOrder(templateID, currentOrder+1)
}
