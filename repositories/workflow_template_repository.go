package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"app-purchase-request-workflow/models"
)

// WorkflowTemplateRepository is the gorm-backed store for C3.
type WorkflowTemplateRepository struct {
	db *gorm.DB
}

func NewWorkflowTemplateRepository(db *gorm.DB) *WorkflowTemplateRepository {
	return &WorkflowTemplateRepository{db: db}
}

// GetWithSteps loads a template with its steps (ordered) and each
// step's approver role set.
func (r *WorkflowTemplateRepository) GetWithSteps(id uuid.UUID) (*models.WorkflowTemplate, error) {
	var t models.WorkflowTemplate
	err := r.db.
		Preload("Steps", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("workflow_template_steps.step_order ASC")
		}).
		Preload("Steps.Approvers").
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *WorkflowTemplateRepository) NextVersionNumber(tx *gorm.DB, name string) (int, error) {
	var max int
	err := tx.Model(&models.WorkflowTemplate{}).
		Where("name = ?", name).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *WorkflowTemplateRepository) Create(tx *gorm.DB, t *models.WorkflowTemplate) error {
	return tx.Create(t).Error
}

func (r *WorkflowTemplateRepository) ListVersions(name string) ([]models.WorkflowTemplate, error) {
	var out []models.WorkflowTemplate
	err := r.db.Where("name = ?", name).Order("version_number DESC").Find(&out).Error
	return out, err
}

func (r *WorkflowTemplateRepository) DB() *gorm.DB { return r.db }

// StepByOrder returns the step of the given order within a template, or
// gorm.ErrRecordNotFound if no such step exists (e.g. advancing past the
// last step).
func (r *WorkflowTemplateRepository) StepByOrder(templateID uuid.UUID, order int) (*models.WorkflowTemplateStep, error) {
	var s models.WorkflowTemplateStep
	err := r.db.Preload("Approvers").
		Where("template_id = ? AND step_order = ?", templateID, order).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *WorkflowTemplateRepository) StepByID(id uuid.UUID) (*models.WorkflowTemplateStep, error) {
	var s models.WorkflowTemplateStep
	err := r.db.Preload("Approvers").First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
