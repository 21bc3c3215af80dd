package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"app-purchase-request-workflow/models"
)

// FormTemplateRepository is the gorm-backed store for C2.
type FormTemplateRepository struct {
	db *gorm.DB
}

func NewFormTemplateRepository(db *gorm.DB) *FormTemplateRepository {
	return &FormTemplateRepository{db: db}
}

// GetWithFields loads a template and its fields, ordered by FormField.Order.
func (r *FormTemplateRepository) GetWithFields(id uuid.UUID) (*models.FormTemplate, error) {
	var t models.FormTemplate
	err := r.db.Preload("Fields", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("form_fields.field_order ASC")
	}).First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// NextVersionNumber returns MAX(version_number)+1 for Name, computed
// under the row-lock-equivalent write lock a caller should hold for the
// whole create/clone operation (gorm doesn't lock an aggregate query, so
// callers wrap this in a transaction and rely on the unique index on
// (name, version_number) to reject a lost race).
func (r *FormTemplateRepository) NextVersionNumber(tx *gorm.DB, name string) (int, error) {
	var max int
	err := tx.Model(&models.FormTemplate{}).
		Where("name = ?", name).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// Create persists a new FormTemplate with its fields inside tx. The
// unique index on (name, version_number) is the backstop against a lost
// race on NextVersionNumber.
func (r *FormTemplateRepository) Create(tx *gorm.DB, t *models.FormTemplate) error {
	return tx.Create(t).Error
}

// ListVersions returns every version of Name, newest first (mirrors the
// original Django ordering = ['team', '-version_number']).
func (r *FormTemplateRepository) ListVersions(name string) ([]models.FormTemplate, error) {
	var out []models.FormTemplate
	err := r.db.Where("name = ?", name).Order("version_number DESC").Find(&out).Error
	return out, err
}

// WithTx returns a repository bound to an existing transaction.
func (r *FormTemplateRepository) WithTx(tx *gorm.DB) *FormTemplateRepository {
	return &FormTemplateRepository{db: tx}
}

// DB exposes the underlying handle for callers building their own queries.
func (r *FormTemplateRepository) DB() *gorm.DB { return r.db }
