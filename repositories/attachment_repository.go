package repositories

import (
	"gorm.io/gorm"

	"github.com/google/uuid"

	"app-purchase-request-workflow/models"
)

// AttachmentRepository is the gorm-backed store for C6.
type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) Create(tx *gorm.DB, a *models.Attachment) error {
	return tx.Create(a).Error
}

// ForRequest returns every attachment filed against requestID.
func (r *AttachmentRepository) ForRequest(requestID uuid.UUID) ([]models.Attachment, error) {
	var out []models.Attachment
	err := r.db.Where("request_id = ?", requestID).Order("created_at ASC").Find(&out).Error
	return out, err
}

// CategoriesForTeam returns every AttachmentCategory defined for teamID.
func (r *AttachmentRepository) CategoriesForTeam(teamID uuid.UUID) ([]models.AttachmentCategory, error) {
	var out []models.AttachmentCategory
	err := r.db.Where("team_id = ? AND active = ?", teamID, true).Find(&out).Error
	return out, err
}

// RequiredCategoriesForTeam returns the subset of a team's attachment
// categories flagged Required — the set submit() validates coverage
// against (spec.md §4.6).
func (r *AttachmentRepository) RequiredCategoriesForTeam(teamID uuid.UUID) ([]models.AttachmentCategory, error) {
	var out []models.AttachmentCategory
	err := r.db.Where("team_id = ? AND active = ? AND required = ?", teamID, true, true).Find(&out).Error
	return out, err
}

func (r *AttachmentRepository) CategoryByID(id uuid.UUID) (*models.AttachmentCategory, error) {
	var c models.AttachmentCategory
	err := r.db.First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *AttachmentRepository) CategoryByName(teamID uuid.UUID, name string) (*models.AttachmentCategory, error) {
	var c models.AttachmentCategory
	err := r.db.Where("team_id = ? AND name = ? AND active = ?", teamID, name, true).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *AttachmentRepository) DB() *gorm.DB { return r.db }
