package repositories

import (
	"gorm.io/gorm"

	"github.com/google/uuid"

	"app-purchase-request-workflow/models"
)

// TeamConfigRepository is the gorm-backed store for C4: the binding of
// (team, purchase type) to an active form/workflow template pair.
type TeamConfigRepository struct {
	db *gorm.DB
}

func NewTeamConfigRepository(db *gorm.DB) *TeamConfigRepository {
	return &TeamConfigRepository{db: db}
}

// ResolveActive returns the Active TeamPurchaseConfig row for
// (teamID, purchaseTypeLookupID), or gorm.ErrRecordNotFound if none is
// configured.
func (r *TeamConfigRepository) ResolveActive(teamID, purchaseTypeLookupID uuid.UUID) (*models.TeamPurchaseConfig, error) {
	var cfg models.TeamPurchaseConfig
	err := r.db.Where("team_id = ? AND purchase_type_lookup_id = ? AND active = ?",
		teamID, purchaseTypeLookupID, true).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DeactivateActive disables any currently-active row for the pair,
// inside tx, enforcing the at-most-one-active invariant ahead of an
// insert of a new active row.
func (r *TeamConfigRepository) DeactivateActive(tx *gorm.DB, teamID, purchaseTypeLookupID uuid.UUID) error {
	return tx.Model(&models.TeamPurchaseConfig{}).
		Where("team_id = ? AND purchase_type_lookup_id = ? AND active = ?", teamID, purchaseTypeLookupID, true).
		Update("active", false).Error
}

func (r *TeamConfigRepository) Create(tx *gorm.DB, cfg *models.TeamPurchaseConfig) error {
	return tx.Create(cfg).Error
}

func (r *TeamConfigRepository) DB() *gorm.DB { return r.db }
