package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"app-purchase-request-workflow/models"
	"app-purchase-request-workflow/repositories"
)

// TeamConfigService is the service layer for C4: binding a team's
// purchase type to the template pair in force, enforcing at-most-one
// active row per (team, purchase type) (spec.md §4.4).
type TeamConfigService struct {
	db   *gorm.DB
	repo *repositories.TeamConfigRepository
}

func NewTeamConfigService(db *gorm.DB, repo *repositories.TeamConfigRepository) *TeamConfigService {
	return &TeamConfigService{db: db, repo: repo}
}

// SetActive deactivates any existing active config for the pair and
// installs a new active row, inside one transaction.
func (s *TeamConfigService) SetActive(teamID, purchaseTypeLookupID, formTemplateID, workflowTemplateID uuid.UUID) (*models.TeamPurchaseConfig, error) {
	var created *models.TeamPurchaseConfig

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeactivateActive(tx, teamID, purchaseTypeLookupID); err != nil {
			return fmt.Errorf("deactivate prior config: %w", err)
		}

		cfg := &models.TeamPurchaseConfig{
			TeamID:               teamID,
			PurchaseTypeLookupID: purchaseTypeLookupID,
			FormTemplateID:       formTemplateID,
			WorkflowTemplateID:   workflowTemplateID,
		}
		cfg.Active = true
		if err := s.repo.Create(tx, cfg); err != nil {
			return fmt.Errorf("create config: %w", err)
		}
		created = cfg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ResolveActive returns the active template pair for (teamID,
// purchaseTypeLookupID), or apperr.KindConfigurationMissing if none is
// set — the resolution step draft creation depends on (spec.md §4.4,
// §4.7 draft_create()).
func (s *TeamConfigService) ResolveActive(teamID, purchaseTypeLookupID uuid.UUID) (*models.TeamPurchaseConfig, error) {
	cfg, err := s.repo.ResolveActive(teamID, purchaseTypeLookupID)
	if err == gorm.ErrRecordNotFound {
		return nil, configMissingErr(teamID, purchaseTypeLookupID)
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
