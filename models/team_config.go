package models

import "github.com/google/uuid"

// TeamPurchaseConfig binds a (team, purchase type) pair to the concrete
// form/workflow template versions in force. At most one row may be
// Active for a given (TeamID, PurchaseTypeLookupID) at a time.
type TeamPurchaseConfig struct {
	Base
	TeamID             uuid.UUID `json:"team_id" gorm:"type:uuid;not null;index:idx_team_config_lookup"`
	PurchaseTypeLookupID uuid.UUID `json:"purchase_type_lookup_id" gorm:"type:uuid;not null;index:idx_team_config_lookup"`
	FormTemplateID     uuid.UUID `json:"form_template_id" gorm:"type:uuid;not null"`
	WorkflowTemplateID uuid.UUID `json:"workflow_template_id" gorm:"type:uuid;not null"`
}
