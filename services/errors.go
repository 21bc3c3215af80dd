package services

import (
	"github.com/google/uuid"

	"app-purchase-request-workflow/apperr"
)

func configMissingErr(teamID, purchaseTypeLookupID uuid.UUID) error {
	return apperr.Newf(apperr.KindConfigurationMissing,
		"no active form/workflow template configured for team %s purchase type %s", teamID, purchaseTypeLookupID)
}
