package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"app-purchase-request-workflow/models"
)

// SeedLookups ensures the REQUEST_STATUS and PURCHASE_TYPE lookup
// families exist, mirroring the teacher's database.SeedData: idempotent,
// safe to run on every boot.
func SeedLookups(db *gorm.DB) error {
	statusType, err := ensureLookupType(db, models.LookupTypeRequestStatus, "Request Status")
	if err != nil {
		return err
	}
	for _, code := range []string{
		models.StatusDraft, models.StatusPendingApproval, models.StatusInReview,
		models.StatusRejected, models.StatusResubmitted, models.StatusFullyApproved,
		models.StatusFinanceReview, models.StatusCompleted, models.StatusArchived,
	} {
		if err := ensureLookup(db, statusType.ID, code, code); err != nil {
			return err
		}
	}

	purchaseType, err := ensureLookupType(db, models.LookupTypePurchaseType, "Purchase Type")
	if err != nil {
		return err
	}
	for _, code := range []string{models.PurchaseTypeService, models.PurchaseTypeGood} {
		if err := ensureLookup(db, purchaseType.ID, code, code); err != nil {
			return err
		}
	}

	if _, err := ensureLookupType(db, models.LookupTypeCompanyRole, "Company Role"); err != nil {
		return err
	}

	return nil
}

func ensureLookupType(db *gorm.DB, code, title string) (*models.LookupType, error) {
	var lt models.LookupType
	err := db.Where("code = ?", code).First(&lt).Error
	if err == nil {
		return &lt, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	lt = models.LookupType{Code: code, Title: title, Active: true}
	if err := db.Create(&lt).Error; err != nil {
		return nil, err
	}
	return &lt, nil
}

func ensureLookup(db *gorm.DB, typeID uuid.UUID, code, title string) error {
	var l models.Lookup
	err := db.Where("type_id = ? AND code = ?", typeID, code).First(&l).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	l = models.Lookup{TypeID: typeID, Code: code, Title: title, Active: true}
	return db.Create(&l).Error
}
