package models

import "github.com/google/uuid"

// Lookup type codes used by the engine. Statuses and purchase types are
// resolved through the registry by (type code, code); the engine compares
// a resolved Lookup's Code against the code constants below.
const (
	LookupTypeRequestStatus = "REQUEST_STATUS"
	LookupTypePurchaseType  = "PURCHASE_TYPE"
	LookupTypeCompanyRole   = "COMPANY_ROLE"
)

// Request status codes.
const (
	StatusDraft            = "DRAFT"
	StatusPendingApproval   = "PENDING_APPROVAL"
	StatusInReview          = "IN_REVIEW"
	StatusRejected          = "REJECTED"
	StatusResubmitted       = "RESUBMITTED"
	StatusFullyApproved     = "FULLY_APPROVED"
	StatusFinanceReview     = "FINANCE_REVIEW"
	StatusCompleted         = "COMPLETED"
	StatusArchived          = "ARCHIVED"
)

// Purchase type codes shipped by default; teams may add more via the
// registry.
const (
	PurchaseTypeService = "SERVICE"
	PurchaseTypeGood    = "GOOD"
)

// LookupType groups a family of Lookup codes (e.g. all REQUEST_STATUS
// values) under one typed name.
type LookupType struct {
	Base
	Code        string `json:"code" gorm:"uniqueIndex;not null;size:64"`
	Title       string `json:"title" gorm:"not null;size:128"`
	Description string `json:"description"`

	Values []Lookup `json:"values,omitempty" gorm:"foreignKey:TypeID"`
}

// Lookup is a single coded enumeration value, unique within its type.
type Lookup struct {
	Base
	TypeID      uuid.UUID  `json:"type_id" gorm:"type:uuid;not null;uniqueIndex:idx_lookup_type_code"`
	Code        string     `json:"code" gorm:"not null;size:64;uniqueIndex:idx_lookup_type_code"`
	Title       string     `json:"title" gorm:"not null;size:128"`
	Description string     `json:"description"`

	Type LookupType `json:"type,omitempty" gorm:"foreignKey:TypeID"`
}
