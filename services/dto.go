package services

// Inbound DTOs validated with struct tags via go-playground/validator
// (SPEC_FULL.md §4.12), ahead of the engine's own domain validation
// (required-field/attachment checks).

// CreateDraftRequest is the draft.create DTO (spec.md §6).
type CreateDraftRequest struct {
	PurchaseTypeCode string `validate:"required"`
	VendorName       string `validate:"max=255"`
	VendorAccount    string `validate:"max=64"`
	Subject          string `validate:"required,max=255"`
	Description      string `validate:"max=4000"`
}

// UpdateFieldRequest is the draft.update_field DTO.
type UpdateFieldRequest struct {
	FieldID string `validate:"required"`
}

// RejectRequest is the request.reject DTO; the minimum-length check on
// Comment is enforced by config (SPEC_FULL.md §4.10), not a fixed
// struct tag, so only presence is validated here.
type RejectRequest struct {
	RoleCode string `validate:"required"`
	Comment  string `validate:"required"`
}

// ApproveRequest is the request.approve DTO.
type ApproveRequest struct {
	RoleCode string `validate:"required"`
}
