package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/google/uuid"

	"app-purchase-request-workflow/models"
)

// RequestRepository is the gorm-backed store for the lifecycle engine
// (C7)'s primary entity, PurchaseRequest.
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// LockForUpdate loads a request under SELECT ... FOR UPDATE, serializing
// concurrent lifecycle transitions on the same request (spec.md §8
// property 3). Must be called inside a transaction.
func (r *RequestRepository) LockForUpdate(tx *gorm.DB, id uuid.UUID) (*models.PurchaseRequest, error) {
	var req models.PurchaseRequest
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) Get(id uuid.UUID) (*models.PurchaseRequest, error) {
	var req models.PurchaseRequest
	err := r.db.Preload("FieldValues").First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) Create(tx *gorm.DB, req *models.PurchaseRequest) error {
	return tx.Create(req).Error
}

func (r *RequestRepository) Save(tx *gorm.DB, req *models.PurchaseRequest) error {
	return tx.Save(req).Error
}

// UpsertFieldValue writes a request's value for one field, replacing any
// existing row for (RequestID, FieldID) (the single-value-column
// invariant is enforced by callers populating exactly one slot before
// calling this).
func (r *RequestRepository) UpsertFieldValue(tx *gorm.DB, v *models.RequestFieldValue) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "request_id"}, {Name: "field_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value_text", "value_number", "value_bool", "value_date", "value_dropdown", "updated_at"}),
	}).Create(v).Error
}

func (r *RequestRepository) FieldValues(requestID uuid.UUID) ([]models.RequestFieldValue, error) {
	var out []models.RequestFieldValue
	err := r.db.Where("request_id = ?", requestID).Find(&out).Error
	return out, err
}

// ByRequestor returns requests a user filed, newest first — backs the
// requestor inbox view (C8).
func (r *RequestRepository) ByRequestor(userID uuid.UUID) ([]models.PurchaseRequest, error) {
	var out []models.PurchaseRequest
	err := r.db.Where("requestor_user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

// PendingAtStep returns every request currently parked at stepID, oldest
// submission first, whatever its status.
func (r *RequestRepository) PendingAtStep(stepID uuid.UUID) ([]models.PurchaseRequest, error) {
	var out []models.PurchaseRequest
	err := r.db.Where("current_template_step_id = ?", stepID).Order("submitted_at ASC").Find(&out).Error
	return out, err
}

func (r *RequestRepository) DB() *gorm.DB { return r.db }
