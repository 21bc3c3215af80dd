package repositories

import (
	"gorm.io/gorm"

	"github.com/google/uuid"

	"app-purchase-request-workflow/models"
)

// ApprovalHistoryRepository is the append-only store backing the
// per-step AND-approval aggregation in the lifecycle engine (C7).
type ApprovalHistoryRepository struct {
	db *gorm.DB
}

func NewApprovalHistoryRepository(db *gorm.DB) *ApprovalHistoryRepository {
	return &ApprovalHistoryRepository{db: db}
}

func (r *ApprovalHistoryRepository) Create(tx *gorm.DB, h *models.ApprovalHistory) error {
	return tx.Create(h).Error
}

// HasActed reports whether approverID already recorded action at
// (requestID, stepID) — the AlreadyActed check (spec.md §4.7, §8
// property 6).
func (r *ApprovalHistoryRepository) HasActed(tx *gorm.DB, requestID, stepID, approverID uuid.UUID, action string) (bool, error) {
	var count int64
	err := tx.Model(&models.ApprovalHistory{}).
		Where("request_id = ? AND template_step_id = ? AND approver_user_id = ? AND action = ?",
			requestID, stepID, approverID, action).
		Count(&count).Error
	return count > 0, err
}

// ApprovedRoles returns the distinct role lookup IDs under which an
// APPROVE was recorded at (requestID, stepID) — the "remaining roles"
// computation (spec.md §4.7, §8 property 7).
func (r *ApprovalHistoryRepository) ApprovedRoles(tx *gorm.DB, requestID, stepID uuid.UUID) ([]uuid.UUID, error) {
	var rows []models.ApprovalHistory
	err := tx.Where("request_id = ? AND template_step_id = ? AND action = ?",
		requestID, stepID, models.ApprovalActionApprove).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(rows))
	out := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		if !seen[r.RoleLookupID] {
			seen[r.RoleLookupID] = true
			out = append(out, r.RoleLookupID)
		}
	}
	return out, nil
}

func (r *ApprovalHistoryRepository) ForRequest(requestID uuid.UUID) ([]models.ApprovalHistory, error) {
	var out []models.ApprovalHistory
	err := r.db.Where("request_id = ?", requestID).Order("timestamp ASC").Find(&out).Error
	return out, err
}

func (r *ApprovalHistoryRepository) DB() *gorm.DB { return r.db }
