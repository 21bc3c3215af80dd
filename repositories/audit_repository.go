package repositories

import (
	"gorm.io/gorm"

	"github.com/google/uuid"

	"app-purchase-request-workflow/models"
)

// AuditRepository is the append-only gorm-backed store for C9. It
// exposes no update or delete method (spec.md §4.9, §8 property 5).
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Record(tx *gorm.DB, ev *models.AuditEvent) error {
	return tx.Create(ev).Error
}

// ForRequest returns the full audit trail of a request in chronological
// order, including any FieldChange children of FIELD_UPDATE events.
func (r *AuditRepository) ForRequest(requestID uuid.UUID) ([]models.AuditEvent, error) {
	var out []models.AuditEvent
	err := r.db.Preload("FieldChanges").
		Where("request_id = ?", requestID).
		Order("timestamp ASC").
		Find(&out).Error
	return out, err
}

// ByEventType returns every event of a given type, newest first.
func (r *AuditRepository) ByEventType(eventType string) ([]models.AuditEvent, error) {
	var out []models.AuditEvent
	err := r.db.Where("event_type = ?", eventType).Order("timestamp DESC").Find(&out).Error
	return out, err
}

func (r *AuditRepository) DB() *gorm.DB { return r.db }
