package services

import (
	"gorm.io/gorm"

	"github.com/google/uuid"

	"app-purchase-request-workflow/models"
	"app-purchase-request-workflow/repositories"
	"app-purchase-request-workflow/utils"
)

// AuditService is the service layer for C9: an append-only event
// stream. It exposes no update or delete method (spec.md §4.9).
type AuditService struct {
	repo  *repositories.AuditRepository
	clock utils.Clock
}

func NewAuditService(repo *repositories.AuditRepository, clock utils.Clock) *AuditService {
	return &AuditService{repo: repo, clock: clock}
}

// Record appends one AuditEvent inside tx, stamping Timestamp from the
// injected clock.
func (s *AuditService) Record(tx *gorm.DB, eventType string, actorUserID, requestID *uuid.UUID, metadata map[string]any) (*models.AuditEvent, error) {
	ev := &models.AuditEvent{
		EventType:   eventType,
		ActorUserID: actorUserID,
		RequestID:   requestID,
		Metadata:    metadata,
		Timestamp:   s.clock.Now(),
	}
	ev.Active = true
	if err := s.repo.Record(tx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// RecordFieldUpdate appends a FIELD_UPDATE event with one FieldChange
// child row describing the old/new value.
func (s *AuditService) RecordFieldUpdate(tx *gorm.DB, actorUserID, requestID uuid.UUID, fieldID *uuid.UUID, fieldName, oldValue, newValue string) (*models.AuditEvent, error) {
	ev := &models.AuditEvent{
		EventType:   models.EventFieldUpdate,
		ActorUserID: &actorUserID,
		RequestID:   &requestID,
		Timestamp:   s.clock.Now(),
		FieldChanges: []models.FieldChange{
			{FieldID: fieldID, FieldName: fieldName, OldValue: oldValue, NewValue: newValue},
		},
	}
	ev.Active = true
	if err := s.repo.Record(tx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *AuditService) ForRequest(requestID uuid.UUID) ([]models.AuditEvent, error) {
	return s.repo.ForRequest(requestID)
}

func (s *AuditService) ByEventType(eventType string) ([]models.AuditEvent, error) {
	return s.repo.ByEventType(eventType)
}
