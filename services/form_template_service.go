package services

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"app-purchase-request-workflow/apperr"
	"app-purchase-request-workflow/models"
	"app-purchase-request-workflow/repositories"
)

// FieldDiff describes one field's change between two versions of a
// FormTemplate family, keyed by the stable FieldID (spec.md §4.2).
type FieldDiff struct {
	FieldID string
	Added   bool
	Removed bool
	Changed bool
}

// FormTemplateService is the service layer for C2: create-and-version,
// clone-and-bump, and version diffing of form templates.
type FormTemplateService struct {
	db   *gorm.DB
	repo *repositories.FormTemplateRepository
}

func NewFormTemplateService(db *gorm.DB, repo *repositories.FormTemplateRepository) *FormTemplateService {
	return &FormTemplateService{db: db, repo: repo}
}

// Create persists a brand-new template family at version 1.
func (s *FormTemplateService) Create(name string, createdBy *uuid.UUID, fields []models.FormField) (*models.FormTemplate, error) {
	var created *models.FormTemplate

	err := s.db.Transaction(func(tx *gorm.DB) error {
		next, err := s.repo.NextVersionNumber(tx, name)
		if err != nil {
			return fmt.Errorf("resolve next version: %w", err)
		}

		t := &models.FormTemplate{
			Name:          name,
			VersionNumber: next,
			CreatedByID:   createdBy,
			Fields:        fields,
		}
		if err := s.repo.Create(tx, t); err != nil {
			return fmt.Errorf("create form template: %w", err)
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CloneAndBump copies the latest version of name, applies mutate to a
// shallow copy of its fields, and persists the result as the next
// version — the edit path every template change goes through, since
// templates already referenced by a request are never mutated in place
// (spec.md §4.2, §8 property 1).
func (s *FormTemplateService) CloneAndBump(name string, createdBy *uuid.UUID, mutate func([]models.FormField) []models.FormField) (*models.FormTemplate, error) {
	versions, err := s.repo.ListVersions(name)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	if len(versions) == 0 {
		return nil, apperr.Newf(apperr.KindLookupNotFound, "no existing template named %q to clone", name)
	}
	latest, err := s.repo.GetWithFields(versions[0].ID)
	if err != nil {
		return nil, fmt.Errorf("load latest version: %w", err)
	}

	cloned := make([]models.FormField, len(latest.Fields))
	copy(cloned, latest.Fields)
	for i := range cloned {
		cloned[i].Base = models.Base{}
	}
	newFields := mutate(cloned)

	var created *models.FormTemplate
	err = s.db.Transaction(func(tx *gorm.DB) error {
		next, err := s.repo.NextVersionNumber(tx, name)
		if err != nil {
			return fmt.Errorf("resolve next version: %w", err)
		}
		t := &models.FormTemplate{
			Name:          name,
			VersionNumber: next,
			CreatedByID:   createdBy,
			Fields:        newFields,
		}
		if err := s.repo.Create(tx, t); err != nil {
			return fmt.Errorf("create cloned template: %w", err)
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Diff compares two versions of a template family by FieldID, reporting
// additions, removals, and changes (any attribute fieldChanged compares).
func (s *FormTemplateService) Diff(oldID, newID uuid.UUID) ([]FieldDiff, error) {
	oldT, err := s.repo.GetWithFields(oldID)
	if err != nil {
		return nil, fmt.Errorf("load old version: %w", err)
	}
	newT, err := s.repo.GetWithFields(newID)
	if err != nil {
		return nil, fmt.Errorf("load new version: %w", err)
	}

	oldByField := make(map[string]models.FormField, len(oldT.Fields))
	for _, f := range oldT.Fields {
		oldByField[f.FieldID] = f
	}
	newByField := make(map[string]models.FormField, len(newT.Fields))
	for _, f := range newT.Fields {
		newByField[f.FieldID] = f
	}

	var diffs []FieldDiff
	for id, nf := range newByField {
		of, existed := oldByField[id]
		if !existed {
			diffs = append(diffs, FieldDiff{FieldID: id, Added: true})
			continue
		}
		if fieldChanged(of, nf) {
			diffs = append(diffs, FieldDiff{FieldID: id, Changed: true})
		}
	}
	for id := range oldByField {
		if _, stillPresent := newByField[id]; !stillPresent {
			diffs = append(diffs, FieldDiff{FieldID: id, Removed: true})
		}
	}
	return diffs, nil
}

// fieldChanged compares every attribute spec.md §4.2 names as forcing a
// new version: label, type, required, order, default, help text,
// validation rules, and dropdown options.
func fieldChanged(a, b models.FormField) bool {
	if a.Label != b.Label || a.Type != b.Type || a.Required != b.Required || a.Order != b.Order {
		return true
	}
	if a.HelpText != b.HelpText {
		return true
	}
	if !stringPtrEqual(a.Default, b.Default) {
		return true
	}
	if a.AttachmentCategoryName != b.AttachmentCategoryName {
		return true
	}
	if len(a.DropdownOptions) != len(b.DropdownOptions) {
		return true
	}
	for i := range a.DropdownOptions {
		if a.DropdownOptions[i] != b.DropdownOptions[i] {
			return true
		}
	}
	if !reflect.DeepEqual(a.ValidationRules, b.ValidationRules) {
		return true
	}
	return false
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// GetWithFields returns one concrete template version by ID.
func (s *FormTemplateService) GetWithFields(id uuid.UUID) (*models.FormTemplate, error) {
	return s.repo.GetWithFields(id)
}
