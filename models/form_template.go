package models

import "github.com/google/uuid"

// Form field types. FILE_UPLOAD fields are never stored in
// RequestFieldValue — they are satisfied by Attachment rows bound to the
// field's AttachmentCategoryName (see FormField).
const (
	FieldTypeText       = "TEXT"
	FieldTypeNumber     = "NUMBER"
	FieldTypeDate       = "DATE"
	FieldTypeBoolean    = "BOOLEAN"
	FieldTypeDropdown   = "DROPDOWN"
	FieldTypeFileUpload = "FILE_UPLOAD"
)

// FormTemplate is a globally versioned, team-agnostic form definition.
// Version numbers are monotonic per Name; a template referenced by any
// request is never mutated in place (see services.FormTemplateService).
type FormTemplate struct {
	Base
	Name          string     `json:"name" gorm:"not null;size:128;uniqueIndex:idx_form_template_name_version"`
	VersionNumber int        `json:"version_number" gorm:"not null;uniqueIndex:idx_form_template_name_version"`
	CreatedByID   *uuid.UUID `json:"created_by" gorm:"type:uuid"`

	Fields []FormField `json:"fields,omitempty" gorm:"foreignKey:TemplateID"`
}

// FormField is one field definition within a FormTemplate. FieldID is
// stable across versions of a template family so diffing (C2) can match
// fields between an old and a cloned version.
type FormField struct {
	Base
	TemplateID uuid.UUID `json:"template_id" gorm:"type:uuid;not null;uniqueIndex:idx_form_field_template_field"`
	FieldID    string    `json:"field_id" gorm:"not null;size:64;uniqueIndex:idx_form_field_template_field"`
	Label      string    `json:"label" gorm:"not null;size:128"`
	Type       string    `json:"type" gorm:"not null;size:16"`
	Required   bool      `json:"required"`
	// Order is mapped to column field_order: "order" is a reserved word
	// in SQL and unsafe to use unquoted in an ORDER BY clause.
	Order      int       `json:"order" gorm:"column:field_order"`
	Default    *string   `json:"default"`
	HelpText   string    `json:"help_text"`

	// DropdownOptions is non-empty iff Type == FieldTypeDropdown.
	DropdownOptions []string `json:"dropdown_options,omitempty" gorm:"serializer:json"`
	// ValidationRules is an opaque bag of extra constraints (min/max,
	// regex, etc.) interpreted by callers outside the engine's core.
	ValidationRules map[string]any `json:"validation_rules,omitempty" gorm:"serializer:json"`

	// AttachmentCategoryName makes the FILE_UPLOAD<->AttachmentCategory
	// binding explicit (spec Open Question, resolved in SPEC_FULL.md §3).
	// Required and meaningful only when Type == FieldTypeFileUpload.
	AttachmentCategoryName string `json:"attachment_category_name,omitempty" gorm:"size:128"`
}

// IsDropdown reports whether this field's invariant requires options.
func (f FormField) IsDropdown() bool {
	return f.Type == FieldTypeDropdown
}
