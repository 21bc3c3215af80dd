package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is the common mixin every domain entity embeds: a stable opaque
// identifier, creation/update timestamps, and a soft-disable flag.
// Domain rows are never physically deleted, only marked Active=false.
type Base struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
}

// BeforeCreate assigns an ID when the caller hasn't already pinned one.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
