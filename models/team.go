package models

// Team is the tenancy boundary the engine routes and authorizes against.
// Teams are never deleted, only soft-disabled.
type Team struct {
	Base
	Name        string `json:"name" gorm:"uniqueIndex;not null;size:128"`
	Description string `json:"description"`
}
