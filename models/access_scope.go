package models

import "github.com/google/uuid"

// User is the minimal identity the engine authorizes against. Full
// profile/auth concerns (password, session, token minting) belong to
// the out-of-scope transport layer; the engine only needs a stable ID.
type User struct {
	Base
	Username string `json:"username" gorm:"uniqueIndex;not null;size:64"`
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:128"`
}

// AccessScope asserts that User holds Role on Team. A user may hold
// multiple roles on the same team (multiple AccessScope rows); holding
// the same role via two rows still counts once (spec.md §4.7 tie-breaking).
type AccessScope struct {
	Base
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_access_scope_user_team_role"`
	TeamID       uuid.UUID `json:"team_id" gorm:"type:uuid;not null;uniqueIndex:idx_access_scope_user_team_role"`
	RoleLookupID uuid.UUID `json:"role_lookup_id" gorm:"type:uuid;not null;uniqueIndex:idx_access_scope_user_team_role"`
	PositionTitle string   `json:"position_title,omitempty"`
}
