package repositories

import (
	"gorm.io/gorm"

	"github.com/google/uuid"

	"app-purchase-request-workflow/models"
)

// AccessScopeRepository is the gorm-backed store for C5: who holds what
// role on what team.
type AccessScopeRepository struct {
	db *gorm.DB
}

func NewAccessScopeRepository(db *gorm.DB) *AccessScopeRepository {
	return &AccessScopeRepository{db: db}
}

// RolesOf returns the distinct role lookup IDs userID holds on teamID.
func (r *AccessScopeRepository) RolesOf(userID, teamID uuid.UUID) ([]uuid.UUID, error) {
	var scopes []models.AccessScope
	err := r.db.Where("user_id = ? AND team_id = ? AND active = ?", userID, teamID, true).Find(&scopes).Error
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(scopes))
	out := make([]uuid.UUID, 0, len(scopes))
	for _, s := range scopes {
		if !seen[s.RoleLookupID] {
			seen[s.RoleLookupID] = true
			out = append(out, s.RoleLookupID)
		}
	}
	return out, nil
}

// HasRole reports whether userID holds roleLookupID on teamID.
func (r *AccessScopeRepository) HasRole(userID, teamID, roleLookupID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.AccessScope{}).
		Where("user_id = ? AND team_id = ? AND role_lookup_id = ? AND active = ?", userID, teamID, roleLookupID, true).
		Count(&count).Error
	return count > 0, err
}

// UsersWithRole returns the distinct user IDs holding roleLookupID on
// teamID (spec.md §4.5 users_with_role).
func (r *AccessScopeRepository) UsersWithRole(teamID, roleLookupID uuid.UUID) ([]uuid.UUID, error) {
	var scopes []models.AccessScope
	err := r.db.Where("team_id = ? AND role_lookup_id = ? AND active = ?", teamID, roleLookupID, true).Find(&scopes).Error
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(scopes))
	out := make([]uuid.UUID, 0, len(scopes))
	for _, s := range scopes {
		if !seen[s.UserID] {
			seen[s.UserID] = true
			out = append(out, s.UserID)
		}
	}
	return out, nil
}

func (r *AccessScopeRepository) Create(scope *models.AccessScope) error {
	return r.db.Create(scope).Error
}

func (r *AccessScopeRepository) DB() *gorm.DB { return r.db }
