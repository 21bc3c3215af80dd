package services

import (
	"github.com/google/uuid"

	"app-purchase-request-workflow/models"
	"app-purchase-request-workflow/repositories"
)

// AccessScopeService is the service layer for C5: role grants and role
// membership queries (spec.md §4.5).
type AccessScopeService struct {
	repo *repositories.AccessScopeRepository
}

func NewAccessScopeService(repo *repositories.AccessScopeRepository) *AccessScopeService {
	return &AccessScopeService{repo: repo}
}

// Grant records that userID holds roleLookupID on teamID.
func (s *AccessScopeService) Grant(userID, teamID, roleLookupID uuid.UUID, positionTitle string) (*models.AccessScope, error) {
	scope := &models.AccessScope{
		UserID:        userID,
		TeamID:        teamID,
		RoleLookupID:  roleLookupID,
		PositionTitle: positionTitle,
	}
	scope.Active = true
	if err := s.repo.Create(scope); err != nil {
		return nil, err
	}
	return scope, nil
}

// RolesOf returns the distinct roles userID holds on teamID.
func (s *AccessScopeService) RolesOf(userID, teamID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.RolesOf(userID, teamID)
}

// HasRole reports whether userID holds roleLookupID on teamID.
func (s *AccessScopeService) HasRole(userID, teamID, roleLookupID uuid.UUID) (bool, error) {
	return s.repo.HasRole(userID, teamID, roleLookupID)
}

// UsersWithRole returns the distinct users holding roleLookupID on teamID.
func (s *AccessScopeService) UsersWithRole(teamID, roleLookupID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.UsersWithRole(teamID, roleLookupID)
}

// HasAnyRole reports whether userID holds at least one of roleLookupIDs
// on teamID, stopping at the first role found.
func (s *AccessScopeService) HasAnyRole(userID, teamID uuid.UUID, roleLookupIDs []uuid.UUID) (bool, error) {
	for _, r := range roleLookupIDs {
		ok, err := s.repo.HasRole(userID, teamID, r)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
