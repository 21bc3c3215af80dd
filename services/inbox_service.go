package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"app-purchase-request-workflow/models"
	"app-purchase-request-workflow/repositories"
)

// InboxRouter is the service layer for C8: computes, for a user, the
// set of requests currently awaiting their action across the approver,
// finance, and requestor views, deduplicated so a request never appears
// in more than one category for the same user (spec.md §4.8, §8
// property 9).
type InboxRouter struct {
	db *gorm.DB

	requests  *repositories.RequestRepository
	workflows *repositories.WorkflowTemplateRepository
	lookups   *repositories.LookupRepository
	approvals *repositories.ApprovalHistoryRepository

	accessScope *AccessScopeService
}

func NewInboxRouter(
	db *gorm.DB,
	requests *repositories.RequestRepository,
	workflows *repositories.WorkflowTemplateRepository,
	lookups *repositories.LookupRepository,
	approvals *repositories.ApprovalHistoryRepository,
	accessScope *AccessScopeService,
) *InboxRouter {
	return &InboxRouter{
		db:          db,
		requests:    requests,
		workflows:   workflows,
		lookups:     lookups,
		approvals:   approvals,
		accessScope: accessScope,
	}
}

// ApproverInbox returns requests parked at a non-finance step where
// userID holds an approver role and has not yet acted at that step.
func (r *InboxRouter) ApproverInbox(userID uuid.UUID) ([]models.PurchaseRequest, error) {
	candidates, err := r.pendingActionCandidates(userID)
	if err != nil {
		return nil, err
	}

	var out []models.PurchaseRequest
	for _, c := range candidates {
		if c.step.IsFinanceReview {
			continue
		}
		if eligible, err := r.userEligibleAtStep(userID, c); err != nil {
			return nil, err
		} else if eligible {
			out = append(out, c.req)
		}
	}
	return out, nil
}

// FinanceInbox returns requests parked at their pinned workflow's finance
// step where userID holds a role authorized at that step and has not yet
// acted there.
func (r *InboxRouter) FinanceInbox(userID uuid.UUID) ([]models.PurchaseRequest, error) {
	candidates, err := r.pendingActionCandidates(userID)
	if err != nil {
		return nil, err
	}

	var out []models.PurchaseRequest
	for _, c := range candidates {
		if !c.step.IsFinanceReview {
			continue
		}
		if eligible, err := r.userEligibleAtStep(userID, c); err != nil {
			return nil, err
		} else if eligible {
			out = append(out, c.req)
		}
	}
	return out, nil
}

// RequestorInbox returns requests userID filed that are still theirs to
// act on: DRAFT (unfinished) or REJECTED (awaiting resubmission).
func (r *InboxRouter) RequestorInbox(userID uuid.UUID) ([]models.PurchaseRequest, error) {
	all, err := r.requests.ByRequestor(userID)
	if err != nil {
		return nil, fmt.Errorf("load requestor requests: %w", err)
	}

	var out []models.PurchaseRequest
	for _, req := range all {
		code, err := r.statusCode(req.StatusLookupID)
		if err != nil {
			return nil, err
		}
		if code == models.StatusDraft || code == models.StatusRejected {
			out = append(out, req)
		}
	}
	return out, nil
}

type pendingCandidate struct {
	req  models.PurchaseRequest
	step *models.WorkflowTemplateStep
}

// pendingActionCandidates loads every active request in PENDING_APPROVAL,
// IN_REVIEW or FINANCE_REVIEW on a team userID belongs to and parked at a
// step, along with that step — the shared base query both ApproverInbox
// and FinanceInbox filter by role membership (spec.md §4.8).
func (r *InboxRouter) pendingActionCandidates(userID uuid.UUID) ([]pendingCandidate, error) {
	roles, err := r.teamsForUser(userID)
	if err != nil {
		return nil, err
	}

	var candidates []pendingCandidate
	for teamID := range roles {
		reqs, err := r.requestsAwaitingActionForTeam(teamID)
		if err != nil {
			return nil, err
		}
		for _, req := range reqs {
			if req.CurrentTemplateStepID == nil {
				continue
			}
			step, err := r.workflows.StepByID(*req.CurrentTemplateStepID)
			if err != nil {
				return nil, fmt.Errorf("load step for request %s: %w", req.ID, err)
			}
			candidates = append(candidates, pendingCandidate{req: req, step: step})
		}
	}
	return candidates, nil
}

// teamsForUser returns the set of team IDs userID holds any active
// AccessScope on.
func (r *InboxRouter) teamsForUser(userID uuid.UUID) (map[uuid.UUID]bool, error) {
	var scopeTeamIDs []uuid.UUID
	err := r.db.Model(&models.AccessScope{}).
		Where("user_id = ? AND active = ?", userID, true).
		Distinct("team_id").
		Pluck("team_id", &scopeTeamIDs).Error
	if err != nil {
		return nil, fmt.Errorf("load teams for user: %w", err)
	}
	out := make(map[uuid.UUID]bool, len(scopeTeamIDs))
	for _, t := range scopeTeamIDs {
		out[t] = true
	}
	return out, nil
}

func (r *InboxRouter) requestsAwaitingActionForTeam(teamID uuid.UUID) ([]models.PurchaseRequest, error) {
	pending, err := r.lookups.Resolve(models.LookupTypeRequestStatus, models.StatusPendingApproval)
	if err != nil {
		return nil, err
	}
	inReview, err := r.lookups.Resolve(models.LookupTypeRequestStatus, models.StatusInReview)
	if err != nil {
		return nil, err
	}
	financeReview, err := r.lookups.Resolve(models.LookupTypeRequestStatus, models.StatusFinanceReview)
	if err != nil {
		return nil, err
	}

	var out []models.PurchaseRequest
	err = r.db.Where("team_id = ? AND active = ? AND status_lookup_id IN ?",
		teamID, true, []uuid.UUID{pending.ID, inReview.ID, financeReview.ID}).
		Find(&out).Error
	return out, err
}

// userEligibleAtStep reports whether userID holds a role in c.step's
// approver set on the request's team and has not already acted at that
// (request, step) — the de-duplication rule of spec.md §4.8.
func (r *InboxRouter) userEligibleAtStep(userID uuid.UUID, c pendingCandidate) (bool, error) {
	hasAnyRole := false
	for _, approver := range c.step.Approvers {
		ok, err := r.accessScope.HasRole(userID, c.req.TeamID, approver.RoleLookupID)
		if err != nil {
			return false, err
		}
		if ok {
			hasAnyRole = true
			break
		}
	}
	if !hasAnyRole {
		return false, nil
	}

	actedApprove, err := r.approvals.HasActed(r.db, c.req.ID, c.step.ID, userID, models.ApprovalActionApprove)
	if err != nil {
		return false, err
	}
	actedReject, err := r.approvals.HasActed(r.db, c.req.ID, c.step.ID, userID, models.ApprovalActionReject)
	if err != nil {
		return false, err
	}
	return !actedApprove && !actedReject, nil
}

func (r *InboxRouter) statusCode(statusID uuid.UUID) (string, error) {
	var l models.Lookup
	if err := r.db.First(&l, "id = ?", statusID).Error; err != nil {
		return "", fmt.Errorf("resolve status code: %w", err)
	}
	return l.Code, nil
}
