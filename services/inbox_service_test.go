package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app-purchase-request-workflow/models"
	"app-purchase-request-workflow/services"
)

func containsRequest(reqs []models.PurchaseRequest, id uuid.UUID) bool {
	for _, r := range reqs {
		if r.ID == id {
			return true
		}
	}
	return false
}

// TestInboxRouter_Dedup covers spec.md §4.8/§8 property 9: a request
// appears in exactly the inbox matching who still owes an action on it,
// and drops out of the approver inbox once that approver has acted.
func TestInboxRouter_Dedup(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	teamID, managerID, financeID := h.setupSingleApproverWorkflow(t)
	requestorID := uuid.New()

	submittedReq, err := h.engine.DraftCreate(ctx, requestorID, teamID, services.CreateDraftRequest{PurchaseTypeCode: models.PurchaseTypeGood, Subject: "Standing desks"})
	require.NoError(t, err)
	require.NoError(t, h.engine.SetField(ctx, submittedReq.ID, requestorID, "justification", "Ergonomics"))
	_, err = h.engine.Submit(ctx, submittedReq.ID, requestorID)
	require.NoError(t, err)

	draftOnly, err := h.engine.DraftCreate(ctx, requestorID, teamID, services.CreateDraftRequest{PurchaseTypeCode: models.PurchaseTypeGood, Subject: "Unfinished request"})
	require.NoError(t, err)

	approverInbox, err := h.inbox.ApproverInbox(managerID)
	require.NoError(t, err)
	assert.True(t, containsRequest(approverInbox, submittedReq.ID), "manager should see the submitted request awaiting their approval")

	financeInbox, err := h.inbox.FinanceInbox(financeID)
	require.NoError(t, err)
	assert.False(t, containsRequest(financeInbox, submittedReq.ID), "finance has nothing to do until the manager step clears")

	requestorInbox, err := h.inbox.RequestorInbox(requestorID)
	require.NoError(t, err)
	assert.True(t, containsRequest(requestorInbox, draftOnly.ID), "the requestor's own unfinished draft belongs in their inbox")
	assert.False(t, containsRequest(requestorInbox, submittedReq.ID), "a submitted request is no longer the requestor's to act on")

	_, err = h.engine.Approve(ctx, submittedReq.ID, managerID, "MANAGER", "approved")
	require.NoError(t, err)

	approverInboxAfter, err := h.inbox.ApproverInbox(managerID)
	require.NoError(t, err)
	assert.False(t, containsRequest(approverInboxAfter, submittedReq.ID), "manager already acted, request must drop out of their inbox")

	financeInboxAfter, err := h.inbox.FinanceInbox(financeID)
	require.NoError(t, err)
	assert.True(t, containsRequest(financeInboxAfter, submittedReq.ID), "finance now owes the final review")
}

// TestInboxRouter_RequestorInbox_ShowsRejected verifies a rejected
// request returns to the requestor's inbox for resubmission.
func TestInboxRouter_RequestorInbox_ShowsRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	teamID, managerID, _ := h.setupSingleApproverWorkflow(t)
	requestorID := uuid.New()

	req, err := h.engine.DraftCreate(ctx, requestorID, teamID, services.CreateDraftRequest{PurchaseTypeCode: models.PurchaseTypeGood, Subject: "Office chairs"})
	require.NoError(t, err)
	require.NoError(t, h.engine.SetField(ctx, req.ID, requestorID, "justification", "Replacement"))
	_, err = h.engine.Submit(ctx, req.ID, requestorID)
	require.NoError(t, err)

	_, err = h.engine.Reject(ctx, req.ID, managerID, services.RejectRequest{RoleCode: "MANAGER", Comment: "Needs a cheaper vendor quote"})
	require.NoError(t, err)

	requestorInbox, err := h.inbox.RequestorInbox(requestorID)
	require.NoError(t, err)
	assert.True(t, containsRequest(requestorInbox, req.ID))
}
