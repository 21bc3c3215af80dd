package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"app-purchase-request-workflow/apperr"
	"app-purchase-request-workflow/config"
	"app-purchase-request-workflow/models"
	"app-purchase-request-workflow/repositories"
	"app-purchase-request-workflow/utils"
)

// Engine is the Request Lifecycle Engine (C7), the hard-engineering
// nucleus: draft, validate, submit, approve, reject, resubmit, withdraw.
// Every mutating method runs inside one transaction, row-locking the
// target PurchaseRequest before any state-dependent read, mirroring the
// teacher's tx := db.Begin() / defer recover / commit-or-rollback idiom
// throughout services/approval_service.go.
type Engine struct {
	db *gorm.DB

	requests   *repositories.RequestRepository
	forms      *repositories.FormTemplateRepository
	workflows  *repositories.WorkflowTemplateRepository
	lookups    *repositories.LookupRepository
	approvals  *repositories.ApprovalHistoryRepository
	attachRepo *repositories.AttachmentRepository

	teamConfig   *TeamConfigService
	accessScope  *AccessScopeService
	attachments  *AttachmentService
	audit        *AuditService

	clock  utils.Clock
	cfg    *config.Config
	logger *utils.Logger
}

func NewEngine(
	db *gorm.DB,
	requests *repositories.RequestRepository,
	forms *repositories.FormTemplateRepository,
	workflows *repositories.WorkflowTemplateRepository,
	lookups *repositories.LookupRepository,
	approvals *repositories.ApprovalHistoryRepository,
	attachRepo *repositories.AttachmentRepository,
	teamConfig *TeamConfigService,
	accessScope *AccessScopeService,
	attachments *AttachmentService,
	audit *AuditService,
	clock utils.Clock,
	cfg *config.Config,
) *Engine {
	return &Engine{
		db:          db,
		requests:    requests,
		forms:       forms,
		workflows:   workflows,
		lookups:     lookups,
		approvals:   approvals,
		attachRepo:  attachRepo,
		teamConfig:  teamConfig,
		accessScope: accessScope,
		attachments: attachments,
		audit:       audit,
		clock:       clock,
		cfg:         cfg,
		logger:      utils.GetLogger(),
	}
}

// statusLookup resolves a REQUEST_STATUS code through the cached
// registry (C1); lookups are read-mostly and never written inside a
// lifecycle transaction, so this always reads through the repository's
// own connection rather than the caller's tx.
func (e *Engine) statusLookup(code string) (*models.Lookup, error) {
	return e.lookups.Resolve(models.LookupTypeRequestStatus, code)
}

// HeaderFields carries the request-level (non-form) attributes set at
// draft creation.
type HeaderFields struct {
	VendorName    string
	VendorAccount string
	Subject       string
	Description   string
}

// DraftCreate validates the inbound DTO, resolves the team's active
// (form, workflow) template pair via C4, pins both onto a new request,
// and emits REQUEST_CREATED (spec.md §4.7 draft_create()).
func (e *Engine) DraftCreate(ctx context.Context, requestorID, teamID uuid.UUID, in CreateDraftRequest) (*models.PurchaseRequest, error) {
	if err := utils.Validate(in); err != nil {
		return nil, apperr.Newf(apperr.KindValidationFailed, "%s", err.Error())
	}

	header := HeaderFields{
		VendorName:    in.VendorName,
		VendorAccount: in.VendorAccount,
		Subject:       in.Subject,
		Description:   in.Description,
	}
	purchaseType, err := e.lookups.Resolve(models.LookupTypePurchaseType, in.PurchaseTypeCode)
	if err != nil {
		return nil, err
	}

	cfg, err := e.teamConfig.ResolveActive(teamID, purchaseType.ID)
	if err != nil {
		return nil, err
	}

	draftStatus, err := e.statusLookup(models.StatusDraft)
	if err != nil {
		return nil, err
	}

	var created *models.PurchaseRequest
	err = e.db.Transaction(func(tx *gorm.DB) error {
		req := &models.PurchaseRequest{
			RequestorUserID:          requestorID,
			TeamID:                   teamID,
			PurchaseTypeLookupID:     purchaseType.ID,
			StatusLookupID:           draftStatus.ID,
			PinnedFormTemplateID:     cfg.FormTemplateID,
			PinnedWorkflowTemplateID: cfg.WorkflowTemplateID,
			VendorName:               header.VendorName,
			VendorAccount:            header.VendorAccount,
			Subject:                  header.Subject,
			Description:              header.Description,
		}
		req.Active = true
		if err := e.requests.Create(tx, req); err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		if _, err := e.audit.Record(tx, models.EventRequestCreated, &requestorID, &req.ID, nil); err != nil {
			return fmt.Errorf("record audit: %w", err)
		}

		created = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(utils.Fields{"request_id": created.ID, "event_type": models.EventRequestCreated, "actor": requestorID}).Info("request created")
	return created, nil
}

// SetField stores value into the typed slot matching fieldID's declared
// type, allowed only while the request is owned by its requestor
// (DRAFT or REJECTED) (spec.md §4.7 set_field()).
func (e *Engine) SetField(ctx context.Context, requestID, actorID uuid.UUID, fieldID string, value any) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		req, err := e.requests.LockForUpdate(tx, requestID)
		if err != nil {
			return err
		}
		if req.RequestorUserID != actorID {
			return apperr.New(apperr.KindPermissionDenied, "only the requestor may set field values")
		}

		statusCode, err := e.resolveStatusCode(req.StatusLookupID)
		if err != nil {
			return err
		}
		if statusCode != models.StatusDraft && statusCode != models.StatusRejected {
			return apperr.Newf(apperr.KindInvalidTransition, "cannot set fields while request is %s", statusCode)
		}

		template, err := e.forms.GetWithFields(req.PinnedFormTemplateID)
		if err != nil {
			return fmt.Errorf("load pinned form template: %w", err)
		}
		field := findField(template.Fields, fieldID)
		if field == nil {
			return apperr.Newf(apperr.KindValidationFailed, "unknown field %q for this request's pinned template", fieldID)
		}

		existing, err := e.requests.FieldValues(req.ID)
		if err != nil {
			return fmt.Errorf("load existing field values: %w", err)
		}
		var oldValue string
		for _, v := range existing {
			if v.FieldID == field.ID {
				oldValue = displayValue(v)
				break
			}
		}

		fv, err := typedFieldValue(req.ID, field.ID, field.Type, value)
		if err != nil {
			return err
		}
		if err := e.requests.UpsertFieldValue(tx, fv); err != nil {
			return fmt.Errorf("upsert field value: %w", err)
		}

		if _, err := e.audit.RecordFieldUpdate(tx, actorID, req.ID, &field.ID, field.Label, oldValue, displayValue(*fv)); err != nil {
			return fmt.Errorf("record audit: %w", err)
		}
		return nil
	})
}

// UploadAttachment is allowed in any non-terminal state; when
// approvalHistoryID is non-nil the attachment is bound to the
// approve/reject action it accompanied (spec.md §4.7 upload_attachment()).
func (e *Engine) UploadAttachment(ctx context.Context, requestID, actorID uuid.UUID, categoryID, approvalHistoryID *uuid.UUID, filename string, size int64, mimeType string, data io.Reader) (*models.Attachment, error) {
	var created *models.Attachment
	err := e.db.Transaction(func(tx *gorm.DB) error {
		req, err := e.requests.LockForUpdate(tx, requestID)
		if err != nil {
			return err
		}
		statusCode, err := e.resolveStatusCode(req.StatusLookupID)
		if err != nil {
			return err
		}
		if statusCode == models.StatusCompleted || statusCode == models.StatusArchived {
			return apperr.Newf(apperr.KindInvalidTransition, "cannot upload attachments once request is %s", statusCode)
		}

		a, err := e.attachments.Upload(ctx, tx, req.ID, categoryID, approvalHistoryID, actorID, filename, size, mimeType, data)
		if err != nil {
			return err
		}

		meta := map[string]any{"filename": filename}
		if _, err := e.audit.Record(tx, models.EventAttachmentUpload, &actorID, &req.ID, meta); err != nil {
			return fmt.Errorf("record audit: %w", err)
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Submit validates the pinned template's required fields/attachments
// and, on success, parks the request at step 1 (spec.md §4.7 submit()).
func (e *Engine) Submit(ctx context.Context, requestID, actorID uuid.UUID) (*models.PurchaseRequest, error) {
	var result *models.PurchaseRequest
	err := withRetry(3, 10*time.Millisecond, func() error {
		return e.db.Transaction(func(tx *gorm.DB) error {
			req, err := e.requests.LockForUpdate(tx, requestID)
			if err != nil {
				return err
			}
			if req.RequestorUserID != actorID {
				return apperr.New(apperr.KindPermissionDenied, "only the requestor may submit this request")
			}

			statusCode, err := e.resolveStatusCode(req.StatusLookupID)
			if err != nil {
				return err
			}
			if statusCode != models.StatusDraft && statusCode != models.StatusRejected && statusCode != models.StatusResubmitted {
				return apperr.Newf(apperr.KindInvalidTransition, "cannot submit a request in status %s", statusCode)
			}

			if err := e.validateSubmission(req); err != nil {
				return err
			}

			firstStep, err := e.workflows.StepByOrder(req.PinnedWorkflowTemplateID, 1)
			if err != nil {
				return fmt.Errorf("load first step: %w", err)
			}

			pendingStatus, err := e.statusLookup(models.StatusPendingApproval)
			if err != nil {
				return err
			}

			now := e.clock.Now()
			req.CurrentTemplateStepID = &firstStep.ID
			req.StatusLookupID = pendingStatus.ID
			req.SubmittedAt = &now
			if err := e.requests.Save(tx, req); err != nil {
				return fmt.Errorf("save request: %w", err)
			}

			if _, err := e.audit.Record(tx, models.EventRequestSubmitted, &actorID, &req.ID, nil); err != nil {
				return fmt.Errorf("record audit: %w", err)
			}
			if _, err := e.audit.Record(tx, models.EventWorkflowStepChange, &actorID, &req.ID, map[string]any{"step_order": firstStep.StepOrder}); err != nil {
				return fmt.Errorf("record audit: %w", err)
			}

			result = req
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Approve records an APPROVE at the request's current step, advancing
// the step or completing the request once every required role has
// approved (spec.md §4.7 approve()).
func (e *Engine) Approve(ctx context.Context, requestID, actorID uuid.UUID, roleCode, comment string) (*models.PurchaseRequest, error) {
	var result *models.PurchaseRequest
	err := withRetry(3, 10*time.Millisecond, func() error {
		return e.db.Transaction(func(tx *gorm.DB) error {
			req, step, role, err := e.authorizeStepAction(tx, requestID, actorID, roleCode)
			if err != nil {
				return err
			}

			acted, err := e.approvals.HasActed(tx, req.ID, step.ID, actorID, models.ApprovalActionApprove)
			if err != nil {
				return err
			}
			if acted {
				return apperr.New(apperr.KindAlreadyActed, "actor already approved this request at this step")
			}

			now := e.clock.Now()
			hist := &models.ApprovalHistory{
				RequestID:      req.ID,
				TemplateStepID: step.ID,
				ApproverUserID: actorID,
				RoleLookupID:   role.ID,
				Action:         models.ApprovalActionApprove,
				Comment:        comment,
				Timestamp:      now,
			}
			hist.Active = true
			if err := e.approvals.Create(tx, hist); err != nil {
				return fmt.Errorf("record approval: %w", err)
			}
			if _, err := e.audit.Record(tx, models.EventApproval, &actorID, &req.ID, map[string]any{"role_lookup_id": role.ID, "step_order": step.StepOrder}); err != nil {
				return fmt.Errorf("record audit: %w", err)
			}

			approvedRoles, err := e.approvals.ApprovedRoles(tx, req.ID, step.ID)
			if err != nil {
				return err
			}
			if !stepComplete(step, approvedRoles) {
				inReview, err := e.statusLookup(models.StatusInReview)
				if err != nil {
					return err
				}
				req.StatusLookupID = inReview.ID
				if err := e.requests.Save(tx, req); err != nil {
					return fmt.Errorf("save request: %w", err)
				}
				result = req
				return nil
			}

			if err := e.advanceAfterStepComplete(tx, req, step, actorID, now); err != nil {
				return err
			}
			result = req
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// advanceAfterStepComplete moves the request past a fully-approved step:
// to COMPLETED if it was the finance step, otherwise to the next step
// (spec.md §4.7 approve()/advance; §9 Open Question decision 2 on
// FULLY_APPROVED as an audit-metadata tag only).
func (e *Engine) advanceAfterStepComplete(tx *gorm.DB, req *models.PurchaseRequest, step *models.WorkflowTemplateStep, actorID uuid.UUID, now time.Time) error {
	if step.IsFinanceReview {
		completed, err := e.statusLookup(models.StatusCompleted)
		if err != nil {
			return err
		}
		req.StatusLookupID = completed.ID
		req.CompletedAt = &now
		if err := e.requests.Save(tx, req); err != nil {
			return fmt.Errorf("save request: %w", err)
		}
		_, err = e.audit.Record(tx, models.EventRequestCompleted, &actorID, &req.ID, nil)
		return err
	}

	nextStep, err := e.workflows.StepByOrder(req.PinnedWorkflowTemplateID, step.StepOrder+1)
	if err != nil {
		return fmt.Errorf("load next step: %w", err)
	}

	var newStatusCode string
	meta := map[string]any{"step_order": nextStep.StepOrder}
	if nextStep.IsFinanceReview {
		newStatusCode = models.StatusFinanceReview
		meta["fully_approved"] = true
	} else {
		newStatusCode = models.StatusPendingApproval
	}

	newStatus, err := e.statusLookup(newStatusCode)
	if err != nil {
		return err
	}
	req.CurrentTemplateStepID = &nextStep.ID
	req.StatusLookupID = newStatus.ID
	if err := e.requests.Save(tx, req); err != nil {
		return fmt.Errorf("save request: %w", err)
	}

	_, err = e.audit.Record(tx, models.EventWorkflowStepChange, &actorID, &req.ID, meta)
	return err
}

// Reject appends a REJECT history row and moves the request to
// REJECTED, preserving current_template_step so resubmission resumes
// at the step where rejection occurred (spec.md §4.7 reject()).
func (e *Engine) Reject(ctx context.Context, requestID, actorID uuid.UUID, in RejectRequest) (*models.PurchaseRequest, error) {
	if err := utils.Validate(in); err != nil {
		return nil, apperr.Newf(apperr.KindValidationFailed, "%s", err.Error())
	}
	roleCode, comment := in.RoleCode, in.Comment

	trimmed := strings.TrimSpace(comment)
	if len([]rune(trimmed)) < e.minCommentChars() {
		return nil, apperr.Newf(apperr.KindRejectionCommentRequired, "rejection comment must be at least %d characters", e.minCommentChars())
	}

	var result *models.PurchaseRequest
	err := withRetry(3, 10*time.Millisecond, func() error {
		return e.db.Transaction(func(tx *gorm.DB) error {
			req, step, role, err := e.authorizeStepAction(tx, requestID, actorID, roleCode)
			if err != nil {
				return err
			}

			now := e.clock.Now()
			hist := &models.ApprovalHistory{
				RequestID:      req.ID,
				TemplateStepID: step.ID,
				ApproverUserID: actorID,
				RoleLookupID:   role.ID,
				Action:         models.ApprovalActionReject,
				Comment:        trimmed,
				Timestamp:      now,
			}
			hist.Active = true
			if err := e.approvals.Create(tx, hist); err != nil {
				return fmt.Errorf("record rejection: %w", err)
			}

			rejected, err := e.statusLookup(models.StatusRejected)
			if err != nil {
				return err
			}
			req.StatusLookupID = rejected.ID
			req.RejectionComment = trimmed
			if err := e.requests.Save(tx, req); err != nil {
				return fmt.Errorf("save request: %w", err)
			}

			if _, err := e.audit.Record(tx, models.EventRejection, &actorID, &req.ID, map[string]any{"role_lookup_id": role.ID, "step_order": step.StepOrder}); err != nil {
				return fmt.Errorf("record audit: %w", err)
			}
			result = req
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Resubmit re-validates required fields/attachments and, on success,
// moves a REJECTED request back into the approval pipeline at the step
// where it was rejected (spec.md §4.7 resubmit(), §8 property 8).
func (e *Engine) Resubmit(ctx context.Context, requestID, actorID uuid.UUID) (*models.PurchaseRequest, error) {
	var result *models.PurchaseRequest
	err := withRetry(3, 10*time.Millisecond, func() error {
		return e.db.Transaction(func(tx *gorm.DB) error {
			req, err := e.requests.LockForUpdate(tx, requestID)
			if err != nil {
				return err
			}
			if req.RequestorUserID != actorID {
				return apperr.New(apperr.KindPermissionDenied, "only the requestor may resubmit this request")
			}

			statusCode, err := e.resolveStatusCode(req.StatusLookupID)
			if err != nil {
				return err
			}
			if statusCode != models.StatusRejected {
				return apperr.Newf(apperr.KindInvalidTransition, "cannot resubmit a request in status %s", statusCode)
			}

			if err := e.validateSubmission(req); err != nil {
				return err
			}

			pending, err := e.statusLookup(models.StatusPendingApproval)
			if err != nil {
				return err
			}
			req.StatusLookupID = pending.ID
			if err := e.requests.Save(tx, req); err != nil {
				return fmt.Errorf("save request: %w", err)
			}

			if _, err := e.audit.Record(tx, models.EventResubmission, &actorID, &req.ID, nil); err != nil {
				return fmt.Errorf("record audit: %w", err)
			}
			result = req
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Withdraw closes a gap in the state diagram not named as an operation
// in spec.md §6 (SPEC_FULL.md §9 Open Question decision 4): the
// requestor may archive their own request any time before completion.
func (e *Engine) Withdraw(ctx context.Context, requestID, actorID uuid.UUID) (*models.PurchaseRequest, error) {
	var result *models.PurchaseRequest
	err := e.db.Transaction(func(tx *gorm.DB) error {
		req, err := e.requests.LockForUpdate(tx, requestID)
		if err != nil {
			return err
		}
		if req.RequestorUserID != actorID {
			return apperr.New(apperr.KindPermissionDenied, "only the requestor may withdraw this request")
		}

		statusCode, err := e.resolveStatusCode(req.StatusLookupID)
		if err != nil {
			return err
		}
		if statusCode == models.StatusCompleted || statusCode == models.StatusArchived {
			return apperr.Newf(apperr.KindInvalidTransition, "cannot withdraw a request in status %s", statusCode)
		}

		archived, err := e.statusLookup(models.StatusArchived)
		if err != nil {
			return err
		}
		oldCode := statusCode
		req.StatusLookupID = archived.ID
		if err := e.requests.Save(tx, req); err != nil {
			return fmt.Errorf("save request: %w", err)
		}

		if _, err := e.audit.Record(tx, models.EventStatusChange, &actorID, &req.ID, map[string]any{"from": oldCode, "to": models.StatusArchived}); err != nil {
			return fmt.Errorf("record audit: %w", err)
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetCurrentStep returns the pinned step a request is parked at, or nil
// for a request that hasn't been submitted yet (spec.md §4.7
// get_current_step(); SPEC_FULL.md §9 Open Question decision 1: no
// legacy current_step fallback exists in this from-scratch module).
func (e *Engine) GetCurrentStep(requestID uuid.UUID) (*models.WorkflowTemplateStep, error) {
	req, err := e.requests.Get(requestID)
	if err != nil {
		return nil, err
	}
	if req.CurrentTemplateStepID == nil {
		return nil, nil
	}
	return e.workflows.StepByID(*req.CurrentTemplateStepID)
}

// authorizeStepAction loads the request under lock and the step it is
// parked at, and checks the shared approve/reject authorization rule:
// role must be in the step's approver set, and the actor must hold that
// role on the request's team (spec.md §4.7 approve()/reject()).
func (e *Engine) authorizeStepAction(tx *gorm.DB, requestID, actorID uuid.UUID, roleCode string) (*models.PurchaseRequest, *models.WorkflowTemplateStep, *models.Lookup, error) {
	req, err := e.requests.LockForUpdate(tx, requestID)
	if err != nil {
		return nil, nil, nil, err
	}

	statusCode, err := e.resolveStatusCode(req.StatusLookupID)
	if err != nil {
		return nil, nil, nil, err
	}
	if statusCode != models.StatusPendingApproval && statusCode != models.StatusInReview && statusCode != models.StatusFinanceReview {
		return nil, nil, nil, apperr.Newf(apperr.KindInvalidTransition, "cannot act on a request in status %s", statusCode)
	}
	if req.CurrentTemplateStepID == nil {
		return nil, nil, nil, apperr.New(apperr.KindInvalidTransition, "request has no current step")
	}

	step, err := e.workflows.StepByID(*req.CurrentTemplateStepID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load current step: %w", err)
	}

	role, err := e.lookups.Resolve(models.LookupTypeCompanyRole, roleCode)
	if err != nil {
		return nil, nil, nil, err
	}

	roleInStep := false
	for _, a := range step.Approvers {
		if a.RoleLookupID == role.ID {
			roleInStep = true
			break
		}
	}
	if !roleInStep {
		return nil, nil, nil, apperr.Newf(apperr.KindPermissionDenied, "role %s is not an approver of the current step", roleCode)
	}

	hasRole, err := e.accessScope.HasRole(actorID, req.TeamID, role.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !hasRole {
		return nil, nil, nil, apperr.Newf(apperr.KindPermissionDenied, "actor does not hold role %s on this team", roleCode)
	}

	return req, step, role, nil
}

// validateSubmission runs the required-field and required-attachment
// checks against the pinned form template (spec.md §4.7 submit()).
func (e *Engine) validateSubmission(req *models.PurchaseRequest) error {
	template, err := e.forms.GetWithFields(req.PinnedFormTemplateID)
	if err != nil {
		return fmt.Errorf("load pinned form template: %w", err)
	}
	values, err := e.requests.FieldValues(req.ID)
	if err != nil {
		return fmt.Errorf("load field values: %w", err)
	}
	valueByField := make(map[uuid.UUID]models.RequestFieldValue, len(values))
	for _, v := range values {
		valueByField[v.FieldID] = v
	}
	attachments, err := e.attachRepo.ForRequest(req.ID)
	if err != nil {
		return fmt.Errorf("load attachments: %w", err)
	}
	categoriesWithAttachment := make(map[uuid.UUID]bool, len(attachments))
	for _, a := range attachments {
		if a.CategoryID != nil {
			categoriesWithAttachment[*a.CategoryID] = true
		}
	}

	var missingFields []string
	for _, field := range template.Fields {
		if !field.Required {
			continue
		}
		if field.Type == models.FieldTypeFileUpload {
			cat, err := e.attachRepo.CategoryByName(req.TeamID, field.AttachmentCategoryName)
			if err != nil || !categoriesWithAttachment[cat.ID] {
				missingFields = append(missingFields, field.FieldID)
			}
			continue
		}
		v, ok := valueByField[field.ID]
		if !ok || v.IsEmpty() {
			missingFields = append(missingFields, field.FieldID)
		}
	}

	missingAttachments, err := e.attachments.RequiredCategoriesSatisfied(req.TeamID, req.ID)
	if err != nil {
		return fmt.Errorf("check required attachment categories: %w", err)
	}

	if len(missingFields) > 0 || len(missingAttachments) > 0 {
		return apperr.ValidationFailed(missingFields, missingAttachments)
	}
	return nil
}

func (e *Engine) resolveStatusCode(statusID uuid.UUID) (string, error) {
	var l models.Lookup
	if err := e.db.First(&l, "id = ?", statusID).Error; err != nil {
		return "", fmt.Errorf("resolve status code: %w", err)
	}
	return l.Code, nil
}

func (e *Engine) minCommentChars() int {
	if e.cfg.RejectionMinCommentChars > 0 {
		return e.cfg.RejectionMinCommentChars
	}
	return models.RejectionMinCommentChars
}

// stepComplete reports whether every approver role of step has a
// matching entry in approvedRoles (spec.md §8 property 7).
func stepComplete(step *models.WorkflowTemplateStep, approvedRoles []uuid.UUID) bool {
	approved := make(map[uuid.UUID]bool, len(approvedRoles))
	for _, r := range approvedRoles {
		approved[r] = true
	}
	for _, a := range step.Approvers {
		if !approved[a.RoleLookupID] {
			return false
		}
	}
	return true
}

func findField(fields []models.FormField, fieldID string) *models.FormField {
	for i := range fields {
		if fields[i].FieldID == fieldID {
			return &fields[i]
		}
	}
	return nil
}

func displayValue(v models.RequestFieldValue) string {
	switch {
	case v.ValueText != nil:
		return *v.ValueText
	case v.ValueNumber != nil:
		return v.ValueNumber.String()
	case v.ValueBool != nil:
		return fmt.Sprintf("%v", *v.ValueBool)
	case v.ValueDate != nil:
		return v.ValueDate.Format(time.RFC3339)
	case v.ValueDropdown != nil:
		return *v.ValueDropdown
	default:
		return ""
	}
}

// typedFieldValue builds a RequestFieldValue with exactly one slot
// populated, matching fieldType (spec.md §3, §8 property 2; DESIGN
// NOTES §9 "typed value column union").
func typedFieldValue(requestID, fieldID uuid.UUID, fieldType string, value any) (*models.RequestFieldValue, error) {
	fv := &models.RequestFieldValue{RequestID: requestID, FieldID: fieldID}
	fv.Active = true

	switch fieldType {
	case models.FieldTypeText:
		s, ok := value.(string)
		if !ok {
			return nil, apperr.Newf(apperr.KindValidationFailed, "expected string value for TEXT field")
		}
		fv.ValueText = &s
	case models.FieldTypeNumber:
		n, ok := toDecimal(value)
		if !ok {
			return nil, apperr.Newf(apperr.KindValidationFailed, "expected numeric value for NUMBER field")
		}
		fv.ValueNumber = &n
	case models.FieldTypeBoolean:
		b, ok := value.(bool)
		if !ok {
			return nil, apperr.Newf(apperr.KindValidationFailed, "expected boolean value for BOOLEAN field")
		}
		fv.ValueBool = &b
	case models.FieldTypeDate:
		t, ok := value.(time.Time)
		if !ok {
			return nil, apperr.Newf(apperr.KindValidationFailed, "expected time.Time value for DATE field")
		}
		fv.ValueDate = &t
	case models.FieldTypeDropdown:
		s, ok := value.(string)
		if !ok {
			return nil, apperr.Newf(apperr.KindValidationFailed, "expected string value for DROPDOWN field")
		}
		fv.ValueDropdown = &s
	default:
		return nil, apperr.Newf(apperr.KindValidationFailed, "field type %q does not accept a RequestFieldValue", fieldType)
	}
	return fv, nil
}

// toDecimal accepts the handful of Go numeric kinds a caller might pass
// for a NUMBER field and normalizes them to decimal.Decimal, mirroring
// the teacher's decimal.NewFromFloat use in services/purchase_service.go
// for monetary amounts.
func toDecimal(value any) (decimal.Decimal, bool) {
	switch n := value.(type) {
	case decimal.Decimal:
		return n, true
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	default:
		return decimal.Decimal{}, false
	}
}
