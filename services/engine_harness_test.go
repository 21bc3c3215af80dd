package services_test

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"app-purchase-request-workflow/config"
	"app-purchase-request-workflow/database"
	"app-purchase-request-workflow/models"
	"app-purchase-request-workflow/repositories"
	"app-purchase-request-workflow/services"
	"app-purchase-request-workflow/utils"
)

// harness wires the full C1-C9 stack against an in-memory sqlite
// database, mirroring the composition root in cmd/server/main.go but
// with a FixedClock so audit timestamps are deterministic in tests.
type harness struct {
	db *gorm.DB

	lookups    *repositories.LookupRepository
	forms      *repositories.FormTemplateRepository
	workflows  *repositories.WorkflowTemplateRepository
	teamConfig *repositories.TeamConfigRepository
	access     *repositories.AccessScopeRepository
	attach     *repositories.AttachmentRepository
	requests   *repositories.RequestRepository
	approvals  *repositories.ApprovalHistoryRepository
	audit      *repositories.AuditRepository

	formSvc       *services.FormTemplateService
	workflowSvc   *services.WorkflowTemplateService
	teamConfigSvc *services.TeamConfigService
	accessSvc     *services.AccessScopeService
	attachSvc     *services.AttachmentService
	auditSvc      *services.AuditService

	engine *services.Engine
	inbox  *services.InboxRouter

	clock utils.FixedClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	// Each harness gets its own named in-memory database so parallel or
	// sequential test runs never see each other's rows; cache=shared
	// keeps it visible across the pool's connections within one test.
	// The pool is not capped at one connection: the engine reads lookups,
	// templates and field values through its own connection while a
	// lifecycle transaction holds another.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	if err := database.SeedLookups(db); err != nil {
		t.Fatalf("seed lookups: %v", err)
	}

	h := &harness{db: db}

	h.lookups = repositories.NewLookupRepository(db)
	h.forms = repositories.NewFormTemplateRepository(db)
	h.workflows = repositories.NewWorkflowTemplateRepository(db)
	h.teamConfig = repositories.NewTeamConfigRepository(db)
	h.access = repositories.NewAccessScopeRepository(db)
	h.attach = repositories.NewAttachmentRepository(db)
	h.requests = repositories.NewRequestRepository(db)
	h.approvals = repositories.NewApprovalHistoryRepository(db)
	h.audit = repositories.NewAuditRepository(db)

	// RequireFinanceReviewLast defaults true the way config.Load() does;
	// a bare &config.Config{} zero value would leave it false and
	// silently disable the finance-step-must-be-last invariant.
	cfg := &config.Config{RequireFinanceReviewLast: true}

	h.formSvc = services.NewFormTemplateService(db, h.forms)
	h.workflowSvc = services.NewWorkflowTemplateService(db, h.workflows, cfg)
	h.teamConfigSvc = services.NewTeamConfigService(db, h.teamConfig)
	h.accessSvc = services.NewAccessScopeService(h.access)
	fixedAt, err := time.Parse(time.RFC3339, "2026-01-15T09:00:00Z")
	if err != nil {
		t.Fatalf("parse fixed clock time: %v", err)
	}
	h.clock = utils.FixedClock{At: fixedAt}
	h.attachSvc = services.NewAttachmentService(cfg, h.attach, noopBlob{}, h.clock)
	h.auditSvc = services.NewAuditService(h.audit, h.clock)

	h.engine = services.NewEngine(
		db, h.requests, h.forms, h.workflows, h.lookups, h.approvals, h.attach,
		h.teamConfigSvc, h.accessSvc, h.attachSvc, h.auditSvc, h.clock, cfg,
	)
	h.inbox = services.NewInboxRouter(db, h.requests, h.workflows, h.lookups, h.approvals, h.accessSvc)

	return h
}

// grantRole seeds a COMPANY_ROLE lookup (if it doesn't already exist)
// and grants it to userID on teamID, returning the role lookup.
func (h *harness) grantRole(t *testing.T, userID, teamID uuid.UUID, roleCode string) *models.Lookup {
	t.Helper()
	role := h.ensureRole(t, roleCode)
	if _, err := h.accessSvc.Grant(userID, teamID, role.ID, ""); err != nil {
		t.Fatalf("grant role %s: %v", roleCode, err)
	}
	return role
}

func (h *harness) ensureRole(t *testing.T, roleCode string) *models.Lookup {
	t.Helper()
	role, err := h.lookups.Resolve(models.LookupTypeCompanyRole, roleCode)
	if err == nil {
		return role
	}
	var rt models.LookupType
	if err := h.db.Where("code = ?", models.LookupTypeCompanyRole).First(&rt).Error; err != nil {
		t.Fatalf("load COMPANY_ROLE lookup type: %v", err)
	}
	l := models.Lookup{TypeID: rt.ID, Code: roleCode, Title: roleCode}
	l.Active = true
	if err := h.db.Create(&l).Error; err != nil {
		t.Fatalf("seed role %s: %v", roleCode, err)
	}
	h.lookups.Invalidate()
	role, err = h.lookups.Resolve(models.LookupTypeCompanyRole, roleCode)
	if err != nil {
		t.Fatalf("resolve seeded role %s: %v", roleCode, err)
	}
	return role
}

// setupSingleApproverWorkflow builds a team with an active (form,
// workflow) config for PURCHASE_TYPE=GOOD: one TEXT field "justification"
// (required), one approver step (role "MANAGER"), one finance-review
// step (role "FINANCE").
func (h *harness) setupSingleApproverWorkflow(t *testing.T) (teamID, managerID, financeID uuid.UUID) {
	t.Helper()
	teamID = uuid.New()
	if err := h.db.Create(&models.Team{Name: "team-" + teamID.String()}).Error; err != nil {
		t.Fatalf("create team: %v", err)
	}

	form, err := h.formSvc.Create("goods-form", nil, []models.FormField{
		{FieldID: "justification", Label: "Justification", Type: models.FieldTypeText, Required: true, Order: 1},
	})
	if err != nil {
		t.Fatalf("create form template: %v", err)
	}

	managerRole := h.ensureRole(t, "MANAGER")
	financeRole := h.ensureRole(t, "FINANCE")

	wf, err := h.workflowSvc.Create("goods-workflow", "", []models.WorkflowTemplateStep{
		{StepOrder: 1, StepName: "Manager approval", Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: managerRole.ID}}},
		{StepOrder: 2, StepName: "Finance review", IsFinanceReview: true, Approvers: []models.WorkflowTemplateStepApprover{{RoleLookupID: financeRole.ID}}},
	})
	if err != nil {
		t.Fatalf("create workflow template: %v", err)
	}

	goodType, err := h.lookups.Resolve(models.LookupTypePurchaseType, models.PurchaseTypeGood)
	if err != nil {
		t.Fatalf("resolve GOOD purchase type: %v", err)
	}
	if _, err := h.teamConfigSvc.SetActive(teamID, goodType.ID, form.ID, wf.ID); err != nil {
		t.Fatalf("activate team config: %v", err)
	}

	managerID = uuid.New()
	financeID = uuid.New()
	h.grantRole(t, managerID, teamID, "MANAGER")
	h.grantRole(t, financeID, teamID, "FINANCE")
	return teamID, managerID, financeID
}

// noopBlob is a blob.Backend stub for tests that never read the bytes
// back; it discards the payload and returns a deterministic stand-in
// storage reference.
type noopBlob struct{}

func (noopBlob) Put(_ context.Context, key string, data io.Reader, _ int64) (string, error) {
	if _, err := io.Copy(io.Discard, data); err != nil {
		return "", err
	}
	return "noop/" + key, nil
}

func (noopBlob) Get(_ context.Context, storageRef string) (io.ReadCloser, error) {
	return io.NopCloser(nil), nil
}
