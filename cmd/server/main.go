// Command server is the composition root: it loads configuration,
// connects to the database, migrates the schema, seeds the lookup
// registry, and wires every service the request lifecycle engine
// depends on. No HTTP layer is built here — transport is out of scope
// (spec.md §1) — but this is the same wiring shape as the teacher's
// cmd/main.go, minus the routes/gin setup.
package main

import (
	"log"

	"app-purchase-request-workflow/blob/localdisk"
	"app-purchase-request-workflow/config"
	"app-purchase-request-workflow/database"
	"app-purchase-request-workflow/repositories"
	"app-purchase-request-workflow/services"
	"app-purchase-request-workflow/utils"
)

func main() {
	cfg := config.Load()

	logger := utils.NewLogger()
	logger.WithFields(utils.Fields{"environment": cfg.Environment}).Info("starting purchase request workflow engine")

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}
	if err := database.SeedLookups(db); err != nil {
		log.Fatalf("seed lookups: %v", err)
	}

	lookupRepo := repositories.NewLookupRepository(db)
	formRepo := repositories.NewFormTemplateRepository(db)
	workflowRepo := repositories.NewWorkflowTemplateRepository(db)
	teamConfigRepo := repositories.NewTeamConfigRepository(db)
	accessScopeRepo := repositories.NewAccessScopeRepository(db)
	attachmentRepo := repositories.NewAttachmentRepository(db)
	requestRepo := repositories.NewRequestRepository(db)
	approvalRepo := repositories.NewApprovalHistoryRepository(db)
	auditRepo := repositories.NewAuditRepository(db)

	blobBackend, err := localdisk.New("./data/attachments")
	if err != nil {
		log.Fatalf("init blob backend: %v", err)
	}
	clock := utils.SystemClock{}

	formSvc := services.NewFormTemplateService(db, formRepo)
	workflowSvc := services.NewWorkflowTemplateService(db, workflowRepo, cfg)
	teamConfigSvc := services.NewTeamConfigService(db, teamConfigRepo)
	accessScopeSvc := services.NewAccessScopeService(accessScopeRepo)
	attachmentSvc := services.NewAttachmentService(cfg, attachmentRepo, blobBackend, clock)
	auditSvc := services.NewAuditService(auditRepo, clock)
	auditExportSvc := services.NewAuditExportService(auditSvc)

	engine := services.NewEngine(
		db, requestRepo, formRepo, workflowRepo, lookupRepo, approvalRepo, attachmentRepo,
		teamConfigSvc, accessScopeSvc, attachmentSvc, auditSvc, clock, cfg,
	)
	inbox := services.NewInboxRouter(db, requestRepo, workflowRepo, lookupRepo, approvalRepo, accessScopeSvc)

	// No transport is wired here (out of scope, spec.md §1); engine,
	// inbox, formSvc, workflowSvc, and auditExportSvc are the surface a
	// future RPC/HTTP layer would call into.
	_, _, _, _, _ = formSvc, workflowSvc, engine, inbox, auditExportSvc

	logger.Info("purchase request workflow engine ready")
}
