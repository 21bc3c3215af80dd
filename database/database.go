package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"app-purchase-request-workflow/config"
	"app-purchase-request-workflow/models"
)

// Connect opens the gorm connection the same way the teacher's
// database.ConnectDB does: a single *gorm.DB built from config.Config.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Environment != "production" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// AutoMigrate creates/updates every table the engine owns. Order matters
// for foreign-key-bearing SQL backends: lookups and teams first, then
// templates, then the tables that reference them.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.LookupType{},
		&models.Lookup{},
		&models.Team{},
		&models.User{},
		&models.AccessScope{},
		&models.FormTemplate{},
		&models.FormField{},
		&models.WorkflowTemplate{},
		&models.WorkflowTemplateStep{},
		&models.WorkflowTemplateStepApprover{},
		&models.TeamPurchaseConfig{},
		&models.AttachmentCategory{},
		&models.PurchaseRequest{},
		&models.RequestFieldValue{},
		&models.Attachment{},
		&models.ApprovalHistory{},
		&models.AuditEvent{},
		&models.FieldChange{},
	)
}
