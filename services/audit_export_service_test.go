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

// TestAuditExportService_RendersNonEmptyDocuments exercises the
// gofpdf/excelize export path over a request that has accrued at least
// one audit event (REQUEST_CREATED).
func TestAuditExportService_RendersNonEmptyDocuments(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	teamID, _, _ := h.setupSingleApproverWorkflow(t)
	requestorID := uuid.New()

	req, err := h.engine.DraftCreate(ctx, requestorID, teamID, services.CreateDraftRequest{
		PurchaseTypeCode: models.PurchaseTypeGood,
		Subject:          "New laptops",
	})
	require.NoError(t, err)

	exportSvc := services.NewAuditExportService(h.auditSvc)

	pdfBytes, err := exportSvc.ExportPDF(req.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))

	xlsxBytes, err := exportSvc.ExportExcel(req.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, xlsxBytes)
	// xlsx files are zip archives; "PK" is the local file header magic.
	assert.Equal(t, "PK", string(xlsxBytes[:2]))
}
