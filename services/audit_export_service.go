package services

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"app-purchase-request-workflow/models"
)

// AuditExportService renders a request's audit trail (C9) to PDF and
// Excel for download, mirroring the teacher's services/export_service.go
// (ExportAccountsPDF/ExportAccountsExcel) and services/pdf_service.go —
// the same gofpdf/excelize pattern, applied to AuditEvent rows instead
// of chart-of-accounts rows. This is additive to the operation table in
// spec.md §6 (`audit.by_request` returns the ordered events; export is a
// presentation convenience over the same data, not new domain logic).
type AuditExportService struct {
	audit *AuditService
}

func NewAuditExportService(audit *AuditService) *AuditExportService {
	return &AuditExportService{audit: audit}
}

// ExportPDF renders the request's audit trail as a one-table PDF report.
func (s *AuditExportService) ExportPDF(requestID uuid.UUID) ([]byte, error) {
	events, err := s.audit.ForRequest(requestID)
	if err != nil {
		return nil, fmt.Errorf("load audit trail: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(190, 10, "Purchase Request Audit Trail")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(190, 5, fmt.Sprintf("Request: %s", requestID))
	pdf.Ln(6)
	pdf.Cell(190, 5, fmt.Sprintf("Generated: %s", time.Now().UTC().Format(time.RFC3339)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(220, 220, 220)
	pdf.CellFormat(45, 8, "Timestamp", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 8, "Event", "1", 0, "C", true, 0, "")
	pdf.CellFormat(90, 8, "Detail", "1", 0, "C", true, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	for _, ev := range events {
		if pdf.GetY() > 270 {
			pdf.AddPage()
		}
		pdf.CellFormat(45, 6, ev.Timestamp.UTC().Format(time.RFC3339), "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 6, ev.EventType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 6, eventDetail(ev), "1", 0, "L", false, 0, "")
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render audit pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportExcel renders the request's audit trail as a single-sheet
// workbook, one row per AuditEvent.
func (s *AuditExportService) ExportExcel(requestID uuid.UUID) ([]byte, error) {
	events, err := s.audit.ForRequest(requestID)
	if err != nil {
		return nil, fmt.Errorf("load audit trail: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Audit Trail"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	f.SetCellValue(sheet, "A1", "Timestamp")
	f.SetCellValue(sheet, "B1", "Event Type")
	f.SetCellValue(sheet, "C1", "Actor User ID")
	f.SetCellValue(sheet, "D1", "Detail")
	f.SetCellStyle(sheet, "A1", "D1", headerStyle)

	for i, ev := range events {
		row := strconv.Itoa(i + 2)
		f.SetCellValue(sheet, "A"+row, ev.Timestamp.UTC().Format(time.RFC3339))
		f.SetCellValue(sheet, "B"+row, ev.EventType)
		if ev.ActorUserID != nil {
			f.SetCellValue(sheet, "C"+row, ev.ActorUserID.String())
		}
		f.SetCellValue(sheet, "D"+row, eventDetail(ev))
	}

	for _, col := range []string{"A", "B", "C", "D"} {
		f.SetColWidth(sheet, col, col, 28)
	}
	if f.GetSheetName(0) == "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render audit excel: %w", err)
	}
	return buf.Bytes(), nil
}

func eventDetail(ev models.AuditEvent) string {
	if len(ev.FieldChanges) > 0 {
		fc := ev.FieldChanges[0]
		return fmt.Sprintf("%s: %q -> %q", fc.FieldName, fc.OldValue, fc.NewValue)
	}
	if v, ok := ev.Metadata["step_order"]; ok {
		return fmt.Sprintf("step_order=%v", v)
	}
	return ""
}
