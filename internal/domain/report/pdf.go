package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/DrOksusu/email-automation/internal/domain/employee"
	"github.com/DrOksusu/email-automation/internal/domain/payslip"
)

// RenderPDF lays the payslip out on one A4 page. The core PDF fonts have no
// Hangul glyphs, so labels use the Latin captions and the employee is
// identified by code.
func RenderPDF(rec payslip.Record, emp employee.Employee) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", rec.Period, emp.EmployeeCode), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", rec.Period))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employee code: %s", emp.EmployeeCode))
	pdf.Ln(10)

	section := func(title string, items []payslip.LineItem, totalCaption string, total int64) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, item := range items {
			pdf.CellFormat(110, 7, item.Caption, "B", 0, "L", false, 0, "")
			pdf.CellFormat(60, 7, FormatAmount(item.Value(rec.Fields))+" KRW", "B", 1, "R", false, 0, "")
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(110, 8, totalCaption, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, FormatAmount(total)+" KRW", "", 1, "R", false, 0, "")
		pdf.Ln(4)
	}
	section("Payments", payslip.PaymentItems, "Total payment", rec.TotalPayment)
	section("Deductions", payslip.DeductionItems, "Total deduction", rec.TotalDeduction)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(110, 10, "Net payment", "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, 10, FormatAmount(rec.NetPayment)+" KRW", "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}
