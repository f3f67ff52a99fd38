package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/DrOksusu/email-automation/internal/domain/payslip"
)

const registerSheet = "급여대장"

// BuildRegister exports payslips as an .xlsx register, one row per record.
// It returns the workbook and a suggested file name.
func BuildRegister(period string, rows []payslip.RecordView) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return nil, "", err
	}

	header := []any{"사원코드", "사원명", "귀속월"}
	for _, item := range payslip.PaymentItems {
		header = append(header, item.Label)
	}
	header = append(header, payslip.LabelTotalPayment)
	for _, item := range payslip.DeductionItems {
		header = append(header, item.Label)
	}
	header = append(header, payslip.LabelTotalDeduction, payslip.LabelNetPayment)

	if err := f.SetSheetRow(registerSheet, "A1", &header); err != nil {
		return nil, "", err
	}

	for i, view := range rows {
		values := []any{view.EmployeeCode, view.EmployeeName, view.Period}
		for _, item := range payslip.PaymentItems {
			values = append(values, item.Value(view.Fields))
		}
		values = append(values, view.TotalPayment)
		for _, item := range payslip.DeductionItems {
			values = append(values, item.Value(view.Fields))
		}
		values = append(values, view.TotalDeduction, view.NetPayment)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetSheetRow(registerSheet, cell, &values); err != nil {
			return nil, "", err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return nil, "", err
	}
	if err := f.SetColWidth(registerSheet, "A", lastCol, 14); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write register: %w", err)
	}

	name := "payslips-all.xlsx"
	if period != "" {
		name = fmt.Sprintf("payslips-%s.xlsx", period)
	}
	return buf, name, nil
}
