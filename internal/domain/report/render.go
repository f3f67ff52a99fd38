package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/DrOksusu/email-automation/internal/domain/employee"
	"github.com/DrOksusu/email-automation/internal/domain/payslip"
)

const ContentTypeHTML = "text/html; charset=UTF-8"

// Document is a rendered payslip notice.
type Document struct {
	HTML string `json:"html"`
}

type line struct {
	Label  string
	Amount string
	Shaded bool
}

type view struct {
	Period         string
	EmployeeCode   string
	EmployeeName   string
	Payments       []line
	TotalPayment   string
	Deductions     []line
	TotalDeduction string
	NetPayment     string
	Labels         map[string]string
}

var payslipTemplate = template.Must(template.New("payslip").Parse(payslipHTML))

// Render produces the notice body for rec. It touches neither storage nor the
// network, and equal inputs give byte-identical output.
func Render(rec payslip.Record, emp employee.Employee) (Document, error) {
	v := view{
		Period:         rec.Period,
		EmployeeCode:   emp.EmployeeCode,
		EmployeeName:   emp.Name,
		Payments:       lines(payslip.PaymentItems, rec.Fields),
		TotalPayment:   FormatAmount(rec.TotalPayment),
		Deductions:     lines(payslip.DeductionItems, rec.Fields),
		TotalDeduction: FormatAmount(rec.TotalDeduction),
		NetPayment:     FormatAmount(rec.NetPayment),
		Labels: map[string]string{
			"totalPayment":   payslip.LabelTotalPayment,
			"totalDeduction": payslip.LabelTotalDeduction,
			"netPayment":     payslip.LabelNetPayment,
		},
	}

	var buf bytes.Buffer
	if err := payslipTemplate.Execute(&buf, v); err != nil {
		return Document{}, fmt.Errorf("render payslip %s: %w", rec.ID, err)
	}
	return Document{HTML: buf.String()}, nil
}

func lines(items []payslip.LineItem, fields payslip.Fields) []line {
	out := make([]line, len(items))
	for i, item := range items {
		out[i] = line{Label: item.Label, Amount: FormatAmount(item.Value(fields)), Shaded: i%2 == 0}
	}
	return out
}
