package report

import (
	"strings"
	"testing"

	"github.com/DrOksusu/email-automation/internal/domain/employee"
	"github.com/DrOksusu/email-automation/internal/domain/payslip"
)

func TestFormatAmount(t *testing.T) {
	tests := map[int64]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		4018710: "4,018,710",
	}
	for in, want := range tests {
		if got := FormatAmount(in); got != want {
			t.Fatalf("FormatAmount(%d): expected %q, got %q", in, want, got)
		}
	}
}

func TestRenderSample(t *testing.T) {
	rec, emp := Sample()
	doc, err := Render(rec, emp)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"2024-12", "EMP001", "홍길동", "3,500,000원", "4,450,000원", "431,290원", "4,018,710"} {
		if !strings.Contains(doc.HTML, want) {
			t.Fatalf("expected document to contain %q", want)
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	rec, emp := Sample()
	first, err := Render(rec, emp)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := Render(rec, emp)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if first.HTML != second.HTML {
		t.Fatal("expected identical output for identical input")
	}
}

func TestRenderLineOrder(t *testing.T) {
	rec, emp := Sample()
	doc, err := Render(rec, emp)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	labels := []string{}
	for _, item := range payslip.PaymentItems {
		labels = append(labels, item.Label)
	}
	labels = append(labels, payslip.LabelTotalPayment)
	for _, item := range payslip.DeductionItems {
		labels = append(labels, item.Label)
	}
	labels = append(labels, payslip.LabelTotalDeduction, payslip.LabelNetPayment)

	pos := 0
	for _, label := range labels {
		idx := strings.Index(doc.HTML[pos:], ">"+label+"<")
		if idx < 0 {
			t.Fatalf("label %q missing or out of order", label)
		}
		pos += idx + 1
	}
}

func TestRenderEscapesEmployeeName(t *testing.T) {
	rec, _ := Sample()
	doc, err := Render(rec, employee.Employee{EmployeeCode: "1", Name: "<script>alert(1)</script>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(doc.HTML, "<script>") {
		t.Fatal("expected employee name to be escaped")
	}
}

func TestRenderPDF(t *testing.T) {
	rec, emp := Sample()
	out, err := RenderPDF(rec, emp)
	if err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF") {
		t.Fatal("expected a PDF document")
	}
}
