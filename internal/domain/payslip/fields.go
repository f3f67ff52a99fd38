package payslip

// LineItem describes one payment or deduction component printed on a payslip.
type LineItem struct {
	Key     string
	Label   string
	Caption string
	Value   func(Fields) int64
}

// PaymentItems lists the payment components in payslip order.
var PaymentItems = []LineItem{
	newLineItem("basicSalary", "기본급", "Basic salary", func(f Fields) int64 { return f.BasicSalary }),
	newLineItem("mealAllowance", "식대", "Meal allowance", func(f Fields) int64 { return f.MealAllowance }),
	newLineItem("overtimePay", "시간외수당", "Overtime pay", func(f Fields) int64 { return f.OvertimePay }),
	newLineItem("incentive", "기타인센티브", "Incentive", func(f Fields) int64 { return f.Incentive }),
	newLineItem("otherAllowance", "기타수당", "Other allowance", func(f Fields) int64 { return f.OtherAllowance }),
}

// DeductionItems lists the deduction components in payslip order.
var DeductionItems = []LineItem{
	newLineItem("nationalPension", "국민연금", "National pension", func(f Fields) int64 { return f.NationalPension }),
	newLineItem("healthInsurance", "건강보험", "Health insurance", func(f Fields) int64 { return f.HealthInsurance }),
	newLineItem("employmentInsurance", "고용보험", "Employment insurance", func(f Fields) int64 { return f.EmploymentInsurance }),
	newLineItem("longTermCare", "장기요양보험료", "Long-term care", func(f Fields) int64 { return f.LongTermCare }),
	newLineItem("incomeTax", "소득세", "Income tax", func(f Fields) int64 { return f.IncomeTax }),
	newLineItem("localIncomeTax", "지방소득세", "Local income tax", func(f Fields) int64 { return f.LocalIncomeTax }),
}

const (
	LabelTotalPayment   = "지급액 계"
	LabelTotalDeduction = "공제액 계"
	LabelNetPayment     = "실수령액"
)

func newLineItem(key, label, caption string, value func(Fields) int64) LineItem {
	return LineItem{
		Key:     key,
		Label:   label,
		Caption: caption,
		Value:   value,
	}
}

// Extract reads this component's amount from raw page text.
func (li LineItem) Extract(text string) int64 {
	return ExtractAmount(text, li.Label)
}
