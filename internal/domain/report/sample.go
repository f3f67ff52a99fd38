package report

import (
	"github.com/DrOksusu/email-automation/internal/domain/employee"
	"github.com/DrOksusu/email-automation/internal/domain/payslip"
)

// Sample returns the placeholder pair used to preview the template without a
// stored record.
func Sample() (payslip.Record, employee.Employee) {
	rec := payslip.Record{
		ID:     "sample",
		Period: "2024-12",
		Fields: payslip.Fields{
			BasicSalary:         3500000,
			MealAllowance:       200000,
			OvertimePay:         150000,
			Incentive:           500000,
			OtherAllowance:      100000,
			TotalPayment:        4450000,
			NationalPension:     157500,
			HealthInsurance:     124950,
			EmploymentInsurance: 36540,
			LongTermCare:        14400,
			IncomeTax:           89000,
			LocalIncomeTax:      8900,
			TotalDeduction:      431290,
			NetPayment:          4018710,
		},
	}
	emp := employee.Employee{EmployeeCode: "EMP001", Name: "홍길동"}
	return rec, emp
}
