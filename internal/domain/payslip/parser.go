package payslip

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/sync/errgroup"
)

const deductionTotalMarker = "공제액계"

var (
	periodYearPattern  = regexp.MustCompile(`(\d{4})년\d{1,2}월분`)
	periodMonthPattern = regexp.MustCompile(`\d{4}년(\d{1,2})월분`)
	employeePattern    = regexp.MustCompile(`사원코드:(\d+)사원명:([가-힣]+)입사일:([\d-]*)`)
	totalsPattern      = regexp.MustCompile(`지급액계` + amountToken + `차인지급액` + amountToken)
)

type employeeBlock struct {
	code     string
	name     string
	hireDate string
}

// ParsePage reads one page of payslip text. The page is accepted only when
// the combined employee block is present; any other page (cover sheets,
// summaries, blank pages) yields false.
func ParsePage(text string, pageNumber int) (ParsedRecord, bool) {
	block, ok := matchEmployeeBlock(text)
	if !ok {
		return ParsedRecord{}, false
	}

	rec := ParsedRecord{
		EmployeeCode: block.code,
		EmployeeName: block.name,
		HireDate:     block.hireDate,
		Period:       extractPeriod(text),
		PageNumber:   pageNumber,
	}

	if m := totalsPattern.FindStringSubmatch(text); m != nil {
		rec.TotalPayment = parseAmount(m[1])
		rec.NetPayment = parseAmount(m[2])
	}
	rec.TotalDeduction = ExtractAmount(text, deductionTotalMarker)

	rec.BasicSalary = PaymentItems[0].Extract(text)
	rec.MealAllowance = PaymentItems[1].Extract(text)
	rec.OvertimePay = PaymentItems[2].Extract(text)
	rec.Incentive = PaymentItems[3].Extract(text)
	rec.OtherAllowance = PaymentItems[4].Extract(text)

	rec.NationalPension = DeductionItems[0].Extract(text)
	rec.HealthInsurance = DeductionItems[1].Extract(text)
	rec.EmploymentInsurance = DeductionItems[2].Extract(text)
	rec.LongTermCare = DeductionItems[3].Extract(text)
	rec.IncomeTax = DeductionItems[4].Extract(text)
	rec.LocalIncomeTax = DeductionItems[5].Extract(text)

	return rec, true
}

// ParsePages parses every page concurrently, bounded by workers (<= 0 means
// unbounded). Non-payslip pages are dropped; the result is ordered by page
// number.
func ParsePages(ctx context.Context, pages []string, workers int) ([]ParsedRecord, error) {
	slots := make([]*ParsedRecord, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, text := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if rec, ok := ParsePage(text, i+1); ok {
				slots[i] = &rec
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]ParsedRecord, 0, len(pages))
	for _, rec := range slots {
		if rec != nil {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func matchEmployeeBlock(text string) (employeeBlock, bool) {
	m := employeePattern.FindStringSubmatch(text)
	if m == nil {
		return employeeBlock{}, false
	}
	return employeeBlock{code: m[1], name: m[2], hireDate: m[3]}, true
}

// extractPeriod normalises "2025년3월분" to "2025-03"; no marker yields "".
func extractPeriod(text string) string {
	year, ok := ExtractString(text, periodYearPattern)
	if !ok {
		return ""
	}
	raw, ok := ExtractString(text, periodMonthPattern)
	if !ok {
		return ""
	}
	month, err := strconv.Atoi(raw)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s-%02d", year, month)
}
