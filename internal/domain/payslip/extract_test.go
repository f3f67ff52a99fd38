package payslip

import (
	"regexp"
	"testing"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		marker string
		want   int64
	}{
		{name: "grouped", text: "기본급3,500,000식대200,000", marker: "기본급", want: 3500000},
		{name: "plain digits", text: "식대200000", marker: "식대", want: 200000},
		{name: "first occurrence wins", text: "소득세89,000소득세1", marker: "소득세", want: 89000},
		{name: "marker missing", text: "기본급3,500,000", marker: "식대", want: 0},
		{name: "no number after marker", text: "식대 없음", marker: "식대", want: 0},
		{name: "only commas", text: "식대,,,", marker: "식대", want: 0},
		{name: "empty marker", text: "3,500,000", marker: "", want: 0},
		{name: "marker is literal", text: "a.b100", marker: "a.b", want: 100},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractAmount(tc.text, tc.marker); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestExtractString(t *testing.T) {
	pattern := regexp.MustCompile(`사원명:([가-힣]+)입사일`)

	got, ok := ExtractString("사원코드:1001사원명:김민수입사일:", pattern)
	if !ok || got != "김민수" {
		t.Fatalf("expected 김민수, got %q (%v)", got, ok)
	}
	if _, ok := ExtractString("사원코드:1001", pattern); ok {
		t.Fatal("expected no match")
	}
	if _, ok := ExtractString("x", regexp.MustCompile(`x`)); ok {
		t.Fatal("expected false for a pattern without a capture group")
	}
}
