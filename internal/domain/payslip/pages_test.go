package payslip

import "testing"

func TestSplitPages(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "single page", text: "page one", want: 1},
		{name: "trailing separator", text: "one\ftwo\f", want: 2},
		{name: "trailing whitespace", text: "one\ftwo\f\n", want: 2},
		{name: "blank page in the middle", text: "one\f\ftwo", want: 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SplitPages(tc.text); len(got) != tc.want {
				t.Fatalf("expected %d pages, got %d (%q)", tc.want, len(got), got)
			}
		})
	}
}
