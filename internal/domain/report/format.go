package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatAmount renders a won amount with Korean digit grouping.
func FormatAmount(amount int64) string {
	return message.NewPrinter(language.Korean).Sprintf("%d", amount)
}
