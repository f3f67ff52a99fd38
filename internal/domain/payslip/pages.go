package payslip

import "strings"

// PageSeparator is the form feed pdftotext writes between pages.
const PageSeparator = "\f"

// SplitPages cuts extracted text into pages. The empty segment after a
// trailing separator is not a page.
func SplitPages(text string) []string {
	if text == "" {
		return nil
	}
	pages := strings.Split(text, PageSeparator)
	if strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}
