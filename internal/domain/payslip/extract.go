package payslip

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// amountToken is the digit run (with grouping commas) that follows a marker.
const amountToken = `([\d,]+)`

// ExtractAmount returns the first amount that immediately follows marker in
// text, with grouping commas removed. A missing marker or a token that is not
// a number yields 0.
func ExtractAmount(text, marker string) int64 {
	if marker == "" {
		return 0
	}
	return matchAmount(text, amountPattern(marker))
}

// ExtractString returns the first capture group of pattern in text. The
// second result is false when the pattern does not match or captures nothing.
func ExtractString(text string, pattern *regexp.Regexp) (string, bool) {
	m := pattern.FindStringSubmatch(text)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// markerPatterns caches the compiled pattern per marker; markers are the
// fixed payslip labels, so the cache stays small.
var markerPatterns sync.Map

func amountPattern(marker string) *regexp.Regexp {
	if cached, ok := markerPatterns.Load(marker); ok {
		return cached.(*regexp.Regexp)
	}
	pattern := regexp.MustCompile(regexp.QuoteMeta(marker) + amountToken)
	actual, _ := markerPatterns.LoadOrStore(marker, pattern)
	return actual.(*regexp.Regexp)
}

func matchAmount(text string, pattern *regexp.Regexp) int64 {
	m := pattern.FindStringSubmatch(text)
	if len(m) < 2 {
		return 0
	}
	return parseAmount(m[1])
}

func parseAmount(raw string) int64 {
	value, err := strconv.ParseInt(strings.ReplaceAll(raw, ",", ""), 10, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
