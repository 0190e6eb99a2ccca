package parsing

import (
	"regexp"
	"strings"
)

// totalScanLines is how many trailing lines are searched for the total
const totalScanLines = 15

const totalKeyword = `(?:סה["״']?\s*כ(?:\s*ל\s*תשלום)?|ל\s*תשלום|סכום(?:\s*לתשלום)?|grand\s+total|sub\s*total|total\b|to\s+pay\b|amount\s+due\b|\bsum\b)`

var (
	totalPattern = regexp.MustCompile(`(?i)` + totalKeyword + `\s*[:\-]?\s*` + currency + `?\s*(\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+(?:[.,]\d{1,2})?)`)
	totalMarker  = regexp.MustCompile(`(?i)` + totalKeyword)

	// item counts share the total keyword ("סה"כ פריטים: 12") but are not amounts
	itemCount = regexp.MustCompile(`(?i)(?:פריטים|מוצרים|items)`)

	// thousands grouping, "1,234.50"
	groupedAmount = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?$`)
)

// ExtractTotal looks for a keyword-anchored total in the last lines,
// most recent first. It returns 0 when none is found.
func ExtractTotal(lines []string) float64 {
	start := len(lines) - totalScanLines
	if start < 0 {
		start = 0
	}
	for i := len(lines) - 1; i >= start; i-- {
		if itemCount.MatchString(lines[i]) {
			continue
		}
		m := totalPattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		amount := m[1]
		if groupedAmount.MatchString(amount) {
			amount = strings.ReplaceAll(amount, ",", "")
		}
		if value, ok := parseAmount(amount); ok {
			return value
		}
	}
	return 0
}

// isTotalLine reports whether a line carries a total or payment marker
func isTotalLine(line string) bool {
	return totalMarker.MatchString(line)
}
