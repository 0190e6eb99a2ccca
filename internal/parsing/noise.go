package parsing

import (
	"regexp"
	"strings"
)

// noisePatterns flag lines that never carry an item: headers, barcodes,
// fiscal IDs, separators, timestamps
var noisePatterns = []*regexp.Regexp{
	// digits and punctuation only
	regexp.MustCompile(`^[\d\s\p{P}]{4,}$`),
	// currency symbols, digits and separators only
	regexp.MustCompile(`^[\p{Sc}\d\s.,:\-/]{4,}$`),
	// horizontal rules
	regexp.MustCompile(`^\s*[-=_*~.#+]{5,}\s*$`),
	// date / time
	regexp.MustCompile(`(?i)^\s*(?:תאריך|שעה|date\b|time\b)`),
	regexp.MustCompile(`^\s*\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}`),
	// business registration numbers
	regexp.MustCompile(`(?i)^\s*(?:ע[."״']\s?מ|ח[."״']\s?פ|עוסק\s+מורשה|מס['׳]?\s+עוסק|vat\b|reg\.?\s*no)`),
	// register / cashier
	regexp.MustCompile(`(?i)^\s*(?:קופה|קופאי|קופאית|cashier|register|pos\b)`),
	// barcodes
	regexp.MustCompile(`(?i)^\s*(?:ברקוד|barcode|ean\b|upc\b)`),
	// receipt / voucher keywords anywhere
	regexp.MustCompile(`(?i)(?:קבלה|חשבונית|שובר|receipt|invoice|voucher)`),
}

// IsNoise reports whether a line should be dropped before item extraction
func IsNoise(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	for _, pattern := range noisePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// aggressiveNoise is the minimal filter used by the aggressive pass
var aggressiveNoise = regexp.MustCompile(`^[\d\s\p{P}]{4,}$`)

func isAggressiveNoise(line string) bool {
	return len([]rune(line)) < 3 || aggressiveNoise.MatchString(line)
}

// SplitLines turns raw OCR output into non-empty trimmed lines
func SplitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
