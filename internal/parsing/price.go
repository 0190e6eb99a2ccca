package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	MinPrice = 0.1
	MaxPrice = 2000.0
)

// currency matches the symbols receipts print next to amounts
const currency = `(?:₪|\$|€|ש["״]ח|NIS)`

// priceRule is one step of the price cascade. When split is set the rule
// captures the integer and fractional parts separately.
type priceRule struct {
	name    string
	pattern *regexp.Regexp
	split   bool
}

// priceRules are evaluated in order; the first in-band candidate wins
var priceRules = []priceRule{
	{name: "trailing-dot", pattern: regexp.MustCompile(currency + `?\s*(\d+\.\d{2})\s*` + currency + `?\s*$`)},
	{name: "trailing-comma", pattern: regexp.MustCompile(currency + `?\s*(\d+,\d{2})\s*` + currency + `?\s*$`)},
	{name: "amount-currency", pattern: regexp.MustCompile(`(\d+(?:[.,]\d{1,2})?)\s*` + currency)},
	{name: "currency-amount", pattern: regexp.MustCompile(currency + `\s*(\d+(?:[.,]\d{1,2})?)`)},
	{name: "spaced-dot", pattern: regexp.MustCompile(`(?:^|\s)(\d+\.\d{2})(?:\s|$)`)},
	{name: "spaced-comma", pattern: regexp.MustCompile(`(?:^|\s)(\d+,\d{2})(?:\s|$)`)},
	{name: "spaced-amount", pattern: regexp.MustCompile(`\s(\d+(?:\.\d+)?)\s`)},
	{name: "split-decimal", pattern: regexp.MustCompile(`(\d+)\s*[.,]\s*(\d{2})\b`), split: true},
}

// lastResortPrice is tried only when every rule fails
var lastResortPrice = regexp.MustCompile(`(\d+\.\d{2})`)

// candidates returns the numeric strings the rule captures, in match order
func (r priceRule) candidates(text string) []string {
	matches := r.pattern.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if r.split {
			out = append(out, m[1]+"."+m[2])
			continue
		}
		out = append(out, m[1])
	}
	return out
}

// extract returns the first candidate inside the price band
func (r priceRule) extract(text string) (float64, bool) {
	for _, candidate := range r.candidates(text) {
		if value, ok := parseAmount(candidate); ok && inPriceBand(value) {
			return value, true
		}
	}
	return 0, false
}

// ExtractPrice finds the most plausible price on a line of receipt text
func ExtractPrice(text string) (float64, bool) {
	for _, rule := range priceRules {
		if value, ok := rule.extract(text); ok {
			return value, true
		}
	}
	return priceRule{pattern: lastResortPrice}.extract(text)
}

func inPriceBand(value float64) bool {
	return value >= MinPrice && value <= MaxPrice
}

// parseAmount parses a numeral that may use a comma as the decimal point
func parseAmount(s string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}

// stripPrices removes every substring any price rule matches
func stripPrices(text string) string {
	for _, rule := range priceRules {
		text = rule.pattern.ReplaceAllString(text, " ")
	}
	return text
}
