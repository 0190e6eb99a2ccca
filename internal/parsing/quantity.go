package parsing

import (
	"regexp"
	"strconv"
)

const (
	MinQuantity = 1
	MaxQuantity = 20
)

type quantityRule struct {
	name    string
	pattern *regexp.Regexp
}

// quantityRules are evaluated in order; the first in-range match wins
var quantityRules = []quantityRule{
	{name: "leading-multiplier", pattern: regexp.MustCompile(`^\s*(\d{1,3})\s*[xX×*]`)},
	{name: "keyword", pattern: regexp.MustCompile(`(?i)(?:quantity|qty|כמות)\s*[:=]?\s*(\d{1,3})`)},
	{name: "trailing-multiplier", pattern: regexp.MustCompile(`(?:^|\s)[xX×*]\s*(\d{1,3})\s*$`)},
	{name: "unit-count", pattern: regexp.MustCompile(`(?i)(\d{1,3})\s*(?:יחידות|יח['׳]?|pcs|units?)`)},
}

func (r quantityRule) extract(text string) (int, bool) {
	for _, m := range r.pattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err == nil && n >= MinQuantity && n <= MaxQuantity {
			return n, true
		}
	}
	return 0, false
}

// ExtractQuantity returns the unit count printed on a line, defaulting to 1
func ExtractQuantity(text string) int {
	for _, rule := range quantityRules {
		if n, ok := rule.extract(text); ok {
			return n
		}
	}
	return MinQuantity
}

func stripQuantities(text string) string {
	for _, rule := range quantityRules {
		text = rule.pattern.ReplaceAllString(text, " ")
	}
	return text
}
