package parsing

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	edgeJunk     = regexp.MustCompile(`^[^\p{Hebrew}\w]+|[^\p{Hebrew}\w]+$`)
	whitespace   = regexp.MustCompile(`\s+`)
	digitsOnly   = regexp.MustCompile(`^\d+$`)
	minNameRunes = 2
)

// ExtractName returns the item name left on a line once price and quantity
// tokens are removed, or false if what remains does not look like a name
func ExtractName(line string) (string, bool) {
	name := stripQuantities(stripPrices(line))
	return cleanName(name)
}

func cleanName(name string) (string, bool) {
	name = whitespace.ReplaceAllString(name, " ")
	name = strings.TrimSpace(edgeJunk.ReplaceAllString(name, ""))
	if len([]rune(name)) < minNameRunes || digitsOnly.MatchString(name) || !hasLetter(name) {
		return "", false
	}
	return name, true
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
