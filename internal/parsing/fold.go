package parsing

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonWord = regexp.MustCompile(`[^\p{Hebrew}\w]+`)

// foldForMatch lowers case, drops diacritics (niqqud, accents) and every
// character outside the Hebrew block and word characters
func foldForMatch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return nonWord.ReplaceAllString(strings.ToLower(folded), "")
}
