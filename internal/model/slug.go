package model

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from s: accents are folded to ASCII, everything
// is lowercased and every run of other characters becomes a single dash.
//
//	"Web Frameworks" -> "web-frameworks"
//	"Café & Bars"    -> "cafe-bars"
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	folded = slugSeparators.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(folded, "-")
}
