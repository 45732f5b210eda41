package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks and recomposes,
// turning "VIGÍA" into "VIGIA" and "Ñ" into "N".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var titleCaser = cases.Title(language.Spanish)

// Normalize uppercases text and strips diacritics so pattern matching is
// case- and accent-insensitive. Idempotent: Normalize(Normalize(x)) ==
// Normalize(x).
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(out)
}

// TitleName converts an uppercase captured name into its display form,
// preserving word boundaries ("JUAN PEREZ" -> "Juan Perez").
func TitleName(s string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}

// collapseSpaces squeezes runs of spaces and tabs inside a captured value.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
