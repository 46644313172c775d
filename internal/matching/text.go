package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText lowercases s with Unicode case folding, strips diacritics and
// collapses whitespace. "  Κηφισιά " and "κηφισια" fold to the same string.
// Transformers and casers are stateful, so each call builds its own.
func foldText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(strip, s); err == nil {
		s = out
	}
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

var keySeparators = strings.NewReplacer("_", " ", "-", " ")

// foldKey folds s and treats underscores and hyphens as spaces, so
// "Heat_Pump", "heat-pump" and "heat pump" compare equal.
func foldKey(s string) string {
	return foldText(keySeparators.Replace(s))
}
