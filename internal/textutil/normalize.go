package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticStripper decomposes to NFD, drops combining marks, and recomposes,
// turning "Crème Brûlée" into "Creme Brulee".
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var symbolReplacer = strings.NewReplacer(
	"&", " and ",
	"+", " and ",
	"’", "'",
	"`", "'",
)

// FoldName lowers a place name into its comparison form: trimmed, lowercased,
// diacritics stripped, ampersands spelled out. Total over any input; returns
// "" for blank names.
func FoldName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	stripped, _, err := transform.String(diacriticStripper, trimmed)
	if err != nil {
		// Malformed UTF-8: fall back to the raw name rather than failing.
		stripped = trimmed
	}
	return strings.ToLower(symbolReplacer.Replace(stripped))
}
