package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases s, strips diacritics (NFD + combining-mark removal)
// and trims surrounding whitespace. "  Cartágena " -> "cartagena".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		// transform only fails on invalid chains; fall back to case folding
		out = s
	}
	return strings.TrimSpace(strings.ToLower(out))
}

// Contains reports whether the normalized haystack contains the normalized needle.
// An empty needle never matches.
func Contains(haystack, needle string) bool {
	n := Normalize(needle)
	if n == "" {
		return false
	}
	return strings.Contains(Normalize(haystack), n)
}

// Equal compares two strings after normalization.
func Equal(a, b string) bool { return Normalize(a) == Normalize(b) }
