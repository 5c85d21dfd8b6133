package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks after NFD decomposition, so that
// accented characters fold to their base letter ("é" -> "e").
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make derives a URL-safe slug from free-form text.
// It lowercases, strips diacritics, collapses every run of
// non-alphanumeric characters to a single hyphen, and trims
// leading/trailing hyphens.
//
// Make is the only slug implementation in the codebase. Every lookup key
// (artist slug, festival slug, dedup checks) must go through it so the
// same name always resolves to the same row.
func Make(text string) string {
	folded, _, err := transform.String(stripMarks, text)
	if err != nil {
		// Transform only fails on malformed UTF-8. Fall back to the raw
		// input; the alphanumeric filter below drops invalid bytes anyway.
		folded = text
	}

	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}

// ForFestival composes the uniqueness key for a festival: the normalized
// title plus the external source identifier. Two different real-world
// events sharing a title still get distinct slugs.
func ForFestival(title, externalID string) string {
	return Make(title) + "-" + externalID
}
