package util

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// TruncateString truncates a string to maxRunes characters (rune-based, not byte-based)
// If truncated, appends "..." to the result
func TruncateString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

// Normalize performs basic string normalization (lowercase + trim)
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FoldWidth folds full-width and half-width forms to their NFKC compatibility form.
func FoldWidth(s string) string {
	return norm.NFKC.String(s)
}

// NormalizeName folds character width and removes every space, for comparing
// names that the two chambers render with different spacing.
func NormalizeName(name string) string {
	name = FoldWidth(name)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u3000', '\u00a0', '\t', '\n', '\r':
			return -1
		default:
			return r
		}
	}, name)
}

// CleanText turns non-breaking spaces into spaces, collapses whitespace runs
// and trims the result. Width is left as is.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ContainsName reports whether haystack mentions name once both are normalized.
func ContainsName(haystack, name string) bool {
	needle := NormalizeName(name)
	if needle == "" {
		return false
	}
	return strings.Contains(NormalizeName(haystack), needle)
}
