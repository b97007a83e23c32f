package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// containsJapanese reports whether s has any kana or CJK ideographs.
func containsJapanese(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return true
		}
	}
	return false
}

// normalizeQuery lowercases and trims a user query. Accents are stripped from
// Latin text only: decomposing kana would split off the dakuten marks.
func normalizeQuery(query string) string {
	query = strings.ToLower(strings.TrimSpace(query))
	if containsJapanese(query) {
		return norm.NFC.String(query)
	}
	result, _, err := transform.String(stripAccents, query)
	if err != nil {
		return query
	}
	return result
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
