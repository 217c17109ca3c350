package brcode

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxNameLen = 25
	maxCityLen = 15
)

// Normalize strips diacritics, truncates to maxLen characters and upper-cases text.
// The result never exceeds maxLen bytes.
func Normalize(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	text = strings.TrimSpace(text)

	// Transformers carry state, so they are built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, text)
	if err != nil {
		stripped = text
	}

	if utf8.RuneCountInString(stripped) > maxLen {
		stripped = string([]rune(stripped)[:maxLen])
	}

	upper := cases.Upper(language.BrazilianPortuguese).String(stripped)
	return clampBytes(upper, maxLen)
}

func clampBytes(s string, n int) string {
	for len(s) > n {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s
}
