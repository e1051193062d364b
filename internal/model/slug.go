package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slug normalizes a human page title into a page identifier.
//
// Whitespace becomes "-", every character outside [A-Za-z0-9-] is dropped,
// and the result is lowercased. The function is idempotent:
// Slug(Slug(t)) == Slug(t).
//
//	Slug("Welcome Visitors!") == "welcome-visitors"
func Slug(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte('-')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// TitleFromSlug produces a readable title for a slug whose page has not been
// fetched yet, e.g. "welcome-visitors" becomes "Welcome Visitors".
func TitleFromSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' })
	return cases.Title(language.English).String(strings.Join(words, " "))
}
