// Package genres maps URL genre tokens to the canonical display strings that
// books store in their genre set.
//
//	genres.Canonicalize("post-apocalyptic") // "Post-Apocalyptic"
//	genres.Canonicalize("dark-FANTASY")     // "Dark Fantasy"
//	genres.Slug("Slice of Life")            // "slice-of-life"
package genres

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// compoundGenres overrides word-by-word capitalization. Keys are the lowercase,
// space separated form of the token.
var compoundGenres = map[string]string{
	"sci fi":           "Sci-Fi",
	"fairy tale":       "Fairy Tale",
	"post apocalyptic": "Post-Apocalyptic",
	"slice of life":    "Slice of Life",
}

// Canonicalize converts a hyphen-separated, arbitrarily cased token to its
// canonical display genre. Canonicalize(Canonicalize(x)) == Canonicalize(x).
func Canonicalize(token string) string {
	name := spaced(token)
	if name == "" {
		return ""
	}
	if mapped, ok := compoundGenres[cases.Lower(language.Und).String(name)]; ok {
		return mapped
	}

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// MatchForms returns the stored spellings a genre query should match: the
// canonical form first, followed by legacy "capitalize the whole lowercase
// string" variants that older rows were saved with. Stored data is matched
// as-is and never rewritten.
func MatchForms(token string) []string {
	canonical := Canonicalize(token)
	if canonical == "" {
		return nil
	}

	forms := []string{canonical}
	seen := map[string]bool{canonical: true}
	for _, legacy := range []string{
		capitalize(strings.TrimSpace(token)),
		capitalize(spaced(token)),
	} {
		if legacy != "" && !seen[legacy] {
			seen[legacy] = true
			forms = append(forms, legacy)
		}
	}
	return forms
}

// Slug converts a display genre to its URL token.
func Slug(genre string) string {
	return cases.Lower(language.Und).String(strings.Join(strings.Fields(spaced(genre)), "-"))
}

// CanonicalizeAll canonicalizes a genre set, dropping blanks and duplicates
// while keeping first-seen order.
func CanonicalizeAll(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		c := Canonicalize(t)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// spaced composes the token to NFC, replaces hyphens with spaces and
// collapses runs of whitespace.
func spaced(token string) string {
	token = norm.NFC.String(token)
	return strings.Join(strings.Fields(strings.ReplaceAll(token, "-", " ")), " ")
}

// capitalize title-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	s = cases.Lower(language.Und).String(norm.NFC.String(s))
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Title(language.Und).String(s[:size]) + s[size:]
}
