// Package detect — persons.go
//
// Person-name heuristic: capitalized tokens classified against the name
// dictionary and a stopword list, with a greedy two-token merge for full
// names like "John Smith".
package detect

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"text-redactor/internal/entity"
)

// detectPersons scans whitespace-separated tokens for likely person names.
//
// Token offsets are recovered by searching for each token from the end of
// the previous one, so repeated identical tokens resolve to successive
// occurrences in the source.
func (d *Detector) detectPersons(text string) entity.List {
	var out entity.List

	words := strings.Fields(text)
	current := 0

	for i := 0; i < len(words); i++ {
		word := words[i]

		clean := cleanToken(word)
		if len(clean) < 2 {
			continue
		}

		rel := strings.Index(text[current:], word)
		if rel < 0 {
			continue
		}
		start := current + rel
		current = start + len(word)

		if !startsWithCapital(word) {
			continue
		}

		// A capitalized token is a name if the dictionary says so, or if it
		// is long enough, not a common English word, and not opening a
		// sentence (where capitalization carries no signal).
		if !d.dict.IsName(clean) {
			if len(clean) < 3 || d.dict.IsStopword(clean) || isSentenceStart(text, start) {
				continue
			}
		}

		// Greedy merge: absorb the next token when it also looks name-like
		// and sits within two characters (full names, "Dr. Rahman").
		end := start + len(word)
		if i+1 < len(words) {
			next := words[i+1]
			if startsUppercaseLoose(next) && (d.dict.IsName(cleanToken(next)) || len(next) > 2) {
				if gap := strings.Index(text[end:], next); gap >= 0 && gap <= 2 {
					end += gap + len(next)
					i++ // consumed by the merge
				}
			}
		}

		out = append(out, entity.Entity{
			Type:  entity.TypePerson,
			Text:  text[start:end],
			Start: start,
			End:   end,
		})
	}
	return out
}

// cleanToken strips every non-ASCII-letter byte and lowercases the rest.
func cleanToken(word string) string {
	var b strings.Builder
	for i := 0; i < len(word); i++ {
		c := word[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	return b.String()
}

// startsWithCapital reports whether the first rune is uppercase with a
// distinct lowercase form. Digits and punctuation fail the second half.
func startsWithCapital(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return false
	}
	return unicode.ToUpper(r) == r && unicode.ToLower(r) != r
}

// startsUppercaseLoose is the weaker check used for merge candidates: the
// first rune must simply equal its own uppercase form, which lets digits and
// punctuation through (e.g. initials with periods).
func startsUppercaseLoose(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return false
	}
	return unicode.ToUpper(r) == r
}

// isSentenceStart reports whether a token at the given offset opens a
// sentence: it sits at offset zero, or the preceding text (ignoring trailing
// whitespace) ends with a sentence terminator. A token preceded only by
// whitespace at a non-zero offset is NOT a sentence start.
func isSentenceStart(text string, start int) bool {
	if start == 0 {
		return true
	}
	before := strings.TrimSpace(text[:start])
	if before == "" {
		return false
	}
	switch before[len(before)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}
