// Package detect — locations.go
//
// Location detection runs in four layers: a dictionary pass over known
// phrases, then three capitalization heuristics (keyword suffix, multi-word
// phrase with locative context, preposition + single token).
package detect

import (
	"regexp"
	"strings"

	"text-redactor/internal/entity"
)

var (
	// Capitalized word(s) followed by a location keyword. Compiled
	// case-insensitively, so the capital classes degrade to any-case --
	// "dhaka city" matches as well as "Dhaka City". Longstanding behavior;
	// do not tighten.
	locKeywordRe = regexp.MustCompile(`(?i)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:city|state|zone|province|district|county|region|area|territory|nation|country)`)

	// Bare multi-word capitalized phrase, e.g. "New South Wales".
	capPhraseRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\b`)

	// Locative context words searched for in the window around a phrase.
	locContextRe = regexp.MustCompile(`\b(in|from|at|near|located|province|state|country|city|zone|district|region)\b`)

	// Lowercase preposition followed by a single capitalized token.
	prepositionRe = regexp.MustCompile(`\b(in|from|at|near|to|towards|via|through)\s+([A-Z][a-z]{2,})\b`)
)

// contextWindow is the number of bytes inspected on each side of a
// candidate phrase when looking for locative context.
const contextWindow = 50

// detectLocations runs the dictionary pass and the three heuristic layers,
// in that order. Overlap among the layers is left for the aggregator.
func (d *Detector) detectLocations(text string) entity.List {
	out := d.dictionaryLocations(text)
	out = append(out, keywordLocations(text)...)
	out = append(out, capPhraseLocations(text)...)
	out = append(out, d.prepositionLocations(text)...)
	return out
}

// dictionaryLocations scans the case-folded text for every occurrence of
// every dictionary phrase, accepting a hit only when neither neighbor is a
// lowercase ASCII letter. Only [a-z] blocks a match: digits, punctuation,
// and non-ASCII letters all count as boundaries. That check is part of the
// engine's contract; widening it to Unicode word boundaries changes results.
func (d *Detector) dictionaryLocations(text string) entity.List {
	var out entity.List

	// ASCII-only fold keeps byte offsets identical to the source, which a
	// full Unicode ToLower does not guarantee.
	lower := asciiLower(text)

	for _, phrase := range d.dict.Locations() {
		search := 0
		for {
			rel := strings.Index(lower[search:], phrase)
			if rel < 0 {
				break
			}
			start := search + rel
			end := start + len(phrase)
			if wholePhrase(lower, start, end) {
				out = append(out, entity.Entity{
					Type:  entity.TypeLocation,
					Text:  text[start:end], // original casing
					Start: start,
					End:   end,
				})
			}
			search = start + 1
		}
	}
	return out
}

// keywordLocations tags "<words> <location keyword>" as a whole.
func keywordLocations(text string) entity.List {
	var out entity.List
	for _, loc := range locKeywordRe.FindAllStringIndex(text, -1) {
		out = append(out, entity.Entity{
			Type:  entity.TypeLocation,
			Text:  text[loc[0]:loc[1]],
			Start: loc[0],
			End:   loc[1],
		})
	}
	return out
}

// capPhraseLocations tags bare capitalized phrases of 2-4 words, but only
// when the surrounding window contains a locative context word.
func capPhraseLocations(text string) entity.List {
	var out entity.List
	for _, loc := range capPhraseRe.FindAllStringIndex(text, -1) {
		phrase := text[loc[0]:loc[1]]
		n := len(strings.Fields(phrase))
		if n < 2 || n > 4 {
			continue
		}

		cs := loc[0] - contextWindow
		if cs < 0 {
			cs = 0
		}
		ce := loc[1] + contextWindow
		if ce > len(text) {
			ce = len(text)
		}
		if !locContextRe.MatchString(strings.ToLower(text[cs:ce])) {
			continue
		}

		out = append(out, entity.Entity{
			Type:  entity.TypeLocation,
			Text:  phrase,
			Start: loc[0],
			End:   loc[1],
		})
	}
	return out
}

// prepositionLocations tags the capitalized token after "in", "from", etc.,
// unless its lowercase form is a known person name.
func (d *Detector) prepositionLocations(text string) entity.List {
	var out entity.List
	for _, m := range prepositionRe.FindAllStringSubmatchIndex(text, -1) {
		// Group 2 is the capitalized token.
		start, end := m[4], m[5]
		word := text[start:end]
		if d.dict.IsName(strings.ToLower(word)) {
			continue
		}
		out = append(out, entity.Entity{
			Type:  entity.TypeLocation,
			Text:  word,
			Start: start,
			End:   end,
		})
	}
	return out
}

// asciiLower folds A-Z to a-z byte-wise, leaving everything else (and
// therefore every byte offset) untouched.
func asciiLower(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// wholePhrase reports whether the [start,end) range in the folded text is
// bounded by non-lowercase-ASCII on both sides (or the text edge).
func wholePhrase(lower string, start, end int) bool {
	if start > 0 && isLowerASCII(lower[start-1]) {
		return false
	}
	if end < len(lower) && isLowerASCII(lower[end]) {
		return false
	}
	return true
}

func isLowerASCII(c byte) bool {
	return c >= 'a' && c <= 'z'
}
