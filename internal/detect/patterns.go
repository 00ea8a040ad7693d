// Package detect — patterns.go
//
// Structured-entity matchers: one compiled regex per entity type. Each call
// is a fresh, stateless scan of the whole input; Go's regexp engine keeps no
// cursor between calls, so repeated invocations on different inputs cannot
// leak scan state.
package detect

import (
	"regexp"

	"text-redactor/internal/entity"
)

// pattern pairs a compiled regex with the entity type it detects.
type pattern struct {
	re  *regexp.Regexp
	typ entity.Type
}

// patterns lists the structured matchers in priority order. The aggregator's
// stable sort preserves this order at equal start offsets, so earlier
// patterns outrank later ones (and all of them outrank the heuristics).
var patterns = []pattern{
	// Email: word-ish local part, @, dotted domain labels, 2+ letter TLD.
	{regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), entity.TypeEmail},
	// Phone: optional +country code, optional (area), separators of space/dot/dash.
	// \s here is ASCII whitespace only; a Unicode space (NBSP) between groups
	// breaks the match.
	{regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`), entity.TypePhone},
	// IPv4 shape only: no numeric range validation, 999.999.999.999 matches.
	{regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`), entity.TypeIPAddress},
	// Credit card: four groups of four digits, optional space/dash separators.
	{regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`), entity.TypeCreditCard},
	// URL: scheme-prefixed or bare www., up to the next whitespace.
	{regexp.MustCompile(`(https?://[^\s]+)|(www\.[^\s]+)`), entity.TypeURL},
	// Dates: D/M/Y and Y/M/D numeric forms, "Month D, Y", "D Month Y".
	// Month names match on their three-letter prefix, any case.
	{regexp.MustCompile(`(?i)\b(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})|(\d{4}[-/]\d{1,2}[-/]\d{1,2})|((Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*[\s,]+\d{1,2}[\s,]+\d{4})|(\d{1,2}[\s]+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*[\s,]+\d{4})\b`), entity.TypeDateTime},
}

// matchPattern emits one span per non-overlapping match, left to right.
func matchPattern(text string, p pattern) entity.List {
	var out entity.List
	for _, loc := range p.re.FindAllStringIndex(text, -1) {
		out = append(out, entity.Entity{
			Type:  p.typ,
			Text:  text[loc[0]:loc[1]],
			Start: loc[0],
			End:   loc[1],
		})
	}
	return out
}
