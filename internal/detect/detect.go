// Package detect implements the rule-based PII detectors and the span
// aggregator that merges their output into one non-overlapping entity list.
//
// Three detector families run over the input:
//
//   - structured pattern matchers (email, phone, IP, credit card, URL, date)
//   - a dictionary matcher for known location phrases
//   - capitalization heuristics for person names and location guesses
//
// Every detector is a pure scan: it returns its own span slice and mutates
// nothing. A Detector holds only the immutable dictionaries, so one instance
// is safe to share across concurrent calls on independent inputs.
//
// Detection is deliberately rule-based. False positives and false negatives
// are expected; a detector finding nothing is a normal empty result.
package detect

import (
	"text-redactor/internal/dictionary"
	"text-redactor/internal/entity"
)

// Detector runs the full detector set against input text.
type Detector struct {
	dict *dictionary.Dictionary
}

// New returns a Detector backed by the given dictionaries.
func New(dict *dictionary.Dictionary) *Detector {
	return &Detector{dict: dict}
}

// DetectAll runs every detector in priority order, concatenates the raw
// spans, and resolves overlaps. The returned list is sorted ascending by
// start offset and contains no overlapping spans.
func (d *Detector) DetectAll(text string) entity.List {
	return Resolve(d.rawSpans(text))
}

// rawSpans concatenates all detector output in priority order:
// structured patterns first, then persons, then locations (dictionary pass
// before the heuristic layers). The aggregator turns this concatenation
// order into the overlap tie-break priority.
func (d *Detector) rawSpans(text string) entity.List {
	var raw entity.List
	for _, p := range patterns {
		raw = append(raw, matchPattern(text, p)...)
	}
	raw = append(raw, d.detectPersons(text)...)
	raw = append(raw, d.detectLocations(text)...)
	return raw
}
