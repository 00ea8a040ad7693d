// Package rewrite applies a resolved entity list to the source text,
// producing the redacted output string.
package rewrite

import (
	"fmt"
	"sort"
	"strings"

	"text-redactor/internal/entity"
)

// Mode selects how matched spans are transformed.
type Mode string

// The two legal rewrite modes.
const (
	// ModeMask replaces each span with a bracketed type label, e.g.
	// "[EMAIL_ADDRESS]".
	ModeMask Mode = "mask"
	// ModeRedact removes each span entirely.
	ModeRedact Mode = "redact"
)

// ParseMode converts a user-supplied mode string. The empty string defaults
// to mask; anything else unrecognized is an error.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeMask, "":
		return ModeMask, nil
	case ModeRedact:
		return ModeRedact, nil
	}
	return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeMask, ModeRedact)
}

// Apply returns a copy of text with every entity span replaced according to
// mode. Spans are processed in descending start order, so each replacement
// leaves the offsets of all not-yet-processed spans intact. The entity list
// is not mutated; entities are assumed non-overlapping (aggregator output).
func Apply(text string, entities entity.List, mode Mode) string {
	spans := make(entity.List, len(entities))
	copy(spans, entities)
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start > spans[j].Start
	})

	out := text
	for _, e := range spans {
		repl := ""
		if mode == ModeMask {
			repl = "[" + string(e.Type) + "]"
		}
		out = out[:e.Start] + repl + out[e.End:]
	}
	return out
}
