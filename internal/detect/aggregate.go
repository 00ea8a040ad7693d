// Package detect — aggregate.go
//
// Overlap resolution for the concatenated detector output.
package detect

import "text-redactor/internal/entity"

// Resolve merges raw detector spans into the final non-overlapping list.
//
// The pass is greedy and leftmost-first: stable-sort ascending by start
// offset, then walk once, accepting a span only when it begins at or after
// the end of the last accepted span. Because the sort is stable, spans that
// share a start offset keep their detector-invocation order, which makes
// that order the de facto priority: structured patterns beat heuristic
// guesses. This is not a globally optimal non-overlapping-set solver.
//
// The input slice is not mutated.
func Resolve(raw entity.List) entity.List {
	spans := make(entity.List, len(raw))
	copy(spans, raw)
	spans.SortByStart()

	out := make(entity.List, 0, len(spans))
	lastEnd := -1
	for _, s := range spans {
		if s.Start >= lastEnd {
			out = append(out, s)
			lastEnd = s.End
		}
	}
	return out
}
