// Package similarity scores how close the redacted output stayed to the
// original text, as a normalized Levenshtein percentage.
package similarity

// Distance returns the Levenshtein edit distance between a and b, computed
// over runes with unit costs for insertion, deletion, and substitution.
// Two rolling rows replace the full DP matrix; the recurrence is unchanged.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min(prev[j-1], curr[j-1], prev[j]) + 1
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Score returns the similarity between a and b as a percentage in [0, 100]:
// ((maxLen - distance) / maxLen) * 100, with maxLen in runes. Two empty
// strings score 100. Callers round for display; the raw float is returned.
func Score(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	maxLen := max(la, lb)
	if maxLen == 0 {
		return 100
	}
	return float64(maxLen-Distance(a, b)) / float64(maxLen) * 100
}
