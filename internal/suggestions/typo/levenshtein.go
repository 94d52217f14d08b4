package typo

import "unicode/utf8"

// LevenshteinDistance computes the Levenshtein edit distance between two strings.
// This is the minimum number of single-character edits (insertions, deletions,
// or substitutions) required to change one string into the other.
func LevenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return utf8.RuneCountInString(b)
	}
	if len(b) == 0 {
		return utf8.RuneCountInString(a)
	}

	runesA := []rune(a)
	runesB := []rune(b)

	// Two rows are enough: row i only reads row i-1.
	prev := make([]int, len(runesB)+1)
	curr := make([]int, len(runesB)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(runesA); i++ {
		curr[0] = i

		for j := 1; j <= len(runesB); j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 1
			}

			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(runesB)]
}

// Similarity returns a score in [0, 1] derived from the edit distance between
// a and b, measured against the longer of the two:
//
//	(len(longer) - distance(shorter, longer)) / len(longer)
//
// Two empty strings are identical (1.0). Lengths are counted in runes.
// Case folding is the caller's job.
func Similarity(a, b string) float64 {
	longer, shorter := a, b
	if utf8.RuneCountInString(b) > utf8.RuneCountInString(a) {
		longer, shorter = b, a
	}

	longerLen := utf8.RuneCountInString(longer)
	if longerLen == 0 {
		return 1.0
	}

	distance := LevenshteinDistance(shorter, longer)
	return float64(longerLen-distance) / float64(longerLen)
}
