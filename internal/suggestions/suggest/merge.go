package suggest

import (
	"math"
	"sort"
	"strings"
)

// Merge combines candidate lists into at most maxResults suggestions.
//
// Candidates are re-resolved through lookup and dropped when unknown. Within
// each exercise (case-insensitive name) the highest confidence wins; ties go
// to the candidate seen first. The result is sorted by confidence descending
// with name as the tie-break, so the output does not depend on map order.
func Merge(lists [][]Suggestion, lookup CatalogLookup, maxResults int) []Suggestion {
	maxResults = clampMaxResults(maxResults)

	best := make(map[string]int)
	var merged []Suggestion
	for _, list := range lists {
		for _, s := range list {
			if math.IsNaN(s.Confidence) {
				continue
			}
			exercise, ok := lookup.Resolve(s.Exercise.Name)
			if !ok {
				continue
			}
			s.Exercise = exercise
			s.Confidence = clampConfidence(s.Confidence)

			key := strings.ToLower(exercise.Name)
			idx, seen := best[key]
			if !seen {
				best[key] = len(merged)
				merged = append(merged, s)
				continue
			}
			if s.Confidence > merged[idx].Confidence {
				merged[idx] = s
			}
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Confidence != merged[j].Confidence {
			return merged[i].Confidence > merged[j].Confidence
		}
		return merged[i].Exercise.Name < merged[j].Exercise.Name
	})

	if len(merged) > maxResults {
		merged = merged[:maxResults]
	}
	return merged
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
