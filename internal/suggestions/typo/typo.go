// Package typo provides edit-distance similarity and "did you mean?"
// correction for exercise names.
package typo

import (
	"sort"
	"strings"
)

const (
	// DefaultSimilarityThreshold is the minimum similarity for a correction.
	DefaultSimilarityThreshold = 0.6

	// DefaultMaxSuggestions is the maximum corrections to return.
	DefaultMaxSuggestions = 3
)

// CorrectorConfig configures the corrector.
type CorrectorConfig struct {
	// SimilarityThreshold is the minimum similarity score (0-1).
	// Default: 0.6
	SimilarityThreshold float64

	// MaxSuggestions is the maximum corrections to return.
	// Default: 3
	MaxSuggestions int
}

// DefaultCorrectorConfig returns the default corrector configuration.
func DefaultCorrectorConfig() CorrectorConfig {
	return CorrectorConfig{
		SimilarityThreshold: DefaultSimilarityThreshold,
		MaxSuggestions:      DefaultMaxSuggestions,
	}
}

// Correction is a candidate replacement for a misspelled name.
type Correction struct {
	Original   string
	Suggested  string
	Similarity float64
}

// Corrector proposes known names close to an unknown one.
type Corrector struct {
	similarityThreshold float64
	maxSuggestions      int
}

// NewCorrector creates a corrector, replacing out-of-range settings with defaults.
func NewCorrector(cfg CorrectorConfig) *Corrector {
	if cfg.SimilarityThreshold <= 0 || cfg.SimilarityThreshold > 1 {
		cfg.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = DefaultMaxSuggestions
	}
	return &Corrector{
		similarityThreshold: cfg.SimilarityThreshold,
		maxSuggestions:      cfg.MaxSuggestions,
	}
}

// Correct ranks candidates by similarity to input (case-insensitive) and
// returns those at or above the threshold, best first. An exact match
// yields no corrections.
func (c *Corrector) Correct(input string, candidates []string) []Correction {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return nil
	}

	var out []Correction
	seen := make(map[string]bool, len(candidates))
	for _, cand := range candidates {
		lc := strings.ToLower(cand)
		if lc == in {
			return nil
		}
		if seen[lc] {
			continue
		}
		seen[lc] = true

		sim := Similarity(in, lc)
		if sim < c.similarityThreshold {
			continue
		}
		out = append(out, Correction{
			Original:   input,
			Suggested:  cand,
			Similarity: sim,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].Suggested < out[j].Suggested
	})

	if len(out) > c.maxSuggestions {
		out = out[:c.maxSuggestions]
	}
	return out
}
