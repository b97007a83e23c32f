package services

import (
	"fmt"

	"github.com/hbollon/go-edlib"
)

// Similarity scores how alike two strings are, from 0 (unrelated) to 1 (identical).
type Similarity interface {
	Score(a, b string) float64
}

// SimilarityFunc adapts a plain function to Similarity.
type SimilarityFunc func(a, b string) float64

func (f SimilarityFunc) Score(a, b string) float64 {
	return f(a, b)
}

func edlibSimilarity(algo edlib.Algorithm) SimilarityFunc {
	return func(a, b string) float64 {
		score, err := edlib.StringsSimilarity(a, b, algo)
		if err != nil {
			return 0
		}
		return float64(score)
	}
}

// NewSimilarity returns the named similarity strategy.
func NewSimilarity(name string) (Similarity, error) {
	switch name {
	case "", "levenshtein":
		return edlibSimilarity(edlib.Levenshtein), nil
	case "damerau_levenshtein":
		return edlibSimilarity(edlib.DamerauLevenshtein), nil
	case "jaro_winkler":
		return SimilarityFunc(func(a, b string) float64 {
			return float64(edlib.JaroWinklerSimilarity(a, b))
		}), nil
	default:
		return nil, fmt.Errorf("unknown similarity algorithm %q", name)
	}
}

// closestMatch returns the candidate scoring highest against query, provided
// it reaches cutoff. Equal scores go to the lexically greater candidate so the
// result does not depend on candidate order.
func closestMatch(query string, candidates []string, cutoff float64, sim Similarity) (string, bool) {
	best := ""
	bestScore := -1.0
	for _, candidate := range candidates {
		score := sim.Score(query, candidate)
		if score < cutoff {
			continue
		}
		if score > bestScore || (score == bestScore && candidate > best) {
			best = candidate
			bestScore = score
		}
	}
	return best, bestScore >= 0
}
