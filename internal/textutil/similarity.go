package textutil

import (
	"cmp"
	"slices"
)

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// Match is a candidate scored against a query.
type Match struct {
	Value string
	Score float64
}

// Rank scores candidates against query and returns those at or above
// minScore, best first, at most limit entries (limit <= 0 means no limit).
// Ties keep candidate order.
func Rank(query string, candidates []string, minScore float64, limit int) []Match {
	q := NewFingerprint(query)
	if q == nil {
		return nil
	}
	var matches []Match
	for _, candidate := range candidates {
		score := CosineSimilarity(q, NewFingerprint(candidate))
		if score <= 0 || score < minScore {
			continue
		}
		matches = append(matches, Match{Value: candidate, Score: score})
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
