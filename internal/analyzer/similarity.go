package analyzer

// SimilarityEngine computes a similarity score in [0,1] between two blocks.
// Fingerprint equality short-circuits to 1.0; otherwise the score is the
// Jaccard similarity of the blocks' token sets.
//
// Token sets ignore order and multiplicity: two blocks with the same
// statements permuted score identically. This deliberately favors recall for
// a quick check over exactness and is pinned by tests; do not "fix" it.
type SimilarityEngine struct{}

// NewSimilarityEngine creates a new similarity engine
func NewSimilarityEngine() *SimilarityEngine {
	return &SimilarityEngine{}
}

// Similarity returns the similarity between two blocks. It is symmetric and
// equals 1.0 whenever both blocks' fingerprints match.
func (e *SimilarityEngine) Similarity(a, b *CodeBlock) float64 {
	if a.Hash == b.Hash {
		return 1.0
	}
	return jaccard(a.Tokens(), b.Tokens())
}

// jaccard returns |intersection| / |union| of two token sets, and 0.0 when
// either set is empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	intersection := 0
	for tok := range small {
		if _, ok := large[tok]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
