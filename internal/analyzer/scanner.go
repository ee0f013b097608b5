package analyzer

import (
	"github.com/ludo-technologies/pydry/internal/constants"
)

// ScannerConfig holds configuration for the duplication scanner
type ScannerConfig struct {
	// MinBlockLines is the minimum line span for a block to be compared
	MinBlockLines int

	// SimilarityThreshold is the minimum similarity for a pair to be reported.
	// Precondition: within [0,1]; the scanner does not clamp.
	SimilarityThreshold float64
}

// DefaultScannerConfig returns default configuration
func DefaultScannerConfig() *ScannerConfig {
	return &ScannerConfig{
		MinBlockLines:       constants.DefaultMinBlockLines,
		SimilarityThreshold: constants.DefaultSimilarityThreshold,
	}
}

// DuplicatePair is the raw result of comparing two blocks, before severity
// classification. BlockA and BlockB are never the same block and each
// unordered pair is produced at most once per run.
type DuplicatePair struct {
	BlockA     *CodeBlock
	BlockB     *CodeBlock
	Similarity float64
}

// SameFile reports whether both blocks originate from the same file
func (p *DuplicatePair) SameFile() bool {
	return p.BlockA.FilePath == p.BlockB.FilePath
}

// AvgLineCount returns the average line count of the pair's two blocks
func (p *DuplicatePair) AvgLineCount() float64 {
	return float64(p.BlockA.LineCount()+p.BlockB.LineCount()) / 2.0
}

// DuplicationScanner iterates block pairs, suppresses same-file overlaps and
// applies the similarity threshold. It exclusively owns the transient block
// collection for the duration of one run; blocks are never mutated.
type DuplicationScanner struct {
	config *ScannerConfig
	engine *SimilarityEngine
}

// NewDuplicationScanner creates a new scanner with the given configuration
func NewDuplicationScanner(config *ScannerConfig) *DuplicationScanner {
	return &DuplicationScanner{
		config: config,
		engine: NewSimilarityEngine(),
	}
}

// ScanBlocks considers every unordered pair of distinct blocks exactly once
// and returns the pairs meeting the similarity threshold, in discovery order.
//
// Two blocks in the same file with overlapping line ranges are skipped
// unconditionally: a structural block and a statement-run block covering the
// same lines must not be reported as a duplicate of itself.
func (s *DuplicationScanner) ScanBlocks(blocks []*CodeBlock) []*DuplicatePair {
	var pairs []*DuplicatePair

	n := len(blocks)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if pair := s.compare(blocks[i], blocks[j]); pair != nil {
				pairs = append(pairs, pair)
			}
		}
	}

	return pairs
}

// ScanAgainstBaseline compares a target file's blocks against a baseline
// built from a reference tree, reporting only cross-file duplication: pairs
// whose baseline block comes from a different file than the target block.
func (s *DuplicationScanner) ScanAgainstBaseline(target, baseline []*CodeBlock) []*DuplicatePair {
	var pairs []*DuplicatePair

	for _, tb := range target {
		for _, bb := range baseline {
			if tb.FilePath == bb.FilePath {
				continue
			}
			if pair := s.compare(tb, bb); pair != nil {
				pairs = append(pairs, pair)
			}
		}
	}

	return pairs
}

// compare returns a pair when the blocks are comparable and similar enough
func (s *DuplicationScanner) compare(a, b *CodeBlock) *DuplicatePair {
	if a == b {
		return nil
	}
	if a.Overlaps(b) {
		return nil
	}

	similarity := s.engine.Similarity(a, b)
	if similarity < s.config.SimilarityThreshold {
		return nil
	}

	return &DuplicatePair{
		BlockA:     a,
		BlockB:     b,
		Similarity: similarity,
	}
}
