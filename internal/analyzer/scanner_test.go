package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScanner(threshold float64) *DuplicationScanner {
	return NewDuplicationScanner(&ScannerConfig{
		MinBlockLines:       3,
		SimilarityThreshold: threshold,
	})
}

func TestScanBlocksReportsIdenticalBlocks(t *testing.T) {
	scanner := newScanner(0.8)

	a := block("a.py", "total = 0\nfor i in items:\n    total += i", 1, 3)
	b := block("b.py", "total = 0\nfor i in items:\n    total += i", 10, 12)

	pairs := scanner.ScanBlocks([]*CodeBlock{a, b})

	require.Len(t, pairs, 1)
	assert.Equal(t, 1.0, pairs[0].Similarity)
	assert.False(t, pairs[0].SameFile())
}

func TestScanBlocksEachUnorderedPairOnce(t *testing.T) {
	scanner := newScanner(0.8)

	// Three identical blocks in distinct files: exactly C(3,2) pairs.
	blocks := []*CodeBlock{
		block("a.py", "x = 1\ny = 2\nz = 3", 1, 3),
		block("b.py", "x = 1\ny = 2\nz = 3", 1, 3),
		block("c.py", "x = 1\ny = 2\nz = 3", 1, 3),
	}

	pairs := scanner.ScanBlocks(blocks)
	assert.Len(t, pairs, 3)
}

func TestScanBlocksNeverPairsBlockWithItself(t *testing.T) {
	scanner := newScanner(0.0)

	only := block("a.py", "x = 1\ny = 2\nz = 3", 1, 3)
	pairs := scanner.ScanBlocks([]*CodeBlock{only})
	assert.Empty(t, pairs)
}

func TestScanBlocksSkipsSameFileOverlaps(t *testing.T) {
	scanner := newScanner(0.8)

	// A structural block and a statement run covering the same lines of one
	// file must not be reported against each other, no matter the score.
	structural := NewCodeBlock("a.py", "def f():\n    x = 1\n    return x", 1, 3, BlockStructural)
	run := NewCodeBlock("a.py", "def f():\n    x = 1\n    return x", 1, 3, BlockStatementRun)

	pairs := scanner.ScanBlocks([]*CodeBlock{structural, run})
	assert.Empty(t, pairs)
}

func TestScanBlocksPairsNonOverlappingSameFileBlocks(t *testing.T) {
	scanner := newScanner(0.8)

	first := block("a.py", "x = 1\ny = 2\nz = 3", 1, 3)
	second := block("a.py", "x = 1\ny = 2\nz = 3", 5, 7)

	pairs := scanner.ScanBlocks([]*CodeBlock{first, second})

	require.Len(t, pairs, 1)
	assert.True(t, pairs[0].SameFile())
}

func TestScanBlocksAppliesThreshold(t *testing.T) {
	// Token sets overlap 3/5: similarity 0.6.
	a := block("a.py", "a b c d e", 1, 3)
	b := block("b.py", "a b c", 1, 3)

	assert.Empty(t, newScanner(0.8).ScanBlocks([]*CodeBlock{a, b}))

	pairs := newScanner(0.5).ScanBlocks([]*CodeBlock{a, b})
	require.Len(t, pairs, 1)
	assert.InDelta(t, 0.6, pairs[0].Similarity, 1e-9)
}

func TestScanBlocksThresholdIsInclusive(t *testing.T) {
	a := block("a.py", "a b c d e", 1, 3)
	b := block("b.py", "a b c", 1, 3)

	pairs := newScanner(0.6).ScanBlocks([]*CodeBlock{a, b})
	assert.Len(t, pairs, 1)
}

func TestScanAgainstBaselineCrossFileOnly(t *testing.T) {
	scanner := newScanner(0.8)

	target := []*CodeBlock{
		block("target.py", "x = 1\ny = 2\nz = 3", 1, 3),
	}
	baseline := []*CodeBlock{
		// Same path as the target: must be ignored even though identical.
		block("target.py", "x = 1\ny = 2\nz = 3", 20, 22),
		block("other.py", "x = 1\ny = 2\nz = 3", 1, 3),
	}

	pairs := scanner.ScanAgainstBaseline(target, baseline)

	require.Len(t, pairs, 1)
	assert.Equal(t, "other.py", pairs[0].BlockB.FilePath)
	assert.False(t, pairs[0].SameFile())
}

func TestDuplicatePairAvgLineCount(t *testing.T) {
	pair := &DuplicatePair{
		BlockA: block("a.py", "x", 1, 4),  // 4 lines
		BlockB: block("b.py", "x", 1, 10), // 10 lines
	}
	assert.Equal(t, 7.0, pair.AvgLineCount())
}
