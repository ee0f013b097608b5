package analyzer

import (
	"fmt"
)

// BlockKind records a code block's provenance
type BlockKind int

const (
	// BlockStructural blocks are bounded by a declaration's start/end line
	BlockStructural BlockKind = iota + 1
	// BlockStatementRun blocks are maximal runs of consecutive statements
	BlockStatementRun
)

// String returns string representation of BlockKind
func (k BlockKind) String() string {
	switch k {
	case BlockStructural:
		return "structural"
	case BlockStatementRun:
		return "statement-run"
	default:
		return "unknown"
	}
}

// CodeBlock is a contiguous span of source text treated as a unit of
// comparison. Blocks are created once, immutably, when a file is scanned,
// and discarded at the end of a single analysis run.
type CodeBlock struct {
	FilePath   string
	Content    string
	StartLine  int // 1-indexed, inclusive
	EndLine    int // 1-indexed, inclusive
	Kind       BlockKind
	Normalized string
	Hash       string

	tokens map[string]struct{}
}

// NewCodeBlock creates a code block, deriving its normalized text,
// fingerprint and token set at construction.
func NewCodeBlock(filePath, content string, startLine, endLine int, kind BlockKind) *CodeBlock {
	normalized := NormalizeBlock(content)
	return &CodeBlock{
		FilePath:   filePath,
		Content:    content,
		StartLine:  startLine,
		EndLine:    endLine,
		Kind:       kind,
		Normalized: normalized,
		Hash:       Fingerprint(normalized),
		tokens:     TokenSet(normalized),
	}
}

// String returns string representation of CodeBlock
func (b *CodeBlock) String() string {
	return fmt.Sprintf("%s:%d-%d (%s, %d lines)",
		b.FilePath, b.StartLine, b.EndLine, b.Kind.String(), b.LineCount())
}

// LineCount returns the number of source lines the block spans
func (b *CodeBlock) LineCount() int {
	return b.EndLine - b.StartLine + 1
}

// Tokens returns the block's token set. Callers must treat it as read-only.
func (b *CodeBlock) Tokens() map[string]struct{} {
	return b.tokens
}

// Overlaps reports whether two blocks share a file and their line ranges
// overlap (neither is strictly before or after the other).
func (b *CodeBlock) Overlaps(other *CodeBlock) bool {
	if b.FilePath != other.FilePath {
		return false
	}
	return b.StartLine <= other.EndLine && other.StartLine <= b.EndLine
}
