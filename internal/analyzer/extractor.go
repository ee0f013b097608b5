package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ludo-technologies/pydry/domain"
	"github.com/ludo-technologies/pydry/internal/parser"
)

// BlockExtractor produces the candidate code blocks of one source file:
// structural blocks from function and class declarations, and statement-run
// blocks from maximal runs of consecutive non-trivial lines.
type BlockExtractor struct {
	minLines int
	parser   *parser.Parser
}

// NewBlockExtractor creates a block extractor retaining only blocks spanning
// at least minLines source lines.
func NewBlockExtractor(minLines int) *BlockExtractor {
	return &BlockExtractor{
		minLines: minLines,
		parser:   parser.New(),
	}
}

// ExtractBlocks extracts all candidate blocks from a file's source. A parse
// failure yields zero structural blocks and a non-fatal warning; statement-run
// extraction does not need a parse tree and is always attempted, so partial
// results are possible. Extraction never aborts the overall scan.
func (e *BlockExtractor) ExtractBlocks(ctx context.Context, filePath string, source []byte) ([]*CodeBlock, []string) {
	var warnings []string

	lines := strings.Split(string(source), "\n")

	blocks, err := e.extractStructural(ctx, filePath, source, lines)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("%v (structural extraction skipped)", domain.NewParseError(filePath, err)))
	}

	blocks = append(blocks, e.extractStatementRuns(filePath, lines)...)

	return blocks, warnings
}

// extractStructural parses the file and materializes one block per function
// or class declaration whose line span meets the minimum. Nested declarations
// each produce their own block.
func (e *BlockExtractor) extractStructural(ctx context.Context, filePath string, source []byte, lines []string) ([]*CodeBlock, error) {
	result, err := e.parser.Parse(ctx, source)
	if err != nil {
		return nil, err
	}

	var blocks []*CodeBlock
	for _, decl := range e.parser.ExtractDeclarations(result) {
		if decl.LineCount() < e.minLines {
			continue
		}
		content := sliceLines(lines, decl.StartLine, decl.EndLine)
		if content == "" {
			continue
		}
		blocks = append(blocks, NewCodeBlock(filePath, content, decl.StartLine, decl.EndLine, BlockStructural))
	}

	return blocks, nil
}

// extractStatementRuns scans raw lines, accumulating runs of lines that are
// not blank, not comments, not imports and not triple-quoted string openers.
// Any excluded line terminates the current run; runs meeting the minimum are
// emitted, including a pending run at end of file.
func (e *BlockExtractor) extractStatementRuns(filePath string, lines []string) []*CodeBlock {
	var blocks []*CodeBlock

	runStart := -1 // 0-based index of the first line in the current run

	flush := func(end int) { // end is the 0-based index one past the run
		if runStart < 0 {
			return
		}
		length := end - runStart
		if length >= e.minLines {
			startLine := runStart + 1
			endLine := end
			content := sliceLines(lines, startLine, endLine)
			blocks = append(blocks, NewCodeBlock(filePath, content, startLine, endLine, BlockStatementRun))
		}
		runStart = -1
	}

	for i, line := range lines {
		if isRunTerminator(line) {
			flush(i)
			continue
		}
		if runStart < 0 {
			runStart = i
		}
	}
	flush(len(lines))

	return blocks
}

// isRunTerminator reports whether a raw line ends a statement run
func isRunTerminator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(trimmed, "#") {
		return true
	}
	if trimmed == "import" || strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from ") {
		return true
	}
	if strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "'''") {
		return true
	}
	return false
}

// sliceLines joins the literal source lines in the 1-indexed inclusive range
func sliceLines(lines []string, startLine, endLine int) string {
	if startLine < 1 {
		startLine = 1
	}
	if endLine > len(lines) {
		endLine = len(lines)
	}
	if startLine > endLine {
		return ""
	}
	return strings.Join(lines[startLine-1:endLine], "\n")
}
