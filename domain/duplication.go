package domain

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ludo-technologies/pydry/internal/constants"
)

// Severity represents how serious a duplicate pair is
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank returns a numeric rank for sorting (higher is more severe)
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// String returns string representation of Severity
func (s Severity) String() string {
	return string(s)
}

// Classification indicates whether a duplicate pair spans files
type Classification string

const (
	ClassificationSameFile  Classification = "same_file"
	ClassificationCrossFile Classification = "cross_file"
)

// BlockRef describes one side of a duplicate pair as exposed in reports
type BlockRef struct {
	FilePath  string `json:"file_path" yaml:"file_path"`
	StartLine int    `json:"start_line" yaml:"start_line"`
	EndLine   int    `json:"end_line" yaml:"end_line"`
	LineCount int    `json:"line_count" yaml:"line_count"`
	Preview   string `json:"preview,omitempty" yaml:"preview,omitempty"`
}

// String returns string representation of BlockRef
func (b *BlockRef) String() string {
	return fmt.Sprintf("%s:%d-%d", b.FilePath, b.StartLine, b.EndLine)
}

// DuplicatePair represents two similar code blocks
type DuplicatePair struct {
	ID             int            `json:"id" yaml:"id"`
	BlockA         *BlockRef      `json:"block_a" yaml:"block_a"`
	BlockB         *BlockRef      `json:"block_b" yaml:"block_b"`
	Similarity     float64        `json:"similarity" yaml:"similarity"`
	Classification Classification `json:"classification" yaml:"classification"`
	Severity       Severity       `json:"severity" yaml:"severity"`
	Suggestions    []string       `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// String returns string representation of DuplicatePair
func (p *DuplicatePair) String() string {
	return fmt.Sprintf("%s duplicate: %s <-> %s (similarity: %.3f)",
		p.Severity.String(),
		p.BlockA.String(),
		p.BlockB.String(),
		p.Similarity)
}

// AnalysisReport is the aggregate output of one duplication analysis run.
// It is created fresh per invocation and never mutated after construction.
type AnalysisReport struct {
	TotalDuplicates int              `json:"total_duplicates" yaml:"total_duplicates"`
	HighCount       int              `json:"high_count" yaml:"high_count"`
	MediumCount     int              `json:"medium_count" yaml:"medium_count"`
	LowCount        int              `json:"low_count" yaml:"low_count"`
	Pairs           []*DuplicatePair `json:"pairs" yaml:"pairs"`
	DRYScore        int              `json:"dry_score" yaml:"dry_score"`
	Recommendations []string         `json:"recommendations" yaml:"recommendations"`

	// Warnings carries per-file, non-fatal conditions such as parse failures.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	FilesAnalyzed int `json:"files_analyzed" yaml:"files_analyzed"`
	BlocksChecked int `json:"blocks_checked" yaml:"blocks_checked"`
}

// DuplicationRequest represents a request for duplication analysis
type DuplicationRequest struct {
	// Input parameters
	Paths           []string `json:"paths"`
	Recursive       bool     `json:"recursive"`
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`

	// Analysis configuration
	MinBlockLines       int     `json:"min_block_lines"`
	SimilarityThreshold float64 `json:"similarity_threshold"`

	// SourceRoot is the directory the cross-file baseline is built from when a
	// single file is analyzed. It must be provided explicitly; there is no
	// ambient project-root discovery.
	SourceRoot string `json:"source_root"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-" yaml:"-"`
	OutputPath   string       `json:"output_path,omitempty"`
	ShowContent  bool         `json:"show_content"`

	// Configuration file
	ConfigPath string `json:"config_path"`

	// Timeout bounds the whole analysis (0 means no limit)
	Timeout time.Duration `json:"-" yaml:"-"`
}

// DuplicationResponse represents the response from duplication analysis
type DuplicationResponse struct {
	Report *AnalysisReport `json:"report" yaml:"report"`

	// Metadata
	Request  *DuplicationRequest `json:"request,omitempty" yaml:"request,omitempty"`
	Duration int64               `json:"duration_ms" yaml:"duration_ms"`
	Success  bool                `json:"success" yaml:"success"`
	Error    string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// DuplicationService defines the interface for duplication analysis services
type DuplicationService interface {
	// AnalyzeFile reports cross-file duplicates between the given file and a
	// baseline built from the request's source root.
	AnalyzeFile(ctx context.Context, path string, req *DuplicationRequest) (*DuplicationResponse, error)

	// AnalyzeDirectory compares all blocks across every eligible file under path.
	AnalyzeDirectory(ctx context.Context, path string, req *DuplicationRequest) (*DuplicationResponse, error)
}

// FileReader abstracts file collection and reading
type FileReader interface {
	// CollectPythonFiles recursively finds analyzable Python files in the given paths
	CollectPythonFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsValidPythonFile checks if a file is a valid Python file
	IsValidPythonFile(path string) bool

	// IsExcludedFile reports whether a file is excluded from duplication
	// analysis by policy (tests, conftest, __init__, migrations, alembic, hooks).
	IsExcludedFile(path string) bool
}

// DuplicationOutputFormatter defines the interface for formatting analysis results
type DuplicationOutputFormatter interface {
	// FormatResponse formats a duplication response according to the specified format
	FormatResponse(response *DuplicationResponse, format OutputFormat, writer io.Writer) error
}

// DuplicationConfigurationLoader defines the interface for loading analysis configuration
type DuplicationConfigurationLoader interface {
	// LoadConfig loads duplication configuration from file
	LoadConfig(configPath string) (*DuplicationRequest, error)

	// LoadDefaultConfig returns configuration from discovered config files or defaults
	LoadDefaultConfig(startDir string) *DuplicationRequest
}

// Validate validates a duplication request.
//
// An out-of-range similarity threshold is a contract violation: the core never
// clamps it silently.
func (req *DuplicationRequest) Validate() error {
	if len(req.Paths) == 0 {
		return NewValidationError("paths cannot be empty")
	}

	if req.MinBlockLines < 1 {
		return NewValidationError("min_block_lines must be >= 1")
	}

	if req.SimilarityThreshold < 0.0 || req.SimilarityThreshold > 1.0 {
		return NewValidationError("similarity_threshold must be between 0.0 and 1.0")
	}

	return nil
}

// HasValidOutputWriter checks if the request has a valid output writer
func (req *DuplicationRequest) HasValidOutputWriter() bool {
	return req.OutputWriter != nil
}

// DefaultDuplicationRequest returns a default duplication request
func DefaultDuplicationRequest() *DuplicationRequest {
	return &DuplicationRequest{
		Paths:               []string{"."},
		Recursive:           true,
		IncludePatterns:     []string{"**/*.py"},
		ExcludePatterns:     []string{},
		MinBlockLines:       constants.DefaultMinBlockLines,
		SimilarityThreshold: constants.DefaultSimilarityThreshold,
		SourceRoot:          "src",
		OutputFormat:        OutputFormatText,
		ShowContent:         false,
	}
}
