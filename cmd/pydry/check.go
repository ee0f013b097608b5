package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/pydry/app"
	"github.com/ludo-technologies/pydry/domain"
	"github.com/ludo-technologies/pydry/internal/config"
	"github.com/ludo-technologies/pydry/service"
)

// CheckCommand handles the duplication analysis CLI command
type CheckCommand struct {
	// Input parameters
	recursive       bool
	configFile      string
	includePatterns []string
	excludePatterns []string

	// Analysis configuration
	minLines            int
	similarityThreshold float64
	sourceRoot          string

	// Output format flags (only one should be true)
	json bool
	csv  bool
	yaml bool

	// Output options
	outputPath  string
	showContent bool

	// Performance options
	timeout time.Duration
}

// NewCheckCommand creates a new duplication analysis command
func NewCheckCommand() *CheckCommand {
	defaults := domain.DefaultDuplicationRequest()
	return &CheckCommand{
		recursive:           defaults.Recursive,
		minLines:            defaults.MinBlockLines,
		similarityThreshold: defaults.SimilarityThreshold,
		sourceRoot:          defaults.SourceRoot,
		showContent:         defaults.ShowContent,
		timeout:             5 * time.Minute,
	}
}

// CreateCobraCommand creates the Cobra command for duplication analysis
func (c *CheckCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Detect duplicated code and score how DRY the project is",
		Long: `Analyze Python code for duplication.

Given a directory, every pair of extracted code blocks across all eligible
files is compared. Given a single file, its blocks are compared against a
baseline built from the configured source root (cross-file pairs only).

Test files, conftest, __init__, migration directories (including alembic),
and hooks directories are excluded from analysis.

Examples:
  # Analyze the current directory
  pydry check .

  # Analyze a single file against the src/ baseline
  pydry check app/views.py

  # Raise the similarity bar
  pydry check --similarity-threshold 0.9 src/

  # Output results as JSON
  pydry check --json src/ > report.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.runCheck,
	}

	// Input flags
	cmd.Flags().BoolVarP(&c.recursive, "recursive", "r", c.recursive,
		"Recursively analyze directories")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", c.configFile,
		"Path to configuration file")
	cmd.Flags().StringSliceVar(&c.includePatterns, "include", nil,
		"File patterns to include")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", nil,
		"File patterns to exclude")

	// Analysis configuration flags
	cmd.Flags().IntVar(&c.minLines, "min-lines", c.minLines,
		"Minimum number of lines for a code block")
	cmd.Flags().Float64VarP(&c.similarityThreshold, "similarity-threshold", "s", c.similarityThreshold,
		"Minimum similarity for a pair to be reported (0.0-1.0)")
	cmd.Flags().StringVar(&c.sourceRoot, "source-root", c.sourceRoot,
		"Baseline directory for single-file analysis")

	// Output format flags
	cmd.Flags().BoolVar(&c.json, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Output results as CSV")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Output results as YAML")

	// Output options
	cmd.Flags().StringVarP(&c.outputPath, "output", "o", "",
		"Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&c.showContent, "show-content", c.showContent,
		"Include code previews in text output")

	// Performance flags
	cmd.Flags().DurationVar(&c.timeout, "timeout", c.timeout,
		"Maximum time for analysis (e.g., 5m, 30s)")

	return cmd
}

// runCheck executes the duplication analysis command
func (c *CheckCommand) runCheck(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	request, err := c.createRequest(cmd, path)
	if err != nil {
		return fmt.Errorf("failed to create analysis request: %w", err)
	}

	if err := request.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	useCase, err := c.createUseCase(cmd)
	if err != nil {
		return fmt.Errorf("failed to create use case: %w", err)
	}

	if err := useCase.Execute(context.Background(), *request); err != nil {
		return fmt.Errorf("duplication analysis failed: %w", err)
	}

	return nil
}

// createRequest creates an analysis request from configuration and flags
func (c *CheckCommand) createRequest(cmd *cobra.Command, path string) (*domain.DuplicationRequest, error) {
	// Start from discovered configuration, then apply CLI overrides
	workDir := path
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		workDir = "."
	}

	var cfg *config.DuplicationConfig
	if c.configFile != "" {
		// An explicit config file is loaded and merged by the use case;
		// CLI flags apply over plain defaults so they still win.
		if _, err := os.Stat(c.configFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", c.configFile, err)
		}
		cfg = config.DefaultDuplicationConfig()
	} else {
		loaded, err := config.NewTomlConfigLoader().LoadConfig(workDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}

	explicit := GetExplicitFlags(cmd)
	c.applyCliOverrides(cfg, explicit)

	outputFormat, _, err := service.NewOutputFormatResolver().Determine(c.json, c.csv, c.yaml)
	if err != nil {
		return nil, err
	}
	if !explicit["json"] && !explicit["csv"] && !explicit["yaml"] && cfg.Output.Format != "" {
		outputFormat = domain.OutputFormat(cfg.Output.Format)
	}

	var outputWriter io.Writer = cmd.OutOrStdout()

	return &domain.DuplicationRequest{
		Paths:               []string{path},
		ConfigPath:          c.configFile,
		Recursive:           cfg.Input.Recursive,
		IncludePatterns:     cfg.Input.IncludePatterns,
		ExcludePatterns:     cfg.Input.ExcludePatterns,
		MinBlockLines:       cfg.Analysis.MinBlockLines,
		SimilarityThreshold: cfg.Analysis.SimilarityThreshold,
		SourceRoot:          cfg.Analysis.SourceRoot,
		OutputFormat:        outputFormat,
		OutputWriter:        outputWriter,
		OutputPath:          c.outputPath,
		ShowContent:         cfg.Output.ShowContent,
		Timeout:             c.timeout,
	}, nil
}

// applyCliOverrides applies explicitly set CLI flags over file configuration
func (c *CheckCommand) applyCliOverrides(cfg *config.DuplicationConfig, explicit map[string]bool) {
	if explicit["min-lines"] {
		cfg.Analysis.MinBlockLines = c.minLines
	}
	if explicit["similarity-threshold"] {
		cfg.Analysis.SimilarityThreshold = c.similarityThreshold
	}
	if explicit["source-root"] {
		cfg.Analysis.SourceRoot = c.sourceRoot
	}
	if explicit["recursive"] {
		cfg.Input.Recursive = c.recursive
	}
	if explicit["include"] {
		cfg.Input.IncludePatterns = c.includePatterns
	}
	if explicit["exclude"] {
		cfg.Input.ExcludePatterns = c.excludePatterns
	}
	if explicit["show-content"] {
		cfg.Output.ShowContent = c.showContent
	}
}

// createUseCase wires the duplication use case with its dependencies
func (c *CheckCommand) createUseCase(cmd *cobra.Command) (*app.DuplicationUseCase, error) {
	fileReader := service.NewFileReader()
	formatter := service.NewDuplicationOutputFormatter()
	configLoader := service.NewDuplicationConfigurationLoader()

	duplicationService := service.NewDuplicationService(
		fileReader,
		service.NewProgressManager(),
		service.NewParallelExecutor(),
	)

	return app.NewDuplicationUseCaseBuilder().
		WithService(duplicationService).
		WithFileReader(fileReader).
		WithFormatter(formatter).
		WithConfigLoader(configLoader).
		WithReportWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
}

// NewCheckCmd creates and returns the check cobra command
func NewCheckCmd() *cobra.Command {
	checkCommand := NewCheckCommand()
	return checkCommand.CreateCobraCommand()
}
