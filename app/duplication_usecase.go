package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ludo-technologies/pydry/domain"
)

// DuplicationUseCase orchestrates duplication analysis operations
type DuplicationUseCase struct {
	service      domain.DuplicationService
	fileReader   domain.FileReader
	formatter    domain.DuplicationOutputFormatter
	configLoader domain.DuplicationConfigurationLoader
	reportWriter domain.ReportWriter
}

// NewDuplicationUseCase creates a new duplication use case with the given dependencies
func NewDuplicationUseCase(
	service domain.DuplicationService,
	fileReader domain.FileReader,
	formatter domain.DuplicationOutputFormatter,
	configLoader domain.DuplicationConfigurationLoader,
	reportWriter domain.ReportWriter,
) *DuplicationUseCase {
	return &DuplicationUseCase{
		service:      service,
		fileReader:   fileReader,
		formatter:    formatter,
		configLoader: configLoader,
		reportWriter: reportWriter,
	}
}

// Execute runs duplication analysis on the request's first path, dispatching
// to file or directory analysis based on what the path points at.
func (uc *DuplicationUseCase) Execute(ctx context.Context, req domain.DuplicationRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	path := req.Paths[0]
	info, err := os.Stat(path)
	if err != nil {
		return domain.NewFileNotFoundError(path, err)
	}

	if info.IsDir() {
		return uc.ExecuteDirectory(ctx, path, req)
	}
	return uc.ExecuteFile(ctx, path, req)
}

// ExecuteFile analyzes a single file against the source root baseline
func (uc *DuplicationUseCase) ExecuteFile(ctx context.Context, path string, req domain.DuplicationRequest) error {
	startTime := time.Now()

	merged, err := uc.prepareRequest(req)
	if err != nil {
		return err
	}

	response, err := uc.service.AnalyzeFile(ctx, path, merged)
	if err != nil {
		return fmt.Errorf("duplication analysis failed: %w", err)
	}

	response.Duration = time.Since(startTime).Milliseconds()
	return uc.outputResponse(response, merged)
}

// ExecuteDirectory analyzes all eligible files under a directory
func (uc *DuplicationUseCase) ExecuteDirectory(ctx context.Context, path string, req domain.DuplicationRequest) error {
	startTime := time.Now()

	merged, err := uc.prepareRequest(req)
	if err != nil {
		return err
	}

	response, err := uc.service.AnalyzeDirectory(ctx, path, merged)
	if err != nil {
		return fmt.Errorf("duplication analysis failed: %w", err)
	}

	response.Duration = time.Since(startTime).Milliseconds()
	return uc.outputResponse(response, merged)
}

// prepareRequest validates the request and merges it with file configuration
func (uc *DuplicationUseCase) prepareRequest(req domain.DuplicationRequest) (*domain.DuplicationRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.ConfigPath != "" {
		configReq, err := uc.configLoader.LoadConfig(req.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		merged := uc.mergeConfiguration(*configReq, req)
		return &merged, nil
	}

	return &req, nil
}

// mergeConfiguration merges configuration from file with request parameters.
// Request parameters take precedence over configuration file values.
func (uc *DuplicationUseCase) mergeConfiguration(configReq, requestReq domain.DuplicationRequest) domain.DuplicationRequest {
	merged := configReq

	if len(requestReq.Paths) > 0 {
		merged.Paths = requestReq.Paths
	}

	merged.Recursive = requestReq.Recursive
	merged.ShowContent = requestReq.ShowContent

	defaultReq := domain.DefaultDuplicationRequest()

	if requestReq.MinBlockLines != defaultReq.MinBlockLines {
		merged.MinBlockLines = requestReq.MinBlockLines
	}
	if requestReq.SimilarityThreshold != defaultReq.SimilarityThreshold {
		merged.SimilarityThreshold = requestReq.SimilarityThreshold
	}
	if requestReq.SourceRoot != defaultReq.SourceRoot {
		merged.SourceRoot = requestReq.SourceRoot
	}

	// Always use request values for output settings
	merged.OutputFormat = requestReq.OutputFormat
	merged.OutputWriter = requestReq.OutputWriter
	merged.OutputPath = requestReq.OutputPath
	merged.Timeout = requestReq.Timeout

	if len(requestReq.IncludePatterns) > 0 {
		merged.IncludePatterns = requestReq.IncludePatterns
	}
	if len(requestReq.ExcludePatterns) > 0 {
		merged.ExcludePatterns = requestReq.ExcludePatterns
	}

	return merged
}

// outputResponse formats the response and routes it to the configured destination
func (uc *DuplicationUseCase) outputResponse(response *domain.DuplicationResponse, req *domain.DuplicationRequest) error {
	if !req.HasValidOutputWriter() && req.OutputPath == "" {
		return fmt.Errorf("no valid output writer specified")
	}

	writeFunc := func(w io.Writer) error {
		return uc.formatter.FormatResponse(response, req.OutputFormat, w)
	}

	if uc.reportWriter != nil {
		return uc.reportWriter.Write(req.OutputWriter, req.OutputPath, req.OutputFormat, writeFunc)
	}

	return writeFunc(req.OutputWriter)
}

// DuplicationUseCaseBuilder helps build DuplicationUseCase with dependencies
type DuplicationUseCaseBuilder struct {
	service      domain.DuplicationService
	fileReader   domain.FileReader
	formatter    domain.DuplicationOutputFormatter
	configLoader domain.DuplicationConfigurationLoader
	reportWriter domain.ReportWriter
}

// NewDuplicationUseCaseBuilder creates a new builder for DuplicationUseCase
func NewDuplicationUseCaseBuilder() *DuplicationUseCaseBuilder {
	return &DuplicationUseCaseBuilder{}
}

// WithService sets the duplication service
func (b *DuplicationUseCaseBuilder) WithService(service domain.DuplicationService) *DuplicationUseCaseBuilder {
	b.service = service
	return b
}

// WithFileReader sets the file reader
func (b *DuplicationUseCaseBuilder) WithFileReader(fileReader domain.FileReader) *DuplicationUseCaseBuilder {
	b.fileReader = fileReader
	return b
}

// WithFormatter sets the output formatter
func (b *DuplicationUseCaseBuilder) WithFormatter(formatter domain.DuplicationOutputFormatter) *DuplicationUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *DuplicationUseCaseBuilder) WithConfigLoader(configLoader domain.DuplicationConfigurationLoader) *DuplicationUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithReportWriter sets the report writer
func (b *DuplicationUseCaseBuilder) WithReportWriter(reportWriter domain.ReportWriter) *DuplicationUseCaseBuilder {
	b.reportWriter = reportWriter
	return b
}

// Build creates the DuplicationUseCase with the configured dependencies
func (b *DuplicationUseCaseBuilder) Build() (*DuplicationUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("duplication service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	if b.configLoader == nil {
		return nil, fmt.Errorf("configuration loader is required")
	}

	return NewDuplicationUseCase(
		b.service,
		b.fileReader,
		b.formatter,
		b.configLoader,
		b.reportWriter,
	), nil
}
