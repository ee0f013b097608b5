package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ludo-technologies/pydry/domain"
	"github.com/ludo-technologies/pydry/internal/analyzer"
	"github.com/ludo-technologies/pydry/internal/constants"
)

// DuplicationService implements the domain.DuplicationService interface
type DuplicationService struct {
	fileReader domain.FileReader
	progress   domain.ProgressManager
	executor   domain.ParallelExecutor
}

// NewDuplicationService creates a new duplication service.
// progress and executor can be nil; the service then runs without progress
// reporting and extracts blocks sequentially.
func NewDuplicationService(fileReader domain.FileReader, progress domain.ProgressManager, executor domain.ParallelExecutor) *DuplicationService {
	return &DuplicationService{
		fileReader: fileReader,
		progress:   progress,
		executor:   executor,
	}
}

// AnalyzeDirectory compares all blocks across every eligible file under path
func (s *DuplicationService) AnalyzeDirectory(ctx context.Context, path string, req *domain.DuplicationRequest) (*domain.DuplicationResponse, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if req == nil {
		return nil, fmt.Errorf("duplication request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid duplication request: %w", err)
	}

	startTime := time.Now()
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	files, err := s.fileReader.CollectPythonFiles([]string{path}, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}
	sort.Strings(files)

	blocks, warnings, err := s.extractAllBlocks(ctx, files, req.MinBlockLines)
	if err != nil {
		return nil, err
	}

	scanner := analyzer.NewDuplicationScanner(&analyzer.ScannerConfig{
		MinBlockLines:       req.MinBlockLines,
		SimilarityThreshold: req.SimilarityThreshold,
	})
	pairs := scanner.ScanBlocks(blocks)

	return s.buildResponse(pairs, req, len(files), len(blocks), warnings, startTime), nil
}

// AnalyzeFile reports cross-file duplicates between the given file and a
// baseline built from the request's source root.
func (s *DuplicationService) AnalyzeFile(ctx context.Context, path string, req *domain.DuplicationRequest) (*domain.DuplicationResponse, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if req == nil {
		return nil, fmt.Errorf("duplication request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid duplication request: %w", err)
	}

	startTime := time.Now()
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var warnings []string

	// The exclusion policy applies to the target as well as the baseline
	if !s.fileReader.IsValidPythonFile(path) || s.fileReader.IsExcludedFile(path) {
		warnings = append(warnings, fmt.Sprintf("%s: file is excluded from duplication analysis", path))
		return s.buildResponse(nil, req, 0, 0, warnings, startTime), nil
	}

	baselineFiles, err := s.fileReader.CollectPythonFiles([]string{req.SourceRoot}, true, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		// A missing baseline is non-fatal: the target simply has nothing to
		// be compared against.
		warnings = append(warnings, fmt.Sprintf("%s: baseline unavailable: %v", req.SourceRoot, err))
		baselineFiles = nil
	}
	sort.Strings(baselineFiles)

	baseline, baselineWarnings, err := s.extractAllBlocks(ctx, baselineFiles, req.MinBlockLines)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, baselineWarnings...)

	content, err := s.fileReader.ReadFile(path)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("%s: %v", path, err))
		return s.buildResponse(nil, req, len(baselineFiles), len(baseline), warnings, startTime), nil
	}

	extractor := analyzer.NewBlockExtractor(req.MinBlockLines)
	target, targetWarnings := extractor.ExtractBlocks(ctx, path, content)
	warnings = append(warnings, targetWarnings...)

	scanner := analyzer.NewDuplicationScanner(&analyzer.ScannerConfig{
		MinBlockLines:       req.MinBlockLines,
		SimilarityThreshold: req.SimilarityThreshold,
	})
	pairs := scanner.ScanAgainstBaseline(target, baseline)

	return s.buildResponse(pairs, req, len(baselineFiles)+1, len(baseline)+len(target), warnings, startTime), nil
}

// extractAllBlocks extracts blocks from every file, in deterministic file
// order. Extraction across files is embarrassingly parallel; the pairwise
// pass that follows needs the complete collection, so parallelism stops here.
func (s *DuplicationService) extractAllBlocks(ctx context.Context, files []string, minBlockLines int) ([]*analyzer.CodeBlock, []string, error) {
	perFileBlocks := make([][]*analyzer.CodeBlock, len(files))
	perFileWarnings := make([][]string, len(files))

	if s.progress != nil {
		s.progress.Initialize(len(files))
		s.progress.Start()
		defer s.progress.Complete(true)
	}

	var processed int
	var mu sync.Mutex

	extractFile := func(ctx context.Context, index int, filePath string) {
		extractor := analyzer.NewBlockExtractor(minBlockLines)

		content, err := s.fileReader.ReadFile(filePath)
		if err != nil {
			perFileWarnings[index] = []string{fmt.Sprintf("%s: %v", filePath, err)}
		} else {
			perFileBlocks[index], perFileWarnings[index] = extractor.ExtractBlocks(ctx, filePath, content)
		}

		if s.progress != nil {
			mu.Lock()
			processed++
			s.progress.Update(processed, len(files))
			mu.Unlock()
		}
	}

	if s.executor != nil && len(files) > 1 {
		tasks := make([]domain.ExecutableTask, len(files))
		for i, filePath := range files {
			i, filePath := i, filePath
			tasks[i] = NewSimpleTask(filePath, true, func(taskCtx context.Context) (interface{}, error) {
				extractFile(taskCtx, i, filePath)
				return nil, nil
			})
		}
		if err := s.executor.Execute(ctx, tasks); err != nil {
			return nil, nil, domain.NewAnalysisError("block extraction failed", err)
		}
	} else {
		for i, filePath := range files {
			select {
			case <-ctx.Done():
				return nil, nil, domain.NewAnalysisError("duplication analysis cancelled", ctx.Err())
			default:
			}
			extractFile(ctx, i, filePath)
		}
	}

	var blocks []*analyzer.CodeBlock
	var warnings []string
	for i := range files {
		blocks = append(blocks, perFileBlocks[i]...)
		warnings = append(warnings, perFileWarnings[i]...)
	}

	return blocks, warnings, nil
}

// buildResponse classifies, sorts and scores the raw pairs and converts the
// result to domain objects
func (s *DuplicationService) buildResponse(pairs []*analyzer.DuplicatePair, req *domain.DuplicationRequest, filesAnalyzed, blocksChecked int, warnings []string, startTime time.Time) *domain.DuplicationResponse {
	report := analyzer.BuildReport(pairs)

	domainPairs := make([]*domain.DuplicatePair, len(report.Pairs))
	for i, pair := range report.Pairs {
		classification := domain.ClassificationCrossFile
		if pair.SameFile() {
			classification = domain.ClassificationSameFile
		}

		domainPairs[i] = &domain.DuplicatePair{
			ID:             i + 1,
			BlockA:         blockRef(pair.BlockA),
			BlockB:         blockRef(pair.BlockB),
			Similarity:     pair.Similarity,
			Classification: classification,
			Severity:       convertSeverity(pair.Severity),
			Suggestions:    pair.Suggestions,
		}
	}

	return &domain.DuplicationResponse{
		Report: &domain.AnalysisReport{
			TotalDuplicates: len(report.Pairs),
			HighCount:       report.HighCount,
			MediumCount:     report.MediumCount,
			LowCount:        report.LowCount,
			Pairs:           domainPairs,
			DRYScore:        report.DRYScore,
			Recommendations: report.Recommendations,
			Warnings:        warnings,
			FilesAnalyzed:   filesAnalyzed,
			BlocksChecked:   blocksChecked,
		},
		Request:  req,
		Duration: time.Since(startTime).Milliseconds(),
		Success:  true,
	}
}

// blockRef converts an analyzer block to its report representation,
// truncating the content preview
func blockRef(block *analyzer.CodeBlock) *domain.BlockRef {
	preview := block.Content
	if runes := []rune(preview); len(runes) > constants.ContentPreviewLimit {
		preview = string(runes[:constants.ContentPreviewLimit])
	}

	return &domain.BlockRef{
		FilePath:  block.FilePath,
		StartLine: block.StartLine,
		EndLine:   block.EndLine,
		LineCount: block.LineCount(),
		Preview:   preview,
	}
}

// convertSeverity converts analyzer severity to domain severity
func convertSeverity(severity analyzer.Severity) domain.Severity {
	switch severity {
	case analyzer.SeverityHigh:
		return domain.SeverityHigh
	case analyzer.SeverityMedium:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}
