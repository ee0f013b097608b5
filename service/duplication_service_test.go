package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/pydry/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const duplicatedFunction = `def calculate_total(items):
    total = 0
    for item in items:
        total += item.price
    return total
`

func newTestService() *DuplicationService {
	return NewDuplicationService(NewFileReader(), nil, nil)
}

func newTestRequest(paths ...string) *domain.DuplicationRequest {
	req := domain.DefaultDuplicationRequest()
	req.Paths = paths
	return req
}

func TestAnalyzeDirectoryFindsCrossFileDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "billing.py", duplicatedFunction)
	writeFile(t, dir, "orders.py", duplicatedFunction)

	svc := newTestService()
	resp, err := svc.AnalyzeDirectory(context.Background(), dir, newTestRequest(dir))
	require.NoError(t, err)
	require.True(t, resp.Success)

	report := resp.Report
	assert.Equal(t, 2, report.FilesAnalyzed)
	assert.NotZero(t, report.BlocksChecked)

	// Each file contributes a structural block and a statement run covering
	// the same lines; in-file overlaps are suppressed, so every reported
	// pair spans the two files.
	assert.Equal(t, 4, report.TotalDuplicates)
	for _, pair := range report.Pairs {
		assert.Equal(t, domain.ClassificationCrossFile, pair.Classification)
		assert.Equal(t, 1.0, pair.Similarity)
		assert.NotEmpty(t, pair.Suggestions)
	}

	assert.Less(t, report.DRYScore, 100)
}

func TestAnalyzeDirectoryCleanReport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "unique.py", "def only_here(x):\n    y = x * 2\n    return y\n")

	svc := newTestService()
	resp, err := svc.AnalyzeDirectory(context.Background(), dir, newTestRequest(dir))
	require.NoError(t, err)

	report := resp.Report
	assert.Zero(t, report.TotalDuplicates)
	assert.Equal(t, 100, report.DRYScore)
	require.Len(t, report.Recommendations, 1)
	assert.Equal(t, "No duplication detected. The analyzed code is DRY.", report.Recommendations[0])
}

func TestAnalyzeDirectoryCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", duplicatedFunction)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestService()
	_, err := svc.AnalyzeDirectory(ctx, dir, newTestRequest(dir))
	require.Error(t, err)

	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeAnalysisError, domainErr.Code)
}

func TestAnalyzeDirectoryEmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	svc := newTestService()
	resp, err := svc.AnalyzeDirectory(context.Background(), dir, newTestRequest(dir))
	require.NoError(t, err)

	report := resp.Report
	assert.Zero(t, report.FilesAnalyzed)
	assert.Zero(t, report.TotalDuplicates)
	assert.Equal(t, 100, report.DRYScore)
}

func TestAnalyzeDirectorySkipsExcludedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "test_billing.py", duplicatedFunction)
	writeFile(t, dir, "conftest.py", duplicatedFunction)
	writeFile(t, filepath.Join(dir, "migrations"), "0001.py", duplicatedFunction)

	svc := newTestService()
	resp, err := svc.AnalyzeDirectory(context.Background(), dir, newTestRequest(dir))
	require.NoError(t, err)

	report := resp.Report
	assert.Zero(t, report.FilesAnalyzed)
	assert.Zero(t, report.TotalDuplicates)
	assert.Equal(t, 100, report.DRYScore)
}

func TestAnalyzeDirectoryParseFailureIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.py", duplicatedFunction)
	writeFile(t, dir, "broken.py", "def broken(:\n    pass\n")

	svc := newTestService()
	resp, err := svc.AnalyzeDirectory(context.Background(), dir, newTestRequest(dir))
	require.NoError(t, err)
	require.True(t, resp.Success)

	assert.Equal(t, 2, resp.Report.FilesAnalyzed)
	require.NotEmpty(t, resp.Report.Warnings)
	assert.Contains(t, resp.Report.Warnings[0], "broken.py")
}

func TestAnalyzeDirectoryIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", duplicatedFunction)
	writeFile(t, dir, "b.py", duplicatedFunction)
	writeFile(t, dir, "c.py", duplicatedFunction)

	// Parallel extraction must not change the reported order.
	svc := NewDuplicationService(NewFileReader(), nil, NewParallelExecutor())

	first, err := svc.AnalyzeDirectory(context.Background(), dir, newTestRequest(dir))
	require.NoError(t, err)
	second, err := svc.AnalyzeDirectory(context.Background(), dir, newTestRequest(dir))
	require.NoError(t, err)

	assert.Equal(t, first.Report.Pairs, second.Report.Pairs)
	assert.Equal(t, first.Report.DRYScore, second.Report.DRYScore)
}

func TestAnalyzeDirectoryInvalidRequest(t *testing.T) {
	svc := newTestService()

	req := newTestRequest(".")
	req.SimilarityThreshold = 1.5

	_, err := svc.AnalyzeDirectory(context.Background(), ".", req)
	assert.Error(t, err)
}

func TestAnalyzeFileAgainstBaseline(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "src")
	writeFile(t, root, "billing.py", duplicatedFunction)
	writeFile(t, root, "unrelated.py", "def other(a):\n    b = a - 1\n    return b\n")
	target := writeFile(t, dir, "new_feature.py", duplicatedFunction)

	req := newTestRequest(target)
	req.SourceRoot = root

	svc := newTestService()
	resp, err := svc.AnalyzeFile(context.Background(), target, req)
	require.NoError(t, err)
	require.True(t, resp.Success)

	report := resp.Report
	require.NotZero(t, report.TotalDuplicates)
	for _, pair := range report.Pairs {
		assert.Equal(t, domain.ClassificationCrossFile, pair.Classification)
		assert.Equal(t, "billing.py", filepath.Base(pair.BlockB.FilePath))
	}
}

func TestAnalyzeFileExcludedTarget(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "test_feature.py", duplicatedFunction)

	req := newTestRequest(target)
	req.SourceRoot = dir

	svc := newTestService()
	resp, err := svc.AnalyzeFile(context.Background(), target, req)
	require.NoError(t, err)

	assert.Zero(t, resp.Report.TotalDuplicates)
	assert.Equal(t, 100, resp.Report.DRYScore)
	require.NotEmpty(t, resp.Report.Warnings)
	assert.Contains(t, resp.Report.Warnings[0], "excluded")
}

func TestAnalyzeFileMissingBaselineIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "feature.py", duplicatedFunction)

	req := newTestRequest(target)
	req.SourceRoot = filepath.Join(dir, "does-not-exist")

	svc := newTestService()
	resp, err := svc.AnalyzeFile(context.Background(), target, req)
	require.NoError(t, err)
	require.True(t, resp.Success)

	assert.Zero(t, resp.Report.TotalDuplicates)
	require.NotEmpty(t, resp.Report.Warnings)
	assert.Contains(t, resp.Report.Warnings[0], "baseline unavailable")
}

func TestAnalyzeFilePreviewIsBounded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", duplicatedFunction)
	writeFile(t, dir, "b.py", duplicatedFunction)

	svc := newTestService()
	resp, err := svc.AnalyzeDirectory(context.Background(), dir, newTestRequest(dir))
	require.NoError(t, err)

	for _, pair := range resp.Report.Pairs {
		assert.LessOrEqual(t, len([]rune(pair.BlockA.Preview)), 200)
		assert.LessOrEqual(t, len([]rune(pair.BlockB.Preview)), 200)
	}
}
