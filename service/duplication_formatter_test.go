package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ludo-technologies/pydry/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResponse() *domain.DuplicationResponse {
	return &domain.DuplicationResponse{
		Report: &domain.AnalysisReport{
			TotalDuplicates: 1,
			MediumCount:     1,
			Pairs: []*domain.DuplicatePair{
				{
					ID: 1,
					BlockA: &domain.BlockRef{
						FilePath:  "a.py",
						StartLine: 1,
						EndLine:   5,
						LineCount: 5,
						Preview:   "def f():\n    return 1",
					},
					BlockB: &domain.BlockRef{
						FilePath:  "b.py",
						StartLine: 10,
						EndLine:   14,
						LineCount: 5,
					},
					Similarity:     1.0,
					Classification: domain.ClassificationCrossFile,
					Severity:       domain.SeverityMedium,
					Suggestions:    []string{"Extract the duplicated logic into a shared function"},
				},
			},
			DRYScore:        90,
			Recommendations: []string{"Cross-file duplicates found: move shared code to a common utility module"},
			FilesAnalyzed:   2,
			BlocksChecked:   4,
		},
		Success: true,
	}
}

func TestFormatResponseText(t *testing.T) {
	formatter := NewDuplicationOutputFormatter()

	var buf bytes.Buffer
	err := formatter.FormatResponse(sampleResponse(), domain.OutputFormatText, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Duplication Analysis Results")
	assert.Contains(t, out, "Files analyzed: 2")
	assert.Contains(t, out, "DRY score: 90/100")
	assert.Contains(t, out, "[MEDIUM] cross_file duplication (similarity: 1.000)")
	assert.Contains(t, out, "a.py:1-5")
	assert.Contains(t, out, "b.py:10-14")
	assert.Contains(t, out, "-> Extract the duplicated logic into a shared function")
	assert.Contains(t, out, "Recommendations:")

	// No preview unless the request asks for content.
	assert.NotContains(t, out, "Preview:")
}

func TestFormatResponseTextShowContent(t *testing.T) {
	formatter := NewDuplicationOutputFormatter()

	resp := sampleResponse()
	req := domain.DefaultDuplicationRequest()
	req.ShowContent = true
	resp.Request = req

	var buf bytes.Buffer
	require.NoError(t, formatter.FormatResponse(resp, domain.OutputFormatText, &buf))

	assert.Contains(t, buf.String(), "Preview:")
	assert.Contains(t, buf.String(), "def f():")
}

func TestFormatResponseTextFailure(t *testing.T) {
	formatter := NewDuplicationOutputFormatter()

	resp := &domain.DuplicationResponse{Success: false, Error: "boom"}

	var buf bytes.Buffer
	require.NoError(t, formatter.FormatResponse(resp, domain.OutputFormatText, &buf))
	assert.Contains(t, buf.String(), "boom")
}

func TestFormatResponseJSON(t *testing.T) {
	formatter := NewDuplicationOutputFormatter()

	var buf bytes.Buffer
	require.NoError(t, formatter.FormatResponse(sampleResponse(), domain.OutputFormatJSON, &buf))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	report, ok := decoded["report"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(90), report["dry_score"])
	assert.Equal(t, float64(1), report["total_duplicates"])
}

func TestFormatResponseYAML(t *testing.T) {
	formatter := NewDuplicationOutputFormatter()

	var buf bytes.Buffer
	require.NoError(t, formatter.FormatResponse(sampleResponse(), domain.OutputFormatYAML, &buf))

	assert.Contains(t, buf.String(), "dry_score: 90")
}

func TestFormatResponseCSV(t *testing.T) {
	formatter := NewDuplicationOutputFormatter()

	var buf bytes.Buffer
	require.NoError(t, formatter.FormatResponse(sampleResponse(), domain.OutputFormatCSV, &buf))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "pair_id", records[0][0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "medium", records[1][1])
	assert.Equal(t, "cross_file", records[1][2])
	assert.Equal(t, "a.py", records[1][4])
}

func TestFormatResponseUnsupportedFormat(t *testing.T) {
	formatter := NewDuplicationOutputFormatter()

	var buf bytes.Buffer
	err := formatter.FormatResponse(sampleResponse(), domain.OutputFormat("xml"), &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestOutputFormatResolver(t *testing.T) {
	resolver := NewOutputFormatResolver()

	format, ext, err := resolver.Determine(false, false, false)
	require.NoError(t, err)
	assert.Equal(t, domain.OutputFormatText, format)
	assert.Empty(t, ext)

	format, ext, err = resolver.Determine(true, false, false)
	require.NoError(t, err)
	assert.Equal(t, domain.OutputFormatJSON, format)
	assert.Equal(t, "json", ext)

	format, ext, err = resolver.Determine(false, true, false)
	require.NoError(t, err)
	assert.Equal(t, domain.OutputFormatCSV, format)
	assert.Equal(t, "csv", ext)

	_, _, err = resolver.Determine(true, false, true)
	assert.Error(t, err)
}
