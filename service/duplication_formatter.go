package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/pydry/domain"
)

// DuplicationOutputFormatter implements the domain.DuplicationOutputFormatter interface
type DuplicationOutputFormatter struct{}

// NewDuplicationOutputFormatter creates a new duplication output formatter
func NewDuplicationOutputFormatter() *DuplicationOutputFormatter {
	return &DuplicationOutputFormatter{}
}

// FormatResponse formats a duplication response according to the specified format
func (f *DuplicationOutputFormatter) FormatResponse(response *domain.DuplicationResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.formatAsText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.formatAsCSV(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// formatAsText formats the response as human-readable text
func (f *DuplicationOutputFormatter) formatAsText(response *domain.DuplicationResponse, writer io.Writer) error {
	if !response.Success {
		fmt.Fprintf(writer, "Duplication analysis failed: %s\n", response.Error)
		return nil
	}

	report := response.Report

	fmt.Fprintf(writer, "Duplication Analysis Results\n")
	fmt.Fprintf(writer, "============================\n\n")

	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Files analyzed: %d\n", report.FilesAnalyzed)
	fmt.Fprintf(writer, "  Blocks checked: %d\n", report.BlocksChecked)
	fmt.Fprintf(writer, "  Duplicate pairs: %d (high: %d, medium: %d, low: %d)\n",
		report.TotalDuplicates, report.HighCount, report.MediumCount, report.LowCount)
	fmt.Fprintf(writer, "  DRY score: %d/100\n", report.DRYScore)
	fmt.Fprintf(writer, "  Analysis duration: %dms\n\n", response.Duration)

	if len(report.Warnings) > 0 {
		fmt.Fprintf(writer, "Warnings:\n")
		for _, warning := range report.Warnings {
			fmt.Fprintf(writer, "  %s\n", warning)
		}
		fmt.Fprintf(writer, "\n")
	}

	if len(report.Pairs) > 0 {
		fmt.Fprintf(writer, "Duplicate Pairs:\n")
		fmt.Fprintf(writer, "================\n\n")

		for i, pair := range report.Pairs {
			if pair == nil {
				continue
			}
			fmt.Fprintf(writer, "%d. [%s] %s duplication (similarity: %.3f)\n",
				i+1, strings.ToUpper(pair.Severity.String()), pair.Classification, pair.Similarity)
			fmt.Fprintf(writer, "   A: %s (%d lines)\n", pair.BlockA.String(), pair.BlockA.LineCount)
			fmt.Fprintf(writer, "   B: %s (%d lines)\n", pair.BlockB.String(), pair.BlockB.LineCount)

			for _, suggestion := range pair.Suggestions {
				fmt.Fprintf(writer, "   -> %s\n", suggestion)
			}

			if response.Request != nil && response.Request.ShowContent && pair.BlockA.Preview != "" {
				fmt.Fprintf(writer, "   Preview:\n")
				for j, line := range strings.Split(pair.BlockA.Preview, "\n") {
					if j >= 5 {
						fmt.Fprintf(writer, "     ...\n")
						break
					}
					fmt.Fprintf(writer, "     %s\n", line)
				}
			}

			fmt.Fprintf(writer, "\n")
		}
	}

	fmt.Fprintf(writer, "Recommendations:\n")
	for _, rec := range report.Recommendations {
		fmt.Fprintf(writer, "  - %s\n", rec)
	}

	return nil
}

// formatAsCSV formats the response as CSV, one row per duplicate pair
func (f *DuplicationOutputFormatter) formatAsCSV(response *domain.DuplicationResponse, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	header := []string{
		"pair_id", "severity", "classification", "similarity",
		"a_file", "a_start_line", "a_end_line", "a_lines",
		"b_file", "b_start_line", "b_end_line", "b_lines",
	}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, pair := range response.Report.Pairs {
		record := []string{
			fmt.Sprintf("%d", pair.ID),
			pair.Severity.String(),
			string(pair.Classification),
			fmt.Sprintf("%.6f", pair.Similarity),
			pair.BlockA.FilePath,
			fmt.Sprintf("%d", pair.BlockA.StartLine),
			fmt.Sprintf("%d", pair.BlockA.EndLine),
			fmt.Sprintf("%d", pair.BlockA.LineCount),
			pair.BlockB.FilePath,
			fmt.Sprintf("%d", pair.BlockB.StartLine),
			fmt.Sprintf("%d", pair.BlockB.EndLine),
			fmt.Sprintf("%d", pair.BlockB.LineCount),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	return nil
}
