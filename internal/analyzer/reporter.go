package analyzer

import (
	"sort"
	"strings"

	"github.com/ludo-technologies/pydry/internal/constants"
)

// Severity classifies how serious a duplicate pair is
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
)

// String returns string representation of Severity
func (s Severity) String() string {
	if name, ok := constants.SeverityNames[int(s)]; ok {
		return name
	}
	return "unknown"
}

// ClassifySeverity classifies a pair by similarity and the average line
// count of its two blocks.
func ClassifySeverity(similarity, avgLines float64) Severity {
	switch {
	case similarity >= constants.HighSeveritySimilarity && avgLines >= constants.HighSeverityMinAvgLines:
		return SeverityHigh
	case similarity >= constants.MediumSeveritySimilarity && avgLines >= constants.MediumSeverityMinAvgLines:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ClassifiedPair is a duplicate pair with severity and suggestions attached
type ClassifiedPair struct {
	*DuplicatePair
	Severity    Severity
	Suggestions []string
}

// Report is the scored result of one duplication scan
type Report struct {
	Pairs           []*ClassifiedPair
	HighCount       int
	MediumCount     int
	LowCount        int
	DRYScore        int
	Recommendations []string
}

// suggestionRule maps a normalized-content marker to a refactoring
// suggestion. Rules are evaluated top to bottom; first match wins.
type suggestionRule struct {
	marker     string
	suggestion string
}

var suggestionRules = []suggestionRule{
	{"def ", "Extract the duplicated logic into a shared function"},
	{"class ", "Extract common behavior into a shared base class, mixin, or composed helper"},
}

const genericSuggestion = "Extract the duplicated code into a shared utility"

const crossFileSuggestion = "Move the shared code to a common module both files can import"

// SuggestionsFor chooses refactoring suggestions for a pair from its
// normalized content, appending a relocation hint when the pair spans files.
func SuggestionsFor(pair *DuplicatePair) []string {
	var suggestions []string

	matched := false
	for _, rule := range suggestionRules {
		if strings.Contains(pair.BlockA.Normalized, rule.marker) {
			suggestions = append(suggestions, rule.suggestion)
			matched = true
			break
		}
	}
	if !matched {
		suggestions = append(suggestions, genericSuggestion)
	}

	if !pair.SameFile() {
		suggestions = append(suggestions, crossFileSuggestion)
	}

	return suggestions
}

// BuildReport classifies each pair's severity, sorts the report by
// descending severity (ties keep discovery order), derives the DRY score and
// generates recommendations.
func BuildReport(pairs []*DuplicatePair) *Report {
	report := &Report{
		Pairs: make([]*ClassifiedPair, 0, len(pairs)),
	}

	crossFile := 0
	for _, pair := range pairs {
		severity := ClassifySeverity(pair.Similarity, pair.AvgLineCount())
		switch severity {
		case SeverityHigh:
			report.HighCount++
		case SeverityMedium:
			report.MediumCount++
		case SeverityLow:
			report.LowCount++
		}
		if !pair.SameFile() {
			crossFile++
		}
		report.Pairs = append(report.Pairs, &ClassifiedPair{
			DuplicatePair: pair,
			Severity:      severity,
			Suggestions:   SuggestionsFor(pair),
		})
	}

	sort.SliceStable(report.Pairs, func(i, j int) bool {
		return report.Pairs[i].Severity > report.Pairs[j].Severity
	})

	report.DRYScore = calculateDRYScore(report.HighCount, report.MediumCount, report.LowCount)
	report.Recommendations = buildRecommendations(len(pairs), report.HighCount, crossFile)

	return report
}

// calculateDRYScore starts at 100, subtracts a penalty per pair by severity
// and floors at zero.
func calculateDRYScore(high, medium, low int) int {
	score := constants.MaxDRYScore
	score -= high * constants.HighSeverityPenalty
	score -= medium * constants.MediumSeverityPenalty
	score -= low * constants.LowSeverityPenalty
	if score < 0 {
		score = 0
	}
	return score
}

// buildRecommendations derives free-text recommendations from aggregate counts
func buildRecommendations(total, high, crossFile int) []string {
	if total == 0 {
		return []string{"No duplication detected. The analyzed code is DRY."}
	}

	var recs []string
	if high > 0 {
		recs = append(recs, "High-severity duplicates found: extract the shared logic into a common function or module")
	}
	if crossFile > 0 {
		recs = append(recs, "Cross-file duplicates found: move shared code to a common utility module")
	}
	if len(recs) == 0 {
		recs = append(recs, "Minor duplication found: consider consolidating similar blocks during the next refactor")
	}
	return recs
}
