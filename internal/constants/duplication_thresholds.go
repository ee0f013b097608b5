package constants

// Duplication detection thresholds and defaults.
//
// The similarity metric is a token-set Jaccard index with an MD5 fingerprint
// fast path, so these thresholds describe structural (not textual) similarity
// after comment stripping, whitespace collapsing and literal blanking.
const (
	// DefaultMinBlockLines is the minimum number of source lines a code block
	// must span to be retained for comparison.
	DefaultMinBlockLines = 3

	// DefaultSimilarityThreshold is the minimum similarity for a block pair to
	// be reported as a duplicate.
	DefaultSimilarityThreshold = 0.80

	// RealtimeSimilarityThreshold is a looser threshold callers may use for
	// faster, real-time checks.
	RealtimeSimilarityThreshold = 0.75
)

// Severity classification thresholds. A pair is classified by its similarity
// and the average line count of its two blocks.
const (
	// HighSeveritySimilarity and HighSeverityMinAvgLines gate high severity.
	HighSeveritySimilarity  = 0.95
	HighSeverityMinAvgLines = 10

	// MediumSeveritySimilarity and MediumSeverityMinAvgLines gate medium
	// severity. Anything above the scan threshold that misses both gates is
	// low severity.
	MediumSeveritySimilarity  = 0.85
	MediumSeverityMinAvgLines = 5
)

// DRY score penalties. The score starts at 100 and is reduced per reported
// pair, floored at zero.
const (
	MaxDRYScore           = 100
	HighSeverityPenalty   = 20
	MediumSeverityPenalty = 10
	LowSeverityPenalty    = 5
)

// ContentPreviewLimit caps the number of characters of block content included
// per side of a reported pair.
const ContentPreviewLimit = 200

// SeverityNames provides human-readable names for severity ranks.
var SeverityNames = map[int]string{
	3: "high",
	2: "medium",
	1: "low",
}
