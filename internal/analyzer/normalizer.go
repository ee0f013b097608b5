package analyzer

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
)

// StringPlaceholder replaces every quoted string literal during normalization
// so that differing literal content does not defeat structural matching.
const StringPlaceholder = "STR"

// Literal patterns are applied longest-delimiter first so triple-quoted
// strings are not mangled by the single-quote patterns.
var (
	tripleDoubleQuoted = regexp.MustCompile(`(?s)""".*?"""`)
	tripleSingleQuoted = regexp.MustCompile(`(?s)'''.*?'''`)
	doubleQuoted       = regexp.MustCompile(`"(?:\\.|[^"\\\n])*"`)
	singleQuoted       = regexp.MustCompile(`'(?:\\.|[^'\\\n])*'`)
	lineComment        = regexp.MustCompile(`#[^\n]*`)
)

// NormalizeBlock canonicalizes raw block text for structural comparison:
// string literals are blanked to a fixed placeholder, end-of-line comments
// are removed, and all whitespace runs (including newlines) collapse to
// single spaces. Pure function of its input.
func NormalizeBlock(raw string) string {
	text := tripleDoubleQuoted.ReplaceAllString(raw, StringPlaceholder)
	text = tripleSingleQuoted.ReplaceAllString(text, StringPlaceholder)
	text = doubleQuoted.ReplaceAllString(text, StringPlaceholder)
	text = singleQuoted.ReplaceAllString(text, StringPlaceholder)

	// Literals are gone, so any remaining # starts a comment.
	text = lineComment.ReplaceAllString(text, "")

	return strings.Join(strings.Fields(text), " ")
}

// Fingerprint returns the MD5 hex digest of normalized text. It is used as
// an equality fast path only; collision resistance is not security-critical.
func Fingerprint(normalized string) string {
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// TokenSet splits normalized text on whitespace into a set of tokens.
// Duplicates within a block collapse; this is a set, not a multiset.
func TokenSet(normalized string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(normalized) {
		tokens[tok] = struct{}{}
	}
	return tokens
}
