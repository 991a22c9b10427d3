package article

import (
	"regexp"
	"strings"
)

// MaxNormalizedChars caps normalized text, counted in Unicode code points.
const MaxNormalizedChars = 20000

var (
	manyNewlinesRe  = regexp.MustCompile(`\n{4,}`)
	doubleNewlineRe = regexp.MustCompile(`\n\n`)
	manySpacesRe    = regexp.MustCompile(` {3,}`)
)

// Whitespace-only lines may hold Unicode spaces such as NBSP or BOM.
var newlineRunRe = regexp.MustCompile(`\n+([\s\p{Z}\x{FEFF}\v]*\n)*`)

// Normalize collapses whitespace in extracted article text and truncates it
// to MaxNormalizedChars. The steps run in a fixed order and truncation may
// cut mid-word.
func Normalize(text string) string {
	normalized := strings.TrimSpace(text)
	normalized = manyNewlinesRe.ReplaceAllLiteralString(normalized, "\n\n\n")
	normalized = doubleNewlineRe.ReplaceAllLiteralString(normalized, " ")
	normalized = manySpacesRe.ReplaceAllLiteralString(normalized, "  ")
	normalized = strings.ReplaceAll(normalized, "\t", "")
	normalized = newlineRunRe.ReplaceAllLiteralString(normalized, "\n")

	return truncate(normalized, MaxNormalizedChars)
}

func truncate(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}

	count := 0
	for i := range text {
		if count == maxChars {
			return text[:i]
		}
		count++
	}

	return text
}
