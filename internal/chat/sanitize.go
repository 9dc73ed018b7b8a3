package chat

import (
	"regexp"
	"strings"
)

var (
	nonPrintable = regexp.MustCompile(`[^\x20-\x7E\n]`)
	stubTokens   = regexp.MustCompile(`\b\w{1,2}\b`)
	blankRuns    = regexp.MustCompile(`\n+`)
	spaceRuns    = regexp.MustCompile(`\s+`)
)

// CleanContext scrubs concatenated retrieval text before it goes into the
// grounded prompt: PDF extraction leaves non-printable glyphs and seas of
// one-letter fragments that bloat the prompt without carrying meaning.
func CleanContext(text string) string {
	text = nonPrintable.ReplaceAllString(text, "")
	text = stubTokens.ReplaceAllString(text, "")
	text = blankRuns.ReplaceAllString(text, "\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
