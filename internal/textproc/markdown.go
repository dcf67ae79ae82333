package textproc

import (
	"regexp"
	"strings"
)

var (
	boldStarsRe      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnderscoreRe = regexp.MustCompile(`__(.+?)__`)
	headingRe        = regexp.MustCompile(`(?m)^#{1,6}[ \t]*`)
	runOnListRe      = regexp.MustCompile(`\.(\d+)\. `)
	excessNewlinesRe = regexp.MustCompile(`\n{3,}`)
)

// FlattenMarkdown reduces markdown decoration to plain structured text: bold
// markers are dropped, headings become paragraph breaks, run-on numbered
// lists ("...symptoms.2. Fatigue") get their missing line break back, and
// runs of 3+ newlines collapse to exactly two.
func FlattenMarkdown(text string) string {
	text = boldStarsRe.ReplaceAllString(text, "$1")
	text = boldUnderscoreRe.ReplaceAllString(text, "$1")
	text = headingRe.ReplaceAllString(text, "\n")
	text = runOnListRe.ReplaceAllString(text, ".\n$1. ")
	text = excessNewlinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
