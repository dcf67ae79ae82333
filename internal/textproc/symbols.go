package textproc

import (
	"regexp"
	"strings"
)

// Unicode blocks stripped from answers: emoji and pictograph ranges the chat
// models like to decorate output with.
var symbolRanges = [][2]rune{
	{0x1F300, 0x1F5FF}, // misc symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport and map symbols
	{0x1F900, 0x1F9FF}, // supplemental symbols
	{0x1FA70, 0x1FAFF}, // symbols extended-A
	{0x1F1E6, 0x1F1FF}, // regional indicators
	{0x2600, 0x26FF},   // misc symbols
	{0x2700, 0x27BF},   // dingbats
	{0xFE00, 0xFE0F},   // variation selectors
	{0x2B00, 0x2BFF},   // misc symbols and arrows
}

var horizontalSpaceRe = regexp.MustCompile(`[ \t]{2,}`)

// StripSymbols removes decorative emoji/pictograph runes, then collapses any
// leftover horizontal whitespace runs on each line to a single space and
// trims the line. Line breaks are preserved exactly.
func StripSymbols(text string) string {
	stripped := strings.Map(func(r rune) rune {
		for _, rng := range symbolRanges {
			if r >= rng[0] && r <= rng[1] {
				return -1
			}
		}
		return r
	}, text)

	lines := strings.Split(stripped, "\n")
	for i, line := range lines {
		line = horizontalSpaceRe.ReplaceAllString(line, " ")
		lines[i] = strings.Trim(line, " \t")
	}
	return strings.Join(lines, "\n")
}
