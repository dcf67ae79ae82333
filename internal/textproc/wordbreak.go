package textproc

import "regexp"

// Known streaming artifacts: domain terms that token boundaries tend to split
// mid-word. This is a finite lookup table, not general NLP; splits outside
// the table are left as-is. Matching is case-insensitive and the rejoined
// word keeps the original casing of both halves.
var wordBreakTable = []struct {
	prefix string
	suffix string
}{
	{"di", "abetes"},
	{"diab", "etes"},
	{"ur", "ination"},
	{"urin", "ation"},
	{"hyper", "tension"},
	{"symp", "toms"},
	{"medi", "cation"},
	{"treat", "ment"},
	{"insu", "lin"},
	{"glu", "cose"},
	{"chole", "sterol"},
	{"infec", "tion"},
	{"inflam", "mation"},
	{"preg", "nancy"},
	{"arth", "ritis"},
	{"pneu", "monia"},
	{"mig", "raine"},
	{"dehy", "dration"},
	{"diagno", "sis"},
	{"thera", "py"},
}

var wordBreakPatterns = compileWordBreaks()

func compileWordBreaks() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(wordBreakTable))
	for i, entry := range wordBreakTable {
		patterns[i] = regexp.MustCompile(`(?i)\b(` + entry.prefix + `)[ \t]+(` + entry.suffix + `)\b`)
	}
	return patterns
}

// RepairWordBreaks rejoins known token-split words ("Di abetes" -> "Diabetes").
func RepairWordBreaks(text string) string {
	for _, re := range wordBreakPatterns {
		text = re.ReplaceAllString(text, "${1}${2}")
	}
	return text
}
