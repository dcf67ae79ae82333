package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Punctuation that already separates words at a fragment boundary. The left
// set applies to the last rune of the preceding fragment, the right set to
// the first rune of the following fragment; they differ only in bracket
// direction.
const (
	leftBoundaryPunct  = `.,;:!?)-]"'`
	rightBoundaryPunct = `.,;:!?(-["'`
)

// JoinFragments concatenates streamed fragments in order, inserting a single
// space only where the boundary would otherwise fuse two words: both the
// trailing rune on the left and the leading rune on the right must be
// word-forming (neither whitespace nor boundary punctuation).
func JoinFragments(fragments []string) string {
	var b strings.Builder
	prev := ""
	for _, frag := range fragments {
		if frag == "" {
			continue
		}
		if prev != "" {
			last, _ := utf8.DecodeLastRuneInString(prev)
			first, _ := utf8.DecodeRuneInString(frag)
			if wordForming(last, leftBoundaryPunct) && wordForming(first, rightBoundaryPunct) {
				b.WriteByte(' ')
			}
		}
		b.WriteString(frag)
		prev = frag
	}
	return b.String()
}

func wordForming(r rune, punct string) bool {
	if unicode.IsSpace(r) {
		return false
	}
	return !strings.ContainsRune(punct, r)
}
