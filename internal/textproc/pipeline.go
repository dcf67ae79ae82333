// Package textproc cleans raw model output into display-ready plain text.
// Every transform is a pure, total function: arbitrary input (including the
// empty string) passes through without panicking, and applying a transform
// twice yields the same result as applying it once.
package textproc

// Clean applies the post-processing stages in their required order:
// word-break repair, symbol stripping, markdown flattening. Repair runs
// before symbol stripping because removing an emoji can itself fuse two
// words, which the whitespace collapse in StripSymbols then normalizes.
func Clean(text string) string {
	text = RepairWordBreaks(text)
	text = StripSymbols(text)
	return FlattenMarkdown(text)
}

// CleanFragments joins an ordered sequence of streamed fragments and runs
// the full pipeline. For a single-element sequence the join is a no-op, so
// the streaming and synchronous flows produce identical output for the same
// total text.
func CleanFragments(fragments []string) string {
	return Clean(JoinFragments(fragments))
}
