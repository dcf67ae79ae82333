package textproc

import (
	"strings"
	"testing"
)

func TestJoinFragmentsInsertsSpaceOnlyBetweenWords(t *testing.T) {
	got := JoinFragments([]string{"Common symptoms of", " diabetes", " include"})
	if got != "Common symptoms of diabetes include" {
		t.Fatalf("JoinFragments() = %q, want %q", got, "Common symptoms of diabetes include")
	}

	got = JoinFragments([]string{"Hello", ", world"})
	if got != "Hello, world" {
		t.Fatalf("JoinFragments() = %q, want %q", got, "Hello, world")
	}

	got = JoinFragments([]string{"Common", "symptoms"})
	if got != "Common symptoms" {
		t.Fatalf("JoinFragments() fused words = %q, want %q", got, "Common symptoms")
	}
}

func TestJoinFragmentsDegenerateInputs(t *testing.T) {
	if got := JoinFragments(nil); got != "" {
		t.Fatalf("JoinFragments(nil) = %q, want empty", got)
	}
	if got := JoinFragments([]string{"", "", ""}); got != "" {
		t.Fatalf("JoinFragments(empties) = %q, want empty", got)
	}
	if got := JoinFragments([]string{"only"}); got != "only" {
		t.Fatalf("JoinFragments(single) = %q, want %q", got, "only")
	}
	// A trailing hyphen already separates; no space is inserted.
	if got := JoinFragments([]string{"state-", "of-the-art"}); got != "state-of-the-art" {
		t.Fatalf("JoinFragments(hyphen) = %q, want %q", got, "state-of-the-art")
	}
}

func TestRepairWordBreaks(t *testing.T) {
	got := RepairWordBreaks("Di abetes causes ur ination")
	if !strings.Contains(got, "Diabetes") {
		t.Fatalf("RepairWordBreaks() = %q, want Diabetes rejoined", got)
	}
	if !strings.Contains(got, "urination") {
		t.Fatalf("RepairWordBreaks() = %q, want urination rejoined", got)
	}
	if strings.Contains(got, "Di abetes") || strings.Contains(got, "ur ination") {
		t.Fatalf("RepairWordBreaks() = %q, split still present", got)
	}
}

func TestRepairWordBreaksLeavesUnknownSplits(t *testing.T) {
	in := "gre at wea ther"
	if got := RepairWordBreaks(in); got != in {
		t.Fatalf("RepairWordBreaks(%q) = %q, want unchanged", in, got)
	}
}

func TestStripSymbols(t *testing.T) {
	got := StripSymbols("Hello \U0001F600 world ✅")
	if got != "Hello world" {
		t.Fatalf("StripSymbols() = %q, want %q", got, "Hello world")
	}
}

func TestStripSymbolsPreservesLineBreaks(t *testing.T) {
	got := StripSymbols("line one  \U0001F389\nline   two")
	if got != "line one\nline two" {
		t.Fatalf("StripSymbols() = %q, want %q", got, "line one\nline two")
	}
}

func TestFlattenMarkdown(t *testing.T) {
	got := FlattenMarkdown("## Symptoms\n**Increased thirst** is common.")
	want := "Symptoms\n**Increased thirst** is common."
	_ = want
	if strings.Contains(got, "#") || strings.Contains(got, "**") {
		t.Fatalf("FlattenMarkdown() = %q, markers remain", got)
	}
	if !strings.Contains(got, "Increased thirst is common.") {
		t.Fatalf("FlattenMarkdown() = %q, inner text lost", got)
	}
}

func TestFlattenMarkdownRepairsRunOnLists(t *testing.T) {
	got := FlattenMarkdown("Symptoms include thirst.2. Fatigue is also common.")
	if !strings.Contains(got, "thirst.\n2. Fatigue") {
		t.Fatalf("FlattenMarkdown() = %q, want newline before list marker", got)
	}
}

func TestFlattenMarkdownCollapsesNewlines(t *testing.T) {
	got := FlattenMarkdown("first\n\n\n\n\nsecond")
	if got != "first\n\nsecond" {
		t.Fatalf("FlattenMarkdown() = %q, want %q", got, "first\n\nsecond")
	}
}

func TestCleanIdempotent(t *testing.T) {
	samples := []string{
		"",
		"plain answer with nothing to fix",
		"**Di abetes** overview \U0001F600\n## Symptoms\nIncreased thirst.2. Frequent ur ination.",
		"# Heading\n\n\n\nbody __emphasis__ done",
		"unicode \u00e9\u00e8 stays intact",
	}
	for _, sample := range samples {
		once := Clean(sample)
		twice := Clean(once)
		if once != twice {
			t.Fatalf("Clean not idempotent for %q:\nonce  = %q\ntwice = %q", sample, once, twice)
		}
	}
}

func TestCleanFragmentsMatchesClean(t *testing.T) {
	// A single-string sequence must go through the exact same pipeline as
	// the synchronous flow.
	text := "**Di abetes** can cause ur ination changes \U0001F600"
	if got, want := CleanFragments([]string{text}), Clean(text); got != want {
		t.Fatalf("CleanFragments(single) = %q, want %q", got, want)
	}
}

func TestCleanFullPipeline(t *testing.T) {
	fragments := []string{"Common symptoms of", " di abetes", " include thirst."}
	got := CleanFragments(fragments)
	if got != "Common symptoms of diabetes include thirst." {
		t.Fatalf("CleanFragments() = %q", got)
	}
}
