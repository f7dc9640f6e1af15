package merge

import (
	"strings"
	"testing"
)

func testHunk(left, right string) *ConflictHunk {
	return &ConflictHunk{
		ID:    1,
		Left:  left,
		Right: right,
	}
}

func TestAcceptLeftReturnsExactContent(t *testing.T) {
	hunk := testHunk("left content", "right content")
	res := NewAcceptLeft(hunk)

	if res.Content != "left content" {
		t.Errorf("Content = %q, want %q", res.Content, "left content")
	}
	if res.Strategy != AcceptLeft {
		t.Errorf("Strategy = %v, want AcceptLeft", res.Strategy)
	}
}

func TestAcceptRightReturnsExactContent(t *testing.T) {
	hunk := testHunk("left content", "right content")
	res := NewAcceptRight(hunk)

	if res.Content != "right content" {
		t.Errorf("Content = %q, want %q", res.Content, "right content")
	}
	if res.Strategy != AcceptRight {
		t.Errorf("Strategy = %v, want AcceptRight", res.Strategy)
	}
}

func TestAcceptLeftRightWithEmptyContent(t *testing.T) {
	hunk := testHunk("", "right content")
	if res := NewAcceptLeft(hunk); res.Content != "" {
		t.Errorf("Empty left should resolve to empty, got %q", res.Content)
	}

	hunk = testHunk("left content", "")
	if res := NewAcceptRight(hunk); res.Content != "" {
		t.Errorf("Empty right should resolve to empty, got %q", res.Content)
	}
}

func TestAcceptLeftRightIdempotent(t *testing.T) {
	hunk := testHunk("left content", "right content")

	if r1, r2 := NewAcceptLeft(hunk), NewAcceptLeft(hunk); r1 != r2 {
		t.Errorf("AcceptLeft not idempotent: %+v vs %+v", r1, r2)
	}
	if r1, r2 := NewAcceptRight(hunk), NewAcceptRight(hunk); r1 != r2 {
		t.Errorf("AcceptRight not idempotent: %+v vs %+v", r1, r2)
	}
}

func TestAcceptLeftPreservesMissingTrailingNewline(t *testing.T) {
	hunk := testHunk("no trailing newline", "right\n")
	if res := NewAcceptLeft(hunk); strings.HasSuffix(res.Content, "\n") {
		t.Errorf("AcceptLeft added a trailing newline: %q", res.Content)
	}
	if res := NewAcceptRight(hunk); !strings.HasSuffix(res.Content, "\n") {
		t.Errorf("AcceptRight dropped the trailing newline: %q", res.Content)
	}
}

func TestAcceptBothOrdering(t *testing.T) {
	hunk := testHunk("left\n", "right\n")

	res := NewAcceptBoth(hunk, BothOptions{})
	if res.Content != "left\nright\n" {
		t.Errorf("LeftThenRight = %q, want %q", res.Content, "left\nright\n")
	}

	res = NewAcceptBoth(hunk, BothOptions{Order: RightThenLeft})
	if res.Content != "right\nleft\n" {
		t.Errorf("RightThenLeft = %q, want %q", res.Content, "right\nleft\n")
	}
}

func TestAcceptBothInsertsNewlineOnlyWhenNeeded(t *testing.T) {
	// Parser output never carries trailing newlines, so the joining
	// newline must be inserted.
	hunk := testHunk("left", "right")
	res := NewAcceptBoth(hunk, BothOptions{})
	if res.Content != "left\nright" {
		t.Errorf("Content = %q, want %q", res.Content, "left\nright")
	}

	// First piece already ends with one; no doubling.
	hunk = testHunk("left\n", "right")
	res = NewAcceptBoth(hunk, BothOptions{})
	if res.Content != "left\nright" {
		t.Errorf("Content = %q, want %q", res.Content, "left\nright")
	}
}

func TestAcceptBothDedupRemovesExactMatches(t *testing.T) {
	hunk := testHunk("import foo\nimport bar\n", "import bar\nimport baz\n")
	res := NewAcceptBoth(hunk, BothOptions{Deduplicate: true})
	if res.Content != "import foo\nimport bar\nimport baz\n" {
		t.Errorf("Dedup result = %q", res.Content)
	}
}

func TestAcceptBothNoDedupKeepsDuplicates(t *testing.T) {
	hunk := testHunk("import foo\nimport bar\n", "import bar\nimport baz\n")
	res := NewAcceptBoth(hunk, BothOptions{})
	if res.Content != "import foo\nimport bar\nimport bar\nimport baz\n" {
		t.Errorf("No-dedup result = %q", res.Content)
	}
}

func TestAcceptBothDedupPreservesFirstOccurrence(t *testing.T) {
	hunk := testHunk("  indented\n", "indented\n")
	res := NewAcceptBoth(hunk, BothOptions{Deduplicate: true, TrimWhitespace: true})
	if res.Content != "  indented\n" {
		t.Errorf("First occurrence not preserved: %q", res.Content)
	}
}

func TestAcceptBothTrimWhitespaceComparison(t *testing.T) {
	hunk := testHunk("  foo  \n", "foo\n")

	res := NewAcceptBoth(hunk, BothOptions{Deduplicate: true, TrimWhitespace: true})
	if res.Content != "  foo  \n" {
		t.Errorf("Trimmed comparison result = %q, want first occurrence only", res.Content)
	}

	res = NewAcceptBoth(hunk, BothOptions{Deduplicate: true})
	if res.Content != "  foo  \nfoo\n" {
		t.Errorf("Untrimmed comparison result = %q, want both variants", res.Content)
	}
}

func TestAcceptBothDedupNoDuplicateKeys(t *testing.T) {
	hunk := testHunk("a\nb\na\n", "b\nc\na\nc\n")
	res := NewAcceptBoth(hunk, BothOptions{Deduplicate: true})

	seen := make(map[string]bool)
	for _, line := range strings.Split(strings.TrimSuffix(res.Content, "\n"), "\n") {
		if seen[line] {
			t.Fatalf("Duplicate line %q in dedup result %q", line, res.Content)
		}
		seen[line] = true
	}
	if res.Content != "a\nb\nc\n" {
		t.Errorf("Dedup result = %q, want %q", res.Content, "a\nb\nc\n")
	}
}

func TestAcceptBothEmptySides(t *testing.T) {
	tests := []struct {
		name        string
		left, right string
		want        string
	}{
		{"left empty", "", "right content\n", "right content\n"},
		{"right empty", "left content\n", "", "left content\n"},
		{"both empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hunk := testHunk(tt.left, tt.right)
			res := NewAcceptBoth(hunk, BothOptions{})
			if res.Content != tt.want {
				t.Errorf("Content = %q, want %q", res.Content, tt.want)
			}
		})
	}
}

func TestAcceptBothStoresOptions(t *testing.T) {
	hunk := testHunk("left\n", "right\n")
	opts := BothOptions{Order: RightThenLeft, Deduplicate: true, TrimWhitespace: true}
	res := NewAcceptBoth(hunk, opts)

	if res.Strategy != AcceptBoth {
		t.Errorf("Strategy = %v, want AcceptBoth", res.Strategy)
	}
	if res.Both != opts {
		t.Errorf("Stored options = %+v, want %+v", res.Both, opts)
	}
}

func TestAcceptBothDeterministic(t *testing.T) {
	hunk := testHunk("x\ny\nz\n", "y\nw\n")
	opts := BothOptions{Deduplicate: true, TrimWhitespace: true}

	first := NewAcceptBoth(hunk, opts)
	for i := 0; i < 10; i++ {
		if res := NewAcceptBoth(hunk, opts); res.Content != first.Content {
			t.Fatalf("Run %d produced %q, first run produced %q", i, res.Content, first.Content)
		}
	}
}

func TestManualPreservesContentExactly(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"plain", "user provided content"},
		{"empty", ""},
		{"multiline", "line1\nline2\nline3\n"},
		{"crlf", "line1\r\nline2\r\n"},
		{"mixed endings", "line1\nline2\r\nline3\r"},
		{"whitespace", "  indented\n\ttabbed\n  \n"},
		{"contains markers", "<<<<<<< HEAD\nfoo\n=======\nbar\n>>>>>>>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewManual(tt.content)
			if res.Content != tt.content {
				t.Errorf("Content = %q, want %q", res.Content, tt.content)
			}
			if res.Strategy != Manual {
				t.Errorf("Strategy = %v, want Manual", res.Strategy)
			}
			if res.Metadata.Source != SourceUser {
				t.Errorf("Source = %v, want SourceUser", res.Metadata.Source)
			}
		})
	}
}

func TestAstMergedCarriesLanguage(t *testing.T) {
	res := NewAstMerged("merged()", "go")
	if res.Strategy != AstMerged || res.Language != "go" {
		t.Errorf("AstMerged resolution wrong: %+v", res)
	}
	if res.Metadata.Source != SourceAst {
		t.Errorf("Source = %v, want SourceAst", res.Metadata.Source)
	}
}

func TestAiSuggestedCarriesProviderAndConfidence(t *testing.T) {
	res := NewAiSuggested("merged()", "openai", 85)
	if res.Strategy != AiSuggested || res.Provider != "openai" {
		t.Errorf("AiSuggested resolution wrong: %+v", res)
	}
	if res.Metadata.Source != SourceAi || res.Metadata.Confidence != 85 {
		t.Errorf("Metadata = %+v, want ai source with confidence 85", res.Metadata)
	}
}
