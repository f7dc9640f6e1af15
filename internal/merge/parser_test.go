package merge

import (
	"errors"
	"strings"
	"testing"
)

func TestParseSimpleTwoWayConflict(t *testing.T) {
	content := "before\n<<<<<<< HEAD\nleft content\n=======\nright content\n>>>>>>> feature\nafter"

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(result.Hunks) != 1 {
		t.Fatalf("Expected 1 hunk, got %d", len(result.Hunks))
	}
	if result.Hunks[0].Left != "left content" {
		t.Errorf("Left = %q, want %q", result.Hunks[0].Left, "left content")
	}
	if result.Hunks[0].Right != "right content" {
		t.Errorf("Right = %q, want %q", result.Hunks[0].Right, "right content")
	}
	if result.Hunks[0].Base != nil {
		t.Errorf("Expected no base for 2-way conflict, got %q", *result.Hunks[0].Base)
	}
	if len(result.Segments) != 3 {
		t.Errorf("Expected 3 segments, got %d", len(result.Segments))
	}
}

func TestParseDiff3ThreeWayConflict(t *testing.T) {
	content := "before\n<<<<<<< HEAD\nleft content\n||||||| merged common ancestors\nbase content\n=======\nright content\n>>>>>>> feature\nafter"

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(result.Hunks) != 1 {
		t.Fatalf("Expected 1 hunk, got %d", len(result.Hunks))
	}
	if result.Hunks[0].Base == nil {
		t.Fatal("Expected base content for diff3 conflict")
	}
	if *result.Hunks[0].Base != "base content" {
		t.Errorf("Base = %q, want %q", *result.Hunks[0].Base, "base content")
	}
}

func TestParseMultipleHunks(t *testing.T) {
	content := strings.Join([]string{
		"// header",
		"<<<<<<< HEAD",
		"first left",
		"=======",
		"first right",
		">>>>>>> feature",
		"middle content",
		"<<<<<<< HEAD",
		"second left",
		"=======",
		"second right",
		">>>>>>> feature",
		"// footer",
	}, "\n")

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(result.Hunks) != 2 {
		t.Fatalf("Expected 2 hunks, got %d", len(result.Hunks))
	}
	if result.Hunks[0].Left != "first left" || result.Hunks[0].Right != "first right" {
		t.Errorf("First hunk content wrong: %q / %q", result.Hunks[0].Left, result.Hunks[0].Right)
	}
	if result.Hunks[1].Left != "second left" || result.Hunks[1].Right != "second right" {
		t.Errorf("Second hunk content wrong: %q / %q", result.Hunks[1].Left, result.Hunks[1].Right)
	}
}

func TestParseNoConflicts(t *testing.T) {
	content := "just normal content\nno conflicts here"

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(result.Hunks) != 0 {
		t.Errorf("Expected 0 hunks, got %d", len(result.Hunks))
	}
	if len(result.Segments) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(result.Segments))
	}
	if result.Segments[0].Kind != SegmentClean || result.Segments[0].Text != content {
		t.Errorf("Expected single clean segment with full content, got %+v", result.Segments[0])
	}
}

func TestParseEmptyInput(t *testing.T) {
	result, err := Parse("")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(result.Hunks) != 0 || len(result.Segments) != 0 {
		t.Errorf("Expected no hunks and no segments for empty input, got %d/%d",
			len(result.Hunks), len(result.Segments))
	}
}

func TestParsePreservesExactLineContent(t *testing.T) {
	content := "<<<<<<< HEAD\n  indented with spaces  \n=======\n\ttabbed content\t\n>>>>>>> feature"

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if result.Hunks[0].Left != "  indented with spaces  " {
		t.Errorf("Left = %q, whitespace not preserved", result.Hunks[0].Left)
	}
	if result.Hunks[0].Right != "\ttabbed content\t" {
		t.Errorf("Right = %q, whitespace not preserved", result.Hunks[0].Right)
	}
}

func TestParsePreservesEmptyLines(t *testing.T) {
	content := "<<<<<<< HEAD\nline one\n\nline three\n=======\nright\n>>>>>>> feature"

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Hunks[0].Left != "line one\n\nline three" {
		t.Errorf("Left = %q, empty line not preserved", result.Hunks[0].Left)
	}
}

func TestParseCRLFLineEndings(t *testing.T) {
	content := "before\r\n<<<<<<< HEAD\r\nleft\r\n=======\r\nright\r\n>>>>>>> feature\r\nafter"

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(result.Hunks) != 1 {
		t.Fatalf("Expected 1 hunk, got %d", len(result.Hunks))
	}
	if result.Hunks[0].Left != "left" || result.Hunks[0].Right != "right" {
		t.Errorf("CRLF content wrong: %q / %q", result.Hunks[0].Left, result.Hunks[0].Right)
	}
}

func TestParseConflictAtFileStart(t *testing.T) {
	content := "<<<<<<< HEAD\nleft\n=======\nright\n>>>>>>> feature\nafter"

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(result.Hunks[0].Context.Before) != 0 {
		t.Errorf("Expected no before context, got %v", result.Hunks[0].Context.Before)
	}
}

func TestParseConflictAtFileEnd(t *testing.T) {
	content := "before\n<<<<<<< HEAD\nleft\n=======\nright\n>>>>>>> feature"

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(result.Hunks[0].Context.After) != 0 {
		t.Errorf("Expected no after context, got %v", result.Hunks[0].Context.After)
	}
}

func TestParseEmptySides(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		left, right string
	}{
		{
			name:    "empty left",
			content: "<<<<<<< HEAD\n=======\nright content\n>>>>>>> feature",
			left:    "", right: "right content",
		},
		{
			name:    "empty right",
			content: "<<<<<<< HEAD\nleft content\n=======\n>>>>>>> feature",
			left:    "left content", right: "",
		},
		{
			name:    "both empty",
			content: "<<<<<<< HEAD\n=======\n>>>>>>> feature",
			left:    "", right: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(tt.content)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if result.Hunks[0].Left != tt.left {
				t.Errorf("Left = %q, want %q", result.Hunks[0].Left, tt.left)
			}
			if result.Hunks[0].Right != tt.right {
				t.Errorf("Right = %q, want %q", result.Hunks[0].Right, tt.right)
			}
		})
	}
}

func TestParseContextLines(t *testing.T) {
	content := strings.Join([]string{
		"line 1",
		"line 2",
		"line 3",
		"line 4",
		"<<<<<<< HEAD",
		"left",
		"=======",
		"right",
		">>>>>>> feature",
		"line 5",
		"line 6",
		"line 7",
		"line 8",
	}, "\n")

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	before := result.Hunks[0].Context.Before
	if len(before) != 3 || before[0] != "line 2" || before[1] != "line 3" || before[2] != "line 4" {
		t.Errorf("Before context wrong: %v", before)
	}

	after := result.Hunks[0].Context.After
	if len(after) != 3 || after[0] != "line 5" || after[1] != "line 6" || after[2] != "line 7" {
		t.Errorf("After context wrong: %v", after)
	}
}

func TestParseAfterContextClippedByNextHunk(t *testing.T) {
	// Only one line separates the hunks; neither may borrow the other's
	// marker or content lines as context.
	content := strings.Join([]string{
		"<<<<<<< HEAD",
		"a",
		"=======",
		"b",
		">>>>>>> feature",
		"between",
		"<<<<<<< HEAD",
		"c",
		"=======",
		"d",
		">>>>>>> feature",
	}, "\n")

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	after := result.Hunks[0].Context.After
	if len(after) != 1 || after[0] != "between" {
		t.Errorf("After context should stop at next hunk, got %v", after)
	}
}

func TestParseAfterContextWhenRightEndsWithEmptyLine(t *testing.T) {
	// The right side's trailing empty line must not shift the after
	// context onto the end marker itself.
	content := strings.Join([]string{
		"<<<<<<< HEAD",
		"left",
		"=======",
		"right",
		"",
		">>>>>>> feature",
		"after1",
		"after2",
	}, "\n")

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	after := result.Hunks[0].Context.After
	if len(after) != 2 || after[0] != "after1" || after[1] != "after2" {
		t.Errorf("After context wrong: %v", after)
	}
}

func TestParseLineNumbersAreOneIndexed(t *testing.T) {
	content := "line 1\n<<<<<<< HEAD\nleft content\n=======\nright content\n>>>>>>> feature"

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// <<<<<<< is line 2, so left content starts on line 3.
	if result.Hunks[0].Context.StartLineLeft != 3 {
		t.Errorf("StartLineLeft = %d, want 3", result.Hunks[0].Context.StartLineLeft)
	}
	// ======= is line 4, so right content starts on line 5.
	if result.Hunks[0].Context.StartLineRight != 5 {
		t.Errorf("StartLineRight = %d, want 5", result.Hunks[0].Context.StartLineRight)
	}
}

func TestParseErrorCases(t *testing.T) {
	tests := []struct {
		name    string
		content string
		reason  string
	}{
		{
			name:    "nested start in left",
			content: "<<<<<<< HEAD\nleft\n<<<<<<< nested\nnested left\n=======\nright\n>>>>>>> feature",
			reason:  "nested",
		},
		{
			name:    "nested start in right",
			content: "<<<<<<< HEAD\nleft\n=======\nright\n<<<<<<< nested\n>>>>>>> feature",
			reason:  "nested",
		},
		{
			name:    "orphan separator",
			content: "some content\n=======\nmore content",
			reason:  "unexpected separator",
		},
		{
			name:    "orphan end marker",
			content: "some content\n>>>>>>> feature\nmore content",
			reason:  "unexpected end marker",
		},
		{
			name:    "unclosed conflict",
			content: "<<<<<<< HEAD\nleft content\n=======\nright content",
			reason:  "unclosed conflict",
		},
		{
			name:    "duplicate base",
			content: "<<<<<<< HEAD\nleft\n||||||| base\nfirst\n||||||| second\nsecond\n=======\nright\n>>>>>>> feature",
			reason:  "duplicate base",
		},
		{
			name:    "duplicate separator",
			content: "<<<<<<< HEAD\nleft\n=======\nmiddle\n=======\nright\n>>>>>>> feature",
			reason:  "duplicate separator",
		},
		{
			name:    "base outside conflict",
			content: "content\n||||||| base\nmore",
			reason:  "unexpected base",
		},
		{
			name:    "end while in left",
			content: "<<<<<<< HEAD\nleft\n>>>>>>> feature",
			reason:  "unexpected end marker",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.content)
			if err == nil {
				t.Fatal("Expected parse error, got nil")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Expected *ParseError, got %T", err)
			}
			if parseErr.Kind != InvalidMarkers {
				t.Errorf("Expected InvalidMarkers kind, got %d", parseErr.Kind)
			}
			if !strings.Contains(parseErr.Reason, tt.reason) {
				t.Errorf("Reason %q does not mention %q", parseErr.Reason, tt.reason)
			}
		})
	}
}

func TestParseUnclosedConflictReportsStartLine(t *testing.T) {
	content := "line 1\nline 2\n<<<<<<< HEAD\nleft"

	_, err := Parse(content)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *ParseError, got %v", err)
	}
	if parseErr.Line != 3 {
		t.Errorf("Unclosed conflict line = %d, want 3", parseErr.Line)
	}
	if !strings.Contains(parseErr.Reason, "line 3") {
		t.Errorf("Reason %q should name line 3", parseErr.Reason)
	}
}

func TestParseMarkerWithLabel(t *testing.T) {
	content := "<<<<<<< HEAD (some label here)\nleft\n=======\nright\n>>>>>>> feature-branch-name"

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(result.Hunks) != 1 || result.Hunks[0].Left != "left" {
		t.Errorf("Labeled markers not handled: %+v", result.Hunks)
	}
}

func TestParseSeparatorStrictness(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		separator bool
	}{
		{"exactly seven equals", "=======", true},
		{"seven equals trailing spaces", "=======   ", true},
		{"seven equals trailing tab", "=======\t", true},
		{"six equals", "======", false},
		{"seven equals trailing text", "======= not a separator", false},
		{"markdown rule", "==========", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectMarker(tt.line) == markerSeparator
			if got != tt.separator {
				t.Errorf("detectMarker(%q) separator = %v, want %v", tt.line, got, tt.separator)
			}
		})
	}
}

func TestParseSixEqualsIsContent(t *testing.T) {
	result, err := Parse("======\nnot a separator")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(result.Hunks) != 0 {
		t.Errorf("Six equals should be content, got %d hunks", len(result.Hunks))
	}
}

func TestParseHunkIDsAreSequential(t *testing.T) {
	content := strings.Repeat("<<<<<<< HEAD\na\n=======\nb\n>>>>>>> feature\n", 3)

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(result.Hunks) != 3 {
		t.Fatalf("Expected 3 hunks, got %d", len(result.Hunks))
	}
	for i, hunk := range result.Hunks {
		if hunk.ID != HunkID(i) {
			t.Errorf("Hunk %d has ID %d", i, hunk.ID)
		}
	}
}

func TestParseSegmentsPreserveFileStructure(t *testing.T) {
	content := strings.Join([]string{
		"before",
		"<<<<<<< HEAD",
		"left",
		"=======",
		"right",
		">>>>>>> feature",
		"middle",
		"<<<<<<< HEAD",
		"left2",
		"=======",
		"right2",
		">>>>>>> feature",
		"after",
	}, "\n")

	result, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []Segment{
		{Kind: SegmentClean, Text: "before"},
		{Kind: SegmentConflict, Hunk: 0},
		{Kind: SegmentClean, Text: "middle"},
		{Kind: SegmentConflict, Hunk: 1},
		{Kind: SegmentClean, Text: "after"},
	}
	if len(result.Segments) != len(want) {
		t.Fatalf("Expected %d segments, got %d", len(want), len(result.Segments))
	}
	for i, seg := range result.Segments {
		if seg != want[i] {
			t.Errorf("Segment %d = %+v, want %+v", i, seg, want[i])
		}
	}
}

func TestParseAllHunksStartUnresolved(t *testing.T) {
	result, err := Parse("<<<<<<< HEAD\nleft\n=======\nright\n>>>>>>> feature")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Hunks[0].State.Status != HunkUnresolved {
		t.Errorf("New hunk status = %v, want unresolved", result.Hunks[0].State.Status)
	}
}
