package merge

import "strings"

// Strategy identifies how a resolution's content was derived.
type Strategy int

const (
	// AcceptLeft uses the left content verbatim.
	AcceptLeft Strategy = iota
	// AcceptRight uses the right content verbatim.
	AcceptRight
	// AcceptBoth combines left and right content.
	AcceptBoth
	// Manual is user-provided content, preserved byte-exact.
	Manual
	// AstMerged is a language-aware merge computed by an external
	// collaborator.
	AstMerged
	// AiSuggested is an AI-generated suggestion from an external provider.
	AiSuggested
)

// String returns a human-readable name for the strategy.
func (s Strategy) String() string {
	switch s {
	case AcceptLeft:
		return "accept-left"
	case AcceptRight:
		return "accept-right"
	case AcceptBoth:
		return "accept-both"
	case Manual:
		return "manual"
	case AstMerged:
		return "ast-merged"
	case AiSuggested:
		return "ai-suggested"
	default:
		return "unknown"
	}
}

// BothOrder selects the ordering for the AcceptBoth strategy.
type BothOrder int

const (
	// LeftThenRight places left content first. This is the default.
	LeftThenRight BothOrder = iota
	// RightThenLeft places right content first.
	RightThenLeft
)

// BothOptions controls the AcceptBoth combination.
type BothOptions struct {
	// Order of content combination.
	Order BothOrder `json:"order"`
	// Deduplicate removes lines from the second side that already appear
	// in the first, keeping the first occurrence's original text.
	Deduplicate bool `json:"deduplicate"`
	// TrimWhitespace normalizes whitespace when comparing lines for
	// deduplication. The surviving line keeps its original whitespace.
	TrimWhitespace bool `json:"trim_whitespace"`
}

// Source identifies who produced a resolution.
type Source int

const (
	// SourceUser marks a resolution made by the user. This is the default.
	SourceUser Source = iota
	// SourceAi marks a resolution suggested by an AI provider.
	SourceAi
	// SourceAst marks a resolution produced by AST analysis.
	SourceAst
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceAi:
		return "ai"
	case SourceAst:
		return "ast"
	default:
		return "user"
	}
}

// Metadata describes how a resolution came to be.
type Metadata struct {
	Source Source `json:"source"`
	// Optional free-form notes.
	Notes string `json:"notes,omitempty"`
	// Confidence score 0-100; meaningful only for AI-sourced resolutions.
	// Negative means unset.
	Confidence int `json:"confidence,omitempty"`
}

// Resolution is an explicit decision applied to a hunk. It is an immutable
// value; replacing a hunk's resolution replaces the whole value.
type Resolution struct {
	// How the resolution was chosen.
	Strategy Strategy `json:"strategy"`
	// Options used by AcceptBoth; zero value otherwise.
	Both BothOptions `json:"both,omitempty"`
	// Language used for AST merging; set only for AstMerged.
	Language string `json:"language,omitempty"`
	// Provider name; set only for AiSuggested.
	Provider string `json:"provider,omitempty"`
	// The resolved content.
	Content string `json:"content"`
	// How the resolution was produced.
	Metadata Metadata `json:"metadata"`
}

// NewAcceptLeft resolves a hunk with its left content verbatim, including
// the absence of any trailing newline.
func NewAcceptLeft(hunk *ConflictHunk) Resolution {
	return Resolution{
		Strategy: AcceptLeft,
		Content:  hunk.Left,
		Metadata: Metadata{Confidence: -1},
	}
}

// NewAcceptRight resolves a hunk with its right content verbatim.
func NewAcceptRight(hunk *ConflictHunk) Resolution {
	return Resolution{
		Strategy: AcceptRight,
		Content:  hunk.Right,
		Metadata: Metadata{Confidence: -1},
	}
}

// NewAcceptBoth resolves a hunk by combining both sides according to opts.
//
// If either side is empty the other side is returned verbatim with no
// extra empty line; if both are empty the content is empty. The result is
// deterministic and idempotent for fixed options.
func NewAcceptBoth(hunk *ConflictHunk, opts BothOptions) Resolution {
	first, second := hunk.Left, hunk.Right
	if opts.Order == RightThenLeft {
		first, second = hunk.Right, hunk.Left
	}

	var content string
	switch {
	case first == "" && second == "":
		content = ""
	case first == "":
		content = second
	case second == "":
		content = first
	case opts.Deduplicate:
		content = combineDedup(first, second, opts.TrimWhitespace)
	default:
		content = combineSimple(first, second)
	}

	return Resolution{
		Strategy: AcceptBoth,
		Both:     opts,
		Content:  content,
		Metadata: Metadata{Confidence: -1},
	}
}

// NewManual resolves a hunk with user-provided content. The content is
// preserved exactly as given, even if it still contains conflict markers;
// Validate catches that later.
func NewManual(content string) Resolution {
	return Resolution{
		Strategy: Manual,
		Content:  content,
		Metadata: Metadata{Confidence: -1},
	}
}

// NewAstMerged wraps content produced by a language-aware merger.
func NewAstMerged(content, language string) Resolution {
	return Resolution{
		Strategy: AstMerged,
		Language: language,
		Content:  content,
		Metadata: Metadata{Source: SourceAst, Confidence: -1},
	}
}

// NewAiSuggested wraps content produced by an AI provider.
func NewAiSuggested(content, provider string, confidence int) Resolution {
	return Resolution{
		Strategy: AiSuggested,
		Provider: provider,
		Content:  content,
		Metadata: Metadata{Source: SourceAi, Confidence: confidence},
	}
}

// combineSimple concatenates two non-empty pieces, inserting a newline
// only when the first piece lacks a trailing one.
func combineSimple(first, second string) string {
	if strings.HasSuffix(first, "\n") {
		return first + second
	}
	return first + "\n" + second
}

// combineDedup merges line-by-line, keeping the first occurrence of each
// dedupe key. Keys are the line text, whitespace-trimmed when trim is set;
// the surviving line always keeps its original text.
func combineDedup(first, second string, trim bool) string {
	key := func(line string) string {
		if trim {
			return strings.TrimSpace(line)
		}
		return line
	}

	seen := make(map[string]struct{})
	var out []string

	for _, side := range []string{first, second} {
		for _, line := range splitLines(side) {
			k := key(line)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, line)
		}
	}

	result := strings.Join(out, "\n")
	if strings.HasSuffix(first, "\n") || strings.HasSuffix(second, "\n") {
		result += "\n"
	}
	return result
}
