package ui

import (
	"fmt"
	"strings"

	"github.com/jcucci/weavr/internal/merge"
)

// renderHunk formats one conflict hunk with colored sections for the
// before-context, both (or all three) sides, the after-context, and the
// current resolution if one is set.
func renderHunk(hunk *merge.ConflictHunk, resolution *merge.Resolution) string {
	var sb strings.Builder

	for _, line := range hunk.Context.Before {
		sb.WriteString(contextLineStyle.Render("  "+line) + "\n")
	}

	sb.WriteString(leftLabelStyle.Render("<<< left (ours)") + "\n")
	writeSide(&sb, hunk.Left, leftLineStyle)

	if hunk.HasBase() {
		sb.WriteString(baseLabelStyle.Render("||| base") + "\n")
		writeSide(&sb, *hunk.Base, baseLineStyle)
	}

	sb.WriteString(rightLabelStyle.Render(">>> right (theirs)") + "\n")
	writeSide(&sb, hunk.Right, rightLineStyle)

	for _, line := range hunk.Context.After {
		sb.WriteString(contextLineStyle.Render("  "+line) + "\n")
	}

	if resolution != nil {
		sb.WriteString("\n")
		sb.WriteString(resolvedStyle.Render(fmt.Sprintf("resolved (%s)", strategyLabel(resolution))) + "\n")
		writeSide(&sb, resolution.Content, resolutionStyle)
	}

	return sb.String()
}

func writeSide(sb *strings.Builder, content string, style interface{ Render(...string) string }) {
	if content == "" {
		sb.WriteString(style.Render("  (empty)") + "\n")
		return
	}
	for _, line := range strings.Split(content, "\n") {
		sb.WriteString(style.Render("  "+line) + "\n")
	}
}

// strategyLabel names a resolution for the status line.
func strategyLabel(res *merge.Resolution) string {
	switch res.Strategy {
	case merge.AcceptLeft:
		return "accept left"
	case merge.AcceptRight:
		return "accept right"
	case merge.AcceptBoth:
		return "accept both"
	case merge.Manual:
		return "manual"
	case merge.AstMerged:
		return "ast merged"
	case merge.AiSuggested:
		if res.Metadata.Confidence >= 0 {
			return fmt.Sprintf("ai: %s, confidence %d", res.Provider, res.Metadata.Confidence)
		}
		return "ai: " + res.Provider
	default:
		return "unknown"
	}
}
