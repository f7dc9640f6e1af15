// Package merge is the pure merge-logic engine: conflict-marker parsing,
// the hunk/segment data model, resolution strategies, the merge-session
// lifecycle, and undo/redo history. It performs no I/O of any kind; all
// merge decisions are explicit and deterministic.
package merge

import (
	"fmt"
	"strings"
)

// ContextLines is the number of context lines captured before and after
// each conflict hunk.
const ContextLines = 3

// Conflict marker prefixes. A marker is recognized only when the line
// begins with seven repeated characters.
const (
	startMarker     = "<<<<<<<"
	baseMarker      = "|||||||"
	separatorMarker = "======="
	endMarker       = ">>>>>>>"
)

// ParsedConflict is the result of parsing a conflicted file.
type ParsedConflict struct {
	// All conflict hunks in file order.
	Hunks []ConflictHunk `json:"hunks"`
	// File structure: clean text interleaved with conflict references.
	Segments []Segment `json:"segments"`
}

// parserState tracks position within the marker state machine.
type parserState int

const (
	stateClean parserState = iota
	stateInLeft
	stateInBase
	stateInRight
)

// markerKind is a detected conflict marker type.
type markerKind int

const (
	markerNone markerKind = iota
	markerStart
	markerBase
	markerSeparator
	markerEnd
)

// detectMarker classifies a line as a conflict marker.
//
// Start, base, and end markers allow a trailing label (branch name etc).
// The separator must be exactly seven equals signs followed by nothing but
// whitespace; six equals signs, or seven with trailing non-whitespace, is
// content, not a separator.
func detectMarker(line string) markerKind {
	switch {
	case strings.HasPrefix(line, startMarker):
		return markerStart
	case strings.HasPrefix(line, baseMarker):
		return markerBase
	case strings.HasPrefix(line, separatorMarker) &&
		strings.TrimSpace(line[len(separatorMarker):]) == "":
		return markerSeparator
	case strings.HasPrefix(line, endMarker):
		return markerEnd
	default:
		return markerNone
	}
}

// splitLines splits content into lines the way the rest of this package
// expects: split on \n, strip one trailing \r per line, and drop the
// final empty element a trailing newline would produce. Lines are always
// rejoined with \n.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Parse parses conflict markers from file content.
//
// Both standard 2-way conflicts and diff3 3-way conflicts (with a |||||||
// base section) are supported. Content lines are preserved exactly; no
// trimming is performed. A file with no conflicts yields zero hunks and a
// single clean segment spanning the whole input (or zero segments for
// empty input).
//
// Returns a *ParseError for nested, orphaned, duplicated, or unclosed
// markers.
func Parse(content string) (*ParsedConflict, error) {
	lines := splitLines(content)

	state := stateClean
	var segments []Segment
	var hunks []ConflictHunk

	var cleanBuf []string
	var leftBuf []string
	var baseBuf []string
	var rightBuf []string
	var endLines []int
	baseSeen := false

	hunkStartLine := 0
	leftContentStart := 0
	rightContentStart := 0

	for i, line := range lines {
		lineNum := i + 1 // 1-indexed for error messages

		switch marker := detectMarker(line); marker {
		case markerStart:
			if state != stateClean {
				return nil, &ParseError{
					Kind:   InvalidMarkers,
					Reason: fmt.Sprintf("nested conflict marker at line %d", lineNum),
					Line:   lineNum,
				}
			}
			if len(cleanBuf) > 0 {
				segments = append(segments, Segment{Kind: SegmentClean, Text: strings.Join(cleanBuf, "\n")})
				cleanBuf = nil
			}
			hunkStartLine = lineNum
			leftContentStart = lineNum + 1
			state = stateInLeft

		case markerBase:
			switch state {
			case stateInLeft:
				baseSeen = true
				baseBuf = nil
				state = stateInBase
			case stateInBase:
				return nil, &ParseError{
					Kind:   InvalidMarkers,
					Reason: fmt.Sprintf("duplicate base marker at line %d", lineNum),
					Line:   lineNum,
				}
			default:
				return nil, &ParseError{
					Kind:   InvalidMarkers,
					Reason: fmt.Sprintf("unexpected base marker at line %d", lineNum),
					Line:   lineNum,
				}
			}

		case markerSeparator:
			switch state {
			case stateInLeft, stateInBase:
				rightContentStart = lineNum + 1
				state = stateInRight
			case stateInRight:
				return nil, &ParseError{
					Kind:   InvalidMarkers,
					Reason: fmt.Sprintf("duplicate separator at line %d", lineNum),
					Line:   lineNum,
				}
			default:
				return nil, &ParseError{
					Kind:   InvalidMarkers,
					Reason: fmt.Sprintf("unexpected separator at line %d", lineNum),
					Line:   lineNum,
				}
			}

		case markerEnd:
			if state != stateInRight {
				return nil, &ParseError{
					Kind:   InvalidMarkers,
					Reason: fmt.Sprintf("unexpected end marker at line %d", lineNum),
					Line:   lineNum,
				}
			}

			// Up to ContextLines lines immediately before the start marker,
			// clipped at file start.
			ctxStart := 0
			if hunkStartLine > ContextLines {
				ctxStart = hunkStartLine - ContextLines - 1
			}
			before := append([]string(nil), lines[ctxStart:hunkStartLine-1]...)

			hunk := ConflictHunk{
				ID:    HunkID(len(hunks)),
				Left:  strings.Join(leftBuf, "\n"),
				Right: strings.Join(rightBuf, "\n"),
				Context: HunkContext{
					Before:         before,
					StartLineLeft:  leftContentStart,
					StartLineRight: rightContentStart,
				},
				State: HunkState{Status: HunkUnresolved},
			}
			if baseSeen {
				base := strings.Join(baseBuf, "\n")
				hunk.Base = &base
			}

			segments = append(segments, Segment{Kind: SegmentConflict, Hunk: len(hunks)})
			hunks = append(hunks, hunk)
			endLines = append(endLines, lineNum)

			leftBuf = nil
			rightBuf = nil
			baseBuf = nil
			baseSeen = false
			state = stateClean

		case markerNone:
			switch state {
			case stateClean:
				cleanBuf = append(cleanBuf, line)
			case stateInLeft:
				leftBuf = append(leftBuf, line)
			case stateInBase:
				baseBuf = append(baseBuf, line)
			case stateInRight:
				rightBuf = append(rightBuf, line)
			}
		}
	}

	if state != stateClean {
		return nil, &ParseError{
			Kind:   InvalidMarkers,
			Reason: fmt.Sprintf("unclosed conflict starting at line %d", hunkStartLine),
			Line:   hunkStartLine,
		}
	}

	if len(cleanBuf) > 0 {
		segments = append(segments, Segment{Kind: SegmentClean, Text: strings.Join(cleanBuf, "\n")})
	}

	fillAfterContext(hunks, lines, endLines)

	return &ParsedConflict{Hunks: hunks, Segments: segments}, nil
}

// fillAfterContext fills each hunk's after-context in a second pass once
// all hunk positions are known. endLines holds the 1-indexed line of each
// hunk's end marker, recorded during the parse; recomputing it from the
// buffered right side would undercount when its last line is empty. The
// context is clipped at the file end or at the next hunk's start marker
// so adjacent hunks never borrow each other's lines.
func fillAfterContext(hunks []ConflictHunk, lines []string, endLines []int) {
	// Start-marker line index (0-based) of each hunk, for boundary checks.
	// StartLineLeft is the 1-indexed first content line, so the marker
	// itself sits two back.
	starts := make([]int, len(hunks))
	for i := range hunks {
		starts[i] = hunks[i].Context.StartLineLeft - 2
	}

	for i := range hunks {
		// The marker's 1-indexed line is also the 0-based index of the
		// first line after it.
		afterStart := endLines[i]
		afterEnd := afterStart + ContextLines
		if afterEnd > len(lines) {
			afterEnd = len(lines)
		}
		if i+1 < len(hunks) && starts[i+1] < afterEnd {
			afterEnd = starts[i+1]
		}

		if afterStart < afterEnd && afterStart < len(lines) {
			hunks[i].Context.After = append([]string(nil), lines[afterStart:afterEnd]...)
		}
	}
}
