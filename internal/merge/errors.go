package merge

import (
	"fmt"
	"strings"
)

// ParseErrorKind discriminates parse failures.
type ParseErrorKind int

const (
	// InvalidMarkers indicates a structural conflict-marker violation.
	InvalidMarkers ParseErrorKind = iota
	// MalformedContent is reserved for future non-marker structural issues.
	MalformedContent
)

// ParseError reports a failure to parse conflict markers. Parse errors
// abort session construction entirely; no partial session exists.
type ParseError struct {
	Kind   ParseErrorKind
	Reason string
	// 1-indexed line the error was detected at (0 if not line-specific).
	Line int
}

func (e *ParseError) Error() string {
	if e.Kind == MalformedContent {
		return fmt.Sprintf("malformed content: %s", e.Reason)
	}
	return fmt.Sprintf("invalid conflict markers: %s", e.Reason)
}

// ResolutionErrorKind discriminates resolution failures.
type ResolutionErrorKind int

const (
	// HunkNotFound means the referenced hunk id does not exist.
	HunkNotFound ResolutionErrorKind = iota
	// InvalidResolution means the session is in a state that does not
	// permit resolution changes.
	InvalidResolution
)

// ResolutionError reports a failed SetResolution or ClearResolution call.
type ResolutionError struct {
	Kind   ResolutionErrorKind
	Hunk   HunkID
	Reason string
}

func (e *ResolutionError) Error() string {
	if e.Kind == HunkNotFound {
		return fmt.Sprintf("hunk not found: %d", e.Hunk)
	}
	return fmt.Sprintf("invalid resolution: %s", e.Reason)
}

// ApplyErrorKind discriminates apply failures.
type ApplyErrorKind int

const (
	// NotFullyResolved means at least one hunk has no resolution.
	NotFullyResolved ApplyErrorKind = iota
	// InternalError means a session invariant was violated. This is a
	// defect, not a user error.
	InternalError
)

// ApplyError reports a failed Apply call.
type ApplyError struct {
	Kind   ApplyErrorKind
	Reason string
}

func (e *ApplyError) Error() string {
	if e.Kind == NotFullyResolved {
		return "not all hunks are resolved"
	}
	return fmt.Sprintf("internal error: %s", e.Reason)
}

// ValidationErrorKind discriminates validation failures.
type ValidationErrorKind int

const (
	// UnresolvedHunks means the session was not in the Applied state.
	UnresolvedHunks ValidationErrorKind = iota
	// MarkersRemain means resolved content still contains marker lines.
	MarkersRemain
	// SyntaxError is reserved for future language-aware validation.
	SyntaxError
)

// ValidationError reports a failed Validate call.
type ValidationError struct {
	Kind ValidationErrorKind
	// Ids of unresolved hunks, set for UnresolvedHunks.
	Unresolved []HunkID
	// Number of hunks whose resolution still contains markers, set for
	// MarkersRemain.
	Markers int
	Reason  string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case UnresolvedHunks:
		ids := make([]string, len(e.Unresolved))
		for i, id := range e.Unresolved {
			ids[i] = fmt.Sprintf("%d", id)
		}
		return fmt.Sprintf("unresolved hunks: [%s]", strings.Join(ids, " "))
	case MarkersRemain:
		return fmt.Sprintf("conflict markers remain: %d markers", e.Markers)
	default:
		return fmt.Sprintf("syntax error: %s", e.Reason)
	}
}

// LifecycleError reports an illegal session state transition.
type LifecycleError struct {
	From   MergeState
	To     MergeState
	Reason string
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("illegal transition %s -> %s: %s", e.From, e.To, e.Reason)
}

// CompletionError reports a failed Complete call. It wraps the underlying
// lifecycle, validation, or apply failure.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string {
	switch e.Err.(type) {
	case *ValidationError:
		return fmt.Sprintf("validation failed: %v", e.Err)
	case *ApplyError:
		return fmt.Sprintf("apply failed: %v", e.Err)
	default:
		return fmt.Sprintf("completion failed: %v", e.Err)
	}
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
