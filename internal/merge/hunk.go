package merge

// HunkID uniquely identifies a conflict hunk within a session.
// IDs are 0-based and assigned sequentially in file order.
type HunkID int

// HunkContext holds the lines surrounding a conflict hunk.
type HunkContext struct {
	// Lines before the conflict (up to ContextLines, clipped at file start).
	Before []string `json:"before"`
	// Lines after the conflict (up to ContextLines, clipped at file end or
	// the next hunk's start marker).
	After []string `json:"after"`
	// 1-indexed line of the first content line after the start marker.
	StartLineLeft int `json:"start_line_left"`
	// 1-indexed line of the first content line after the separator.
	StartLineRight int `json:"start_line_right"`
}

// HunkStatus is the resolution state of a single hunk.
type HunkStatus int

const (
	// HunkUnresolved means no resolution has been chosen.
	HunkUnresolved HunkStatus = iota
	// HunkProposed means candidate resolutions are available but none chosen.
	HunkProposed
	// HunkResolved means a resolution has been selected.
	HunkResolved
	// HunkInvalid means the resolution was rejected by validation.
	HunkInvalid
)

// String returns a human-readable name for the status.
func (s HunkStatus) String() string {
	switch s {
	case HunkUnresolved:
		return "unresolved"
	case HunkProposed:
		return "proposed"
	case HunkResolved:
		return "resolved"
	case HunkInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// HunkState combines a status with the data that backs it.
type HunkState struct {
	Status HunkStatus `json:"status"`
	// Candidate resolutions, set when Status is HunkProposed.
	Candidates []Resolution `json:"candidates,omitempty"`
	// The selected resolution, set when Status is HunkResolved.
	Resolution *Resolution `json:"resolution,omitempty"`
}

// ConflictHunk is one contiguous conflicting region of a file.
//
// Hunks are created by Parse and mutated only by the owning MergeSession.
type ConflictHunk struct {
	// Unique identifier, sequential in file order.
	ID HunkID `json:"id"`
	// Left (ours/HEAD) content, lines joined with \n.
	Left string `json:"left"`
	// Right (theirs/MERGE_HEAD) content, lines joined with \n.
	Right string `json:"right"`
	// Base (common ancestor) content; nil unless the conflict used the
	// diff3 format with a ||||||| section.
	Base *string `json:"base,omitempty"`
	// Surrounding context lines.
	Context HunkContext `json:"context"`
	// Current resolution state.
	State HunkState `json:"state"`
}

// HasBase reports whether the hunk carries diff3 base content.
func (h *ConflictHunk) HasBase() bool {
	return h.Base != nil
}

// SegmentKind discriminates the two segment variants.
type SegmentKind int

const (
	// SegmentClean is non-conflicting text, preserved exactly.
	SegmentClean SegmentKind = iota
	// SegmentConflict references a hunk by its index in the hunk list.
	SegmentConflict
)

// Segment is a slice of the original file: either clean text or a
// reference to a conflict hunk. Segments reference hunks by index rather
// than by pointer so the two lists can be inspected independently.
type Segment struct {
	Kind SegmentKind `json:"kind"`
	// Clean text; meaningful only when Kind is SegmentClean.
	Text string `json:"text,omitempty"`
	// Index into the hunk list; meaningful only when Kind is SegmentConflict.
	Hunk int `json:"hunk,omitempty"`
}

// FileVersion is one version of a file: an opaque path identifier plus
// its content. It is never used for I/O by this package.
type FileVersion struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}
