package merge

import (
	"fmt"
	"strings"
)

// MergeState is the lifecycle state of a merge session.
//
// Legal forward/back order:
//
//	Uninitialized -> Parsed -> {Active <-> FullyResolved} -> Applied ->
//	Validated -> Completed
type MergeState int

const (
	// Uninitialized means raw input provided, no parsing performed.
	Uninitialized MergeState = iota
	// Parsed means conflict markers parsed and hunks created.
	Parsed
	// Active means the caller is applying resolutions.
	Active
	// FullyResolved means all hunks are resolved, no output generated yet.
	FullyResolved
	// Applied means resolutions were applied and output text produced.
	Applied
	// Validated means the output contains no conflict markers.
	Validated
	// Completed means the final result was generated.
	Completed
)

// String returns a human-readable name for the state.
func (s MergeState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Parsed:
		return "parsed"
	case Active:
		return "active"
	case FullyResolved:
		return "fully-resolved"
	case Applied:
		return "applied"
	case Validated:
		return "validated"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// resolutionStates are the session states in which SetResolution and
// ClearResolution are legal.
func inResolutionState(s MergeState) bool {
	return s == Parsed || s == Active || s == FullyResolved
}

// MergeSession owns one file's hunks, segments, and resolutions and
// enforces the merge lifecycle. It is the sole mutator of hunk state and
// of the resolution map. Sessions are not safe for concurrent use; each
// session is exclusively owned by one caller.
type MergeSession struct {
	input       FileVersion
	hunks       []ConflictHunk
	segments    []Segment
	resolutions map[HunkID]Resolution
	state       MergeState
}

// FromConflicted parses content and builds a session for it.
//
// A file with zero conflicts starts in the Validated state (there is
// nothing to resolve or apply); otherwise the session starts Parsed.
// Parse errors abort construction entirely; no partial session exists.
func FromConflicted(content, path string) (*MergeSession, error) {
	parsed, err := Parse(content)
	if err != nil {
		return nil, err
	}

	state := Parsed
	if len(parsed.Hunks) == 0 {
		state = Validated
	}

	return &MergeSession{
		input:       FileVersion{Path: path, Content: content},
		hunks:       parsed.Hunks,
		segments:    parsed.Segments,
		resolutions: make(map[HunkID]Resolution),
		state:       state,
	}, nil
}

// Path returns the opaque path identifier supplied at construction.
func (s *MergeSession) Path() string {
	return s.input.Path
}

// Original returns the raw input content.
func (s *MergeSession) Original() string {
	return s.input.Content
}

// Hunks returns all conflict hunks in file order.
func (s *MergeSession) Hunks() []ConflictHunk {
	return s.hunks
}

// Segments returns the file structure as parsed.
func (s *MergeSession) Segments() []Segment {
	return s.segments
}

// State returns the current lifecycle state.
func (s *MergeSession) State() MergeState {
	return s.state
}

// Resolutions returns a copy of the current hunk-id to resolution
// mapping; the session stays the sole mutator of resolution state.
func (s *MergeSession) Resolutions() map[HunkID]Resolution {
	out := make(map[HunkID]Resolution, len(s.resolutions))
	for id, res := range s.resolutions {
		out[id] = res
	}
	return out
}

// Resolution returns the resolution for a hunk, if one is set.
func (s *MergeSession) Resolution(id HunkID) (Resolution, bool) {
	res, ok := s.resolutions[id]
	return res, ok
}

// IsFullyResolved reports whether every hunk has a resolution.
func (s *MergeSession) IsFullyResolved() bool {
	for i := range s.hunks {
		if s.hunks[i].State.Status != HunkResolved {
			return false
		}
	}
	return true
}

// UnresolvedHunks returns the ids of all hunks without a resolution, in
// file order.
func (s *MergeSession) UnresolvedHunks() []HunkID {
	var ids []HunkID
	for i := range s.hunks {
		if s.hunks[i].State.Status != HunkResolved {
			ids = append(ids, s.hunks[i].ID)
		}
	}
	return ids
}

// hunkIndex locates a hunk by id.
func (s *MergeSession) hunkIndex(id HunkID) (int, bool) {
	for i := range s.hunks {
		if s.hunks[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// SetResolution records a resolution for a hunk, replacing any prior
// value. Legal only while the state is Parsed, Active, or FullyResolved.
func (s *MergeSession) SetResolution(id HunkID, res Resolution) error {
	if !inResolutionState(s.state) {
		return &ResolutionError{
			Kind:   InvalidResolution,
			Hunk:   id,
			Reason: fmt.Sprintf("cannot set resolution in state %s", s.state),
		}
	}
	i, ok := s.hunkIndex(id)
	if !ok {
		return &ResolutionError{Kind: HunkNotFound, Hunk: id}
	}

	resolution := res
	s.hunks[i].State = HunkState{Status: HunkResolved, Resolution: &resolution}
	s.resolutions[id] = res
	s.rederiveState()
	return nil
}

// ClearResolution removes a hunk's resolution, returning it to
// Unresolved. Legal in the same states as SetResolution.
func (s *MergeSession) ClearResolution(id HunkID) error {
	if !inResolutionState(s.state) {
		return &ResolutionError{
			Kind:   InvalidResolution,
			Hunk:   id,
			Reason: fmt.Sprintf("cannot clear resolution in state %s", s.state),
		}
	}
	i, ok := s.hunkIndex(id)
	if !ok {
		return &ResolutionError{Kind: HunkNotFound, Hunk: id}
	}

	s.hunks[i].State = HunkState{Status: HunkUnresolved}
	delete(s.resolutions, id)
	s.rederiveState()
	return nil
}

// rederiveState recomputes the session state after a resolution change.
// From Parsed/Active the session becomes FullyResolved once every hunk is
// resolved, else Active; from FullyResolved it falls back to Active if
// anything became unresolved.
func (s *MergeSession) rederiveState() {
	if s.IsFullyResolved() {
		s.state = FullyResolved
	} else {
		s.state = Active
	}
}

// render walks the segments in order, emitting clean text verbatim and
// the resolved content for each conflict segment, joined with \n. A
// trailing newline in the input is restored on the output so markerless
// content round-trips byte-for-byte.
func (s *MergeSession) render() (string, error) {
	parts := make([]string, 0, len(s.segments))
	for _, seg := range s.segments {
		switch seg.Kind {
		case SegmentClean:
			parts = append(parts, seg.Text)
		case SegmentConflict:
			hunk := &s.hunks[seg.Hunk]
			res, ok := s.resolutions[hunk.ID]
			if !ok {
				return "", &ApplyError{
					Kind:   InternalError,
					Reason: fmt.Sprintf("hunk %d referenced by segment has no resolution", hunk.ID),
				}
			}
			parts = append(parts, res.Content)
		}
	}
	out := strings.Join(parts, "\n")
	if strings.HasSuffix(s.input.Content, "\n") && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// Apply generates the merged output text. Legal only when the session is
// FullyResolved; on success the state becomes Applied and the text is
// returned. The text is not stored; Complete regenerates it.
func (s *MergeSession) Apply() (string, error) {
	if s.state != FullyResolved {
		return "", &ApplyError{Kind: NotFullyResolved}
	}
	out, err := s.render()
	if err != nil {
		return "", err
	}
	s.state = Applied
	return out, nil
}

// Validate checks that no resolved content still contains conflict
// markers. Legal only when the session is Applied; on success the state
// becomes Validated.
func (s *MergeSession) Validate() error {
	if s.state != Applied {
		return &ValidationError{Kind: UnresolvedHunks, Unresolved: s.UnresolvedHunks()}
	}

	affected := 0
	for i := range s.hunks {
		if s.hunks[i].State.Status != HunkResolved {
			continue
		}
		res := s.resolutions[s.hunks[i].ID]
		if containsMarkerLine(res.Content) {
			affected++
		}
	}
	if affected > 0 {
		return &ValidationError{Kind: MarkersRemain, Markers: affected}
	}

	s.state = Validated
	return nil
}

// containsMarkerLine reports whether any line of content starts with a
// start, separator, or end conflict marker.
func containsMarkerLine(content string) bool {
	for _, line := range splitLines(content) {
		if strings.HasPrefix(line, startMarker) ||
			strings.HasPrefix(line, separatorMarker) ||
			strings.HasPrefix(line, endMarker) {
			return true
		}
	}
	return false
}

// Complete regenerates the output, builds the summary, and consumes the
// session. Legal only when the session is Validated.
func (s *MergeSession) Complete() (*MergeResult, error) {
	if s.state != Validated {
		return nil, &CompletionError{Err: &LifecycleError{
			From:   s.state,
			To:     Completed,
			Reason: "complete requires a validated session",
		}}
	}

	content, err := s.render()
	if err != nil {
		return nil, &CompletionError{Err: err}
	}

	s.state = Completed
	return &MergeResult{
		Content:         content,
		UnresolvedHunks: nil,
		Warnings:        nil,
		Summary: MergeSummary{
			TotalHunks:    len(s.hunks),
			ResolvedHunks: len(s.resolutions),
		},
	}, nil
}
