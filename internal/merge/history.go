package merge

// DefaultMaxDepth is the default maximum undo depth.
const DefaultMaxDepth = 100

// ActionKind discriminates the two recordable actions.
type ActionKind int

const (
	// ActionSet records a resolution being set or replaced.
	ActionSet ActionKind = iota
	// ActionClear records a resolution being removed.
	ActionClear
)

// Action is one reversible resolution change. The history never touches
// the session; the caller applies the inverse or forward effect itself and
// reports the action here.
type Action struct {
	Kind ActionKind
	Hunk HunkID
	// The previous resolution; nil if the hunk was unresolved before.
	Old *Resolution
	// The new resolution; nil for ActionClear.
	New *Resolution
}

// Description returns a short human-readable label for status messages.
func (a Action) Description() string {
	switch {
	case a.Kind == ActionClear:
		return "Clear resolution"
	case a.Old != nil:
		return "Change resolution"
	default:
		return "Set resolution"
	}
}

// ActionHistory tracks resolution changes as two bounded LIFO stacks:
// actions performed (undo) and actions undone (redo). Recording a new
// action discards everything redoable.
type ActionHistory struct {
	undo     []Action
	redo     []Action
	maxDepth int
}

// NewActionHistory creates an empty history with the default max depth.
func NewActionHistory() *ActionHistory {
	return NewActionHistoryWithDepth(DefaultMaxDepth)
}

// NewActionHistoryWithDepth creates an empty history with the given max
// depth.
func NewActionHistoryWithDepth(maxDepth int) *ActionHistory {
	return &ActionHistory{maxDepth: maxDepth}
}

// Record pushes an action onto the undo stack and clears the redo stack.
// If the undo stack exceeds the max depth, the oldest entry is evicted.
func (h *ActionHistory) Record(action Action) {
	h.redo = h.redo[:0]
	h.undo = append(h.undo, action)
	if len(h.undo) > h.maxDepth {
		h.undo = h.undo[1:]
	}
}

// Undo pops the most recent action onto the redo stack and returns it for
// the caller to apply in reverse (restore Old, or clear if Old is nil).
// Returns false if there is nothing to undo.
func (h *ActionHistory) Undo() (Action, bool) {
	if len(h.undo) == 0 {
		return Action{}, false
	}
	action := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, action)
	return action, true
}

// Redo pops the most recent undone action back onto the undo stack and
// returns it for the caller to replay forward (apply New). Returns false
// if there is nothing to redo.
func (h *ActionHistory) Redo() (Action, bool) {
	if len(h.redo) == 0 {
		return Action{}, false
	}
	action := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, action)
	return action, true
}

// CanUndo reports whether any action can be undone.
func (h *ActionHistory) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether any action can be redone.
func (h *ActionHistory) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoCount returns the number of undoable actions.
func (h *ActionHistory) UndoCount() int {
	return len(h.undo)
}

// RedoCount returns the number of redoable actions.
func (h *ActionHistory) RedoCount() int {
	return len(h.redo)
}

// Clear empties both stacks.
func (h *ActionHistory) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}

// MaxDepth returns the configured maximum undo depth.
func (h *ActionHistory) MaxDepth() int {
	return h.maxDepth
}
