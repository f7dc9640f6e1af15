// Package git detects conflicted files and repository state. It shells
// out to the git binary; the merge engine itself never sees any of this.
package git

import "strings"

// ConflictType classifies an unmerged path from porcelain status codes.
type ConflictType int

const (
	// BothModified is the common UU merge conflict.
	BothModified ConflictType = iota
	// BothAdded covers AA.
	BothAdded
	// BothDeleted covers DD.
	BothDeleted
	// AddedByUsDeletedByThem covers AU and UD.
	AddedByUsDeletedByThem
	// AddedByThemDeletedByUs covers UA and DU.
	AddedByThemDeletedByUs
)

// String returns the human-readable conflict description.
func (t ConflictType) String() string {
	switch t {
	case BothModified:
		return "both modified"
	case BothAdded:
		return "both added"
	case BothDeleted:
		return "both deleted"
	case AddedByUsDeletedByThem:
		return "added by us, deleted by them"
	case AddedByThemDeletedByUs:
		return "added by them, deleted by us"
	default:
		return "unknown"
	}
}

// ConflictEntry is one unmerged path from git status.
type ConflictEntry struct {
	Path string
	Type ConflictType
}

// ParsePorcelainV1 extracts unmerged paths from `git status
// --porcelain=v1` output. Lines for clean, modified, or untracked files
// are skipped, as are lines too short to carry a path.
func ParsePorcelainV1(output string) []ConflictEntry {
	var entries []ConflictEntry
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 4 {
			continue
		}
		conflictType, ok := unmergedType(line[0:2])
		if !ok {
			continue
		}
		entries = append(entries, ConflictEntry{
			Path: line[3:],
			Type: conflictType,
		})
	}
	return entries
}

// unmergedType maps a two-character porcelain XY code to a conflict type.
func unmergedType(xy string) (ConflictType, bool) {
	switch xy {
	case "UU":
		return BothModified, true
	case "AA":
		return BothAdded, true
	case "DD":
		return BothDeleted, true
	case "AU", "UD":
		return AddedByUsDeletedByThem, true
	case "UA", "DU":
		return AddedByThemDeletedByUs, true
	default:
		return 0, false
	}
}
