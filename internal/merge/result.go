package merge

// MergeWarning is a non-fatal note attached to a merge result.
type MergeWarning struct {
	Message string `json:"message"`
	// The hunk the warning refers to; negative when not hunk-specific.
	Hunk HunkID `json:"hunk"`
}

// MergeSummary holds per-file merge statistics.
type MergeSummary struct {
	TotalHunks    int `json:"total_hunks"`
	ResolvedHunks int `json:"resolved_hunks"`
}

// MergeResult is the final, immutable output of a completed merge session.
type MergeResult struct {
	// The merged file content.
	Content string `json:"content"`
	// Hunks that remain unresolved; always empty for a completed session.
	UnresolvedHunks []HunkID `json:"unresolved_hunks"`
	// Warnings generated during the merge. Reserved; currently always empty.
	Warnings []MergeWarning `json:"warnings"`
	// Statistics summary.
	Summary MergeSummary `json:"summary"`
}
