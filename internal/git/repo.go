package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Operation is the conflict-producing git operation in progress.
type Operation int

const (
	// OpNone means no operation is in progress.
	OpNone Operation = iota
	OpMerge
	OpRebase
	OpCherryPick
	OpRevert
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OpMerge:
		return "merge"
	case OpRebase:
		return "rebase"
	case OpCherryPick:
		return "cherry-pick"
	case OpRevert:
		return "revert"
	default:
		return "none"
	}
}

// InProgress reports whether a conflict-producing operation is underway.
func (o Operation) InProgress() bool {
	return o != OpNone
}

// Repo is a handle to a git working tree.
type Repo struct {
	root string
}

// Discover finds the repository containing start by asking git for the
// toplevel directory.
func Discover(ctx context.Context, start string) (*Repo, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	cmd.Dir = start
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("not a git repository: %s", strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("failed to run git: %w", err)
	}
	return &Repo{root: strings.TrimSpace(string(out))}, nil
}

// Root returns the repository toplevel directory.
func (r *Repo) Root() string {
	return r.root
}

// ConflictedEntries lists unmerged paths with their conflict types.
func (r *Repo) ConflictedEntries(ctx context.Context) ([]ConflictEntry, error) {
	out, err := r.run(ctx, "status", "--porcelain=v1")
	if err != nil {
		return nil, err
	}
	return ParsePorcelainV1(out), nil
}

// ConflictedFiles lists unmerged paths.
func (r *Repo) ConflictedFiles(ctx context.Context) ([]string, error) {
	entries, err := r.ConflictedEntries(ctx)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths, nil
}

// StageFile marks a resolved file as staged.
func (r *Repo) StageFile(ctx context.Context, path string) error {
	_, err := r.run(ctx, "add", "--", path)
	return err
}

// CurrentOperation inspects .git state files to identify the operation
// in progress.
func (r *Repo) CurrentOperation() Operation {
	switch {
	case r.gitPathExists("MERGE_HEAD"):
		return OpMerge
	case r.gitPathExists("rebase-merge"), r.gitPathExists("rebase-apply"):
		return OpRebase
	case r.gitPathExists("CHERRY_PICK_HEAD"):
		return OpCherryPick
	case r.gitPathExists("REVERT_HEAD"):
		return OpRevert
	default:
		return OpNone
	}
}

func (r *Repo) gitPathExists(name string) bool {
	_, err := os.Stat(filepath.Join(r.root, ".git", name))
	return err == nil
}

// run executes git in the repository root and returns stdout.
func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.root
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s failed: %s", args[0], strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("failed to run git %s: %w", args[0], err)
	}
	return string(out), nil
}
