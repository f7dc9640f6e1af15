package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/jcucci/weavr/internal/merge"
)

// Resolver turns provider suggestions into session resolutions, applying
// the configured confidence gate.
type Resolver struct {
	provider      Provider
	minConfidence int
}

// NewResolver wraps a provider. Suggestions below minConfidence are
// rejected rather than applied.
func NewResolver(provider Provider, minConfidence int) *Resolver {
	return &Resolver{provider: provider, minConfidence: minConfidence}
}

// ResolveHunk asks the provider for a suggestion and converts it into a
// resolution. Low-confidence or marker-bearing suggestions return an
// error; the caller decides whether to fall back to manual review.
func (r *Resolver) ResolveHunk(ctx context.Context, path string, hunk *merge.ConflictHunk) (merge.Resolution, error) {
	resp, err := r.provider.Suggest(ctx, NewRequest(path, hunk))
	if err != nil {
		return merge.Resolution{}, err
	}

	if resp.Confidence < r.minConfidence {
		return merge.Resolution{}, fmt.Errorf(
			"suggestion confidence %d below threshold %d", resp.Confidence, r.minConfidence)
	}
	if containsConflictMarkers(resp.Content) {
		return merge.Resolution{}, fmt.Errorf("suggestion still contains conflict markers")
	}

	return merge.NewAiSuggested(resp.Content, r.provider.Name(), resp.Confidence), nil
}

// ExplainHunk returns the provider's plain-text description of a hunk.
func (r *Resolver) ExplainHunk(ctx context.Context, path string, hunk *merge.ConflictHunk) (string, error) {
	return r.provider.Explain(ctx, NewRequest(path, hunk))
}

// ResolveAll suggests a resolution for every unresolved hunk, stopping at
// the first provider error. Gate failures are collected per hunk so one
// uncertain hunk does not block the rest.
func (r *Resolver) ResolveAll(ctx context.Context, session *merge.MergeSession) (resolved []merge.HunkID, skipped []merge.HunkID, err error) {
	for _, hunk := range session.Hunks() {
		if hunk.State.Status == merge.HunkResolved {
			continue
		}
		h := hunk
		res, rerr := r.ResolveHunk(ctx, session.Path(), &h)
		if rerr != nil {
			if ctx.Err() != nil {
				return resolved, skipped, ctx.Err()
			}
			skipped = append(skipped, h.ID)
			continue
		}
		if serr := session.SetResolution(h.ID, res); serr != nil {
			return resolved, skipped, serr
		}
		resolved = append(resolved, h.ID)
	}
	return resolved, skipped, nil
}

func containsConflictMarkers(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "<<<<<<<") ||
			strings.HasPrefix(line, "=======") ||
			strings.HasPrefix(line, ">>>>>>>") {
			return true
		}
	}
	return false
}
