package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jcucci/weavr/internal/ai"
	"github.com/jcucci/weavr/internal/config"
	"github.com/jcucci/weavr/internal/fileops"
	"github.com/jcucci/weavr/internal/git"
	"github.com/jcucci/weavr/internal/merge"
	"github.com/jcucci/weavr/internal/ui"
)

// runWeavr is the root command body. It returns a process exit code.
func runWeavr(cmd *cobra.Command, args []string) int {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "weavr: %v\n", err)
		return exitError
	}

	if err := initLogger(cmd, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "weavr: %v\n", err)
		return exitError
	}
	defer func() {
		if appLogger != nil {
			_ = appLogger.Close()
		}
	}()

	applyFlagOverrides(cmd, cfg)

	listFlag, _ := cmd.Flags().GetBool("list")
	if listFlag {
		return listConflictedFiles(ctx)
	}

	files, code := resolveFiles(ctx, args)
	if code != exitSuccess {
		return code
	}

	headless, _ := cmd.Flags().GetBool("headless")
	if headless {
		return runHeadless(cmd, cfg, files)
	}
	return runInteractive(ctx, cmd, cfg, files)
}

// applyFlagOverrides layers CLI flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if strategy, _ := cmd.Flags().GetString("strategy"); strategy != "" {
		cfg.Merge.DefaultStrategy = strategy
	}
	if dedupe, _ := cmd.Flags().GetBool("dedupe"); dedupe {
		cfg.Merge.Deduplicate = true
	}
	if trim, _ := cmd.Flags().GetBool("trim-whitespace"); trim {
		cfg.Merge.TrimWhitespace = true
	}
	if noAI, _ := cmd.Flags().GetBool("no-ai"); noAI {
		cfg.AI.Enabled = false
	}
}

// listConflictedFiles prints unmerged paths with their conflict types.
func listConflictedFiles(ctx context.Context) int {
	repo, err := git.Discover(ctx, ".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "weavr: %v\n", err)
		return exitError
	}
	entries, err := repo.ConflictedEntries(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "weavr: %v\n", err)
		return exitError
	}
	if len(entries) == 0 {
		fmt.Println("No conflicted files found")
		return exitSuccess
	}
	for _, e := range entries {
		fmt.Printf("%s (%s)\n", e.Path, e.Type)
	}
	return exitSuccess
}

// resolveFiles decides which files to process: explicit arguments are
// filtered to those with markers, otherwise git discovery is used.
func resolveFiles(ctx context.Context, args []string) ([]string, int) {
	if len(args) == 0 {
		repo, err := git.Discover(ctx, ".")
		if err != nil {
			fmt.Fprintf(os.Stderr, "weavr: %v\n", err)
			return nil, exitError
		}
		files, err := repo.ConflictedFiles(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "weavr: %v\n", err)
			return nil, exitError
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "weavr: no conflicted files found")
			return nil, exitError
		}
		// Paths from git are relative to the repository root.
		for i, f := range files {
			files[i] = filepath.Join(repo.Root(), f)
		}
		return files, exitSuccess
	}

	var valid []string
	for _, path := range args {
		f, err := fileops.Read(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "weavr: %v\n", err)
			return nil, exitError
		}
		if hasConflictMarkers(f.Content) {
			valid = append(valid, path)
		} else {
			appLogger.Log("skipping %s: no conflict markers", path)
		}
	}
	if len(valid) == 0 {
		fmt.Fprintln(os.Stderr, "weavr: no conflicted files found")
		return nil, exitError
	}
	return valid, exitSuccess
}

// hasConflictMarkers is a cheap pre-check before parsing.
func hasConflictMarkers(content string) bool {
	return strings.Contains(content, "<<<<<<<") &&
		strings.Contains(content, "=======") &&
		strings.Contains(content, ">>>>>>>")
}

// headlessResult is the outcome for one file in headless mode.
type headlessResult struct {
	file          *fileops.ConflictedFile
	hunksResolved int
	output        string
}

// runHeadless applies the default strategy to every hunk of every file.
func runHeadless(cmd *cobra.Command, cfg *config.Config, files []string) int {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	failOnAmbiguous, _ := cmd.Flags().GetBool("fail-on-ambiguous")

	if cfg.Merge.DefaultStrategy == "manual" {
		fmt.Fprintln(os.Stderr, "weavr: headless mode needs --strategy left, right, or both")
		return exitError
	}

	for _, path := range files {
		result, err := processHeadless(path, cfg.Merge)
		if err != nil {
			fmt.Fprintf(os.Stderr, "weavr: %s: %v\n", path, err)
			if failOnAmbiguous {
				return exitUnresolved
			}
			continue
		}
		if dryRun {
			fmt.Printf("=== %s ===\n", result.file.Path)
			fmt.Print(result.output)
		} else {
			if err := result.file.WriteResolved(result.output); err != nil {
				fmt.Fprintf(os.Stderr, "weavr: %v\n", err)
				return exitError
			}
			fmt.Printf("%s: %d hunks resolved\n", result.file.Path, result.hunksResolved)
		}
	}
	return exitSuccess
}

// processHeadless resolves one file with the configured strategy and runs
// the full apply/validate/complete pipeline.
func processHeadless(path string, opts config.MergeOptions) (*headlessResult, error) {
	f, err := fileops.Read(path)
	if err != nil {
		return nil, err
	}

	session, err := merge.FromConflicted(f.Content, path)
	if err != nil {
		return nil, err
	}

	if len(session.Hunks()) == 0 {
		return &headlessResult{file: f, output: f.Content}, nil
	}

	for _, hunk := range session.Hunks() {
		h := hunk
		var res merge.Resolution
		switch opts.DefaultStrategy {
		case "left":
			res = merge.NewAcceptLeft(&h)
		case "right":
			res = merge.NewAcceptRight(&h)
		case "both":
			res = merge.NewAcceptBoth(&h, merge.BothOptions{
				Order:          merge.LeftThenRight,
				Deduplicate:    opts.Deduplicate,
				TrimWhitespace: opts.TrimWhitespace,
			})
		default:
			return nil, fmt.Errorf("unknown strategy %q", opts.DefaultStrategy)
		}
		if err := session.SetResolution(h.ID, res); err != nil {
			return nil, err
		}
	}

	if _, err := session.Apply(); err != nil {
		return nil, err
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}
	result, err := session.Complete()
	if err != nil {
		return nil, err
	}

	return &headlessResult{
		file:          f,
		hunksResolved: result.Summary.ResolvedHunks,
		output:        result.Content,
	}, nil
}

// runInteractive walks each file through the resolve screen.
func runInteractive(ctx context.Context, cmd *cobra.Command, cfg *config.Config, files []string) int {
	stage, _ := cmd.Flags().GetBool("stage")
	skipConfirm, _ := cmd.Flags().GetBool("yes")

	resolver := buildResolver(cfg)

	var repo *git.Repo
	if stage {
		r, err := git.Discover(ctx, ".")
		if err != nil {
			fmt.Fprintf(os.Stderr, "weavr: --stage requires a git repository: %v\n", err)
			return exitError
		}
		repo = r
	}

	anyUnresolved := false
	for _, path := range files {
		f, err := fileops.Read(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "weavr: %v\n", err)
			return exitError
		}
		session, err := merge.FromConflicted(f.Content, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "weavr: %s: %v\n", path, err)
			return exitError
		}

		total := len(session.Hunks())
		if total == 0 {
			appLogger.Log("skipping %s: clean", path)
			continue
		}

		final, err := ui.Run(session, resolver, appLogger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "weavr: %v\n", err)
			return exitError
		}
		if !final.Finished {
			unresolved := len(session.UnresolvedHunks())
			fmt.Fprintf(os.Stderr, "%s: exited with %d/%d hunks unresolved\n", path, unresolved, total)
			anyUnresolved = true
			continue
		}

		result, err := session.Complete()
		if err != nil {
			fmt.Fprintf(os.Stderr, "weavr: %s: %v\n", path, err)
			return exitError
		}

		if !skipConfirm {
			ok, err := ui.ConfirmWrite(path, total)
			if err != nil {
				fmt.Fprintf(os.Stderr, "weavr: %v\n", err)
				return exitError
			}
			if !ok {
				fmt.Fprintf(os.Stderr, "%s: not written\n", path)
				anyUnresolved = true
				continue
			}
		}

		if err := f.WriteResolved(result.Content); err != nil {
			fmt.Fprintf(os.Stderr, "weavr: %v\n", err)
			return exitError
		}
		fmt.Printf("%s: %d hunks resolved\n", path, result.Summary.ResolvedHunks)

		if repo != nil {
			if err := repo.StageFile(ctx, path); err != nil {
				fmt.Fprintf(os.Stderr, "weavr: failed to stage %s: %v\n", path, err)
				return exitError
			}
		}
	}

	if anyUnresolved {
		return exitUnresolved
	}
	return exitSuccess
}

// buildResolver wires the AI provider if it is enabled and configured.
func buildResolver(cfg *config.Config) *ai.Resolver {
	if !cfg.AI.Enabled {
		return nil
	}
	provider, err := ai.NewProvider(cfg.AI, appLogger)
	if err != nil {
		appLogger.Log("ai disabled: %v", err)
		fmt.Fprintf(os.Stderr, "weavr: AI suggestions disabled: %v\n", err)
		return nil
	}
	return ai.NewResolver(provider, cfg.AI.MinConfidence)
}
