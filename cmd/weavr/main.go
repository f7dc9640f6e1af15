package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcucci/weavr/internal/config"
	"github.com/jcucci/weavr/internal/logging"
)

var (
	// Version is set during build
	Version = "dev"
	// GitCommit is set during build
	GitCommit = "none"
	// BuildDate is set during build
	BuildDate = "unknown"

	// Logger instance, global within main for simplicity
	appLogger logging.Logger
)

// Exit codes. Unresolved conflicts are distinguished from hard errors so
// scripts can retry interactively.
const (
	exitSuccess    = 0
	exitUnresolved = 1
	exitError      = 2
)

var rootCmd = &cobra.Command{
	Use:   "weavr [flags] [file...]",
	Short: "A terminal-first merge conflict resolver",
	Long: `Weavr resolves git merge conflicts from your terminal.

Run it inside a repository with conflicts and it walks each conflicted
file hunk by hunk, or resolves everything automatically in headless mode.

Examples:
  weavr                                   Resolve all conflicted files interactively
  weavr src/main.go                       Resolve one file
  weavr --headless --strategy left        Take "ours" everywhere
  weavr --headless --strategy both --dedupe --dry-run
  weavr --list                            List conflicted files and exit`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		code := runWeavr(cmd, args)
		if code != exitSuccess {
			os.Exit(code)
		}
		return nil
	},
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().Bool("headless", false, "Resolve without the TUI, applying the strategy to every hunk")
	rootCmd.Flags().String("strategy", "", "Resolution strategy for headless mode: left, right, or both")
	rootCmd.Flags().Bool("dedupe", false, "Deduplicate identical lines when accepting both sides")
	rootCmd.Flags().Bool("trim-whitespace", false, "Compare lines with surrounding whitespace ignored when deduplicating")
	rootCmd.Flags().Bool("dry-run", false, "Print the merged result instead of writing the file")
	rootCmd.Flags().Bool("fail-on-ambiguous", false, "Exit non-zero if any hunk cannot be auto-resolved")
	rootCmd.Flags().Bool("list", false, "List conflicted files and exit")
	rootCmd.Flags().Bool("stage", false, "Stage each file after writing the resolved content")
	rootCmd.Flags().Bool("no-ai", false, "Disable AI suggestions even if configured")
	rootCmd.Flags().Bool("yes", false, "Skip the write confirmation prompt in interactive mode")

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to a file")
	rootCmd.PersistentFlags().String("log-file", "", "Path to the log file (default: ~/.weavr/weavr.log)")

	rootCmd.AddCommand(completionCmd())
}

// completionCmd generates shell completion scripts.
func completionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "completion [bash|zsh|fish]",
		Short:     "Generate shell completion scripts",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish"},
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				_ = cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				_ = cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				_ = cmd.Root().GenFishCompletion(os.Stdout, true)
			}
		},
	}
	return cmd
}

// initLogger sets up appLogger before anything else runs. Debug mode logs
// to a file; otherwise logging is a no-op.
func initLogger(cmd *cobra.Command, cfg *config.Config) error {
	debugFlag, _ := cmd.Flags().GetBool("debug")
	logFileFlag, _ := cmd.Flags().GetString("log-file")

	debug := debugFlag || cfg.Debug
	if !debug {
		appLogger = logging.NewNil()
		return nil
	}

	logPath := logFileFlag
	if logPath == "" {
		logPath = cfg.LogFile
	}
	if logPath == "" {
		var err error
		logPath, err = logging.DefaultLogFile()
		if err != nil {
			return err
		}
	}

	fileLogger, err := logging.NewFile(logPath)
	if err != nil {
		return fmt.Errorf("error creating file logger: %w", err)
	}
	appLogger = fileLogger
	appLogger.Log("--- weavr session start --- version: %s, commit: %s, built: %s", Version, GitCommit, BuildDate)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "weavr: %v\n", err)
		os.Exit(exitError)
	}
}
