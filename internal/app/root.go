// Package app contains the Cobra command tree for devclean.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theayoodukoya/devclean-ai/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "devclean",
	Short: "Find and safely delete stale development projects",
	Long: `devclean scans for local development projects, scores how safe each is
to delete (optionally merging a Gemini judgment with the built-in
heuristics), and removes or quarantines the ones you select.

Nothing is ever deleted without --yes; use --dry-run to preview plans.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.SetNoColor(flagNoColor)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("devclean", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  scan        Discover projects and score deletion risk")
		fmt.Println("  ai          Show external classifier status")
		fmt.Println("  clean       Delete or quarantine selected projects")
		fmt.Println("  quarantine  List or restore quarantined items")
		fmt.Println("  feedback    Vote on an assessment to tune future judgment")
		fmt.Println("  history     Show past scans and deletions")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/devclean/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}

// verbosef prints to stderr only when --verbose is set. Used for
// best-effort failures (history store, cache persistence) that must not
// fail the command.
func verbosef(format string, args ...any) {
	if flagVerbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
