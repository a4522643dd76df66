package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theayoodukoya/devclean-ai/internal/config"
	"github.com/theayoodukoya/devclean-ai/internal/deleter"
	"github.com/theayoodukoya/devclean-ai/internal/output"
	"github.com/theayoodukoya/devclean-ai/internal/store"
)

var (
	cleanFlagDepsOnly   bool
	cleanFlagDryRun     bool
	cleanFlagQuarantine bool
	cleanFlagYes        bool
	cleanFlagExport     string
)

var cleanCmd = &cobra.Command{
	Use:   "clean <path>...",
	Short: "Delete or quarantine selected projects",
	Long: `Clean builds a removal plan for the given project paths and executes
it. With --deps-only, only node_modules and .cache subdirectories are
removed, never the project root. With --quarantine, targets are moved to
a recoverable holding area instead of being deleted.

Execution requires --yes; without it (or with --dry-run) the plan is
printed and nothing is touched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanFlagDepsOnly, "deps-only", false, "Only remove dependency/build-cache subdirectories")
	cleanCmd.Flags().BoolVar(&cleanFlagDryRun, "dry-run", false, "Plan without touching the filesystem")
	cleanCmd.Flags().BoolVar(&cleanFlagQuarantine, "quarantine", false, "Move targets to the quarantine holding area instead of deleting")
	cleanCmd.Flags().BoolVar(&cleanFlagYes, "yes", false, "Confirm destructive execution")
	cleanCmd.Flags().StringVar(&cleanFlagExport, "export", "", "Write the plan as JSON to this file")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Obtaining explicit confirmation is this command's job, not the
	// deletion engine's: without --yes every run is forced to a dry run.
	dryRun := cleanFlagDryRun || !cleanFlagYes

	targets := make([]deleter.Target, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			abs = arg
		}
		targets = append(targets, deleter.Target{Path: abs})
	}

	opts := deleter.Options{
		DepsOnly:      cleanFlagDepsOnly,
		DryRun:        dryRun,
		Quarantine:    cleanFlagQuarantine,
		QuarantineDir: cfg.QuarantineDir,
	}

	plan := deleter.BuildPlan(targets, opts)
	if len(plan) == 0 {
		fmt.Println(output.StyleMuted.Render("Nothing to delete."))
		return nil
	}

	if cleanFlagExport != "" {
		if err := exportPlan(cleanFlagExport, plan); err != nil {
			return fmt.Errorf("exporting plan: %w", err)
		}
	}

	result, err := deleter.Execute(plan, opts)
	if err != nil {
		return fmt.Errorf("executing plan: %w", err)
	}

	if !dryRun {
		recordDeletions(result)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	renderCleanResult(result, dryRun)
	if dryRun && !cleanFlagDryRun {
		fmt.Println(output.StyleWarning.Render("\n Plan only: re-run with --yes to execute."))
	}
	return nil
}

func exportPlan(path string, plan []deleter.Item) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func renderCleanResult(result deleter.Result, dryRun bool) {
	title := "Deletion Result"
	if dryRun {
		title = "Deletion Plan (dry run)"
	}
	fmt.Println(output.Section(title))
	fmt.Println()

	tbl := output.NewTable("Status", "Size", "Action", "Path")
	var planned int64
	for _, item := range result.Items {
		status := item.Status
		switch {
		case strings.HasPrefix(status, "error:"):
			status = output.StyleError.Render(status)
		case status == deleter.StatusDeleted || status == deleter.StatusMoved:
			status = output.StyleSuccess.Render(status)
		default:
			status = output.StyleMuted.Render(status)
		}
		planned += item.SizeBytes
		tbl.AddRow(status, output.HumanBytes(item.SizeBytes), item.Action, item.Path)
	}
	tbl.Print()

	fmt.Println()
	if dryRun {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Would reclaim:"),
			output.StyleValue.Render(output.HumanBytes(planned)))
		return
	}
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Removed:"),
		output.StyleValue.Render(fmt.Sprintf("%d items", result.RemovedCount)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Reclaimed:"),
		output.StyleValue.Render(output.HumanBytes(result.ReclaimedBytes)))
}

// recordDeletions audits executed items in the history store. Best effort.
func recordDeletions(result deleter.Result) {
	db, err := store.Open(config.DBPath())
	if err != nil {
		verbosef("history store unavailable: %v", err)
		return
	}
	defer func() { _ = db.Close() }()

	for _, item := range result.Items {
		if err := db.InsertDeletion(&store.Deletion{
			Path:        item.Path,
			SizeBytes:   item.SizeBytes,
			Action:      item.Action,
			Status:      item.Status,
			Destination: item.Destination,
		}); err != nil {
			verbosef("recording deletion: %v", err)
			return
		}
	}
}
