package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theayoodukoya/devclean-ai/internal/config"
	"github.com/theayoodukoya/devclean-ai/internal/output"
	"github.com/theayoodukoya/devclean-ai/internal/store"
)

var historyFlagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past scans and deletions",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyFlagLimit, "limit", 10, "Number of entries to show per section")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer func() { _ = db.Close() }()

	scans, err := db.GetRecentScans(historyFlagLimit)
	if err != nil {
		return fmt.Errorf("loading scans: %w", err)
	}
	deletions, err := db.GetRecentDeletions(historyFlagLimit)
	if err != nil {
		return fmt.Errorf("loading deletions: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"scans":     scans,
			"deletions": deletions,
		})
	}

	fmt.Println(output.Section("Recent Scans"))
	fmt.Println()
	if len(scans) == 0 {
		fmt.Println(output.StyleMuted.Render(" No scans recorded."))
	} else {
		tbl := output.NewTable("When", "Root", "Projects", "Total Size")
		for _, s := range scans {
			tbl.AddRow(
				s.TakenAt.Format(time.DateOnly),
				s.Root,
				fmt.Sprintf("%d", s.ProjectCount),
				output.HumanBytes(s.TotalBytes),
			)
		}
		tbl.Print()
	}

	fmt.Println(output.Section("Recent Deletions"))
	fmt.Println()
	if len(deletions) == 0 {
		fmt.Println(output.StyleMuted.Render(" No deletions recorded."))
		return nil
	}
	tbl := output.NewTable("When", "Status", "Size", "Path")
	for _, d := range deletions {
		tbl.AddRow(
			d.ExecutedAt.Format(time.DateOnly),
			d.Status,
			output.HumanBytes(d.SizeBytes),
			d.Path,
		)
	}
	tbl.Print()
	return nil
}
