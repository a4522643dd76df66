package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theayoodukoya/devclean-ai/internal/config"
	"github.com/theayoodukoya/devclean-ai/internal/deleter"
	"github.com/theayoodukoya/devclean-ai/internal/output"
	"github.com/theayoodukoya/devclean-ai/internal/store"
)

var quarantineFlagRestore string

var quarantineCmd = &cobra.Command{
	Use:   "quarantine",
	Short: "List or restore quarantined items",
	Long: `Quarantine lists the holding area that --quarantine cleans move items
into. With --restore <name>, the named item is moved back to its original
location (looked up from the deletion history).`,
	Args: cobra.NoArgs,
	RunE: runQuarantine,
}

func init() {
	quarantineCmd.Flags().StringVar(&quarantineFlagRestore, "restore", "", "Restore the named holding-area entry to its original path")

	rootCmd.AddCommand(quarantineCmd)
}

func runQuarantine(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if quarantineFlagRestore != "" {
		return restoreEntry(quarantineFlagRestore)
	}

	entries, err := deleter.ListQuarantine(cfg.QuarantineDir)
	if err != nil {
		return fmt.Errorf("listing quarantine: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println(output.StyleMuted.Render("Quarantine is empty."))
		return nil
	}

	fmt.Println(output.Section("Quarantine"))
	fmt.Println()
	tbl := output.NewTable("Moved", "Size", "Name")
	for _, entry := range entries {
		tbl.AddRow(
			entry.MovedAt.Format(time.DateOnly),
			output.HumanBytes(entry.SizeBytes),
			entry.Name,
		)
	}
	tbl.Print()
	return nil
}

// restoreEntry moves a holding-area entry back to the original path
// recorded when it was quarantined.
func restoreEntry(name string) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer func() { _ = db.Close() }()

	deletion, err := db.FindDeletionByDestination(name)
	if err != nil {
		return fmt.Errorf("looking up %s: %w", name, err)
	}
	if deletion == nil {
		return fmt.Errorf("no quarantined item named %s in the deletion history", name)
	}

	err = deleter.Restore(deleter.Item{
		Path:        deletion.Path,
		Status:      deleter.StatusMoved,
		Destination: deletion.Destination,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Restored %s\n", output.StyleBold.Render(deletion.Path))
	return nil
}
