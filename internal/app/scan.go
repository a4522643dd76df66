package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theayoodukoya/devclean-ai/internal/ai"
	"github.com/theayoodukoya/devclean-ai/internal/assess"
	"github.com/theayoodukoya/devclean-ai/internal/config"
	"github.com/theayoodukoya/devclean-ai/internal/output"
	"github.com/theayoodukoya/devclean-ai/internal/scanner"
	"github.com/theayoodukoya/devclean-ai/internal/store"
)

var (
	scanFlagAll      bool
	scanFlagCaches   bool
	scanFlagAI       bool
	scanFlagJSON     bool
	scanFlagSort     string
	scanFlagMaxScore int
)

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Discover projects and score deletion risk",
	Long: `Scan walks the given root (default: the configured scan root) looking
for package.json manifests, extracts per-project facts, and scores how
safe each project is to delete on a 0-10 scale.

With --ai each project is also judged by Gemini (GEMINI_API_KEY must be
set); judgments are cached per manifest fingerprint so unchanged projects
are never re-sent.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanFlagAll, "all", false, "Scan the whole volume (adds system directories to the skip list)")
	scanCmd.Flags().BoolVar(&scanFlagCaches, "caches", false, "Include npm/yarn/pnpm cache directories")
	scanCmd.Flags().BoolVar(&scanFlagAI, "ai", false, "Merge a Gemini judgment into each score")
	scanCmd.Flags().BoolVar(&scanFlagJSON, "json", false, "Output as JSON")
	scanCmd.Flags().StringVar(&scanFlagSort, "sort", "size", "Sort by: size, score, name, age")
	scanCmd.Flags().IntVar(&scanFlagMaxScore, "max-score", 10, "Only show projects with score <= this value")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	root := cfg.ScanRoot
	if len(args) > 0 {
		root = args[0]
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var classifier assess.Classifier
	if scanFlagAI || cfg.AI.Enabled {
		if os.Getenv("GEMINI_API_KEY") == "" {
			return fmt.Errorf("GEMINI_API_KEY is not set; add it to the environment or a .env file, or drop --ai")
		}
		gemini, err := ai.NewGemini(ctx, os.Getenv("GEMINI_API_KEY"), cfg.AI.Model)
		if err != nil {
			return fmt.Errorf("initializing classifier: %w", err)
		}
		classifier = gemini
	}

	progress := output.NewProgressLine()
	metas, stats, err := scanner.Scan(ctx, root, scanner.Options{
		ScanAll:       scanFlagAll,
		IncludeCaches: scanFlagCaches,
		Workers:       cfg.Workers,
	}, func(p scanner.Progress) {
		progress.Update(p.FoundCount, p.ScannedCount, p.TotalCount, p.CurrentPath)
	})
	progress.Done()
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	assessor := &assess.Assessor{
		Classifier: classifier,
		ConfigDir:  config.ConfigDir(),
		Workers:    cfg.AI.Workers,
	}
	records, aiStats := assessor.AssessAll(ctx, root, metas)

	var results []assess.Record
	for _, r := range records {
		if r.Risk.Score <= scanFlagMaxScore {
			results = append(results, r)
		}
	}
	sortRecords(results, scanFlagSort)

	recordScanSnapshot(root, results)

	if scanFlagJSON || flagJSON {
		return renderScanJSON(results)
	}
	renderScanTable(results)
	renderScanSummary(results, stats, classifier != nil, aiStats)
	return nil
}

func sortRecords(records []assess.Record, sortBy string) {
	sort.SliceStable(records, func(i, j int) bool {
		switch sortBy {
		case "score":
			return records[i].Risk.Score < records[j].Risk.Score
		case "name":
			return strings.ToLower(records[i].Meta.Name) < strings.ToLower(records[j].Meta.Name)
		case "age":
			return records[i].Meta.LastModifiedDays > records[j].Meta.LastModifiedDays
		default: // "size"
			return records[i].Meta.SizeBytes > records[j].Meta.SizeBytes
		}
	})
}

func renderScanJSON(records []assess.Record) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func renderScanTable(records []assess.Record) {
	fmt.Println(output.Section("Deletion Risk Scan"))
	fmt.Println()

	tbl := output.NewTable("Risk", "Class", "Size", "Age", "Project")

	for _, r := range records {
		class := string(r.Risk.Class)
		switch r.Risk.Class {
		case "Critical":
			class = output.StyleError.Render(class)
		case "Active":
			class = output.StyleWarning.Render(class)
		default:
			class = output.StyleSuccess.Render(class)
		}

		tbl.AddRow(
			output.RiskBar(r.Risk.Score, 10),
			class,
			output.HumanBytes(r.Meta.SizeBytes),
			fmt.Sprintf("%dd", r.Meta.LastModifiedDays),
			r.Meta.Name,
		)
	}

	tbl.Print()
}

func renderScanSummary(records []assess.Record, stats scanner.Stats, aiEnabled bool, aiStats assess.Stats) {
	if len(records) == 0 {
		fmt.Println(output.StyleMuted.Render("\n No projects found."))
		return
	}

	var totalBytes, burnerBytes int64
	burners := 0
	for _, r := range records {
		totalBytes += r.Meta.SizeBytes
		if r.Risk.Class == "Burner" {
			burners++
			burnerBytes += r.Meta.SizeBytes
		}
	}

	fmt.Println(output.Section("Summary"))
	fmt.Println()
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Projects found:"),
		output.StyleValue.Render(fmt.Sprintf("%d", len(records))))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Total size:"),
		output.StyleValue.Render(output.HumanBytes(totalBytes)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Burner projects:"),
		output.StyleValue.Render(fmt.Sprintf("%d", burners)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Reclaimable (burners):"),
		output.StyleValue.Render(output.HumanBytes(burnerBytes)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Entries walked:"),
		output.StyleValue.Render(fmt.Sprintf("%d (%d skipped)", stats.TotalEntries, stats.SkippedEntries)))
	if aiEnabled {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("AI cache:"),
			output.StyleValue.Render(fmt.Sprintf("%d hit / %d miss / %d calls",
				aiStats.CacheHits, aiStats.CacheMisses, aiStats.Calls)))
	}
	fmt.Println()
}

// recordScanSnapshot persists the scan to the history store. Best effort:
// a store failure never fails the scan.
func recordScanSnapshot(root string, records []assess.Record) {
	db, err := store.Open(config.DBPath())
	if err != nil {
		verbosef("history store unavailable: %v", err)
		return
	}
	defer func() { _ = db.Close() }()

	var totalBytes int64
	for _, r := range records {
		totalBytes += r.Meta.SizeBytes
	}

	scanID, err := db.CreateScan(&store.Scan{
		Root:          root,
		ScanAll:       scanFlagAll,
		IncludeCaches: scanFlagCaches,
		ProjectCount:  len(records),
		TotalBytes:    totalBytes,
		Version:       appVersion,
	})
	if err != nil {
		verbosef("recording scan: %v", err)
		return
	}

	for _, r := range records {
		if err := db.InsertProjectRisk(&store.ProjectRisk{
			ScanID:           scanID,
			Path:             r.Meta.Path,
			Name:             r.Meta.Name,
			Score:            r.Risk.Score,
			Class:            string(r.Risk.Class),
			Source:           string(r.Risk.Source),
			SizeBytes:        r.Meta.SizeBytes,
			LastModifiedDays: r.Meta.LastModifiedDays,
		}); err != nil {
			verbosef("recording project risk: %v", err)
			return
		}
	}
}
