package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/theayoodukoya/devclean-ai/internal/config"
	"github.com/theayoodukoya/devclean-ai/internal/output"
	"github.com/theayoodukoya/devclean-ai/internal/risk"
	"github.com/theayoodukoya/devclean-ai/internal/scanner"
	"github.com/theayoodukoya/devclean-ai/internal/store"
)

var (
	feedbackFlagVote string
	feedbackFlagList bool
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback [path]",
	Short: "Vote on an assessment to tune future judgment",
	Long: `Feedback records whether you agreed with a project's assessment. The
project is re-scored on the spot so the vote is stored against the
current heuristic verdict. Votes are kept locally and surfaced alongside
history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFeedback,
}

func init() {
	feedbackCmd.Flags().StringVar(&feedbackFlagVote, "vote", "", "Your verdict: keep or burn")
	feedbackCmd.Flags().BoolVar(&feedbackFlagList, "list", false, "List recorded votes")

	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer func() { _ = db.Close() }()

	if feedbackFlagList {
		return listFeedback(db)
	}

	if len(args) == 0 {
		return fmt.Errorf("a project path is required (or use --list)")
	}
	if feedbackFlagVote != "keep" && feedbackFlagVote != "burn" {
		return fmt.Errorf("--vote must be keep or burn")
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	ctx := cmd.Context()
	metas, _, err := scanner.Scan(ctx, path, scanner.Options{}, nil)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", path, err)
	}

	var meta *scanner.ProjectMeta
	for i := range metas {
		if metas[i].Path == path {
			meta = &metas[i]
			break
		}
	}
	if meta == nil {
		return fmt.Errorf("no project manifest found at %s", path)
	}

	assessment := risk.EvaluateHeuristic(*meta)
	if err := db.InsertFeedback(&store.Feedback{
		Path:  meta.Path,
		Name:  meta.Name,
		Score: assessment.Score,
		Class: string(assessment.Class),
		Vote:  feedbackFlagVote,
	}); err != nil {
		return fmt.Errorf("recording feedback: %w", err)
	}

	fmt.Printf("Recorded %s vote for %s (scored %d, %s)\n",
		output.StyleBold.Render(feedbackFlagVote), meta.Name, assessment.Score, assessment.Class)
	return nil
}

func listFeedback(db *store.DB) error {
	feedback, err := db.ListFeedback()
	if err != nil {
		return fmt.Errorf("listing feedback: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(feedback)
	}

	if len(feedback) == 0 {
		fmt.Println(output.StyleMuted.Render("No feedback recorded."))
		return nil
	}

	fmt.Println(output.Section("Feedback"))
	fmt.Println()
	tbl := output.NewTable("When", "Vote", "Score", "Class", "Project")
	for _, f := range feedback {
		tbl.AddRow(
			f.CreatedAt.Format(time.DateOnly),
			f.Vote,
			fmt.Sprintf("%d", f.Score),
			f.Class,
			f.Name,
		)
	}
	tbl.Print()
	return nil
}
