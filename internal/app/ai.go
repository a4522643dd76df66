package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theayoodukoya/devclean-ai/internal/config"
	"github.com/theayoodukoya/devclean-ai/internal/output"
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Show external classifier status",
	Long: `AI reports whether the Gemini classifier is ready to use: whether a key
is present, which model is configured, and where cached judgments for
read-only roots land. The key itself is read from GEMINI_API_KEY in the
environment or a local .env file and is never stored by devclean.`,
	Args: cobra.NoArgs,
	RunE: runAIStatus,
}

func init() {
	rootCmd.AddCommand(aiCmd)
}

func runAIStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	key := os.Getenv("GEMINI_API_KEY")

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"key_present": key != "",
			"enabled":     cfg.AI.Enabled,
			"model":       cfg.AI.Model,
			"workers":     cfg.AI.Workers,
			"cache_dir":   config.ConfigDir(),
		})
	}

	fmt.Println(output.Section("AI Classifier"))
	fmt.Println()

	keyStatus := output.StyleError.Render("not set")
	if key != "" {
		keyStatus = output.StyleSuccess.Render("configured " + maskKey(key))
	}
	enabled := "off (pass --ai or set ai.enabled)"
	if cfg.AI.Enabled {
		enabled = "on for every scan"
	}

	fmt.Printf(" %s %s\n", output.StyleLabel.Render("GEMINI_API_KEY:"), keyStatus)
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Enabled:"), enabled)
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Model:"), cfg.AI.Model)
	fmt.Printf(" %s %d\n", output.StyleLabel.Render("Workers:"), cfg.AI.Workers)
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Cache fallback:"), config.ConfigDir())
	return nil
}

// maskKey shows just enough of a key to tell two apart.
func maskKey(key string) string {
	if len(key) <= 4 {
		return "(****)"
	}
	return "(…" + key[len(key)-4:] + ")"
}
