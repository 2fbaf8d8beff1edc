package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/sharpen/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "sharpen",
	Short: "Adaptive quiz trainer for anything you are studying",
	Long: "Sharpen quizzes you on a topic or a document, adapts question " +
		"difficulty to a per-topic rating, and writes you a study plan when " +
		"you are done.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Data directory (overrides SHARPEN_DATA env var)")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(ratingCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir returns the data directory using the --data flag
// (highest priority), then SHARPEN_DATA, then the default XDG path.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p, os.MkdirAll(p, 0o755)
	}
	return store.DefaultDataDir()
}
