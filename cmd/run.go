package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/sharpen/internal/app"
	"github.com/abhisek/sharpen/internal/llm"
	"github.com/abhisek/sharpen/internal/quizgen"
	"github.com/abhisek/sharpen/internal/store"
)

// runApp opens the stores, builds the oracle, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dir, err := resolveDataDir(cmd)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	st, err := store.Open(store.DBPath(dir))
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	defer st.Close()

	deps := app.Deps{
		RatingStore: store.NewRatingStore(store.RatingsPath(dir)),
		Events:      st.EventRepo(),
	}

	// The app still opens without a provider; quizzing is disabled
	// with an explanation on the home screen.
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		deps.OracleErr = err
	} else {
		deps.Oracle = quizgen.New(provider, quizgen.DefaultConfig())
	}

	return app.Run(deps)
}
