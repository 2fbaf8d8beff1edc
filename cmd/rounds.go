package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sharpen/internal/store"
)

var roundsCmd = &cobra.Command{
	Use:   "rounds",
	Short: "Show recently played quiz rounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		topic, _ := cmd.Flags().GetString("topic")

		dir, err := resolveDataDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}

		st, err := store.Open(store.DBPath(dir))
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer st.Close()

		rounds, err := st.EventRepo().RecentRounds(context.Background(), topic, limit)
		if err != nil {
			return fmt.Errorf("query rounds: %w", err)
		}

		if len(rounds) == 0 {
			fmt.Println("No rounds played yet.")
			return nil
		}

		fmt.Printf("%-19s  %-20s  %-40s  %-3s  %5s  %7s\n",
			"Timestamp", "Topic", "Question", "OK", "Pts", "Rating")
		fmt.Println(strings.Repeat("─", 104))

		for _, r := range rounds {
			ok := "✗"
			if r.Correct {
				ok = "✓"
			}
			if r.TimedOut {
				ok = "⏱"
			}
			fmt.Printf("%-19s  %-20s  %-40s  %-3s  %5d  %7.0f\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				clip(r.Topic, 20),
				clip(r.Question, 40),
				ok,
				r.ScoreGained,
				r.RatingAfter,
			)
		}
		return nil
	},
}

// clip caps s at n runes so multi-byte text never splits mid-character.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func init() {
	roundsCmd.Flags().IntP("limit", "n", 20, "Number of rounds to show")
	roundsCmd.Flags().StringP("topic", "t", "", "Filter by topic")
}
