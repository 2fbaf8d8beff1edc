package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sharpen/internal/rating"
	"github.com/abhisek/sharpen/internal/store"
)

var ratingCmd = &cobra.Command{
	Use:   "rating",
	Short: "Inspect and reset per-topic ratings",
}

var ratingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every topic with a stored rating",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDataDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}

		topics := store.NewRatingStore(store.RatingsPath(dir)).Topics()
		if len(topics) == 0 {
			fmt.Println("No topics rated yet.")
			return nil
		}

		names := make([]string, 0, len(topics))
		for name := range topics {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Printf("%-40s  %8s  %s\n", "Topic", "Rating", "Tier")
		fmt.Println(strings.Repeat("─", 64))
		for _, name := range names {
			r := topics[name]
			tier, _ := rating.Classify(r)
			fmt.Printf("%-40s  %8.0f  %s\n", name, r, tier)
		}
		return nil
	},
}

var ratingResetCmd = &cobra.Command{
	Use:   "reset <topic>",
	Short: "Reset a topic back to the default rating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDataDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}

		rs := store.NewRatingStore(store.RatingsPath(dir))
		topics := rs.Topics()
		if _, ok := topics[args[0]]; !ok {
			return fmt.Errorf("no rating stored for topic %q", args[0])
		}

		if err := rs.Delete(args[0]); err != nil {
			return fmt.Errorf("reset topic: %w", err)
		}
		fmt.Printf("Reset %q to %.0f.\n", args[0], rating.Default)
		return nil
	},
}

func init() {
	ratingCmd.AddCommand(ratingListCmd)
	ratingCmd.AddCommand(ratingResetCmd)
}
