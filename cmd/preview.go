package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/sharpen/internal/content"
	"github.com/abhisek/sharpen/internal/llm"
	"github.com/abhisek/sharpen/internal/quizgen"
	"github.com/abhisek/sharpen/internal/rating"
	"github.com/abhisek/sharpen/internal/store"
)

var previewCmd = &cobra.Command{
	Use:   "preview <topic-or-file>",
	Short: "Generate one question for a topic without starting a quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dir, err := resolveDataDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}

		material, err := loadMaterial(args[0])
		if err != nil {
			var partial *content.ExtractError
			if !errors.As(err, &partial) || !partial.Partial {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", partial)
		}
		if material.Empty() {
			return fmt.Errorf("no usable content in %q", args[0])
		}

		provider, err := llm.NewProviderFromEnv(ctx, nil)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}
		oracle := quizgen.New(provider, quizgen.DefaultConfig())

		r := store.NewRatingStore(store.RatingsPath(dir)).Get(material.Key)
		tier, _ := rating.Classify(r)

		question, err := oracle.Generate(ctx, quizgen.GenerateInput{
			Context: material.Text,
			Rating:  r,
			Tier:    tier,
		})
		if err != nil {
			return fmt.Errorf("generate question: %w", err)
		}

		fmt.Printf("Topic:      %s (rating %.0f, %s)\n", material.Key, r, tier)
		fmt.Printf("Kind:       %s\n", question.Kind)
		fmt.Printf("Difficulty: %.0f\n\n", question.DifficultyEstimate)
		fmt.Println(question.Prompt)
		if question.Kind == quizgen.KindMultipleChoice {
			fmt.Println()
			for i, opt := range question.Options {
				fmt.Printf("  %c) %s\n", 'A'+i, opt)
			}
		}
		if showAnswers, _ := cmd.Flags().GetBool("answers"); showAnswers {
			fmt.Println()
			if question.AnswerKey != "" {
				fmt.Printf("Answer: %s\n", question.AnswerKey)
			}
			if question.Hint != "" {
				fmt.Printf("Hint:   %s\n", question.Hint)
			}
		}
		return nil
	},
}

// loadMaterial interprets the argument as a file path when such a file
// exists, otherwise as a free-form topic.
func loadMaterial(input string) (content.Material, error) {
	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		return content.FromFile(input)
	}
	return content.FromTopic(input), nil
}

func init() {
	previewCmd.Flags().Bool("answers", false, "Also print the answer key and hint")
}
