package quizgen

import "github.com/abhisek/sharpen/internal/rating"

// Kind describes how the learner answers a question.
type Kind string

const (
	// KindMultipleChoice means the learner picks from 4 options.
	KindMultipleChoice Kind = "multiple_choice"

	// KindOpenAnalysis means the learner writes a free-form solution,
	// argument, or analysis.
	KindOpenAnalysis Kind = "open_analysis"
)

// Question represents a generated quiz question ready for display.
type Question struct {
	// Kind indicates how the learner answers this question.
	Kind Kind

	// Prompt is the question text displayed to the learner.
	Prompt string

	// Options is populated only when Kind is KindMultipleChoice.
	// Contains exactly 4 options, one of which matches AnswerKey.
	Options []string

	// AnswerKey is the text of the correct option. Only meaningful for
	// multiple choice; kept for reference, the grader does the scoring.
	AnswerKey string

	// Hint is a conceptual nudge the learner can reveal at a score cost.
	Hint string

	// DifficultyEstimate is the question's self-assessed difficulty on
	// the rating scale. Used as the opponent rating when updating Elo.
	// Zero means absent; callers fall back to the tier's representative
	// rating.
	DifficultyEstimate float64
}

// GradeResult is the grader's verdict on a submitted answer.
type GradeResult struct {
	// Correct is the overall verdict. A ScorePercent above 70 forces
	// this true downstream regardless of the grader's own boolean.
	Correct bool

	// ScorePercent is the 0-100 quality score for the answer.
	ScorePercent int

	// Explanation is feedback on the learner's reasoning.
	Explanation string

	// ModelAnswer is the ideal step-by-step solution or analysis.
	ModelAnswer string

	// MissedConcepts lists concept labels the answer failed to cover.
	// May be empty.
	MissedConcepts []string
}

// RoundSummary is the view of a completed round passed back into
// prompts for anti-repetition and report generation.
type RoundSummary struct {
	Prompt       string
	Answer       string
	Correct      bool
	ScorePercent int
}

// GenerateInput holds all context needed to generate a question.
type GenerateInput struct {
	// Context is the raw study material (topic string or extracted file
	// text). Truncated to the configured cap before prompting.
	Context string

	// Rating is the learner's current Elo rating for this material.
	Rating float64

	// Tier is the difficulty tier classified from Rating.
	Tier rating.Tier

	// History contains the rounds already played this session. Only the
	// most recent few are shown to the model to avoid repetition.
	History []RoundSummary
}

// GradeInput holds everything the grader needs for one answer.
type GradeInput struct {
	Question Question
	Context  string
	Answer   string
}
