package quizgen

import "context"

// Generator produces quiz questions using an LLM provider.
type Generator interface {
	// Generate produces a single question for the given input context.
	// Returns a validated Question or an error. All configured
	// validators are run before returning.
	Generate(ctx context.Context, input GenerateInput) (*Question, error)
}

// Grader scores submitted answers.
type Grader interface {
	// Grade evaluates the learner's answer. It never fails: transport
	// or parse errors degrade to an incorrect zero-score result whose
	// Explanation carries the failure detail.
	Grade(ctx context.Context, input GradeInput) GradeResult
}

// Reporter produces the end-of-session study plan.
type Reporter interface {
	// Report generates a free-form markdown study plan from the
	// session history.
	Report(ctx context.Context, history []RoundSummary, contextText string) (string, error)
}

// Oracle bundles the three LLM roles a quiz needs.
type Oracle interface {
	Generator
	Grader
	Reporter
}

// GraderFunc adapts a function to the Grader interface. Useful for
// feeding an already-computed result through the session machine.
type GraderFunc func(ctx context.Context, input GradeInput) GradeResult

func (f GraderFunc) Grade(ctx context.Context, input GradeInput) GradeResult {
	return f(ctx, input)
}
