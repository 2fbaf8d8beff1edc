package quizgen

import "math/rand/v2"

// Config controls the behavior of the LLMOracle.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated question. They execute in order; the first failure
	// stops the pipeline.
	Validators []Validator

	// Rand picks the question kind for each round. Injected so tests
	// and previews can seed it. Nil means a fresh PCG source.
	Rand *rand.Rand

	// GenerateMaxTokens is the token budget for question generation.
	GenerateMaxTokens int

	// GradeMaxTokens is the token budget for answer grading.
	GradeMaxTokens int

	// ReportMaxTokens is the token budget for the study-plan report.
	ReportMaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// GenerateContextCap caps the material excerpt in generation
	// prompts, in characters.
	GenerateContextCap int

	// GradeContextCap caps the material excerpt in grading prompts.
	GradeContextCap int

	// ReportContextCap caps the material excerpt in report prompts.
	ReportContextCap int

	// MaxHistory is how many recent rounds go into the anti-repetition
	// block of the generation prompt.
	MaxHistory int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
		},
		GenerateMaxTokens:  1024,
		GradeMaxTokens:     1024,
		ReportMaxTokens:    2048,
		Temperature:        0.7,
		GenerateContextCap: 50000,
		GradeContextCap:    20000,
		ReportContextCap:   500,
		MaxHistory:         3,
	}
}
