package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/sharpen/internal/llm"
)

// LLMOracle implements Generator, Grader, and Reporter on an LLM provider.
type LLMOracle struct {
	provider llm.Provider
	config   Config
	rng      *rand.Rand
}

// New creates a new LLMOracle with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMOracle {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &LLMOracle{provider: provider, config: cfg, rng: rng}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Kind               string   `json:"kind"`
	Prompt             string   `json:"prompt"`
	Options            []string `json:"options"`
	AnswerKey          string   `json:"answer_key"`
	Hint               string   `json:"hint"`
	DifficultyEstimate float64  `json:"difficulty_estimate"`
}

// gradeOutput is the raw LLM grading response.
type gradeOutput struct {
	Correct        bool     `json:"correct"`
	ScorePercent   int      `json:"score_percent"`
	Explanation    string   `json:"explanation"`
	ModelAnswer    string   `json:"model_answer"`
	MissedConcepts []string `json:"missed_concepts"`
}

// Generate produces a single question for the given input context.
// The question kind is chosen at random per round.
func (o *LLMOracle) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	kind := o.pickKind()

	req := llm.Request{
		System: generateSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGenerateMessage(input, kind, o.config)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   o.config.GenerateMaxTokens,
		Temperature: o.config.Temperature,
	}

	resp, err := o.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("parse question: %w", err),
		}
	}

	q := &Question{
		Kind:               Kind(raw.Kind),
		Prompt:             raw.Prompt,
		Options:            raw.Options,
		AnswerKey:          raw.AnswerKey,
		Hint:               raw.Hint,
		DifficultyEstimate: raw.DifficultyEstimate,
	}

	// Run validators in order.
	for _, v := range o.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return nil, &llm.ErrInvalidResponse{
				Content: resp.Content,
				Err:     verr,
			}
		}
	}

	return q, nil
}

// Grade evaluates the learner's answer. Failures never propagate: the
// round degrades to an incorrect zero-score result carrying the detail.
func (o *LLMOracle) Grade(ctx context.Context, input GradeInput) GradeResult {
	ctx = llm.WithPurpose(ctx, "answer-grade")

	req := llm.Request{
		System: gradeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGradeMessage(input, o.config)},
		},
		Schema:    GradeSchema,
		MaxTokens: o.config.GradeMaxTokens,
	}

	resp, err := o.provider.Generate(ctx, req)
	if err != nil {
		return degradedGrade(err)
	}

	var raw gradeOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return degradedGrade(err)
	}

	return GradeResult{
		Correct:        raw.Correct,
		ScorePercent:   raw.ScorePercent,
		Explanation:    raw.Explanation,
		ModelAnswer:    raw.ModelAnswer,
		MissedConcepts: raw.MissedConcepts,
	}
}

// Report generates a free-form markdown study plan from the session history.
func (o *LLMOracle) Report(ctx context.Context, history []RoundSummary, contextText string) (string, error) {
	ctx = llm.WithPurpose(ctx, "session-report")

	req := llm.Request{
		System: reportSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildReportMessage(history, contextText, o.config)},
		},
		MaxTokens: o.config.ReportMaxTokens,
	}

	resp, err := o.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("report generation failed: %w", err)
	}

	// No schema: the content is raw text, possibly wrapped as a JSON
	// string by the provider.
	var text string
	if err := json.Unmarshal(resp.Content, &text); err != nil {
		text = string(resp.Content)
	}
	return text, nil
}

func (o *LLMOracle) pickKind() Kind {
	if o.rng.IntN(2) == 0 {
		return KindMultipleChoice
	}
	return KindOpenAnalysis
}

func degradedGrade(err error) GradeResult {
	return GradeResult{
		Correct:      false,
		ScorePercent: 0,
		Explanation:  fmt.Sprintf("Grading failed: %v", err),
	}
}
