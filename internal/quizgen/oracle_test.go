package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/abhisek/sharpen/internal/llm"
	"github.com/abhisek/sharpen/internal/rating"
)

func testInput() GenerateInput {
	return GenerateInput{
		Context: "The French Revolution began in 1789 with the storming of the Bastille.",
		Rating:  1200,
		Tier:    rating.TierEasy,
	}
}

func seededConfig() Config {
	cfg := DefaultConfig()
	cfg.Rand = rand.New(rand.NewPCG(1, 2))
	return cfg
}

func mcQuestionJSON() json.RawMessage {
	return json.RawMessage(`{
		"kind": "multiple_choice",
		"prompt": "Why did the storming of the Bastille matter symbolically?",
		"options": ["It freed thousands of prisoners", "It struck at a symbol of royal authority", "It ended the monarchy outright", "It was the first battle of the war"],
		"answer_key": "It struck at a symbol of royal authority",
		"hint": "Think about what the fortress represented, not what it held.",
		"difficulty_estimate": 1150
	}`)
}

func openQuestionJSON() json.RawMessage {
	return json.RawMessage(`{
		"kind": "open_analysis",
		"prompt": "Analyze how fiscal crisis and Enlightenment ideas combined to trigger the revolution.",
		"options": [],
		"answer_key": "",
		"hint": "Consider both material conditions and the ideas available to interpret them.",
		"difficulty_estimate": 1180
	}`)
}

func validGradeJSON() json.RawMessage {
	return json.RawMessage(`{
		"correct": true,
		"score_percent": 85,
		"explanation": "Strong argument grounded in the text.",
		"model_answer": "The fortress stood for arbitrary royal power; taking it showed that power could be defied.",
		"missed_concepts": []
	}`)
}

func TestGenerate_MultipleChoice(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcQuestionJSON()})
	oracle := New(mock, seededConfig())

	q, err := oracle.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Kind != KindMultipleChoice {
		t.Errorf("expected multiple choice, got %q", q.Kind)
	}
	if len(q.Options) != 4 {
		t.Errorf("expected 4 options, got %d", len(q.Options))
	}
	if q.AnswerKey != q.Options[1] {
		t.Errorf("answer key should match option 1, got %q", q.AnswerKey)
	}
	if q.DifficultyEstimate != 1150 {
		t.Errorf("expected difficulty estimate 1150, got %v", q.DifficultyEstimate)
	}
}

func TestGenerate_OpenAnalysis(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: openQuestionJSON()})
	oracle := New(mock, seededConfig())

	q, err := oracle.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Kind != KindOpenAnalysis {
		t.Errorf("expected open analysis, got %q", q.Kind)
	}
	if len(q.Options) != 0 {
		t.Errorf("expected no options, got %d", len(q.Options))
	}
	if q.Hint == "" {
		t.Error("expected a hint")
	}
}

func TestGenerate_PromptCarriesRatingAndTier(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcQuestionJSON()})
	oracle := New(mock, seededConfig())

	input := testInput()
	input.Rating = 1650
	input.Tier = rating.TierHard

	if _, err := oracle.Generate(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "1650") {
		t.Error("prompt should contain the learner rating")
	}
	if !strings.Contains(msg, "Hard") {
		t.Error("prompt should contain the tier label")
	}
}

func TestGenerate_HistoryAntiRepetition(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcQuestionJSON()})
	oracle := New(mock, seededConfig())

	input := testInput()
	input.History = []RoundSummary{
		{Prompt: "oldest question never shown", Correct: true},
		{Prompt: "second question", Correct: false},
		{Prompt: "third question", Correct: true},
		{Prompt: "fourth question", Correct: false},
	}

	if _, err := oracle.Generate(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := mock.Calls[0].Messages[0].Content
	if strings.Contains(msg, "oldest question never shown") {
		t.Error("only the last 3 rounds should appear in the prompt")
	}
	for _, want := range []string{"second question", "third question", "fourth question"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing recent question %q", want)
		}
	}
}

func TestGenerate_ContextCapped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcQuestionJSON()})
	cfg := seededConfig()
	cfg.GenerateContextCap = 100
	oracle := New(mock, cfg)

	input := testInput()
	input.Context = strings.Repeat("x", 500)

	if _, err := oracle.Generate(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := mock.Calls[0].Messages[0].Content
	if strings.Contains(msg, strings.Repeat("x", 101)) {
		t.Error("material excerpt should be capped at 100 characters")
	}
	if !strings.Contains(msg, strings.Repeat("x", 100)) {
		t.Error("capped excerpt should still be present")
	}
}

func TestGenerate_WrongOptionCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"kind": "multiple_choice",
			"prompt": "Pick one.",
			"options": ["a", "b"],
			"answer_key": "a",
			"hint": "h",
			"difficulty_estimate": 1200
		}`),
	})
	oracle := New(mock, seededConfig())

	_, err := oracle.Generate(context.Background(), testInput())
	if err == nil {
		t.Fatal("expected validation error")
	}
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Errorf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestGenerate_AnswerKeyNotAnOption(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"kind": "multiple_choice",
			"prompt": "Pick one.",
			"options": ["a", "b", "c", "d"],
			"answer_key": "e",
			"hint": "h",
			"difficulty_estimate": 1200
		}`),
	})
	oracle := New(mock, seededConfig())

	if _, err := oracle.Generate(context.Background(), testInput()); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	oracle := New(mock, seededConfig())

	if _, err := oracle.Generate(context.Background(), testInput()); err == nil {
		t.Fatal("expected error from provider failure")
	}
}

func TestGrade_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validGradeJSON()})
	oracle := New(mock, seededConfig())

	result := oracle.Grade(context.Background(), GradeInput{
		Question: Question{Kind: KindOpenAnalysis, Prompt: "Analyze."},
		Context:  "material",
		Answer:   "my answer",
	})

	if !result.Correct {
		t.Error("expected correct verdict")
	}
	if result.ScorePercent != 85 {
		t.Errorf("expected score 85, got %d", result.ScorePercent)
	}
	if result.ModelAnswer == "" {
		t.Error("expected a model answer")
	}
}

func TestGrade_DegradesOnProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	oracle := New(mock, seededConfig())

	result := oracle.Grade(context.Background(), GradeInput{
		Question: Question{Kind: KindOpenAnalysis, Prompt: "Analyze."},
		Answer:   "my answer",
	})

	if result.Correct {
		t.Error("degraded grade must be incorrect")
	}
	if result.ScorePercent != 0 {
		t.Errorf("degraded grade must score 0, got %d", result.ScorePercent)
	}
	if !strings.Contains(result.Explanation, "Grading failed") {
		t.Errorf("explanation should carry the failure detail, got %q", result.Explanation)
	}
}

func TestGrade_DegradesOnMalformedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`not json`),
	})
	oracle := New(mock, seededConfig())

	result := oracle.Grade(context.Background(), GradeInput{
		Question: Question{Kind: KindOpenAnalysis, Prompt: "Analyze."},
		Answer:   "my answer",
	})

	if result.Correct || result.ScorePercent != 0 {
		t.Error("malformed grading response must degrade to incorrect/0")
	}
}

func TestReport_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`"## Study Plan\nReview the causes of the revolution."`),
	})
	oracle := New(mock, seededConfig())

	text, err := oracle.Report(context.Background(), []RoundSummary{
		{Prompt: "Q1", Answer: "A1", Correct: true, ScorePercent: 90},
	}, "French Revolution")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Study Plan") {
		t.Errorf("unexpected report text: %q", text)
	}

	// Report requests carry no schema.
	if mock.Calls[0].Schema != nil {
		t.Error("report request must not set a schema")
	}
}

func TestReport_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrRateLimit{},
	})
	oracle := New(mock, seededConfig())

	if _, err := oracle.Report(context.Background(), nil, "topic"); err == nil {
		t.Fatal("expected error")
	}
}

func TestPickKind_SeededSequence(t *testing.T) {
	cfg := seededConfig()
	a := New(llm.NewMockProvider(), cfg)

	cfg2 := DefaultConfig()
	cfg2.Rand = rand.New(rand.NewPCG(1, 2))
	b := New(llm.NewMockProvider(), cfg2)

	for i := 0; i < 20; i++ {
		if a.pickKind() != b.pickKind() {
			t.Fatal("same seed must yield the same kind sequence")
		}
	}
}
