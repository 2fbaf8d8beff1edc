package quizgen

import "github.com/abhisek/sharpen/internal/llm"

// QuestionSchema defines the JSON schema for LLM question generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single quiz question testing deep understanding of the provided material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"kind": map[string]any{
				"type":        "string",
				"enum":        []any{"multiple_choice", "open_analysis"},
				"description": "How the learner answers: pick from options or write a free-form analysis",
			},
			"prompt": map[string]any{
				"type":        "string",
				"description": "The question text shown to the learner",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Exactly 4 options for multiple_choice. Empty array for open_analysis.",
			},
			"answer_key": map[string]any{
				"type":        "string",
				"description": "The text of the correct option. Empty for open_analysis.",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "A conceptual hint (a formula, a thematic lens) that does not give away the answer",
			},
			"difficulty_estimate": map[string]any{
				"type":        "number",
				"description": "Self-assessed difficulty on the Elo rating scale, near the requested rating",
			},
		},
		"required":             []any{"kind", "prompt", "options", "answer_key", "hint", "difficulty_estimate"},
		"additionalProperties": false,
	},
}

// GradeSchema defines the JSON schema for LLM answer grading responses.
var GradeSchema = &llm.Schema{
	Name:        "grade-result",
	Description: "A graded assessment of the learner's answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct": map[string]any{
				"type":        "boolean",
				"description": "True if the core analysis or solution is sound",
			},
			"score_percent": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "Quality score from 0 (no merit) to 100 (complete and rigorous)",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Detailed feedback on the reasoning, analysis, or derivation",
			},
			"model_answer": map[string]any{
				"type":        "string",
				"description": "The ideal step-by-step solution or analytical response",
			},
			"missed_concepts": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Concept labels the answer failed to address. Empty if none.",
			},
		},
		"required":             []any{"correct", "score_percent", "explanation", "model_answer", "missed_concepts"},
		"additionalProperties": false,
	},
}
