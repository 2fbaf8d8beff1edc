package quizgen

import "fmt"

// StructuralValidator checks that required fields are present and the
// option list is consistent with the question kind.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	if q.Prompt == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "prompt is empty",
			Retryable: true,
		}
	}
	if q.Kind != KindMultipleChoice && q.Kind != KindOpenAnalysis {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "kind must be \"multiple_choice\" or \"open_analysis\"",
			Retryable: true,
		}
	}

	switch q.Kind {
	case KindMultipleChoice:
		if len(q.Options) != 4 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("multiple choice needs exactly 4 options, got %d", len(q.Options)),
				Retryable: true,
			}
		}
		if q.AnswerKey == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "answer_key is empty",
				Retryable: true,
			}
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.AnswerKey {
				found = true
				break
			}
		}
		if !found {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "answer_key does not match any option",
				Retryable: true,
			}
		}
	case KindOpenAnalysis:
		if len(q.Options) != 0 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "open analysis must not have options",
				Retryable: true,
			}
		}
	}

	return nil
}
