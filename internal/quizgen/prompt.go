package quizgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const generateSystemPrompt = `You are an expert professor in the subject matter of the provided material.

Rules:
- Generate a single question tightly bound to the specific content and themes of the material.
- Test deep understanding and critical thinking, not memorization.
- For math and science material: require derivation, calculation, or application of principles.
- For humanities, literature, and history material: require thematic analysis, evidence-based argumentation, comparison, or critique. Never ask for bare dates or names; ask why or how.
- Match the question's demands to the learner's rating and difficulty level.
- For multiple choice, provide exactly 4 options where exactly one is correct. Distractors should reflect plausible misconceptions, not random values.
- For open analysis, ask for a step-by-step solution, argument, or analysis.
- The hint must be conceptual (a formula, a thematic lens) and must not give away the answer.
- Estimate the question's difficulty on the same rating scale as the learner's rating.
- Do not repeat any question from the "recently asked" list.`

const gradeSystemPrompt = `You are a strict academic professor grading an assessment.

Grading rubric:
- Accuracy: is the conclusion or argument factually and logically sound?
- Depth: for math and science, did they use the correct method or derivation? For humanities, did they provide specific evidence and reasoning?
- Completeness: did they address the core of the prompt?

Grade the student's answer against the question and the material. Provide detailed feedback, the ideal answer, and any concepts the student missed.`

const reportSystemPrompt = `You are an expert academic advisor.`

// kindInstruction tells the model which question kind to produce.
func kindInstruction(kind Kind) string {
	if kind == KindMultipleChoice {
		return "Generate a multiple choice question (4 options) that requires critical thinking, deduction, or calculation to solve."
	}
	return "Generate an open analysis question requiring a step-by-step solution, argument, or literary analysis."
}

// buildGenerateMessage constructs the user message for question generation.
func buildGenerateMessage(input GenerateInput, kind Kind, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Material:\n%s\n\n", truncate(input.Context, cfg.GenerateContextCap))
	fmt.Fprintf(&b, "Learner rating: %.0f (level: %s)\n", input.Rating, input.Tier)
	fmt.Fprintf(&b, "Task: %s\n", kindInstruction(kind))

	b.WriteString("\nRecently asked in this session:\n")
	b.WriteString(buildHistory(input.History, cfg.MaxHistory))

	return b.String()
}

// buildGradeMessage constructs the user message for answer grading.
func buildGradeMessage(input GradeInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Material:\n%s\n\n", truncate(input.Context, cfg.GradeContextCap))
	fmt.Fprintf(&b, "Question: %s\n", input.Question.Prompt)
	fmt.Fprintf(&b, "Question kind: %s\n", input.Question.Kind)

	key := input.Question.AnswerKey
	if key == "" {
		key = "N/A"
	}
	fmt.Fprintf(&b, "Reference answer (if available): %s\n", key)

	fmt.Fprintf(&b, "\nStudent answer: %q\n", input.Answer)
	b.WriteString("\nGrade this answer.")

	return b.String()
}

// buildReportMessage constructs the user message for the study-plan report.
func buildReportMessage(history []RoundSummary, contextText string, cfg Config) string {
	var b strings.Builder

	b.WriteString("Analyze this assessment session.\n\n")
	fmt.Fprintf(&b, "Material topic: %s\n\n", truncate(contextText, cfg.ReportContextCap))

	b.WriteString("Session history:\n")
	for i, h := range history {
		result := "incorrect"
		if h.Correct {
			result = "correct"
		}
		fmt.Fprintf(&b, "%d. Q: %s\n   A: %s\n   Result: %s (score %d%%)\n",
			i+1, h.Prompt, h.Answer, result, h.ScorePercent)
	}

	b.WriteString(`
Generate a markdown report with these sections:
1. **Critical Thinking Skills**: assessment of logic, analysis, and application.
2. **Conceptual Gaps**: specific themes, formulas, or ideas struggled with.
3. **Study Plan**: 3 concrete areas to review or practice.`)

	return b.String()
}

// buildHistory formats recent rounds for the anti-repetition block.
// Returns "None" when there is no history.
func buildHistory(history []RoundSummary, max int) string {
	if len(history) == 0 {
		return "None"
	}

	// Keep only the most recent N rounds.
	if max > 0 && len(history) > max {
		history = history[len(history)-max:]
	}

	var b strings.Builder
	for i, h := range history {
		result := "Incorrect"
		if h.Correct {
			result = "Correct"
		}
		fmt.Fprintf(&b, "%d. Q: %s | Result: %s\n", i+1, truncate(h.Prompt, 50), result)
	}
	return strings.TrimRight(b.String(), "\n")
}

// truncate caps s at max bytes, backing up so the cut never lands inside
// a multi-byte rune. No-op when max <= 0.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
