// Package quiz implements the session state machine: one quiz run over
// a piece of material, driven round by round by user actions.
package quiz

import (
	"errors"
	"time"
)

// Phase is the session's position in the quiz lifecycle.
type Phase int

const (
	// PhaseIdle means no quiz is running.
	PhaseIdle Phase = iota

	// PhaseAwaitingQuestion means the session needs a question from the
	// oracle before the learner can act.
	PhaseAwaitingQuestion

	// PhaseAwaitingAnswer means a question is on screen and the answer
	// window is open.
	PhaseAwaitingAnswer

	// PhaseShowingFeedback means the round is graded and feedback is
	// displayed until the learner advances.
	PhaseShowingFeedback

	// PhaseFinished means all rounds are played.
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingQuestion:
		return "awaiting_question"
	case PhaseAwaitingAnswer:
		return "awaiting_answer"
	case PhaseShowingFeedback:
		return "showing_feedback"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

const (
	// AnswerWindow is the wall-clock budget per question. Enforcement
	// happens only at submission time; the countdown shown during the
	// round is advisory.
	AnswerWindow = 120 * time.Second

	// HintPenalty is subtracted from the round score when the hint was
	// revealed. It affects score accumulation only, never the rating.
	HintPenalty = 50

	// correctThreshold forces the round correct when the grader's score
	// exceeds it, regardless of the grader's own verdict.
	correctThreshold = 70

	// MinQuestions and MaxQuestions bound the per-session round count.
	MinQuestions = 3
	MaxQuestions = 20
)

// timeoutMessage replaces grader feedback when the answer window expired.
const timeoutMessage = "Time expired. The answer window is 120 seconds per question; this round counts as incorrect."

var (
	// ErrNoContent is returned by Start when the material is empty or
	// no usable text could be extracted.
	ErrNoContent = errors.New("no quiz content")

	// ErrEmptyAnswer is returned by Submit for a blank answer. The
	// session stays in PhaseAwaitingAnswer.
	ErrEmptyAnswer = errors.New("answer is empty")

	// ErrInvalidTransition is returned when an action does not apply to
	// the current phase.
	ErrInvalidTransition = errors.New("invalid session transition")
)

// HistoryEntry is the immutable record of one completed round.
type HistoryEntry struct {
	QuestionText string
	UserAnswer   string
	Correct      bool
	ScoreGained  int // never negative
	RatingAfter  float64
	StreakAfter  int
}

// Feedback is what the learner sees after a round is graded.
type Feedback struct {
	Correct        bool
	TimedOut       bool
	ScoreGained    int
	ScorePercent   int
	Explanation    string
	ModelAnswer    string
	MissedConcepts []string
	RatingBefore   float64
	RatingAfter    float64
}
