package quiz

import (
	"time"

	"github.com/abhisek/sharpen/internal/quizgen"
)

// questionReadyMsg is sent when question generation completes.
type questionReadyMsg struct {
	Question *quizgen.Question
	Err      error
}

// gradedMsg is sent when the oracle finishes grading an answer.
// SubmittedAt is the wall-clock time of the submit keypress, so the
// answer-window check is independent of grading latency.
type gradedMsg struct {
	Answer      string
	SubmittedAt time.Time
	Result      quizgen.GradeResult
}

// timerTickMsg drives the advisory countdown, once per second.
type timerTickMsg time.Time
