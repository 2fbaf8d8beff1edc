package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sharpen/internal/content"
	"github.com/abhisek/sharpen/internal/quizgen"
	"github.com/abhisek/sharpen/internal/rating"
	"github.com/abhisek/sharpen/internal/store"
)

// Ratings is the persistence surface the session writes through.
// *store.RatingStore satisfies it.
type Ratings interface {
	Get(topic string) float64
	Put(topic string, r float64) error
}

// Session is one quiz run. All transitions are synchronous methods
// taking explicit inputs (including the clock where timing matters), so
// the machine is fully testable.
type Session struct {
	ID       string
	Phase    Phase
	Material content.Material
	Limit    int

	Rating      float64
	StartRating float64
	Streak      int
	MaxStreak   int
	Score       int
	Index       int // rounds completed
	History     []HistoryEntry

	Question     *quizgen.Question
	Feedback     *Feedback
	HintRevealed bool

	questionStartedAt time.Time

	ratings Ratings
	events  store.EventRepo // optional round logging
}

// NewSession creates an idle session writing ratings through the given
// store. events may be nil to disable round logging.
func NewSession(ratings Ratings, events store.EventRepo) *Session {
	return &Session{Phase: PhaseIdle, ratings: ratings, events: events}
}

// Start begins a quiz over the given material. The question limit is
// clamped to [MinQuestions, MaxQuestions]. The topic rating is loaded
// from the store, defaulting for unseen topics.
func (s *Session) Start(material content.Material, limit int) error {
	if s.Phase != PhaseIdle {
		return fmt.Errorf("start from %s: %w", s.Phase, ErrInvalidTransition)
	}
	if material.Empty() {
		return ErrNoContent
	}

	if limit < MinQuestions {
		limit = MinQuestions
	}
	if limit > MaxQuestions {
		limit = MaxQuestions
	}

	s.ID = uuid.NewString()
	s.Material = material
	s.Limit = limit
	s.Rating = s.ratings.Get(material.Key)
	s.StartRating = s.Rating
	s.Streak = 0
	s.MaxStreak = 0
	s.Score = 0
	s.Index = 0
	s.History = nil
	s.Question = nil
	s.Feedback = nil
	s.HintRevealed = false
	s.Phase = PhaseAwaitingQuestion
	return nil
}

// Tier classifies the session's current rating.
func (s *Session) Tier() (rating.Tier, float64) {
	return rating.Classify(s.Rating)
}

// GenerateInput assembles the oracle input for the next question.
func (s *Session) GenerateInput() quizgen.GenerateInput {
	tier, _ := s.Tier()
	return quizgen.GenerateInput{
		Context: s.Material.Text,
		Rating:  s.Rating,
		Tier:    tier,
		History: s.RoundSummaries(),
	}
}

// AttachQuestion installs a freshly generated question and opens the
// answer window. Generation failures never reach this method; the
// session simply stays in PhaseAwaitingQuestion for a retry.
func (s *Session) AttachQuestion(q *quizgen.Question, now time.Time) error {
	if s.Phase != PhaseAwaitingQuestion {
		return fmt.Errorf("attach question from %s: %w", s.Phase, ErrInvalidTransition)
	}
	s.Question = q
	s.questionStartedAt = now
	s.HintRevealed = false
	s.Phase = PhaseAwaitingAnswer
	return nil
}

// RevealHint marks the hint as used for this round. Available once per
// question, irreversible until the next question. Reports whether the
// hint was revealed by this call.
func (s *Session) RevealHint() bool {
	if s.Phase != PhaseAwaitingAnswer || s.HintRevealed {
		return false
	}
	if s.Question == nil || s.Question.Hint == "" {
		return false
	}
	s.HintRevealed = true
	return true
}

// Remaining reports the advisory time left in the answer window. It can
// go negative; enforcement happens only in Submit.
func (s *Session) Remaining(now time.Time) time.Duration {
	return AnswerWindow - now.Sub(s.questionStartedAt)
}

// Submit grades the answer and completes the round. Past the answer
// window, the round is a forced loss and the grader is not consulted.
// A blank answer returns ErrEmptyAnswer without a transition. The new
// rating is persisted before the transition completes; a persistence
// failure is returned after the round state is already committed.
func (s *Session) Submit(ctx context.Context, answer string, grader quizgen.Grader, now time.Time) error {
	if s.Phase != PhaseAwaitingAnswer {
		return fmt.Errorf("submit from %s: %w", s.Phase, ErrInvalidTransition)
	}

	if now.Sub(s.questionStartedAt) > AnswerWindow {
		return s.completeRound(ctx, answer, roundOutcome{
			correct:     false,
			scoreGained: 0,
			// Losing against the own rating is the lowest-impact
			// penalty the update law allows.
			opponent: s.Rating,
			feedback: Feedback{
				Correct:     false,
				TimedOut:    true,
				Explanation: timeoutMessage,
			},
		})
	}

	if strings.TrimSpace(answer) == "" {
		return ErrEmptyAnswer
	}

	result := grader.Grade(ctx, quizgen.GradeInput{
		Question: *s.Question,
		Context:  s.Material.Text,
		Answer:   answer,
	})

	// The numeric score is authoritative over the grader's verdict.
	correct := result.Correct
	if result.ScorePercent > correctThreshold {
		correct = true
	}

	// The hint penalty touches the score only, never the rating.
	score := result.ScorePercent
	if s.HintRevealed {
		score -= HintPenalty
	}
	if score < 0 {
		score = 0
	}

	opponent := s.Question.DifficultyEstimate
	if opponent == 0 {
		_, opponent = s.Tier()
	}

	return s.completeRound(ctx, answer, roundOutcome{
		correct:     correct,
		scoreGained: score,
		opponent:    opponent,
		feedback: Feedback{
			Correct:        correct,
			ScorePercent:   result.ScorePercent,
			Explanation:    result.Explanation,
			ModelAnswer:    result.ModelAnswer,
			MissedConcepts: result.MissedConcepts,
		},
	})
}

type roundOutcome struct {
	correct     bool
	scoreGained int
	opponent    float64
	feedback    Feedback
}

func (s *Session) completeRound(ctx context.Context, answer string, out roundOutcome) error {
	before := s.Rating
	s.Rating = rating.Update(s.Rating, out.correct, out.opponent)

	if out.correct {
		s.Streak++
		if s.Streak > s.MaxStreak {
			s.MaxStreak = s.Streak
		}
	} else {
		s.Streak = 0
	}
	s.Score += out.scoreGained

	entry := HistoryEntry{
		QuestionText: s.Question.Prompt,
		UserAnswer:   answer,
		Correct:      out.correct,
		ScoreGained:  out.scoreGained,
		RatingAfter:  s.Rating,
		StreakAfter:  s.Streak,
	}
	s.History = append(s.History, entry)

	out.feedback.ScoreGained = out.scoreGained
	out.feedback.RatingBefore = before
	out.feedback.RatingAfter = s.Rating
	s.Feedback = &out.feedback
	s.Phase = PhaseShowingFeedback

	if s.events != nil {
		// Best effort; the round outcome does not depend on the log.
		_ = s.events.AppendRoundEvent(ctx, store.RoundEventData{
			SessionID:   s.ID,
			Topic:       s.Material.Key,
			Question:    entry.QuestionText,
			Answer:      answer,
			Correct:     out.correct,
			TimedOut:    out.feedback.TimedOut,
			ScoreGained: out.scoreGained,
			RatingAfter: s.Rating,
			StreakAfter: s.Streak,
		})
	}

	if err := s.ratings.Put(s.Material.Key, s.Rating); err != nil {
		return fmt.Errorf("persist rating: %w", err)
	}
	return nil
}

// Advance moves past the feedback view: to the next round, or to
// PhaseFinished when the question limit is reached.
func (s *Session) Advance() error {
	if s.Phase != PhaseShowingFeedback {
		return fmt.Errorf("advance from %s: %w", s.Phase, ErrInvalidTransition)
	}
	s.Index++
	s.Question = nil
	s.Feedback = nil
	s.HintRevealed = false
	if s.Index == s.Limit {
		s.Phase = PhaseFinished
	} else {
		s.Phase = PhaseAwaitingQuestion
	}
	return nil
}

// Restart returns a finished session to idle so a new quiz can start.
func (s *Session) Restart() error {
	if s.Phase != PhaseFinished {
		return fmt.Errorf("restart from %s: %w", s.Phase, ErrInvalidTransition)
	}
	*s = Session{Phase: PhaseIdle, ratings: s.ratings, events: s.events}
	return nil
}

// RoundSummaries converts the history into the oracle's view of it.
func (s *Session) RoundSummaries() []quizgen.RoundSummary {
	out := make([]quizgen.RoundSummary, len(s.History))
	for i, h := range s.History {
		out[i] = quizgen.RoundSummary{
			Prompt:       h.QuestionText,
			Answer:       h.UserAnswer,
			Correct:      h.Correct,
			ScorePercent: h.ScoreGained,
		}
	}
	return out
}

// CorrectCount reports how many rounds were answered correctly.
func (s *Session) CorrectCount() int {
	n := 0
	for _, h := range s.History {
		if h.Correct {
			n++
		}
	}
	return n
}
