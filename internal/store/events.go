package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LLMEventData captures one LLM API call.
type LLMEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM event with its assigned ID and timestamp.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMEventData
}

// RoundEventData captures one answered (or timed-out) quiz round.
type RoundEventData struct {
	SessionID   string
	Topic       string
	Question    string
	Answer      string
	Correct     bool
	TimedOut    bool
	ScoreGained int
	RatingAfter float64
	StreakAfter int
}

// RoundEvent is a stored round event with its assigned ID and timestamp.
type RoundEvent struct {
	ID        int
	Timestamp time.Time
	RoundEventData
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendLLMEvent records an LLM API call.
	AppendLLMEvent(ctx context.Context, data LLMEventData) error

	// AppendRoundEvent records a completed quiz round.
	AppendRoundEvent(ctx context.Context, data RoundEventData) error

	// RecentLLMEvents returns the most recent LLM events, newest first.
	RecentLLMEvents(ctx context.Context, limit int) ([]LLMEvent, error)

	// GetLLMEvent returns the event with the given ID, or nil.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// RecentRounds returns the most recent rounds, newest first,
	// optionally filtered by topic ("" for all).
	RecentRounds(ctx context.Context, topic string, limit int) ([]RoundEvent, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMEvent(ctx context.Context, data LLMEventData) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO llm_events
		(timestamp, provider, model, purpose, input_tokens, output_tokens,
		 latency_ms, success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendRoundEvent(ctx context.Context, data RoundEventData) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO round_events
		(timestamp, session_id, topic, question, answer, correct,
		 timed_out, score_gained, rating_after, streak_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.SessionID, data.Topic, data.Question,
		data.Answer, data.Correct, data.TimedOut, data.ScoreGained,
		data.RatingAfter, data.StreakAfter)
	if err != nil {
		return fmt.Errorf("append round event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentLLMEvents(ctx context.Context, limit int) ([]LLMEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `SELECT
		id, timestamp, provider, model, purpose, input_tokens, output_tokens,
		latency_ms, success, error_message
		FROM llm_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		var e LLMEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model,
			&e.Purpose, &e.InputTokens, &e.OutputTokens, &e.LatencyMs,
			&e.Success, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan llm event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	row := r.db.QueryRowContext(ctx, `SELECT
		id, timestamp, provider, model, purpose, input_tokens, output_tokens,
		latency_ms, success, error_message, request_body, response_body
		FROM llm_events WHERE id = ?`, id)

	var e LLMEvent
	err := row.Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get llm event: %w", err)
	}
	return &e, nil
}

func (r *eventRepo) RecentRounds(ctx context.Context, topic string, limit int) ([]RoundEvent, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, timestamp, session_id, topic, question, answer,
		correct, timed_out, score_gained, rating_after, streak_after
		FROM round_events`
	args := []any{}
	if topic != "" {
		query += ` WHERE topic = ?`
		args = append(args, topic)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	var events []RoundEvent
	for rows.Next() {
		var e RoundEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.SessionID, &e.Topic,
			&e.Question, &e.Answer, &e.Correct, &e.TimedOut,
			&e.ScoreGained, &e.RatingAfter, &e.StreakAfter); err != nil {
			return nil, fmt.Errorf("scan round event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
