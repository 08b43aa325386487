package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LLMRequestData captures one LLM API call for the request log.
type LLMRequestData struct {
	SessionID    string
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

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestData
}

// LLMEventRepo provides append and query access to the LLM request log.
type LLMEventRepo interface {
	// Append records one LLM API call.
	Append(ctx context.Context, data LLMRequestData) error

	// Recent returns up to limit events, newest first (0 = default of 20).
	Recent(ctx context.Context, limit int) ([]LLMRequestRecord, error)

	// Get returns the event with the given id, or nil if not found.
	Get(ctx context.Context, id int) (*LLMRequestRecord, error)
}

type llmEventRepo struct {
	db *sql.DB
}

func (r *llmEventRepo) Append(ctx context.Context, data LLMRequestData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_requests (
			session_id, provider, model, purpose,
			input_tokens, output_tokens, latency_ms,
			success, error_message, request_body, response_body
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.SessionID, data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		boolToInt(data.Success), data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("append llm request: %w", err)
	}
	return nil
}

func (r *llmEventRepo) Recent(ctx context.Context, limit int) ([]LLMRequestRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, timestamp, session_id, provider, model, purpose,
		       input_tokens, output_tokens, latency_ms,
		       success, error_message, request_body, response_body
		FROM llm_requests ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query llm requests: %w", err)
	}
	defer rows.Close()

	var records []LLMRequestRecord
	for rows.Next() {
		rec, err := scanLLMRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *llmEventRepo) Get(ctx context.Context, id int) (*LLMRequestRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, timestamp, session_id, provider, model, purpose,
		       input_tokens, output_tokens, latency_ms,
		       success, error_message, request_body, response_body
		FROM llm_requests WHERE id = ?`, id)

	rec, err := scanLLMRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func scanLLMRecord(scan func(...any) error) (*LLMRequestRecord, error) {
	var rec LLMRequestRecord
	var success int
	var ts string
	err := scan(
		&rec.ID, &ts, &rec.SessionID, &rec.Provider, &rec.Model, &rec.Purpose,
		&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs,
		&success, &rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody,
	)
	if err != nil {
		return nil, err
	}
	rec.Success = success != 0
	if t, perr := time.Parse("2006-01-02 15:04:05", ts); perr == nil {
		rec.Timestamp = t.UTC()
	}
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
