package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/neuroboost/internal/game"
	"github.com/abhisek/neuroboost/internal/llm"
)

func sampleHistory(n int) []game.Result {
	out := make([]game.Result, n)
	for i := range out {
		out[i] = game.Result{
			Date:    time.Date(2026, 8, 1, 10, 0, i, 0, time.UTC),
			Type:    game.TypeReflex,
			Score:   700 + i,
			Details: fmt.Sprintf("Avg: %dms", 300-i),
		}
	}
	return out
}

func TestAnalyze_EmptyHistory(t *testing.T) {
	mock := llm.NewMockProvider()
	s := New(mock)

	got := s.Analyze(context.Background(), nil)
	if got != NoDataMessage {
		t.Errorf("Analyze() = %q, want %q", got, NoDataMessage)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("expected no provider calls, got %d", mock.CallCount())
	}
}

func TestAnalyze_ReturnsAdvice(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`"反応速度が安定しています。次は記憶ゲームにも挑戦しましょう。"`)},
	)
	s := New(mock)

	got := s.Analyze(context.Background(), sampleHistory(3))
	if got != "反応速度が安定しています。次は記憶ゲームにも挑戦しましょう。" {
		t.Errorf("unexpected advice: %q", got)
	}
}

func TestAnalyze_SummaryFormat(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`"ok"`)},
	)
	s := New(mock)

	history := []game.Result{
		{Type: game.TypeReflex, Score: 720, Details: "Avg: 280ms"},
		{Type: game.TypeCalculation, Score: 120, Details: "12問正解"},
	}
	s.Analyze(context.Background(), history)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "REFLEX: Score 720 (Avg: 280ms)") {
		t.Errorf("summary missing reflex line: %q", msg)
	}
	if !strings.Contains(msg, "CALCULATION: Score 120 (12問正解)") {
		t.Errorf("summary missing calculation line: %q", msg)
	}
}

func TestAnalyze_OnlyRecentGames(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`"ok"`)},
	)
	s := New(mock)

	s.Analyze(context.Background(), sampleHistory(15))

	msg := mock.Calls[0].Messages[0].Content
	if got := strings.Count(msg, "REFLEX:"); got != recentGames {
		t.Errorf("summary has %d lines, want %d", got, recentGames)
	}
	// The five oldest results must not appear.
	if strings.Contains(msg, "Score 700 ") {
		t.Errorf("summary includes result older than the window: %q", msg)
	}
}

func TestAnalyze_ProviderErrorFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	s := New(mock)

	got := s.Analyze(context.Background(), sampleHistory(1))
	if got != UnavailableMessage {
		t.Errorf("Analyze() = %q, want %q", got, UnavailableMessage)
	}
}

func TestAnalyze_EmptyReplyFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`""`)},
	)
	s := New(mock)

	got := s.Analyze(context.Background(), sampleHistory(1))
	if got != EmptyReplyMessage {
		t.Errorf("Analyze() = %q, want %q", got, EmptyReplyMessage)
	}
}
