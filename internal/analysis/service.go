// Package analysis turns recent game results into short coaching advice
// via the LLM provider.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/neuroboost/internal/game"
	"github.com/abhisek/neuroboost/internal/llm"
)

// Fallback messages shown when the LLM cannot produce advice.
const (
	NoDataMessage      = "まだデータがありません。ゲームをプレイして分析を開始しましょう！"
	EmptyReplyMessage  = "分析中にエラーが発生しました。"
	UnavailableMessage = "分析サービスに接続できませんでした。"
)

const systemPrompt = `You are a professional brain trainer. Analyze these recent game scores and provide specific, encouraging advice to the user in Japanese.
Keep it concise (under 300 characters).`

// recentGames caps how much history goes into the prompt.
const recentGames = 10

const (
	defaultMaxTokens   = 512
	defaultTemperature = 0.7
)

// Service produces performance advice from game history.
type Service struct {
	provider llm.Provider
}

// New creates a new analysis Service with the given provider.
func New(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// Analyze summarizes the given history and asks the provider for advice.
// It never fails: provider errors degrade to a fixed fallback message.
func (s *Service) Analyze(ctx context.Context, history []game.Result) string {
	if len(history) == 0 {
		return NoDataMessage
	}

	ctx = llm.WithPurpose(ctx, "analysis")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Data:\n" + buildSummary(history)},
		},
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return UnavailableMessage
	}

	text := strings.TrimSpace(strings.Trim(string(resp.Content), `"`))
	if text == "" {
		return EmptyReplyMessage
	}
	return text
}

// buildSummary formats the most recent results, one per line.
func buildSummary(history []game.Result) string {
	if len(history) > recentGames {
		history = history[len(history)-recentGames:]
	}

	var b strings.Builder
	for i, r := range history {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: Score %d (%s)", r.Type, r.Score, r.Details)
	}
	return b.String()
}
