package riddle

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/neuroboost/internal/llm"
)

const prompt = "Generate a challenging but solvable logic riddle or brain teaser in Japanese. Ensure the Question, Answer, and Hint are all in natural Japanese."

const (
	defaultMaxTokens   = 1024
	defaultTemperature = 1.0
)

// Service generates riddles through the LLM provider.
type Service struct {
	provider llm.Provider
}

// New creates a new riddle Service with the given provider.
func New(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// Generate produces a single riddle.
func (s *Service) Generate(ctx context.Context) (*Riddle, error) {
	ctx = llm.WithPurpose(ctx, "riddle")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		Schema:      RiddleSchema,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("riddle generation failed: %w", err)
	}

	var r Riddle
	if err := json.Unmarshal(resp.Content, &r); err != nil {
		return nil, fmt.Errorf("failed to parse riddle response: %w", err)
	}
	return &r, nil
}
