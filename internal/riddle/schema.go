package riddle

import "github.com/abhisek/neuroboost/internal/llm"

// RiddleSchema defines the JSON schema for LLM riddle generation responses.
var RiddleSchema = &llm.Schema{
	Name:        "riddle",
	Description: "A logic riddle with its answer and a hint",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The riddle text, in natural Japanese",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The correct answer, in natural Japanese",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "A short hint that nudges without revealing the answer, in natural Japanese",
			},
		},
		"required":             []any{"question", "answer", "hint"},
		"additionalProperties": false,
	},
}
