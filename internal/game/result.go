package game

import (
	"fmt"
	"math"
	"time"
)

// Type discriminates which mini-game produced a Result. The string values
// are the persisted wire representation and must not change.
type Type string

const (
	TypeReflex      Type = "REFLEX"
	TypeCalculation Type = "CALCULATION"
	TypeMemory      Type = "MEMORY"
	TypeRiddle      Type = "RIDDLE"
)

// Known reports whether t is one of the defined game types.
func (t Type) Known() bool {
	switch t {
	case TypeReflex, TypeCalculation, TypeMemory, TypeRiddle:
		return true
	}
	return false
}

// Result is the outcome record of one completed session. Results are
// append-only: once handed to the history store they are never mutated.
type Result struct {
	Date    time.Time `json:"date"`
	Type    Type      `json:"type"`
	Score   int       `json:"score"`
	Details string    `json:"details,omitempty"`
}

// Mean returns the rounded arithmetic mean of vals, or 0 for an empty slice.
func Mean(vals []int) int {
	if len(vals) == 0 {
		return 0
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(vals))))
}

// NewReflexResult scores a completed reflex session from its recorded
// reaction latencies in milliseconds: max(0, 1000 - mean).
func NewReflexResult(attempts []int, now time.Time) Result {
	avg := Mean(attempts)
	score := 1000 - avg
	if score < 0 {
		score = 0
	}
	return Result{
		Date:    now,
		Type:    TypeReflex,
		Score:   score,
		Details: fmt.Sprintf("Avg: %dms", avg),
	}
}

// NewCalculationResult scores a completed calculation session from the
// number of correctly answered problems.
func NewCalculationResult(correct int, now time.Time) Result {
	return Result{
		Date:    now,
		Type:    TypeCalculation,
		Score:   correct * 10,
		Details: fmt.Sprintf("%d問正解", correct),
	}
}

// NewMemoryResult scores a completed memory session. level is the level the
// player failed on; the score credits the levels actually completed.
func NewMemoryResult(level int, now time.Time) Result {
	score := (level - 1) * 100
	if score < 0 {
		score = 0
	}
	return Result{
		Date:    now,
		Type:    TypeMemory,
		Score:   score,
		Details: fmt.Sprintf("Level %d", level),
	}
}
