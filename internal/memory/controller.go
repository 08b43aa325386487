// Package memory implements the pattern-recall game: a random cell sequence
// over a 3×3 grid grows by one element per level, is played back, and must
// be tapped back in order. One mistake ends the session.
package memory

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/neuroboost/internal/game"
)

const (
	// GridSize is the side length of the square grid.
	GridSize = 3
	// Cells is the number of grid cells; sequence values are in [0, Cells).
	Cells = GridSize * GridSize

	// HighlightDuration is how long each playback cell stays lit.
	HighlightDuration = 500 * time.Millisecond
	// GapDuration is the dark interval between playback cells.
	GapDuration = 500 * time.Millisecond
	// LevelPause is the rest between a completed level and the next playback.
	LevelPause = 1000 * time.Millisecond
)

// State identifies a phase of the memory session state machine.
type State int

const (
	StateIdle State = iota
	StateShowing
	StateInput
	StateGameOver
)

// PressOutcome reports what a cell press did to the state machine.
type PressOutcome int

const (
	// PressIgnored: pressed outside INPUT (playback still running) or out of range.
	PressIgnored PressOutcome = iota
	// PressMatched: correct cell, more of the sequence remains.
	PressMatched
	// PressLevelComplete: correct final cell; level finished.
	PressLevelComplete
	// PressGameOver: wrong cell; session over.
	PressGameOver
)

// Controller drives one memory session. The caller animates playback
// (HighlightDuration on, GapDuration off per element) and calls
// FinishPlayback when the sequence has fully played; until then every press
// is ignored by state.
type Controller struct {
	rng      *rand.Rand
	state    State
	sequence []int
	input    []int
	level    int
}

// New creates an idle controller drawing cells from rng.
func New(rng *rand.Rand) *Controller {
	return &Controller{rng: rng, level: 1}
}

func (c *Controller) State() State { return c.state }
func (c *Controller) Level() int   { return c.level }

// Sequence returns the current playback sequence.
func (c *Controller) Sequence() []int {
	out := make([]int, len(c.sequence))
	copy(out, c.sequence)
	return out
}

// InputLen returns how many cells of the current level have been replayed.
func (c *Controller) InputLen() int { return len(c.input) }

// Start resets the session to level 1 with an empty sequence. The first
// level begins with Advance.
func (c *Controller) Start() {
	c.sequence = nil
	c.input = nil
	c.level = 1
	c.state = StateIdle
}

// Advance appends exactly one random cell to the sequence — never
// regenerating earlier elements — clears the input buffer, and enters
// SHOWING. The sequence length always equals the current level.
func (c *Controller) Advance() {
	c.sequence = append(c.sequence, c.rng.IntN(Cells))
	c.input = nil
	c.state = StateShowing
}

// FinishPlayback opens the grid for input once the full sequence has played.
func (c *Controller) FinishPlayback() {
	if c.state == StateShowing {
		c.state = StateInput
	}
}

// Press validates one replayed cell against the sequence.
func (c *Controller) Press(cell int) PressOutcome {
	if c.state != StateInput || cell < 0 || cell >= Cells {
		return PressIgnored
	}

	if cell != c.sequence[len(c.input)] {
		c.state = StateGameOver
		return PressGameOver
	}

	c.input = append(c.input, cell)
	if len(c.input) == len(c.sequence) {
		c.level++
		c.state = StateIdle
		return PressLevelComplete
	}
	return PressMatched
}

// Finalize scores the ended session.
func (c *Controller) Finalize(now time.Time) game.Result {
	return game.NewMemoryResult(c.level, now)
}
