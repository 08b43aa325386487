// Package reflex implements the reaction-time game: five rounds of waiting
// for a go signal that arrives after a random delay, scored on mean latency.
package reflex

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/neuroboost/internal/game"
)

// State identifies a phase of the reflex session state machine.
type State int

const (
	StateIdle State = iota
	StateWaiting
	StateClick
	StateResult
	StateTooEarly
)

// MaxAttempts is the number of recorded rounds per session.
const MaxAttempts = 5

const (
	minDelay  = 2000 * time.Millisecond
	delaySpan = 3000 // extra milliseconds on top of minDelay, exclusive
)

// PressOutcome reports what a press event did to the state machine.
type PressOutcome int

const (
	// PressIgnored: the press happened in a state with no press semantics.
	PressIgnored PressOutcome = iota
	// PressTooEarly: pressed during WAITING; attempt not recorded.
	PressTooEarly
	// PressRecorded: a reaction time was recorded, more rounds remain.
	PressRecorded
	// PressFinished: the final reaction time was recorded.
	PressFinished
)

// Controller drives one reflex session. It owns no timers: the caller
// schedules the WAITING→CLICK transition after the delay returned by Start
// or NextRound, then reports it back through Arm with the generation it was
// given. Entering WAITING (or leaving it early) bumps the generation, so a
// timer scheduled for a round that has since been abandoned arms nothing.
type Controller struct {
	rng      *rand.Rand
	state    State
	gen      int
	attempts []int
	tReady   time.Time
	last     int
}

// New creates an idle controller drawing round delays from rng.
func New(rng *rand.Rand) *Controller {
	return &Controller{rng: rng, state: StateIdle}
}

func (c *Controller) State() State { return c.state }

// Attempts returns the recorded reaction times in milliseconds.
func (c *Controller) Attempts() []int {
	out := make([]int, len(c.attempts))
	copy(out, c.attempts)
	return out
}

// Round returns the 1-based number of the round being played.
func (c *Controller) Round() int { return len(c.attempts) + 1 }

// LastReaction returns the most recently recorded reaction time in ms.
func (c *Controller) LastReaction() int { return c.last }

// Average returns the rounded mean of the recorded attempts.
func (c *Controller) Average() int { return game.Mean(c.attempts) }

// Done reports whether all rounds have been recorded.
func (c *Controller) Done() bool { return len(c.attempts) >= MaxAttempts }

// Start begins a new session at round 1 and returns the generation and
// random delay after which the caller must invoke Arm.
func (c *Controller) Start() (gen int, delay time.Duration) {
	c.attempts = nil
	c.last = 0
	return c.rearm()
}

// NextRound enters WAITING for the next round (after RESULT) or retries the
// current one (after TOO_EARLY).
func (c *Controller) NextRound() (gen int, delay time.Duration) {
	return c.rearm()
}

func (c *Controller) rearm() (int, time.Duration) {
	c.gen++
	c.state = StateWaiting
	delay := minDelay + time.Duration(c.rng.IntN(delaySpan))*time.Millisecond
	return c.gen, delay
}

// Arm applies the scheduled WAITING→CLICK transition and records the ready
// timestamp. It reports false, changing nothing, when gen is stale or the
// machine has left WAITING.
func (c *Controller) Arm(gen int, now time.Time) bool {
	if gen != c.gen || c.state != StateWaiting {
		return false
	}
	c.state = StateClick
	c.tReady = now
	return true
}

// Press handles a press event at time now.
func (c *Controller) Press(now time.Time) PressOutcome {
	switch c.state {
	case StateWaiting:
		// Invalidate the pending arm timer for this round.
		c.gen++
		c.state = StateTooEarly
		return PressTooEarly

	case StateClick:
		ms := int(now.Sub(c.tReady).Round(time.Millisecond).Milliseconds())
		if ms < 0 {
			ms = 0
		}
		c.last = ms
		c.attempts = append(c.attempts, ms)
		if c.Done() {
			c.state = StateIdle
			return PressFinished
		}
		c.state = StateResult
		return PressRecorded
	}
	return PressIgnored
}

// Finalize scores the completed session.
func (c *Controller) Finalize(now time.Time) game.Result {
	return game.NewReflexResult(c.attempts, now)
}
