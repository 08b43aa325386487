// Package arithmetic implements the calculation speed-run: a fixed 30-second
// window of generated mental-math problems, counting correct answers.
package arithmetic

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/neuroboost/internal/game"
)

// SessionSeconds is the length of the answer window.
const SessionSeconds = 30

// Verdict reports what an answer submission did.
type Verdict int

const (
	// VerdictIgnored: not playing, or the input was not an integer.
	VerdictIgnored Verdict = iota
	VerdictCorrect
	VerdictWrong
)

// Controller drives one calculation session. The caller owns the 1 Hz
// countdown timer and reports each elapsed second via Tick; exactly one
// problem is live at any time while playing.
type Controller struct {
	rng      *rand.Rand
	playing  bool
	score    int
	timeLeft int
	problem  Problem
}

// New creates an idle controller drawing problems from rng.
func New(rng *rand.Rand) *Controller {
	return &Controller{rng: rng, timeLeft: SessionSeconds}
}

func (c *Controller) Playing() bool    { return c.playing }
func (c *Controller) Score() int       { return c.score }
func (c *Controller) TimeLeft() int    { return c.timeLeft }
func (c *Controller) Problem() Problem { return c.problem }

// Start resets the session and generates the first problem.
func (c *Controller) Start() {
	c.score = 0
	c.timeLeft = SessionSeconds
	c.playing = true
	c.problem = NewProblem(c.rng)
}

// Submit validates an answer. Non-numeric input is ignored with no state
// change. A correct answer advances to a fresh problem; a wrong one leaves
// the live problem unchanged.
func (c *Controller) Submit(input string) Verdict {
	if !c.playing {
		return VerdictIgnored
	}
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return VerdictIgnored
	}
	if v != c.problem.Answer {
		return VerdictWrong
	}
	c.score++
	c.problem = NewProblem(c.rng)
	return VerdictCorrect
}

// Tick consumes one elapsed second of the countdown and reports whether the
// window just expired. Ticks outside an active session do nothing.
func (c *Controller) Tick() (expired bool) {
	if !c.playing {
		return false
	}
	c.timeLeft--
	if c.timeLeft <= 0 {
		c.timeLeft = 0
		c.playing = false
		return true
	}
	return false
}

// Finalize scores the completed session.
func (c *Controller) Finalize(now time.Time) game.Result {
	return game.NewCalculationResult(c.score, now)
}
