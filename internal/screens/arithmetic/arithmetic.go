// Package arithmetic is the 30-second calculation game screen.
package arithmetic

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	agame "github.com/abhisek/neuroboost/internal/arithmetic"
	"github.com/abhisek/neuroboost/internal/game"
	"github.com/abhisek/neuroboost/internal/history"
	"github.com/abhisek/neuroboost/internal/router"
	"github.com/abhisek/neuroboost/internal/screen"
	"github.com/abhisek/neuroboost/internal/ui/components"
	"github.com/abhisek/neuroboost/internal/ui/layout"
	"github.com/abhisek/neuroboost/internal/ui/theme"
)

const feedbackFlash = 500 * time.Millisecond

// screenSeq hands out a unique id per screen instance, so a timer left in
// flight by a popped screen can never be mistaken for one of ours.
var screenSeq atomic.Uint64

// ArithmeticScreen implements screen.Screen for the calculation game.
type ArithmeticScreen struct {
	id       uint64
	ctrl     *agame.Controller
	hist     *history.Store
	input    components.TextInput
	result   *game.Result
	gen      int
	feedSeq  int
	feedback agame.Verdict
	hasFeed  bool
}

var _ screen.Screen = (*ArithmeticScreen)(nil)
var _ screen.KeyHintProvider = (*ArithmeticScreen)(nil)

// New creates a new ArithmeticScreen recording results into hist.
func New(hist *history.Store) *ArithmeticScreen {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	return &ArithmeticScreen{
		id:    screenSeq.Add(1),
		ctrl:  agame.New(rng),
		hist:  hist,
		input: components.NewTextInput("Answer...", true, 6),
	}
}

func (s *ArithmeticScreen) Init() tea.Cmd {
	s.ctrl.Start()
	s.gen++
	return tea.Batch(s.input.Init(), s.tickCmd())
}

func (s *ArithmeticScreen) Title() string {
	return "Calculation"
}

func (s *ArithmeticScreen) KeyHints() []layout.KeyHint {
	if s.result != nil {
		return []layout.KeyHint{
			{Key: "R", Description: "Play again"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit game"},
	}
}

func (s *ArithmeticScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.id != s.id || msg.gen != s.gen || s.result != nil {
			return s, nil
		}
		if expired := s.ctrl.Tick(); expired {
			res := s.ctrl.Finalize(time.Now())
			s.result = &res
			s.hist.Append(context.Background(), res)
			return s, nil
		}
		return s, s.tickCmd()

	case feedbackClearMsg:
		if msg.id == s.id && msg.seq == s.feedSeq {
			s.hasFeed = false
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.result == nil {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ArithmeticScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.result != nil {
		switch key {
		case "r", "R":
			s.result = nil
			s.hasFeed = false
			s.input.Reset()
			s.ctrl.Start()
			s.gen++
			return s, s.tickCmd()
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if key == "enter" {
		verdict := s.ctrl.Submit(s.input.Value())
		if verdict == agame.VerdictIgnored {
			return s, nil
		}
		s.input.Reset()
		s.feedback = verdict
		s.hasFeed = true
		s.feedSeq++
		return s, s.feedbackClearCmd()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ArithmeticScreen) View(width, height int) string {
	var body string

	if s.result != nil {
		body = strings.Join([]string{
			theme.Title.Render("TIME'S UP"),
			"",
			theme.ScoreBig.Render(fmt.Sprintf("Score: %d", s.result.Score)),
			theme.Body.Render(s.result.Details),
			"",
			theme.Hint.Render("R to play again, Esc for menu"),
		}, "\n")
	} else {
		bar := components.NewProgressBar(
			"", float64(s.ctrl.TimeLeft())/float64(agame.SessionSeconds), false, 36)

		feedback := " "
		if s.hasFeed {
			if s.feedback == agame.VerdictCorrect {
				feedback = theme.Correct.Render("Correct!")
			} else {
				feedback = theme.Incorrect.Render("Try again")
			}
		}

		body = strings.Join([]string{
			theme.Countdown.Render(fmt.Sprintf("⏱ %2d s", s.ctrl.TimeLeft())),
			bar.View(),
			"",
			theme.Subtitle.Render(fmt.Sprintf("Solved: %d", s.ctrl.Score())),
			"",
			theme.Title.Render(s.ctrl.Problem().String() + " = ?"),
			"",
			s.input.View(),
			feedback,
		}, "\n")
	}

	card := theme.Card.Width(44).Align(lipgloss.Center).Render(body)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

// tickCmd schedules the next countdown second for the current session.
func (s *ArithmeticScreen) tickCmd() tea.Cmd {
	id, gen := s.id, s.gen
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{id: id, gen: gen, t: t}
	})
}

func (s *ArithmeticScreen) feedbackClearCmd() tea.Cmd {
	id, seq := s.id, s.feedSeq
	return tea.Tick(feedbackFlash, func(time.Time) tea.Msg {
		return feedbackClearMsg{id: id, seq: seq}
	})
}
