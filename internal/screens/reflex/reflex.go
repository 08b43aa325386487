// Package reflex is the reaction-time game screen.
package reflex

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/neuroboost/internal/game"
	"github.com/abhisek/neuroboost/internal/history"
	rgame "github.com/abhisek/neuroboost/internal/reflex"
	"github.com/abhisek/neuroboost/internal/router"
	"github.com/abhisek/neuroboost/internal/screen"
	"github.com/abhisek/neuroboost/internal/ui/layout"
	"github.com/abhisek/neuroboost/internal/ui/theme"
)

const resultPause = time.Second

// screenSeq hands out a unique id per screen instance, so a timer left in
// flight by a popped screen can never be mistaken for one of ours.
var screenSeq atomic.Uint64

// ReflexScreen implements screen.Screen for the reaction-time game.
type ReflexScreen struct {
	id     uint64
	ctrl   *rgame.Controller
	hist   *history.Store
	result *game.Result
}

var _ screen.Screen = (*ReflexScreen)(nil)
var _ screen.KeyHintProvider = (*ReflexScreen)(nil)

// New creates a new ReflexScreen recording results into hist.
func New(hist *history.Store) *ReflexScreen {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	return &ReflexScreen{
		id:   screenSeq.Add(1),
		ctrl: rgame.New(rng),
		hist: hist,
	}
}

func (s *ReflexScreen) Init() tea.Cmd {
	gen, delay := s.ctrl.Start()
	return s.armCmd(gen, delay)
}

func (s *ReflexScreen) Title() string {
	return "Reflex"
}

func (s *ReflexScreen) KeyHints() []layout.KeyHint {
	if s.result != nil {
		return []layout.KeyHint{
			{Key: "R", Description: "Play again"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Press"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReflexScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case armMsg:
		if msg.id != s.id {
			return s, nil
		}
		s.ctrl.Arm(msg.gen, time.Now())
		return s, nil

	case pauseMsg:
		if msg.id != s.id {
			return s, nil
		}
		switch s.ctrl.State() {
		case rgame.StateResult, rgame.StateTooEarly:
			gen, delay := s.ctrl.NextRound()
			return s, s.armCmd(gen, delay)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ReflexScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.result != nil {
		switch key {
		case "r", "R":
			s.result = nil
			gen, delay := s.ctrl.Start()
			return s, s.armCmd(gen, delay)
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if key != "space" && key != " " && key != "enter" {
		return s, nil
	}

	switch s.ctrl.Press(time.Now()) {
	case rgame.PressTooEarly, rgame.PressRecorded:
		return s, s.pauseCmd()

	case rgame.PressFinished:
		res := s.ctrl.Finalize(time.Now())
		s.result = &res
		s.hist.Append(context.Background(), res)
		return s, nil
	}
	return s, nil
}

func (s *ReflexScreen) View(width, height int) string {
	var body string

	switch {
	case s.result != nil:
		body = strings.Join([]string{
			theme.Title.Render("SESSION COMPLETE"),
			"",
			theme.ScoreBig.Render(fmt.Sprintf("Score: %d", s.result.Score)),
			theme.Body.Render(s.result.Details),
			"",
			theme.Hint.Render("R to play again, Esc for menu"),
		}, "\n")

	case s.ctrl.State() == rgame.StateWaiting:
		body = strings.Join([]string{
			roundLine(s.ctrl.Round()),
			"",
			theme.Incorrect.Render("Wait for it..."),
			theme.Hint.Render("Press SPACE the moment the signal turns green"),
		}, "\n")

	case s.ctrl.State() == rgame.StateClick:
		body = strings.Join([]string{
			roundLine(s.ctrl.Round()),
			"",
			theme.Correct.Render("PRESS NOW!"),
		}, "\n")

	case s.ctrl.State() == rgame.StateTooEarly:
		body = strings.Join([]string{
			roundLine(s.ctrl.Round()),
			"",
			theme.Incorrect.Render("Too early!"),
			theme.Hint.Render("Hold on for the green signal"),
		}, "\n")

	case s.ctrl.State() == rgame.StateResult:
		body = strings.Join([]string{
			roundLine(s.ctrl.Round()),
			"",
			theme.ScoreBig.Render(fmt.Sprintf("%d ms", s.ctrl.LastReaction())),
		}, "\n")

	default:
		body = theme.Hint.Render("Get ready...")
	}

	card := theme.Card.Width(44).Align(lipgloss.Center).Render(body)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

func roundLine(round int) string {
	return theme.Subtitle.Render(fmt.Sprintf("Round %d / %d", round, rgame.MaxAttempts))
}

// armCmd schedules the go signal for the given round generation.
func (s *ReflexScreen) armCmd(gen int, delay time.Duration) tea.Cmd {
	id := s.id
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return armMsg{id: id, gen: gen}
	})
}

func (s *ReflexScreen) pauseCmd() tea.Cmd {
	id := s.id
	return tea.Tick(resultPause, func(time.Time) tea.Msg {
		return pauseMsg{id: id}
	})
}
