// Package memory is the sequence-recall game screen. The grid cells map to
// the 1-9 number keys in reading order.
package memory

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
	mgame "github.com/abhisek/neuroboost/internal/memory"
	"github.com/abhisek/neuroboost/internal/router"
	"github.com/abhisek/neuroboost/internal/screen"
	"github.com/abhisek/neuroboost/internal/ui/layout"
	"github.com/abhisek/neuroboost/internal/ui/theme"
)

// screenSeq hands out a unique id per screen instance, so a timer left in
// flight by a popped screen can never be mistaken for one of ours.
var screenSeq atomic.Uint64

// MemoryScreen implements screen.Screen for the sequence-recall game.
type MemoryScreen struct {
	id     uint64
	ctrl   *mgame.Controller
	hist   *history.Store
	result *game.Result
	gen    int
	lit    int // index of the lit cell during playback, -1 when dark
}

var _ screen.Screen = (*MemoryScreen)(nil)
var _ screen.KeyHintProvider = (*MemoryScreen)(nil)

// New creates a new MemoryScreen recording results into hist.
func New(hist *history.Store) *MemoryScreen {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	return &MemoryScreen{
		id:   screenSeq.Add(1),
		ctrl: mgame.New(rng),
		hist: hist,
		lit:  -1,
	}
}

func (s *MemoryScreen) Init() tea.Cmd {
	s.ctrl.Start()
	return s.startPlayback()
}

func (s *MemoryScreen) Title() string {
	return "Memory"
}

func (s *MemoryScreen) KeyHints() []layout.KeyHint {
	if s.result != nil {
		return []layout.KeyHint{
			{Key: "R", Description: "Play again"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.ctrl.State() == mgame.StateInput {
		return []layout.KeyHint{
			{Key: "1-9", Description: "Tap cell"},
			{Key: "Esc", Description: "Quit game"},
		}
	}
	return []layout.KeyHint{
		{Key: "", Description: "Watch the sequence"},
		{Key: "Esc", Description: "Quit game"},
	}
}

// startPlayback advances the sequence by one cell and begins animating it.
// Bumping the generation first orphans any timer from an earlier run.
func (s *MemoryScreen) startPlayback() tea.Cmd {
	s.gen++
	s.lit = -1
	s.ctrl.Advance()
	id, gen := s.id, s.gen
	return func() tea.Msg {
		return playMsg{id: id, gen: gen, idx: 0, on: true}
	}
}

func (s *MemoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case playMsg:
		return s.handlePlay(msg)

	case openMsg:
		if msg.id == s.id && msg.gen == s.gen {
			s.ctrl.FinishPlayback()
		}
		return s, nil

	case nextLevelMsg:
		if msg.id != s.id || msg.gen != s.gen || s.ctrl.State() != mgame.StateIdle || s.result != nil {
			return s, nil
		}
		return s, s.startPlayback()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *MemoryScreen) handlePlay(msg playMsg) (screen.Screen, tea.Cmd) {
	if msg.id != s.id || msg.gen != s.gen || s.ctrl.State() != mgame.StateShowing {
		return s, nil
	}

	seq := s.ctrl.Sequence()
	if msg.idx >= len(seq) {
		return s, nil
	}

	if msg.on {
		s.lit = seq[msg.idx]
		return s, playCmd(mgame.HighlightDuration, playMsg{id: msg.id, gen: msg.gen, idx: msg.idx, on: false})
	}

	s.lit = -1
	if msg.idx+1 < len(seq) {
		return s, playCmd(mgame.GapDuration, playMsg{id: msg.id, gen: msg.gen, idx: msg.idx + 1, on: true})
	}
	id, gen := msg.id, msg.gen
	return s, tea.Tick(mgame.GapDuration, func(time.Time) tea.Msg {
		return openMsg{id: id, gen: gen}
	})
}

func (s *MemoryScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.result != nil {
		switch key {
		case "r", "R":
			s.result = nil
			s.ctrl.Start()
			return s, s.startPlayback()
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return s, nil
	}
	cell := int(key[0] - '1')

	switch s.ctrl.Press(cell) {
	case mgame.PressLevelComplete:
		id, gen := s.id, s.gen
		return s, tea.Tick(mgame.LevelPause, func(time.Time) tea.Msg {
			return nextLevelMsg{id: id, gen: gen}
		})

	case mgame.PressGameOver:
		res := s.ctrl.Finalize(time.Now())
		s.result = &res
		s.hist.Append(context.Background(), res)
		return s, nil
	}
	return s, nil
}

func (s *MemoryScreen) View(width, height int) string {
	var body string

	if s.result != nil {
		body = strings.Join([]string{
			theme.Title.Render("GAME OVER"),
			"",
			theme.ScoreBig.Render(fmt.Sprintf("Score: %d", s.result.Score)),
			theme.Body.Render(s.result.Details),
			"",
			theme.Hint.Render("R to play again, Esc for menu"),
		}, "\n")
	} else {
		var status string
		switch s.ctrl.State() {
		case mgame.StateShowing:
			status = theme.Countdown.Render("Watch carefully...")
		case mgame.StateInput:
			status = theme.Correct.Render(fmt.Sprintf(
				"Your turn  (%d / %d)", s.ctrl.InputLen(), len(s.ctrl.Sequence())))
		default:
			status = theme.Hint.Render("Nice! Next level...")
		}

		body = strings.Join([]string{
			theme.Subtitle.Render(fmt.Sprintf("Level %d", s.ctrl.Level())),
			"",
			s.renderGrid(),
			"",
			status,
		}, "\n")
	}

	card := theme.Card.Width(44).Align(lipgloss.Center).Render(body)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

// renderGrid draws the 3×3 grid with the playback highlight.
func (s *MemoryScreen) renderGrid() string {
	rows := make([]string, 0, mgame.GridSize)
	for r := 0; r < mgame.GridSize; r++ {
		cells := make([]string, 0, mgame.GridSize)
		for c := 0; c < mgame.GridSize; c++ {
			idx := r*mgame.GridSize + c
			label := fmt.Sprintf("%d", idx+1)
			if idx == s.lit {
				cells = append(cells, theme.GridCellLit.Render(label))
			} else {
				cells = append(cells, theme.GridCell.Render(label))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func playCmd(after time.Duration, msg playMsg) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return msg
	})
}
