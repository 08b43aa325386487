// Package riddle is the AI riddle screen: one riddle at a time, with the
// hint and answer hidden behind key presses.
package riddle

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/neuroboost/internal/riddle"
	"github.com/abhisek/neuroboost/internal/router"
	"github.com/abhisek/neuroboost/internal/screen"
	"github.com/abhisek/neuroboost/internal/ui/layout"
	"github.com/abhisek/neuroboost/internal/ui/theme"
)

const unavailableMsg = "なぞなぞを生成できませんでした。しばらくしてからもう一度お試しください。"

// riddleLoadedMsg carries the generated riddle or the generation failure.
type riddleLoadedMsg struct {
	riddle *riddle.Riddle
	err    error
}

// RiddleScreen implements screen.Screen for AI riddles.
type RiddleScreen struct {
	svc        *riddle.Service
	current    *riddle.Riddle
	loading    bool
	failed     bool
	showHint   bool
	showAnswer bool
}

var _ screen.Screen = (*RiddleScreen)(nil)
var _ screen.KeyHintProvider = (*RiddleScreen)(nil)

// New creates a new RiddleScreen backed by svc.
func New(svc *riddle.Service) *RiddleScreen {
	return &RiddleScreen{svc: svc}
}

func (s *RiddleScreen) Init() tea.Cmd {
	return s.loadCmd()
}

func (s *RiddleScreen) Title() string {
	return "Riddle"
}

func (s *RiddleScreen) KeyHints() []layout.KeyHint {
	if s.loading {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if s.failed {
		return []layout.KeyHint{
			{Key: "N", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{}
	if !s.showHint {
		hints = append(hints, layout.KeyHint{Key: "H", Description: "Hint"})
	}
	if !s.showAnswer {
		hints = append(hints, layout.KeyHint{Key: "A", Description: "Answer"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "N", Description: "New riddle"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
	return hints
}

func (s *RiddleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case riddleLoadedMsg:
		s.loading = false
		if msg.err != nil || msg.riddle == nil {
			s.failed = true
			return s, nil
		}
		s.current = msg.riddle
		s.failed = false
		s.showHint = false
		s.showAnswer = false
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "h", "H":
			if s.current != nil && !s.loading {
				s.showHint = true
			}
			return s, nil
		case "a", "A":
			if s.current != nil && !s.loading {
				s.showAnswer = true
			}
			return s, nil
		case "n", "N":
			if !s.loading {
				return s, s.loadCmd()
			}
			return s, nil
		case "enter":
			if s.failed {
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *RiddleScreen) View(width, height int) string {
	var body string

	switch {
	case s.loading:
		body = theme.Hint.Render("考え中...")

	case s.failed:
		body = strings.Join([]string{
			theme.Incorrect.Render(unavailableMsg),
			"",
			theme.Hint.Render("N to retry"),
		}, "\n")

	case s.current != nil:
		lines := []string{
			theme.Title.Render("なぞなぞ"),
			"",
			theme.Body.Render(s.current.Question),
		}
		if s.showHint {
			lines = append(lines, "", theme.Hint.Render("ヒント: "+s.current.Hint))
		}
		if s.showAnswer {
			lines = append(lines, "", theme.Correct.Render("答え: "+s.current.Answer))
		}
		body = strings.Join(lines, "\n")
	}

	card := theme.Card.Width(56).Align(lipgloss.Center).Render(body)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

// loadCmd generates a riddle asynchronously.
func (s *RiddleScreen) loadCmd() tea.Cmd {
	s.loading = true
	svc := s.svc
	return func() tea.Msg {
		r, err := svc.Generate(context.Background())
		return riddleLoadedMsg{riddle: r, err: err}
	}
}
