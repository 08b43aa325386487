// Package history is the past-results screen, newest first.
package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/neuroboost/internal/game"
	"github.com/abhisek/neuroboost/internal/history"
	"github.com/abhisek/neuroboost/internal/router"
	"github.com/abhisek/neuroboost/internal/screen"
	"github.com/abhisek/neuroboost/internal/ui/layout"
	"github.com/abhisek/neuroboost/internal/ui/theme"
)

// HistoryScreen lists recorded game results.
type HistoryScreen struct {
	hist   *history.Store
	offset int
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen over hist.
func New(hist *history.Store) *HistoryScreen {
	return &HistoryScreen{hist: hist}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		if s.offset < s.hist.Len()-1 {
			s.offset++
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	results := s.hist.All()
	if len(results) == 0 {
		empty := theme.Hint.Render("No games recorded yet. Go play one!")
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(empty)
	}

	// Newest first.
	visible := height - 4
	if visible < 1 {
		visible = 1
	}

	lines := []string{
		theme.Title.Render(fmt.Sprintf("HISTORY — %d games", len(results))),
		"",
	}
	shown := 0
	for i := len(results) - 1 - s.offset; i >= 0 && shown < visible; i-- {
		lines = append(lines, renderRow(results[i]))
		shown++
	}

	body := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
	return body
}

func renderRow(r game.Result) string {
	date := theme.Subtitle.Render(r.Date.Local().Format("2006-01-02 15:04"))
	kind := theme.Selected.Render(fmt.Sprintf("%-12s", string(r.Type)))
	score := theme.ScoreBig.Render(fmt.Sprintf("%5d", r.Score))
	details := theme.Body.Render(r.Details)
	return fmt.Sprintf("%s  %s %s  %s", date, kind, score, details)
}
