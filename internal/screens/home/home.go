// Package home is the main menu screen with the performance dashboard.
package home

import (
	"context"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/neuroboost/internal/analysis"
	"github.com/abhisek/neuroboost/internal/history"
	"github.com/abhisek/neuroboost/internal/riddle"
	"github.com/abhisek/neuroboost/internal/router"
	"github.com/abhisek/neuroboost/internal/screen"
	arithmeticscreen "github.com/abhisek/neuroboost/internal/screens/arithmetic"
	historyscreen "github.com/abhisek/neuroboost/internal/screens/history"
	memoryscreen "github.com/abhisek/neuroboost/internal/screens/memory"
	reflexscreen "github.com/abhisek/neuroboost/internal/screens/reflex"
	riddlescreen "github.com/abhisek/neuroboost/internal/screens/riddle"
	"github.com/abhisek/neuroboost/internal/ui/components"
	"github.com/abhisek/neuroboost/internal/ui/theme"
)

// analysisMsg carries the AI performance summary for the dashboard.
type analysisMsg struct {
	text string
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu         components.Menu
	hist         *history.Store
	analysisSvc  *analysis.Service
	analysisText string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. riddleSvc and analysisSvc may be nil when
// no LLM provider is configured; the AI entries degrade gracefully.
func New(hist *history.Store, riddleSvc *riddle.Service, analysisSvc *analysis.Service) *HomeScreen {
	items := []components.MenuItem{
		{Label: "REFLEX GAME", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: reflexscreen.New(hist)}
			}
		}},
		{Label: "CALCULATION", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: arithmeticscreen.New(hist)}
			}
		}},
		{Label: "MEMORY GAME", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: memoryscreen.New(hist)}
			}
		}},
		{Label: "AI RIDDLE", Disabled: riddleSvc == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: riddlescreen.New(riddleSvc)}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: historyscreen.New(hist)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:        components.NewMenu(items),
		hist:        hist,
		analysisSvc: analysisSvc,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.analysisSvc == nil {
		return nil
	}
	svc := h.analysisSvc
	results := h.hist.All()
	return func() tea.Msg {
		return analysisMsg{text: svc.Analyze(context.Background(), results)}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if am, ok := msg.(analysisMsg); ok {
		h.analysisText = am.text
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		theme.Title.Render("N E U R O B O O S T"),
		theme.Subtitle.Render("Daily brain training"),
		"",
		h.renderDashboard(),
		"",
		h.menu.View(),
	)

	if h.analysisText != "" {
		advice := theme.Card.Width(56).Render(
			theme.Hint.Render("AI コーチ") + "\n" + theme.Body.Render(h.analysisText))
		sections = append(sections, "", advice)
	}

	content := strings.Join(sections, "\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// renderDashboard shows totals, the best score, and a score sparkline over
// the last ten games.
func (h *HomeScreen) renderDashboard() string {
	results := h.hist.All()
	if len(results) == 0 {
		return theme.Hint.Render("Play a game to start your stats")
	}

	best := 0
	for _, r := range results {
		if r.Score > best {
			best = r.Score
		}
	}

	recent := results
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	scores := make([]int, len(recent))
	for i, r := range recent {
		scores[i] = r.Score
	}

	stats := theme.Body.Render("Games: ") + theme.ScoreBig.Render(strconv.Itoa(len(results))) +
		theme.Body.Render("   Best: ") + theme.ScoreBig.Render(strconv.Itoa(best)) +
		theme.Body.Render("   Trend: ") + theme.Sparkline.Render(components.Sparkline(scores))
	return stats
}
