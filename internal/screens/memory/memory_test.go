package memory

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/neuroboost/internal/game"
	"github.com/abhisek/neuroboost/internal/history"
	mgame "github.com/abhisek/neuroboost/internal/memory"
	"github.com/abhisek/neuroboost/internal/screen"
	"github.com/abhisek/neuroboost/internal/store"
)

// memKV implements store.KVRepo in memory for testing.
type memKV struct {
	value   []byte
	version int64
}

func (m *memKV) Get(context.Context, string) ([]byte, int64, error) {
	return m.value, m.version, nil
}

func (m *memKV) Put(_ context.Context, _ string, value []byte, expect int64) error {
	if expect != m.version {
		return store.ErrVersionConflict
	}
	m.value = value
	m.version++
	return nil
}

func (m *memKV) Delete(context.Context, string) error {
	m.value, m.version = nil, 0
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testMemoryScreen() (*MemoryScreen, *history.Store) {
	hist := history.Load(context.Background(), &memKV{})
	return New(hist), hist
}

// cellKey returns the number key that taps grid cell idx.
func cellKey(idx int) tea.KeyPressMsg {
	return keyPress(rune('1' + idx))
}

// playback drives the current level's animation to the open-for-input state.
func playback(t *testing.T, s *MemoryScreen) *MemoryScreen {
	t.Helper()
	var scr screen.Screen = s
	seq := s.ctrl.Sequence()
	for i := range seq {
		scr, _ = scr.Update(playMsg{id: s.id, gen: s.gen, idx: i, on: true})
		scr, _ = scr.Update(playMsg{id: s.id, gen: s.gen, idx: i, on: false})
	}
	scr, _ = scr.Update(openMsg{id: s.id, gen: s.gen})
	return scr.(*MemoryScreen)
}

func TestMemoryScreen_Title(t *testing.T) {
	s, _ := testMemoryScreen()
	if s.Title() != "Memory" {
		t.Errorf("Title = %q, want %q", s.Title(), "Memory")
	}
}

func TestMemoryScreen_InitBeginsPlayback(t *testing.T) {
	s, _ := testMemoryScreen()
	cmd := s.Init()

	if s.ctrl.State() != mgame.StateShowing {
		t.Errorf("state = %v, want StateShowing", s.ctrl.State())
	}
	if s.ctrl.Level() != 1 || len(s.ctrl.Sequence()) != 1 {
		t.Errorf("level %d with %d cells, want level 1 with 1 cell",
			s.ctrl.Level(), len(s.ctrl.Sequence()))
	}
	if cmd == nil {
		t.Fatal("expected a command starting the animation")
	}
	msg, ok := cmd().(playMsg)
	if !ok || msg.idx != 0 || !msg.on {
		t.Errorf("first animation msg = %+v, want idx 0 lit", msg)
	}
}

func TestMemoryScreen_PlaybackLightsSequence(t *testing.T) {
	s, _ := testMemoryScreen()
	s.Init()
	seq := s.ctrl.Sequence()

	var scr screen.Screen = s
	scr, _ = scr.Update(playMsg{id: s.id, gen: s.gen, idx: 0, on: true})
	ss := scr.(*MemoryScreen)
	if ss.lit != seq[0] {
		t.Errorf("lit = %d, want %d", ss.lit, seq[0])
	}

	scr, _ = ss.Update(playMsg{id: s.id, gen: s.gen, idx: 0, on: false})
	ss = scr.(*MemoryScreen)
	if ss.lit != -1 {
		t.Errorf("lit = %d, want -1 after the highlight", ss.lit)
	}

	scr, _ = ss.Update(openMsg{id: s.id, gen: s.gen})
	ss = scr.(*MemoryScreen)
	if ss.ctrl.State() != mgame.StateInput {
		t.Errorf("state = %v, want StateInput", ss.ctrl.State())
	}
}

func TestMemoryScreen_StalePlaybackIgnored(t *testing.T) {
	s, _ := testMemoryScreen()
	s.Init()

	var scr screen.Screen = s
	scr, cmd := scr.Update(playMsg{id: s.id, gen: s.gen - 1, idx: 0, on: true})
	ss := scr.(*MemoryScreen)
	if ss.lit != -1 {
		t.Errorf("lit = %d, want -1 after a stale play msg", ss.lit)
	}
	if cmd != nil {
		t.Error("expected no command for a stale play msg")
	}
}

func TestMemoryScreen_KeysIgnoredDuringPlayback(t *testing.T) {
	s, _ := testMemoryScreen()
	s.Init()

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('1'))
	ss := scr.(*MemoryScreen)
	if ss.ctrl.State() != mgame.StateShowing {
		t.Errorf("state = %v, want StateShowing", ss.ctrl.State())
	}
	if ss.result != nil {
		t.Error("expected no result from a press during playback")
	}
}

func TestMemoryScreen_CorrectRecallAdvancesLevel(t *testing.T) {
	s, _ := testMemoryScreen()
	s.Init()
	ss := playback(t, s)
	seq := ss.ctrl.Sequence()

	var scr screen.Screen = ss
	scr, cmd := scr.Update(cellKey(seq[0]))
	ss = scr.(*MemoryScreen)
	if ss.ctrl.Level() != 2 {
		t.Errorf("level = %d, want 2", ss.ctrl.Level())
	}
	if cmd == nil {
		t.Fatal("expected a command pausing before the next level")
	}

	// The pause elapses and the next, one-longer playback starts. The old
	// prefix must be untouched.
	scr, _ = ss.Update(nextLevelMsg{id: ss.id, gen: ss.gen})
	ss = scr.(*MemoryScreen)
	next := ss.ctrl.Sequence()
	if len(next) != 2 {
		t.Fatalf("sequence len = %d, want 2", len(next))
	}
	if next[0] != seq[0] {
		t.Errorf("sequence[0] = %d, want %d (prefix must be stable)", next[0], seq[0])
	}
	if ss.ctrl.State() != mgame.StateShowing {
		t.Errorf("state = %v, want StateShowing", ss.ctrl.State())
	}
}

func TestMemoryScreen_WrongCellEndsGame(t *testing.T) {
	s, hist := testMemoryScreen()
	s.Init()
	ss := playback(t, s)
	seq := ss.ctrl.Sequence()

	wrong := (seq[0] + 1) % mgame.Cells
	var scr screen.Screen = ss
	scr, _ = scr.Update(cellKey(wrong))
	ss = scr.(*MemoryScreen)

	if ss.result == nil {
		t.Fatal("expected a result after a wrong cell")
	}
	if ss.result.Type != game.TypeMemory {
		t.Errorf("result type = %v, want MEMORY", ss.result.Type)
	}
	if ss.result.Score != 0 {
		t.Errorf("score = %d, want 0 for a level-1 miss", ss.result.Score)
	}
	if ss.result.Details != "Level 1" {
		t.Errorf("details = %q, want %q", ss.result.Details, "Level 1")
	}
	if hist.Len() != 1 {
		t.Errorf("history len = %d, want 1", hist.Len())
	}
}

func TestMemoryScreen_RestartAfterGameOver(t *testing.T) {
	s, _ := testMemoryScreen()
	s.Init()
	ss := playback(t, s)
	seq := ss.ctrl.Sequence()

	var scr screen.Screen = ss
	scr, _ = scr.Update(cellKey((seq[0] + 1) % mgame.Cells))
	scr, cmd := scr.Update(keyPress('r'))
	ss = scr.(*MemoryScreen)

	if ss.result != nil {
		t.Error("expected result to be cleared on restart")
	}
	if ss.ctrl.Level() != 1 || len(ss.ctrl.Sequence()) != 1 {
		t.Errorf("level %d with %d cells, want a fresh level 1",
			ss.ctrl.Level(), len(ss.ctrl.Sequence()))
	}
	if cmd == nil {
		t.Error("expected a command starting the new animation")
	}
}

func TestMemoryScreen_TimersFromOtherInstanceIgnored(t *testing.T) {
	hist := history.Load(context.Background(), &memKV{})

	// A screen is abandoned with its playback timers still in flight.
	old := New(hist)
	old.Init()

	// A fresh instance of the same game replaces it.
	s := New(hist)
	s.Init()

	var scr screen.Screen = s
	scr, cmd := scr.Update(playMsg{id: old.id, gen: old.gen, idx: 0, on: true})
	ss := scr.(*MemoryScreen)
	if ss.lit != -1 {
		t.Errorf("lit = %d, want -1 after a foreign play msg", ss.lit)
	}
	if cmd != nil {
		t.Error("expected no command for a foreign play msg")
	}

	// A foreign open msg must not end our playback early.
	scr, _ = ss.Update(openMsg{id: old.id, gen: old.gen})
	ss = scr.(*MemoryScreen)
	if ss.ctrl.State() != mgame.StateShowing {
		t.Errorf("state = %v, want StateShowing", ss.ctrl.State())
	}
}

func TestMemoryScreen_View(t *testing.T) {
	s, _ := testMemoryScreen()
	s.Init()
	if s.View(80, 24) == "" {
		t.Error("expected non-empty view")
	}
}
