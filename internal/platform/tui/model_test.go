package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/drone-dodger/internal/core"
	"github.com/vovakirdan/drone-dodger/internal/games/dodger"
)

// fakeSource counts calls and serves canned snapshots.
type fakeSource struct {
	snap   dodger.Snapshot
	ticks  int
	resets int
}

func (f *fakeSource) Latest() dodger.Snapshot { return f.snap }
func (f *fakeSource) TickRate() int           { return 30 }
func (f *fakeSource) Reset()                  { f.resets++ }

func (f *fakeSource) Geometry() dodger.Geometry {
	return dodger.Geometry{ArenaW: 800, ArenaH: 600, CraftX: 100, CraftW: 40, CraftH: 40}
}

func (f *fakeSource) Tick() dodger.Snapshot {
	f.ticks++
	f.snap.Tick++
	f.snap.Score++
	return f.snap
}

func newFakeSource() *fakeSource {
	target := 280.0
	return &fakeSource{snap: dodger.Snapshot{
		CraftY: 280,
		Level:  1,
		Phase:  dodger.PhaseRunning,
		Zones:  []core.Interval{{Start: 0, End: 600}},
		Target: &target,
	}}
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestDrivingModelTicksSource(t *testing.T) {
	src := newFakeSource()
	m := NewDrivingModel(src, 82, 28)

	var cmd tea.Cmd
	for i := 0; i < 3; i++ {
		m, cmd = update(t, m, TickMsg{})
		if cmd == nil {
			t.Fatal("tick should schedule the next frame")
		}
	}
	if src.ticks != 3 {
		t.Errorf("driver ticks = %d, expected 3", src.ticks)
	}
	if m.Snapshot().Score != 3 {
		t.Errorf("model snapshot score = %d, expected 3", m.Snapshot().Score)
	}
}

func TestSpectatorModelDoesNotTick(t *testing.T) {
	src := newFakeSource()
	m := NewModel(src, 82, 28)

	src.snap.Score = 41
	m, _ = update(t, m, TickMsg{})

	if src.ticks != 0 {
		t.Errorf("spectator ticked the source %d times", src.ticks)
	}
	if m.Snapshot().Score != 41 {
		t.Errorf("spectator should show the latest snapshot, score = %d", m.Snapshot().Score)
	}
}

func TestResetKey(t *testing.T) {
	src := newFakeSource()

	m := NewModel(src, 82, 28)
	update(t, m, runeKey("r"))
	if src.resets != 1 {
		t.Errorf("resets = %d, expected 1", src.resets)
	}

	spectator := NewModel(src, 82, 28).WithKeyMap(SpectatorKeyMap())
	update(t, spectator, runeKey("r"))
	if src.resets != 1 {
		t.Error("spectator key map must not reset the run")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runeKey("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		m := NewModel(newFakeSource(), 82, 28)
		m, cmd := update(t, m, msg)
		if !m.IsQuitting() || cmd == nil {
			t.Errorf("%q should quit", msg.String())
		}
		if m.View() != "" {
			t.Errorf("%q: quitting view should be empty", msg.String())
		}
	}
}

func TestViewShowsHUDAndHelp(t *testing.T) {
	src := newFakeSource()
	m := NewDrivingModel(src, 82, 28)
	m, _ = update(t, m, TickMsg{})

	view := m.View()
	if !strings.Contains(view, "Score: 1") {
		t.Errorf("view missing HUD:\n%s", view)
	}
	if !strings.Contains(view, "reset run") {
		t.Errorf("view missing help line:\n%s", view)
	}
}

func TestDetailPanel(t *testing.T) {
	src := newFakeSource()
	m := NewDrivingModel(src, 100, 30)

	m, _ = update(t, m, runeKey("d"))
	m, _ = update(t, m, TickMsg{})

	view := m.View()
	if !strings.Contains(view, "Free bands") || !strings.Contains(view, "target 280.0") {
		t.Errorf("detail panel missing:\n%s", view)
	}
	if m.screen.Width() != 100-detailWidth {
		t.Errorf("arena width with panel = %d, expected %d", m.screen.Width(), 100-detailWidth)
	}

	// Too narrow for the panel: it stays hidden.
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})
	if strings.Contains(m.View(), "Free bands") {
		t.Error("panel should be hidden on narrow terminals")
	}
	if m.screen.Width() != 60 {
		t.Errorf("arena width = %d, expected 60", m.screen.Width())
	}
}

func TestZonesToggle(t *testing.T) {
	m := NewModel(newFakeSource(), 82, 28)
	if !m.showZones {
		t.Fatal("zones should be shown by default")
	}
	m, _ = update(t, m, runeKey("z"))
	if m.showZones {
		t.Error("z should hide zones")
	}
}

func TestBandRows(t *testing.T) {
	snap := dodger.Snapshot{Zones: []core.Interval{{Start: 0, End: 250}, {Start: 350, End: 600}}}
	rows := bandRows(snap)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, expected 2", len(rows))
	}
	if rows[1][1] != "350" || rows[1][3] != "250" {
		t.Errorf("second row = %v", rows[1])
	}
}
