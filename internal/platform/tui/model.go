package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/drone-dodger/internal/core"
	"github.com/vovakirdan/drone-dodger/internal/games/dodger"
)

// Layout constants
const (
	detailWidth    = 34 // Width of the band table panel including border
	minWidthDetail = 70 // Below this the panel is not shown
	helpRows       = 1
)

// Source supplies snapshots to a viewer.
type Source interface {
	Latest() dodger.Snapshot
	Geometry() dodger.Geometry
	TickRate() int
	Reset()
}

// Driver is a Source the viewer advances itself on every frame.
type Driver interface {
	Source
	Tick() dodger.Snapshot
}

// Model is the Bubble Tea model for watching a run.
// With a Driver it owns the tick loop; with a plain Source it only redraws
// whatever another goroutine has published.
type Model struct {
	source Source
	driver Driver
	geo    dodger.Geometry
	snap   dodger.Snapshot
	screen *core.Screen
	keys   KeyMap
	help   help.Model
	table  table.Model
	theme  Theme

	width, height int
	showZones     bool
	showDetail    bool
	quitting      bool
}

// NewModel creates a viewer over a source ticked elsewhere.
func NewModel(src Source, width, height int) Model {
	theme := DefaultTheme()
	h := help.New()
	h.ShowAll = false

	m := Model{
		source:    src,
		geo:       src.Geometry(),
		snap:      src.Latest(),
		screen:    core.NewScreen(width, height),
		keys:      DefaultKeyMap(),
		help:      h,
		table:     newBandTable(theme),
		theme:     theme,
		width:     width,
		height:    height,
		showZones: true,
	}
	m.layout()
	return m
}

// NewDrivingModel creates a viewer that advances d once per frame.
func NewDrivingModel(d Driver, width, height int) Model {
	m := NewModel(d, width, height)
	m.driver = d
	return m
}

// WithKeyMap replaces the key bindings.
func (m Model) WithKeyMap(k KeyMap) Model {
	m.keys = k
	return m
}

// WithTheme replaces the chrome styles.
func (m Model) WithTheme(t Theme) Model {
	m.theme = t
	m.table = newBandTable(t)
	return m
}

func newBandTable(theme Theme) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 2},
			{Title: "Start", Width: 6},
			{Title: "End", Width: 6},
			{Title: "Height", Width: 7},
		}),
		table.WithHeight(8),
		table.WithFocused(false),
	)
	s := table.DefaultStyles()
	s.Header = theme.TableHeader
	s.Selected = theme.TableCell
	s.Cell = theme.TableCell
	t.SetStyles(s)
	return t
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.source.TickRate())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reset):
		m.source.Reset()
	case key.Matches(msg, m.keys.Zones):
		m.showZones = !m.showZones
	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail
		m.layout()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	}
	return m, nil
}

// handleTick advances the driver if any and picks up the latest snapshot.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.driver != nil {
		m.snap = m.driver.Tick()
	} else {
		m.snap = m.source.Latest()
	}

	if m.detailVisible() {
		m.table.SetRows(bandRows(m.snap))
	}

	return m, tickCmd(m.source.TickRate())
}

// bandRows formats the planner's free bands for the table.
func bandRows(snap dodger.Snapshot) []table.Row {
	rows := make([]table.Row, 0, len(snap.Zones))
	for i, z := range snap.Zones {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.0f", z.Start),
			fmt.Sprintf("%.0f", z.End),
			fmt.Sprintf("%.0f", z.Height()),
		})
	}
	return rows
}

func (m Model) detailVisible() bool {
	return m.showDetail && m.width >= minWidthDetail
}

// layout sizes the arena screen to what the panel and help leave over.
func (m *Model) layout() {
	w := m.width
	if m.detailVisible() {
		w -= detailWidth
	}
	h := m.height - helpRows
	if m.help.ShowAll {
		h -= len(m.keys.FullHelp()[0]) - 1
	}
	m.screen.Resize(core.Max(w, 1), core.Max(h, 1))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	dodger.Render(m.screen, m.snap, m.geo, dodger.RenderOptions{ShowZones: m.showZones})
	body := RenderScreen(m.screen)

	if m.detailVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.detailView())
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.theme.Help.Render(m.help.View(m.keys)))
}

// detailView renders the band table panel.
func (m Model) detailView() string {
	target := "none"
	if m.snap.Target != nil {
		target = fmt.Sprintf("%.1f", *m.snap.Target)
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.PanelTitle.Render("Free bands"),
		m.table.View(),
		m.theme.PanelText.Render(fmt.Sprintf("target %s", target)),
		m.theme.PanelText.Render(fmt.Sprintf("obstacles %d", len(m.snap.Obstacles))),
	)
	return m.theme.Panel.Width(detailWidth - 2).Render(content)
}

// Snapshot returns the snapshot shown by the last frame.
func (m Model) Snapshot() dodger.Snapshot {
	return m.snap
}

// IsQuitting reports whether the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given model in the foreground.
func Run(m Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
