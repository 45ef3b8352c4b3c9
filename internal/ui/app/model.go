package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	exportdto "ridelog/internal/modules/export/dto"
	reportdto "ridelog/internal/modules/report/dto"
	trackerdto "ridelog/internal/modules/tracker/dto"
	"ridelog/internal/ui/components"
	"ridelog/internal/ui/theme"
	entriesview "ridelog/internal/ui/views/entries"
	trackerview "ridelog/internal/ui/views/tracker"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type trackerPort interface {
	Select(ctx context.Context, activity string) (trackerdto.SelectOutput, error)
	Status(ctx context.Context) (trackerdto.StatusOutput, error)
	Entries(ctx context.Context) ([]trackerdto.EntryOutput, error)
	StartNew(ctx context.Context, label string) (trackerdto.StartNewOutput, error)
	Reindex(ctx context.Context) error
}

type reportPort interface {
	Shares(ctx context.Context) (reportdto.SharesOutput, error)
	Clock(ctx context.Context) (reportdto.ClockOutput, error)
}

type exportPort interface {
	Export(ctx context.Context, via []string) (exportdto.ExportOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTracker tabID = iota
	tabEntries
	tabCount
)

var tabLabels = [tabCount]string{
	"Tracker", "Entries",
}

// ─── async messages ───────────────────────────────────────────────────────────

type selectedMsg struct {
	out trackerdto.SelectOutput
	err error
}

type exportedMsg struct {
	out exportdto.ExportOutput
	err error
}

type newSessionMsg struct {
	out trackerdto.StartNewOutput
	err error
}

type reindexedMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Moving   key.Binding
	Traffic  key.Binding
	Dwelling key.Binding
	Export   key.Binding
	NewRide  key.Binding
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Moving:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "moving")),
		Traffic:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "traffic")),
		Dwelling: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dwelling")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		NewRide:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new ride")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Moving, k.Traffic, k.Dwelling, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Moving, k.Traffic, k.Dwelling},
		{k.Export, k.NewRide, k.Tab},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the activity keys,
// the global help overlay, and the command palette. All business logic is
// delegated to port interfaces; all rendering is delegated to sub-views.
type Model struct {
	tracker trackerPort
	export  exportPort

	trackView   trackerview.Model
	entriesView entriesview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	current   string
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(tracker trackerPort, report reportPort, export exportPort, tick time.Duration) Model {
	return Model{
		tracker:     tracker,
		export:      export,
		trackView:   trackerview.New(trackerViewBridge{tracker: tracker, report: report}, tick),
		entriesView: entriesview.New(entriesViewBridge{tracker: tracker}),
		activeTab:   tabTracker,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		current:     "idle",
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.trackView.Init(),
		m.entriesView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case selectedMsg:
		if msg.err != nil {
			m.status = "select failed: " + msg.err.Error()
			return m, nil
		}
		m.current = msg.out.Current
		switch msg.out.Action {
		case "started":
			m.status = msg.out.Activity + " started"
		case "stopped":
			m.status = msg.out.Activity + " stopped"
		case "switched":
			m.status = "switched to " + msg.out.Activity
		default:
			m.status = "ready"
		}
		return m, m.refreshViews()

	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("exported %s via %s → %s", msg.out.Filename, msg.out.Deliverer, msg.out.Target)
		return m, nil

	case newSessionMsg:
		if msg.err != nil {
			m.status = "new ride failed: " + msg.err.Error()
			return m, nil
		}
		m.current = "idle"
		if msg.out.Archived {
			m.status = "new ride started, previous ride archived to " + msg.out.ArchivePath
		} else {
			m.status = "new ride started"
		}
		return m, m.refreshViews()

	case reindexedMsg:
		if msg.err != nil {
			m.status = "reindex failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "projection rebuilt"
		return m, m.refreshViews()

	case trackerview.SnapshotMsg:
		// Keep the status-bar activity in sync with tick-driven refreshes.
		if msg.Err == nil {
			if msg.Clock.Running {
				m.current = msg.Clock.Activity
			} else {
				m.current = "idle"
			}
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "m":
			return m, m.selectCmd("moving")
		case "t":
			return m, m.selectCmd("traffic")
		case "d":
			return m, m.selectCmd("dwelling")
		case "e":
			m.status = "exporting…"
			return m, m.exportCmd(nil)
		case "n":
			return m, m.newSessionCmd("")
		}
	}

	// Propagate the message to the sub-views. The tracker view receives
	// messages regardless of the active tab so its tick loop never stalls
	// behind the Entries tab, and the entries view always receives its
	// LoadedMsg so the log is current when the tab activates.
	var trackCmd tea.Cmd
	m.trackView, trackCmd = m.trackView.Update(msg)
	cmds = append(cmds, trackCmd)
	_, entriesLoaded := msg.(entriesview.LoadedMsg)
	if m.activeTab == tabEntries || entriesLoaded {
		var entriesCmd tea.Cmd
		m.entriesView, entriesCmd = m.entriesView.Update(msg)
		cmds = append(cmds, entriesCmd)
	}

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTracker:
		return m.trackView.View()
	case tabEntries:
		return m.entriesView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "ridelog  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := theme.Activity(m.current).Render("● "+m.current) + "  " + m.status
	right := theme.Muted.Render("m/t/d:activity  e:export  n:new  ?:help  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "track:moving":
		return m, m.selectCmd("moving")

	case "track:traffic":
		return m, m.selectCmd("traffic")

	case "track:dwelling":
		return m, m.selectCmd("dwelling")

	case "export":
		m.status = "exporting…"
		return m, m.exportCmd(parts[1:])

	case "session:new":
		label := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		return m, m.newSessionCmd(label)

	case "reindex":
		return m, m.reindexCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.trackView, _ = m.trackView.Update(sz)
	m.entriesView, _ = m.entriesView.Update(sz)
}

func (m Model) refreshViews() tea.Cmd {
	return tea.Batch(m.trackView.Refresh(), m.entriesView.Refresh())
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) selectCmd(activity string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.tracker.Select(context.Background(), activity)
		return selectedMsg{out: out, err: err}
	}
}

func (m Model) exportCmd(via []string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.export.Export(context.Background(), via)
		return exportedMsg{out: out, err: err}
	}
}

func (m Model) newSessionCmd(label string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.tracker.StartNew(context.Background(), label)
		return newSessionMsg{out: out, err: err}
	}
}

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		return reindexedMsg{err: m.tracker.Reindex(context.Background())}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows the broad ports to the minimal interface needed by a
// specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type trackerViewBridge struct {
	tracker trackerPort
	report  reportPort
}

func (b trackerViewBridge) Status(ctx context.Context) (trackerdto.StatusOutput, error) {
	return b.tracker.Status(ctx)
}
func (b trackerViewBridge) Clock(ctx context.Context) (reportdto.ClockOutput, error) {
	return b.report.Clock(ctx)
}
func (b trackerViewBridge) Shares(ctx context.Context) (reportdto.SharesOutput, error) {
	return b.report.Shares(ctx)
}

type entriesViewBridge struct{ tracker trackerPort }

func (b entriesViewBridge) Entries(ctx context.Context) ([]trackerdto.EntryOutput, error) {
	return b.tracker.Entries(ctx)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
