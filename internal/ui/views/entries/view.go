package entries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	trackerdto "ridelog/internal/modules/tracker/dto"
	"ridelog/internal/platform/timefmt"
	"ridelog/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type EntriesPort interface {
	Entries(ctx context.Context) ([]trackerdto.EntryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Entries []trackerdto.EntryOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the append-only interval log, newest entry last, inside a
// scrollable viewport.
type Model struct {
	port    EntriesPort
	entries []trackerdto.EntryOutput
	loadErr string
	vp      viewport.Model
	width   int
	height  int
}

func New(port EntriesPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)
	return Model{port: port, vp: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads the log from the projection.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.port.Entries(context.Background())
		return LoadedMsg{Entries: entries, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = m.width - 2
		m.vp.Height = m.height - 2

	case LoadedMsg:
		if msg.Err != nil {
			m.loadErr = msg.Err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.entries = msg.Entries
		wasAtBottom := m.vp.AtBottom()
		m.vp.SetContent(m.renderRows())
		if wasAtBottom {
			m.vp.GotoBottom()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loadErr != "" {
		return theme.Muted.Render("entries: " + m.loadErr)
	}
	return m.vp.View()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderRows() string {
	if len(m.entries) == 0 {
		return theme.Muted.Render("No entries yet")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Interval Log") + "\n\n")
	for i, entry := range m.entries {
		end := "—"
		if !entry.Open {
			end = timefmt.WallClock(entry.EndedAt)
		}
		duration := timefmt.Stopwatch(time.Duration(entry.DurationMS) * time.Millisecond)
		marker := " "
		if entry.Open {
			marker = theme.Hot.Render("▸")
		}
		sb.WriteString(fmt.Sprintf("%s %2d  %s  %s → %s  %s\n",
			marker,
			i+1,
			theme.Activity(entry.Activity).Render(fmt.Sprintf("%-8s", entry.Activity)),
			timefmt.WallClock(entry.StartedAt),
			end,
			theme.Muted.Render(duration),
		))
	}
	return sb.String()
}
