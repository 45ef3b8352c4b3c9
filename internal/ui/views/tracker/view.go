package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reportdto "ridelog/internal/modules/report/dto"
	trackerdto "ridelog/internal/modules/tracker/dto"
	apperrors "ridelog/internal/platform/errors"
	"ridelog/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TrackerPort interface {
	Status(ctx context.Context) (trackerdto.StatusOutput, error)
	Clock(ctx context.Context) (reportdto.ClockOutput, error)
	Shares(ctx context.Context) (reportdto.SharesOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SnapshotMsg struct {
	Status     trackerdto.StatusOutput
	HasSession bool
	Clock      reportdto.ClockOutput
	Shares     reportdto.SharesOutput
	Err        error
}

type tickMsg time.Time

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the stopwatch pane: the live elapsed clock for the open
// interval and the per-activity share bars underneath it. It drives its own
// tick loop, which runs only while an interval is open.
type Model struct {
	port     TrackerPort
	interval time.Duration

	status     trackerdto.StatusOutput
	hasSession bool
	clock      reportdto.ClockOutput
	shares     reportdto.SharesOutput
	loadErr    string
	ticking    bool

	bars   map[string]progress.Model
	width  int
	height int
}

func New(port TrackerPort, interval time.Duration) Model {
	bars := map[string]progress.Model{
		"moving":   progress.New(progress.WithSolidFill(string(theme.Green)), progress.WithoutPercentage()),
		"traffic":  progress.New(progress.WithSolidFill(string(theme.Red)), progress.WithoutPercentage()),
		"dwelling": progress.New(progress.WithSolidFill(string(theme.Yellow)), progress.WithoutPercentage()),
	}
	return Model{port: port, interval: interval, bars: bars}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads the snapshot. The app model calls this after any action
// that changes the log.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		msg := SnapshotMsg{HasSession: true}

		status, err := m.port.Status(ctx)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNoSession) {
				return SnapshotMsg{Err: err}
			}
			msg.HasSession = false
		}
		msg.Status = status

		if msg.Clock, err = m.port.Clock(ctx); err != nil {
			return SnapshotMsg{Err: err}
		}
		if msg.Shares, err = m.port.Shares(ctx); err != nil {
			return SnapshotMsg{Err: err}
		}
		return msg
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := m.width/2 - 4
		if barWidth < 10 {
			barWidth = 10
		}
		for name, bar := range m.bars {
			bar.Width = barWidth
			m.bars[name] = bar
		}

	case SnapshotMsg:
		if msg.Err != nil {
			m.loadErr = msg.Err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.status = msg.Status
		m.hasSession = msg.HasSession
		m.clock = msg.Clock
		m.shares = msg.Shares
		if m.clock.Running && !m.ticking {
			m.ticking = true
			return m, m.tickCmd()
		}

	case tickMsg:
		if !m.clock.Running {
			m.ticking = false
			return m, nil
		}
		return m, tea.Batch(m.Refresh(), m.tickCmd())
	}
	return m, nil
}

func (m Model) View() string {
	if m.loadErr != "" {
		return theme.Muted.Render("tracker: " + m.loadErr)
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader() + "\n\n")
	sb.WriteString(m.renderClock() + "\n\n")
	sb.WriteString(m.renderButtons() + "\n\n")
	sb.WriteString(m.renderShares())

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderHeader() string {
	if !m.hasSession {
		return theme.Muted.Render("No ride yet — press m, t, or d to start timing")
	}
	label := m.status.Label
	if label == "" {
		label = m.status.SessionID
	}
	return theme.Title.Render("Ride "+label) +
		theme.Muted.Render(fmt.Sprintf("  %d entries", m.status.EntryCount))
}

func (m Model) renderClock() string {
	display := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(m.clock.Display)
	if m.clock.Running {
		badge := theme.Activity(m.clock.Activity).Render("● " + m.clock.Activity)
		return display + "\n" + badge
	}
	return display + "\n" + theme.Muted.Render("○ idle")
}

func (m Model) renderButtons() string {
	parts := make([]string, 0, 3)
	for _, activity := range []string{"moving", "traffic", "dwelling"} {
		label := fmt.Sprintf("[%c] %s", activity[0], activity)
		if m.clock.Running && m.clock.Activity == activity {
			parts = append(parts, theme.Activity(activity).Render(label))
		} else {
			parts = append(parts, theme.Muted.Render(label))
		}
	}
	return strings.Join(parts, "   ")
}

func (m Model) renderShares() string {
	var sb strings.Builder
	for _, item := range m.shares.Items {
		bar, ok := m.bars[item.Activity]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s %s %5.1f%%  %s\n",
			theme.Activity(item.Activity).Render(fmt.Sprintf("%-8s", item.Activity)),
			bar.ViewAs(item.Percent/100),
			item.Percent,
			theme.Muted.Render(item.Duration),
		))
	}
	sb.WriteString(theme.Muted.Render("total    ") + m.shares.Total)
	return sb.String()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
