package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dontpanic/internal/logtail"
)

// Log refresh constants
const (
	logRefreshInterval = 2 * time.Second
	logTailLimit       = 500
)

// logState holds the log overlay state.
type logState struct {
	open   bool
	lines  []string
	err    error
	follow bool

	searchActive bool
	filter       string
	searchInput  textinput.Model

	// generation discards refresh ticks from an earlier open.
	generation int
}

// logLinesMsg carries a tail of the log file.
type logLinesMsg struct {
	lines []string
	err   error
}

// logRefreshMsg re-reads the log while the overlay stays open.
type logRefreshMsg struct {
	generation int
}

func newLogState() logState {
	ti := textinput.New()
	ti.Placeholder = "Filter log..."
	ti.CharLimit = 100
	return logState{follow: true, searchInput: ti}
}

// fetchLogs reads the log tail off the loop.
func fetchLogs(path, filter string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Tail(path, logTailLimit, filter)
		return logLinesMsg{lines: lines, err: err}
	}
}

func logRefreshCmd(generation int) tea.Cmd {
	return tea.Tick(logRefreshInterval, func(time.Time) tea.Msg {
		return logRefreshMsg{generation: generation}
	})
}

// openLogs shows the overlay and starts the refresh cycle.
func (m *Model) openLogs() tea.Cmd {
	m.logState.open = true
	m.logState.follow = true
	m.logState.generation++
	m.updateLogViewport()
	return tea.Batch(fetchLogs(m.logPath, m.logState.filter), logRefreshCmd(m.logState.generation))
}

func (m *Model) closeLogs() {
	m.logState.open = false
	m.logState.searchActive = false
	m.logState.searchInput.Blur()
	m.logState.generation++
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logState.lines = msg.lines
	m.logState.err = msg.err
	m.updateLogViewport()
}

func (m *Model) handleLogRefresh(msg logRefreshMsg) tea.Cmd {
	if !m.logState.open || msg.generation != m.logState.generation {
		return nil
	}
	return tea.Batch(fetchLogs(m.logPath, m.logState.filter), logRefreshCmd(msg.generation))
}

// handleLogKey handles keys while the overlay is open.
func (m *Model) handleLogKey(msg tea.KeyMsg) tea.Cmd {
	if m.logState.searchActive {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Escape):
		if m.logState.filter != "" && key.Matches(msg, m.keys.Escape) {
			m.logState.filter = ""
			m.logState.searchInput.SetValue("")
			return fetchLogs(m.logPath, "")
		}
		m.closeLogs()
	case key.Matches(msg, m.keys.Search):
		m.logState.searchActive = true
		m.logState.searchInput.SetValue(m.logState.filter)
		return m.logState.searchInput.Focus()
	case key.Matches(msg, m.keys.Up):
		m.logState.follow = false
		m.logViewport.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.logViewport.LineDown(1)
		m.logState.follow = m.logViewport.AtBottom()
	case key.Matches(msg, m.keys.Bottom):
		m.logState.follow = true
		m.logViewport.GotoBottom()
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.logState.searchActive = false
		m.logState.searchInput.Blur()
		m.logState.filter = strings.TrimSpace(m.logState.searchInput.Value())
		m.logState.follow = true
		return fetchLogs(m.logPath, m.logState.filter)
	case key.Matches(msg, m.keys.Escape):
		m.logState.searchActive = false
		m.logState.searchInput.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.logState.searchInput, cmd = m.logState.searchInput.Update(msg)
	return cmd
}

// updateLogViewport sizes the viewport and refills it.
func (m *Model) updateLogViewport() {
	width, height := m.width-4, m.height-5
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(width, height)
	}
	m.logViewport.Width = width
	m.logViewport.Height = height
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logViewport.SetContent(m.renderLogContent())
	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles()
	if m.logState.err != nil {
		return styles.DangerText.Render("Log unavailable: " + m.logState.err.Error())
	}
	if len(m.logState.lines) == 0 {
		return styles.FaintText.Render("No log lines")
	}
	var b strings.Builder
	for i, line := range m.logState.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(logLineStyle(styles, line).Render(line))
	}
	return b.String()
}

// logLineStyle colors a slog text record by its level attribute.
func logLineStyle(styles Styles, line string) lipgloss.Style {
	switch {
	case strings.Contains(line, "level=ERROR"):
		return styles.DangerText
	case strings.Contains(line, "level=WARN"):
		return styles.WarningText
	case strings.Contains(line, "level=DEBUG"):
		return styles.FaintText
	default:
		return styles.Text
	}
}

// renderLogs renders the log overlay.
func (m Model) renderLogs() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles()

	title := "Log"
	if m.logState.filter != "" {
		title = fmt.Sprintf("Log (filter: %s)", m.logState.filter)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Render(m.logViewport.View())

	var status string
	if m.logState.searchActive {
		status = bg.Render("/", styles.AccentText) + m.logState.searchInput.View()
	} else {
		autoTail := "off"
		if m.logState.follow {
			autoTail = "on"
		}
		status = bg.Join([]string{
			bg.Render(fmt.Sprintf("%d lines", len(m.logState.lines)), styles.FaintText),
			bg.Render("auto-tail "+autoTail, styles.FaintText),
			bg.Render("/ to filter, esc to close", styles.MutedText),
		}, " | ")
	}

	header := bg.FillLine(bg.Render(title, styles.AccentText.Bold(true)), m.width)
	return header + "\n" + box + "\n" + bg.FillLine(status, m.width)
}
