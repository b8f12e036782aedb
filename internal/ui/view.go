package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dontpanic/internal/screen"
	"github.com/five82/dontpanic/internal/state"
)

const panelWidth = 34

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.logState.open {
		return m.renderLogs()
	}

	return m.renderMain()
}

// renderMain lays the watch display beside the status panel.
func (m Model) renderMain() string {
	bodyHeight := m.height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	displayCols := m.width
	showPanel := m.width >= panelWidth+24
	if showPanel {
		displayCols = m.width - panelWidth
	}

	fb := m.face.window.Render()
	size := fb.Size()
	scale := screen.FitScale(size.X, size.Y, displayCols, bodyHeight)
	display := lipgloss.Place(displayCols, bodyHeight, lipgloss.Center, lipgloss.Center,
		m.terminal.Render(fb, scale),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))

	body := display
	if showPanel {
		body = lipgloss.JoinHorizontal(lipgloss.Top, display, m.renderPanel(bodyHeight))
	}
	return body + "\n" + m.renderFooter()
}

// renderPanel renders the status side panel.
func (m Model) renderPanel(height int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	inner := panelWidth - 2

	var lines []string
	add := func(s string) {
		lines = append(lines, bg.FillLine(s, inner))
	}
	field := func(label, value string, style lipgloss.Style) {
		add(bg.Render(fmt.Sprintf("%-9s", label), styles.MutedText) + bg.Render(value, style))
	}

	add(bg.Render(greeting, styles.Logo))
	add("")

	strs := m.clock.Strings()
	field("Time", strs.Time, styles.Text)
	field("Weather", m.report.String(), styles.Text)
	field("Weekday", strs.Weekday, styles.Text)
	field("Date", strs.Date, styles.Text)
	add("")

	snap := m.store.Snapshot()
	field("Link", snap.Link, styles.AccentText)
	status, statusStyle := linkStatus(snap, styles)
	field("Status", status, statusStyle)
	field("Sent", fmt.Sprintf("%d (%d failed)", snap.Sent, snap.SendFailures), styles.Text)
	field("Received", fmt.Sprintf("%d (%d dropped)", snap.Received, snap.Dropped), styles.Text)
	if !snap.LastReceived.IsZero() {
		field("Last msg", snap.LastReceived.Format(time.Kitchen), styles.FaintText)
	}
	if snap.LastError != nil {
		add(bg.Render(truncate(snap.LastError.Error(), inner), styles.DangerText))
	}
	add("")

	field("Frames", fmt.Sprintf("%d (%s)", m.driver.Frames(), m.driver.State()), styles.Text)
	mode := "12h"
	if m.use24h {
		mode = "24h"
	}
	field("Clock", mode, styles.Text)
	field("Theme", m.theme.Name, styles.FaintText)

	for len(lines) < height {
		add("")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return styles.Panel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

func linkStatus(snap state.Snapshot, styles Styles) (string, lipgloss.Style) {
	switch {
	case snap.IsOffline():
		return "offline", styles.DangerText
	case snap.LastError != nil:
		return "degraded", styles.WarningText
	case snap.LastUpdated.IsZero():
		return "waiting", styles.FaintText
	default:
		return "online", styles.SuccessText
	}
}

// renderFooter renders the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, bg.Render(h.Key, styles.AccentText)+bg.Sep(" ")+bg.Render(h.Desc, styles.MutedText))
	}
	return bg.FillLine(bg.Join(parts, "  "), m.width)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
