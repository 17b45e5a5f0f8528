package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(strings.Join(m.table.View(m.screenWidth(), m.hoverRow), "\n"))
	b.WriteString("\n\n")

	if m.viewportReady {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.charts.View(m.screenWidth()))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the dashboard header with summary stats.
func (m Model) renderHeader() string {
	rows := m.dash.Rows()
	up := 0
	for _, r := range rows {
		if r.Record.Status {
			up++
		}
	}

	var updateText string
	switch {
	case m.lastUpdate.IsZero():
		updateText = "waiting"
	case m.SecondsSinceUpdate() == 0:
		updateText = "just now"
	default:
		updateText = fmt.Sprintf("%ds ago", m.SecondsSinceUpdate())
	}

	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("lbdash")

	summary := fmt.Sprintf(" | %d servers | %d up | last update %s", len(rows), up, updateText)
	if m.endpoint != "" {
		summary = " | " + m.endpoint + summary
	}

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(summary)

	return HeaderStyle.Render(title + stats)
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	return FooterStyle.Render(m.help.ShortHelpView(keys.ShortHelp()))
}
