package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Backend states shown by RenderBackendTable.
const (
	BackendUp      = "up"
	BackendDown    = "down"
	BackendUnknown = "unknown"
)

// BackendRow is one line of the backend table.
type BackendRow struct {
	URL     string
	Status  string // BackendUp, BackendDown or BackendUnknown
	Latency string // empty when not probed
	Detail  string // telemetry summary or error text
}

// RenderBackendTable renders backends as an aligned table for CLI output.
func RenderBackendTable(rows []BackendRow) string {
	if len(rows) == 0 {
		return "No backends configured\n"
	}

	urlWidth := len("BACKEND")
	for _, row := range rows {
		urlWidth = max(urlWidth, lipgloss.Width(row.URL))
	}
	urlWidth += 2

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(ColorMuted)

	var b strings.Builder
	b.WriteString(headerStyle.Render("  STATUS  "+padRight("BACKEND", urlWidth)+padRight("LATENCY", 10)+"DETAIL") + "\n")

	for _, row := range rows {
		var icon, latency string
		switch row.Status {
		case BackendUp:
			icon = SuccessStyle().Render(SymbolComplete)
			latency = MutedStyle().Render(row.Latency)
		case BackendDown:
			icon = ErrorStyle().Render(SymbolFail)
			latency = ErrorStyle().Render(row.Latency)
		default:
			icon = MutedStyle().Render(SymbolPending)
			latency = MutedStyle().Render(row.Latency)
		}

		fmt.Fprintf(&b, "  %s       %s%s%s\n",
			icon,
			padRight(row.URL, urlWidth),
			padRight(latency, 10),
			MutedStyle().Render(row.Detail))
	}
	return b.String()
}

// padRight pads s to width visible cells, ignoring ANSI sequences.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
