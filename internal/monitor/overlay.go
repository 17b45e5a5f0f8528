package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rileyhilliard/lbdash/internal/dashboard"
)

// renderOverlayBox draws the hover panel's labeled fields.
func renderOverlayBox(fields []dashboard.Field) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, OverlayLabelStyle.Render(f.Label+":")+OverlayValueStyle.Render(f.Value))
	}
	return OverlayBoxStyle.Render(strings.Join(lines, "\n"))
}

// clampBox moves a w x h box at (x, y) so it stays inside a screen of
// width x height cells. A box larger than the screen is pinned to 0.
func clampBox(x, y, w, h, width, height int) (int, int) {
	if width > 0 && x+w > width {
		x = width - w
	}
	if height > 0 && y+h > height {
		y = height - h
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

// PlaceOverlay draws fg on top of bg with its top-left corner at (x, y).
// Both are multi-line strings that may contain ANSI styling. Cells of bg
// outside fg are kept, including their styles.
func PlaceOverlay(x, y int, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for len(bgLines) < y+len(fgLines) {
		bgLines = append(bgLines, "")
	}

	for i, fgLine := range fgLines {
		row := y + i
		bgLine := bgLines[row]

		if w := ansi.StringWidth(bgLine); w < x {
			bgLine += strings.Repeat(" ", x-w)
		}

		left := ansi.Truncate(bgLine, x, "")
		right := ansi.TruncateLeft(bgLine, x+ansi.StringWidth(fgLine), "")

		// Reset between segments so styles from bg do not bleed into fg
		bgLines[row] = left + ansi.ResetStyle + fgLine + ansi.ResetStyle + right
	}

	return strings.Join(bgLines, "\n")
}

// overlayFrame splices the hover panel into a rendered frame.
func overlayFrame(frame string, view dashboard.OverlayView, width, height int) string {
	if !view.Visible || len(view.Fields) == 0 {
		return frame
	}

	box := renderOverlayBox(view.Fields)
	x, y := clampBox(view.X, view.Y, lipgloss.Width(box), lipgloss.Height(box), width, height)
	return PlaceOverlay(x, y, box, frame)
}
