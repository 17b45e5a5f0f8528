package monitor

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rileyhilliard/lbdash/internal/dashboard"
)

// Table column widths. The URL column takes what is left.
const (
	colStatusWidth   = 8
	colRequestsWidth = 10
	minURLWidth      = 12
)

// Chart geometry.
const (
	chartWidth       = 40
	chartGraphHeight = 3
	pieBarWidth      = 36
)

// termTable is the terminal TableView. Render swaps the row set; View
// draws it with the hovered row highlighted.
type termTable struct {
	mu      sync.Mutex
	rows    []dashboard.Row
	renders int
}

func newTermTable() *termTable {
	return &termTable{}
}

// Render implements dashboard.TableView.
func (t *termTable) Render(rows []dashboard.Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows[:0:0], rows...)
	t.renders++
}

// Len returns the number of rows currently shown.
func (t *termTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// View renders the column header, separator and one line per row.
func (t *termTable) View(width, hovered int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	urlWidth := width - colStatusWidth - colRequestsWidth - 2
	if urlWidth < minURLWidth {
		urlWidth = minURLWidth
	}
	total := colStatusWidth + urlWidth + colRequestsWidth + 2

	header := padRight("STATUS", colStatusWidth) + " " +
		padRight("SERVER", urlWidth) + " " +
		padLeft("REQUESTS", colRequestsWidth)

	lines := []string{
		TableHeaderStyle.Render(header),
		lipgloss.NewStyle().Foreground(ColorBorder).Render(strings.Repeat("─", total)),
	}

	if len(t.rows) == 0 {
		return append(lines, LabelStyle.Render("waiting for stats..."))
	}

	for _, row := range t.rows {
		up := row.Record.Status
		glyph := StatusDownGlyph
		if up {
			glyph = StatusUpGlyph
		}
		status := StatusStyle(up).Render(padRight(glyph+" "+row.StatusText(), colStatusWidth))
		url := ValueStyle.Render(padRight(truncate(row.URL(), urlWidth), urlWidth))
		reqs := ValueStyle.Render(padLeft(row.RequestsText(), colRequestsWidth))

		line := status + " " + url + " " + reqs
		if row.Index == hovered {
			line = TableRowHoverStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lines
}

// termPie is the terminal PieChart: a stacked share bar plus a legend.
type termPie struct {
	mu      sync.Mutex
	title   string
	labels  []string
	values  []float64
	colors  []string
	redraws int
}

func newTermPie(cfg dashboard.PieConfig) *termPie {
	p := &termPie{title: cfg.Title}
	p.UpdateSeries(cfg.Labels, cfg.Values, cfg.Colors)
	return p
}

// UpdateSeries implements dashboard.PieChart.
func (p *termPie) UpdateSeries(labels []string, values []float64, colors []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.labels = append([]string(nil), labels...)
	p.values = append([]float64(nil), values...)
	p.colors = append([]string(nil), colors...)
}

// Redraw implements dashboard.PieChart. Drawing happens in View on the
// next frame; the counter lets tests see that a redraw was requested.
func (p *termPie) Redraw() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.redraws++
}

// View renders the chart box.
func (p *termPie) View(width int) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var total float64
	for _, v := range p.values {
		total += v
	}

	barWidth := width - 4
	if barWidth > pieBarWidth {
		barWidth = pieBarWidth
	}

	lines := []string{RenderShareBar(p.values, p.colors, barWidth), ""}
	for i, label := range p.labels {
		share := 0.0
		if total > 0 {
			share = p.values[i] / total * 100
		}
		swatch := shareGlyph
		if len(p.colors) > 0 {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(p.colors[i%len(p.colors)])).Render(shareGlyph)
		}
		text := fmt.Sprintf("%s %5.1f%%  %.0f", truncate(label, width-20), share, p.values[i])
		lines = append(lines, swatch+" "+LabelStyle.Render(text))
	}

	return Section(p.title, fmt.Sprintf("%.0f req", total), lines, width)
}

// termLineChart is the terminal LineChart. Labels and both series share
// one window and are evicted together.
type termLineChart struct {
	mu       sync.Mutex
	cfg      dashboard.LineConfig
	labels   *ringBuffer[string]
	requests *ringBuffer[float64]
	health   *ringBuffer[float64]
	redraws  int
}

func newTermLineChart(cfg dashboard.LineConfig, window int) *termLineChart {
	return &termLineChart{
		cfg:      cfg,
		labels:   newRingBuffer[string](window),
		requests: newRingBuffer[float64](window),
		health:   newRingBuffer[float64](window),
	}
}

// AppendSample implements dashboard.LineChart.
func (c *termLineChart) AppendSample(s dashboard.Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.labels.push(s.Label)
	c.requests.push(s.Requests)
	c.health.push(clampHealth(s.Health, c.cfg.HealthMin, c.cfg.HealthMax))
}

// EvictOldest implements dashboard.LineChart.
func (c *termLineChart) EvictOldest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.labels.popFront()
	c.requests.popFront()
	c.health.popFront()
}

// Len implements dashboard.LineChart.
func (c *termLineChart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.labels.len()
}

// Redraw implements dashboard.LineChart.
func (c *termLineChart) Redraw() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.redraws++
}

// Samples returns the window oldest first.
func (c *termLineChart) Samples() []dashboard.Sample {
	c.mu.Lock()
	defer c.mu.Unlock()

	labels := c.labels.getAll()
	reqs := c.requests.getAll()
	health := c.health.getAll()
	out := make([]dashboard.Sample, len(labels))
	for i := range labels {
		out[i] = dashboard.Sample{Label: labels[i], Requests: reqs[i], Health: health[i]}
	}
	return out
}

// View renders the chart box: the request line on the left axis and the
// health strip on the fixed right axis, with the time span underneath.
func (c *termLineChart) View(width int) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	labels := c.labels.getAll()
	reqs := c.requests.getAll()
	health := c.health.getAll()

	inner := width - 4
	axis := 6
	graphWidth := inner - axis
	if graphWidth < 4 {
		graphWidth = 4
	}

	latest := "-"
	if n := len(reqs); n > 0 {
		latest = fmt.Sprintf("%.0f", reqs[n-1])
	}

	var lines []string
	if len(reqs) == 0 {
		lines = append(lines, LabelStyle.Render("no samples"))
	} else {
		lo, hi := requestsRange(reqs)
		graph := strings.Split(RenderBrailleSparkline(reqs, graphWidth, chartGraphHeight, lo, hi, ColorGraph), "\n")
		for i, g := range graph {
			tick := ""
			switch i {
			case 0:
				tick = fmt.Sprintf("%.0f", hi)
			case len(graph) - 1:
				tick = fmt.Sprintf("%.0f", lo)
			}
			lines = append(lines, LabelStyle.Render(padLeft(truncate(tick, axis-1), axis-1))+" "+g)
		}
	}

	lines = append(lines,
		LabelStyle.Render(padLeft("0/1", axis-1))+" "+RenderHealthStrip(health, graphWidth),
	)

	if n := len(labels); n > 0 {
		span := labels[0]
		if n > 1 {
			span += " → " + labels[n-1]
		}
		lines = append(lines, LabelStyle.Render(padLeft("", axis)+span))
	}

	title := truncate(c.cfg.ID, width-16)
	return Section(title, latest+" req", lines, width)
}

func clampHealth(v, lo, hi float64) float64 {
	if hi <= lo {
		return v
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// termCharts is both the ChartFactory and the ChartArea: it builds the
// terminal widgets and keeps the per-server charts in the order they were
// appended to the area.
type termCharts struct {
	mu     sync.Mutex
	window int
	pie    *termPie
	order  []string
	lines  map[string]*termLineChart
}

func newTermCharts(window int) *termCharts {
	if window <= 0 {
		window = dashboard.WindowSize
	}
	return &termCharts{
		window: window,
		lines:  make(map[string]*termLineChart),
	}
}

// NewPieChart implements dashboard.ChartFactory.
func (c *termCharts) NewPieChart(cfg dashboard.PieConfig) dashboard.PieChart {
	p := newTermPie(cfg)
	c.mu.Lock()
	c.pie = p
	c.mu.Unlock()
	return p
}

// NewLineChart implements dashboard.ChartFactory.
func (c *termCharts) NewLineChart(cfg dashboard.LineConfig) dashboard.LineChart {
	return newTermLineChart(cfg, c.window)
}

// Append implements dashboard.ChartArea.
func (c *termCharts) Append(id string, chart dashboard.LineChart) {
	lc, ok := chart.(*termLineChart)
	if !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.lines[id]; !exists {
		c.order = append(c.order, id)
	}
	c.lines[id] = lc
}

// View lays out the distribution chart followed by the chart area,
// as many charts per row as the width allows.
func (c *termCharts) View(width int) string {
	c.mu.Lock()
	pie := c.pie
	charts := make([]*termLineChart, 0, len(c.order))
	for _, id := range c.order {
		charts = append(charts, c.lines[id])
	}
	c.mu.Unlock()

	var sections []string
	if pie != nil {
		w := width
		if w > chartWidth*2 {
			w = chartWidth * 2
		}
		sections = append(sections, pie.View(w))
	}

	if len(charts) > 0 {
		perRow := width / (chartWidth + 1)
		if perRow < 1 {
			perRow = 1
		}
		w := chartWidth
		if width < chartWidth {
			w = width
		}

		var rows []string
		for i := 0; i < len(charts); i += perRow {
			end := i + perRow
			if end > len(charts) {
				end = len(charts)
			}
			var cells []string
			for _, ch := range charts[i:end] {
				cells = append(cells, lipgloss.NewStyle().MarginRight(1).Render(ch.View(w)))
			}
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		}
		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	return strings.Join(sections, "\n")
}

// Chart returns the per-server chart for id.
func (c *termCharts) Chart(id string) (*termLineChart, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	lc, ok := c.lines[id]
	return lc, ok
}

// IDs returns chart ids in the order they were appended.
func (c *termCharts) IDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.order...)
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// truncate shortens s to width cells, ending in an ellipsis when cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
