package dashboard

import (
	"strconv"

	"github.com/rileyhilliard/lbdash/internal/stats"
)

// Row is one rendered table row and the record that backs it.
type Row struct {
	Index  int
	Record stats.Server
}

// URL returns the row's identifier text.
func (r Row) URL() string {
	return r.Record.URL
}

// StatusText returns "UP" or "DOWN".
func (r Row) StatusText() string {
	return r.Record.StatusText()
}

// RequestsText returns the request count as text.
func (r Row) RequestsText() string {
	return strconv.FormatInt(r.Record.Requests, 10)
}

// TableView displays the rows produced for a snapshot. Render replaces
// everything previously shown.
type TableView interface {
	Render(rows []Row)
}

// PieConfig describes a distribution chart at construction time.
type PieConfig struct {
	Title  string
	Labels []string
	Values []float64
	Colors []string
}

// PieChart is a single distribution chart updated in place.
type PieChart interface {
	UpdateSeries(labels []string, values []float64, colors []string)
	Redraw()
}

// Sample is one point on a server's line chart.
type Sample struct {
	Label    string // wall clock time of the snapshot
	Requests float64
	Health   float64 // 1 up, 0 down
}

// LineConfig describes a per-server line chart at construction time.
// Requests are plotted against the left axis, health against the right
// axis with the fixed range [HealthMin, HealthMax].
type LineConfig struct {
	ID            string
	RequestsTitle string
	HealthTitle   string
	HealthMin     float64
	HealthMax     float64
}

// LineChart is a two-series chart with an ordered sample window.
type LineChart interface {
	AppendSample(s Sample)
	EvictOldest()
	Len() int
	Redraw()
}

// ChartFactory constructs chart instances.
type ChartFactory interface {
	NewPieChart(cfg PieConfig) PieChart
	NewLineChart(cfg LineConfig) LineChart
}

// ChartArea is the visible container per-server charts are appended to.
type ChartArea interface {
	Append(id string, chart LineChart)
}
