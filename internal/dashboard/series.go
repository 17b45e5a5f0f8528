package dashboard

import (
	"time"

	"github.com/rileyhilliard/lbdash/internal/errors"
	"github.com/rileyhilliard/lbdash/internal/stats"
)

// WindowSize is the maximum number of samples kept per server chart.
const WindowSize = 30

// TimeLabelLayout formats sample labels.
const TimeLabelLayout = "15:04:05"

// Axis titles for per-server charts.
const (
	RequestsAxisTitle = "Requests"
	HealthAxisTitle   = "Health (1 = UP, 0 = DOWN)"
)

// SeriesSet maintains one line chart per server identifier. Charts are
// created on first sighting and never removed, so a server that drops out
// of later snapshots keeps its last window.
type SeriesSet struct {
	factory ChartFactory
	area    ChartArea
	window  int
	now     func() time.Time

	charts map[string]LineChart
	order  []string
}

// NewSeriesSet creates an empty set. window <= 0 uses WindowSize.
func NewSeriesSet(factory ChartFactory, area ChartArea, window int, now func() time.Time) *SeriesSet {
	if window <= 0 {
		window = WindowSize
	}
	if now == nil {
		now = time.Now
	}
	return &SeriesSet{
		factory: factory,
		area:    area,
		window:  window,
		now:     now,
		charts:  make(map[string]LineChart),
	}
}

// Render appends one sample per server, creating charts as needed and
// evicting the oldest sample of any chart already at the window size.
func (s *SeriesSet) Render(snap *stats.Snapshot) error {
	if s.area == nil {
		return errors.New(errors.ErrRender, "chart area not attached", "")
	}
	if s.factory == nil {
		return errors.New(errors.ErrRender, "series set has no chart factory", "")
	}

	label := s.now().Format(TimeLabelLayout)
	for _, srv := range snap.Servers {
		chart := s.chartFor(srv.URL)
		for chart.Len() >= s.window {
			chart.EvictOldest()
		}
		chart.AppendSample(Sample{
			Label:    label,
			Requests: float64(srv.Requests),
			Health:   srv.Health(),
		})
		chart.Redraw()
	}
	return nil
}

func (s *SeriesSet) chartFor(id string) LineChart {
	if chart, ok := s.charts[id]; ok {
		return chart
	}
	chart := s.factory.NewLineChart(LineConfig{
		ID:            id,
		RequestsTitle: id + " - " + RequestsAxisTitle,
		HealthTitle:   id + " - Health",
		HealthMin:     0,
		HealthMax:     1,
	})
	s.charts[id] = chart
	s.order = append(s.order, id)
	s.area.Append(id, chart)
	return chart
}

// Chart returns the chart for id.
func (s *SeriesSet) Chart(id string) (LineChart, bool) {
	chart, ok := s.charts[id]
	return chart, ok
}

// IDs returns chart identifiers in creation order.
func (s *SeriesSet) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Window returns the per-chart sample cap.
func (s *SeriesSet) Window() int {
	return s.window
}
