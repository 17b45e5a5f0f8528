package dashboard

import (
	"github.com/rileyhilliard/lbdash/internal/errors"
	"github.com/rileyhilliard/lbdash/internal/stats"
)

// DistributionTitle is the distribution chart's series title.
const DistributionTitle = "Request Distribution"

// Palette is the fixed slice color cycle. Colors repeat once there are
// more servers than entries.
var Palette = []string{"#4CAF50", "#2196F3", "#FFC107"}

// PaletteColor returns the palette color for slice i.
func PaletteColor(i int) string {
	return Palette[i%len(Palette)]
}

// DistributionChart keeps exactly one pie chart for its lifetime.
type DistributionChart struct {
	factory ChartFactory
	chart   PieChart
	labels  []string
	values  []float64
}

// NewDistributionChart creates the renderer. The chart itself is built on
// the first snapshot.
func NewDistributionChart(factory ChartFactory) *DistributionChart {
	return &DistributionChart{factory: factory}
}

// Render constructs the chart on first use and afterwards replaces its
// labels and values wholesale.
func (d *DistributionChart) Render(snap *stats.Snapshot) error {
	if d.chart == nil && d.factory == nil {
		return errors.New(errors.ErrRender, "distribution chart has no chart factory", "")
	}

	n := snap.Len()
	labels := make([]string, n)
	values := make([]float64, n)
	colors := make([]string, n)
	for i, srv := range snap.Servers {
		labels[i] = srv.URL
		values[i] = float64(srv.Requests)
		colors[i] = PaletteColor(i)
	}

	if d.chart == nil {
		d.chart = d.factory.NewPieChart(PieConfig{
			Title:  DistributionTitle,
			Labels: labels,
			Values: values,
			Colors: colors,
		})
	} else {
		d.chart.UpdateSeries(labels, values, colors)
	}
	d.labels = labels
	d.values = values
	d.chart.Redraw()
	return nil
}

// Chart returns the chart instance, or nil before the first snapshot.
func (d *DistributionChart) Chart() PieChart {
	return d.chart
}

// Series returns the labels and values last handed to the chart.
func (d *DistributionChart) Series() ([]string, []float64) {
	return d.labels, d.values
}
