package dashboard

import (
	stderrors "errors"
	"sync"
	"time"

	"github.com/rileyhilliard/lbdash/internal/logger"
	"github.com/rileyhilliard/lbdash/internal/stats"
)

// Options wires a Dashboard to its widgets.
type Options struct {
	Table  TableView
	Charts ChartFactory
	Area   ChartArea
	Logger logger.Logger

	// Now supplies sample timestamps. Nil uses time.Now.
	Now func() time.Time
}

// Dashboard is the explicit state object behind the rendered view.
// All methods are safe for concurrent use; each Apply completes every
// mutation before another call can observe the state.
type Dashboard struct {
	mu sync.Mutex

	table   *TableRenderer
	pie     *DistributionChart
	series  *SeriesSet
	overlay *Overlay
	log     logger.Logger

	current *stats.Snapshot
	applied int
}

// New creates a Dashboard with no snapshot applied yet.
func New(opts Options) *Dashboard {
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}
	return &Dashboard{
		table:   NewTableRenderer(opts.Table),
		pie:     NewDistributionChart(opts.Charts),
		series:  NewSeriesSet(opts.Charts, opts.Area, WindowSize, opts.Now),
		overlay: NewOverlay(),
		log:     log,
	}
}

// Apply hands snap to the table, distribution and time series renderers in
// that order. A renderer that cannot draw logs and is skipped; the others
// still run. The returned error joins every renderer failure.
func (d *Dashboard) Apply(snap *stats.Snapshot) error {
	if snap == nil {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	if err := d.table.Render(snap); err != nil {
		d.log.Warn("table: %v", err)
		errs = append(errs, err)
	} else {
		d.overlay.Refresh(d.table.Rows())
	}
	if err := d.pie.Render(snap); err != nil {
		d.log.Warn("distribution: %v", err)
		errs = append(errs, err)
	}
	if err := d.series.Render(snap); err != nil {
		d.log.Warn("series: %v", err)
		errs = append(errs, err)
	}

	d.current = snap
	d.applied++
	return stderrors.Join(errs...)
}

// PointerEnter shows the overlay for table row i.
func (d *Dashboard) PointerEnter(i, x, y int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	row, ok := d.table.Row(i)
	if !ok {
		return false
	}
	d.overlay.Enter(row, x, y)
	return true
}

// PointerLeave hides the overlay if row i is the hovered row.
func (d *Dashboard) PointerLeave(i int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.overlay.Leave(i)
}

// PointerMove moves a visible overlay with the pointer.
func (d *Dashboard) PointerMove(x, y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.overlay.Move(x, y)
}

// OverlayView is a copy of the overlay state for drawing.
type OverlayView struct {
	Visible bool
	Row     int
	X, Y    int
	Fields  []Field
}

// Overlay returns the current overlay state.
func (d *Dashboard) Overlay() OverlayView {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.overlay.Visible() {
		return OverlayView{Row: -1}
	}
	x, y := d.overlay.Position()
	return OverlayView{
		Visible: true,
		Row:     d.overlay.Row(),
		X:       x,
		Y:       y,
		Fields:  d.overlay.Fields(),
	}
}

// Rows returns the current table rows.
func (d *Dashboard) Rows() []Row {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.table.Rows()
}

// Distribution returns the labels and values last given to the pie chart.
func (d *Dashboard) Distribution() ([]string, []float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pie.Series()
}

// SeriesIDs returns per-server chart ids in creation order.
func (d *Dashboard) SeriesIDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.series.IDs()
}

// SeriesChart returns the chart for a server id.
func (d *Dashboard) SeriesChart(id string) (LineChart, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.series.Chart(id)
}

// Current returns the last applied snapshot, or nil.
func (d *Dashboard) Current() *stats.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Applied returns how many snapshots have been applied.
func (d *Dashboard) Applied() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.applied
}
