package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/lbdash/internal/dashboard"
	"github.com/rileyhilliard/lbdash/internal/logger"
	"github.com/rileyhilliard/lbdash/internal/stats"
)

// Screen layout. The header takes one line followed by a blank line, then
// the table's column header and separator; data rows start below those.
const (
	headerHeight   = 2
	tableFirstRowY = headerHeight + 2
	footerHeight   = 1
	defaultWidth   = 80
)

// Options configures a Model.
type Options struct {
	Fetcher  stats.Fetcher
	Endpoint string // shown in the header
	Logger   logger.Logger

	// Now supplies sample timestamps. Nil uses time.Now.
	Now func() time.Time
}

// Model is the Bubble Tea model for the stats dashboard.
type Model struct {
	ctx      context.Context
	endpoint string
	now      func() time.Time

	dash   *dashboard.Dashboard
	poller *dashboard.Poller
	table  *termTable
	charts *termCharts

	help          help.Model
	viewport      viewport.Model
	viewportReady bool

	width      int
	height     int
	hoverRow   int // table row under the pointer, -1 for none
	lastUpdate time.Time
	showHelp   bool
	quitting   bool
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// resultMsg carries the outcome of one fetch back to Update.
type resultMsg dashboard.Result

// NewModel creates a dashboard model. Fetches issued by the model use ctx.
func NewModel(ctx context.Context, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	table := newTermTable()
	charts := newTermCharts(dashboard.WindowSize)
	dash := dashboard.New(dashboard.Options{
		Table:  table,
		Charts: charts,
		Area:   charts,
		Logger: log,
		Now:    now,
	})

	return Model{
		ctx:      ctx,
		endpoint: opts.Endpoint,
		now:      now,
		dash:     dash,
		poller:   dashboard.NewPoller(opts.Fetcher, dash, log),
		table:    table,
		charts:   charts,
		help:     help.New(),
		hoverRow: -1,
	}
}

// Init starts the tick timer and triggers the first fetch right away.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.fetchCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}
		return m.updateViewport(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			m.trackPointer(msg.X, msg.Y)
			return m, nil
		}
		if tea.MouseEvent(msg).IsWheel() {
			return m.updateViewport(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()

	case tickMsg:
		// Fire and forget: the next tick never waits for this fetch
		return m, tea.Batch(m.tickCmd(), m.fetchCmd())

	case resultMsg:
		if m.poller.Deliver(dashboard.Result(msg)) {
			m.lastUpdate = m.now()
			if !m.dash.Overlay().Visible {
				m.hoverRow = -1
			}
			m.layout()
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return overlayFrame(m.renderDashboard(), m.dash.Overlay(), m.screenWidth(), m.height)
}

// tickCmd returns a command that sends a tick after the poll interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(dashboard.PollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchCmd reserves a sequence number now and performs the request in the
// command's goroutine. The result is applied back in Update.
func (m Model) fetchCmd() tea.Cmd {
	poller, ctx := m.poller, m.ctx
	seq := poller.Begin()
	return func() tea.Msg {
		return resultMsg(poller.Fetch(ctx, seq))
	}
}

// trackPointer turns pointer motion into row enter, move and leave events.
// Moving straight from one row to another is a single enter: the overlay
// swaps content without hiding.
func (m *Model) trackPointer(x, y int) {
	row := m.rowAt(y)
	switch {
	case row >= 0 && row == m.hoverRow:
		m.dash.PointerMove(x, y)
	case row >= 0:
		if !m.dash.PointerEnter(row, x, y) {
			row = -1
		}
	case m.hoverRow >= 0:
		m.dash.PointerLeave(m.hoverRow)
	}
	m.hoverRow = row
}

// rowAt returns the table row index at screen line y, or -1.
func (m Model) rowAt(y int) int {
	i := y - tableFirstRowY
	if i < 0 || i >= m.table.Len() {
		return -1
	}
	return i
}

// tableLines is the number of data lines the table occupies.
func (m Model) tableLines() int {
	if n := m.table.Len(); n > 0 {
		return n
	}
	return 1 // placeholder line
}

// chartsTop is the screen line where the chart viewport starts.
func (m Model) chartsTop() int {
	return tableFirstRowY + m.tableLines() + 1
}

func (m Model) screenWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

// layout sizes the chart viewport to the space left below the table and
// refreshes its content.
func (m *Model) layout() {
	if m.height == 0 {
		return
	}

	h := m.height - m.chartsTop() - footerHeight - 1
	if h < 1 {
		h = 1
	}

	if !m.viewportReady {
		m.viewport = viewport.New(m.screenWidth(), h)
		m.viewportReady = true
	} else {
		m.viewport.Width = m.screenWidth()
		m.viewport.Height = h
	}
	m.viewport.YPosition = m.chartsTop()
	m.viewport.SetContent(m.charts.View(m.screenWidth()))
}

func (m Model) updateViewport(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.viewportReady {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SecondsSinceUpdate returns how many seconds have passed since the last
// applied snapshot.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(m.now().Sub(m.lastUpdate).Seconds())
}

// Dashboard exposes the underlying dashboard state.
func (m Model) Dashboard() *dashboard.Dashboard {
	return m.dash
}

// Run starts the full-screen dashboard and blocks until the user quits or
// ctx is canceled. Mouse motion reporting is required for row hover.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
