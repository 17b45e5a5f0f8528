package monitor

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rileyhilliard/lbdash/internal/dashboard"
	"github.com/rileyhilliard/lbdash/internal/logger"
)

// plainTable is a TableView that prints each rebuilt table as a block of
// text. It backs the non-interactive mode used when stdout is not a terminal.
type plainTable struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// Render implements dashboard.TableView.
func (p *plainTable) Render(rows []dashboard.Row) {
	p.mu.Lock()
	defer p.mu.Unlock()

	urlWidth := minURLWidth
	for _, r := range rows {
		if n := len(r.URL()); n > urlWidth {
			urlWidth = n
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s  %d servers\n", p.now().Format(dashboard.TimeLabelLayout), len(rows))
	for _, r := range rows {
		b.WriteString(padRight(r.StatusText(), 6))
		b.WriteString(padRight(r.URL(), urlWidth+2))
		b.WriteString(padLeft(r.RequestsText(), colRequestsWidth))
		b.WriteString("\n")
	}
	_, _ = io.WriteString(p.w, b.String())
}

// RunPlain polls without a TUI, printing the table after every applied
// snapshot until ctx is canceled. Charts are still maintained so the state
// matches the interactive dashboard.
func RunPlain(ctx context.Context, w io.Writer, opts Options) {
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	charts := newTermCharts(dashboard.WindowSize)
	dash := dashboard.New(dashboard.Options{
		Table:  &plainTable{w: w, now: now},
		Charts: charts,
		Area:   charts,
		Logger: log,
		Now:    now,
	})

	dashboard.NewPoller(opts.Fetcher, dash, log).Run(ctx, dashboard.PollInterval)
}
