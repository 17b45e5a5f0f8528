package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rileyhilliard/lbdash/internal/logger"
	"github.com/rileyhilliard/lbdash/internal/stats"
)

// PollInterval is the fixed time between fetches.
const PollInterval = 2000 * time.Millisecond

// Result is the outcome of one fetch.
type Result struct {
	Seq      uint64
	Snapshot *stats.Snapshot
	Err      error
}

// Poller fetches snapshots and applies them to a Dashboard.
type Poller struct {
	fetcher stats.Fetcher
	dash    *Dashboard
	log     logger.Logger

	issued atomic.Uint64

	mu          sync.Mutex
	lastApplied uint64
}

// NewPoller creates a poller that feeds dash from fetcher.
func NewPoller(fetcher stats.Fetcher, dash *Dashboard, log logger.Logger) *Poller {
	if log == nil {
		log = logger.Noop()
	}
	return &Poller{
		fetcher: fetcher,
		dash:    dash,
		log:     log,
	}
}

// Begin reserves the sequence number for a new fetch.
func (p *Poller) Begin() uint64 {
	return p.issued.Add(1)
}

// Fetch performs the network read for seq. It does not touch the Dashboard.
func (p *Poller) Fetch(ctx context.Context, seq uint64) Result {
	snap, err := p.fetcher.Fetch(ctx)
	return Result{Seq: seq, Snapshot: snap, Err: err}
}

// Deliver applies a successful result unless a newer one was already
// applied. Failed results are logged at debug level and dropped, leaving
// the rendered state as it was. Returns true if the snapshot was applied.
func (p *Poller) Deliver(r Result) bool {
	if r.Err != nil {
		p.log.Debug("poll #%d dropped: %v", r.Seq, r.Err)
		return false
	}
	if r.Snapshot == nil {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if r.Seq <= p.lastApplied {
		p.log.Debug("poll #%d superseded by #%d", r.Seq, p.lastApplied)
		return false
	}
	p.lastApplied = r.Seq
	// Renderer failures are logged by the Dashboard and do not undo the cycle
	_ = p.dash.Apply(r.Snapshot)
	return true
}

// PollOnce runs one complete fetch-and-apply cycle.
func (p *Poller) PollOnce(ctx context.Context) bool {
	return p.Deliver(p.Fetch(ctx, p.Begin()))
}

// LastApplied returns the sequence number of the last applied snapshot.
func (p *Poller) LastApplied() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastApplied
}

// Run polls immediately and then every interval until ctx is done. Each
// cycle runs in its own goroutine so a slow fetch never delays the next
// tick; sequencing in Deliver keeps the newest result.
func (p *Poller) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = PollInterval
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	cycle := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.PollOnce(ctx)
		}()
	}

	cycle()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cycle()
		}
	}
}
