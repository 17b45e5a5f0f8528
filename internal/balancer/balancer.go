package balancer

import (
	"net/http"
	"sync"

	"github.com/rileyhilliard/lbdash/internal/config"
	"github.com/rileyhilliard/lbdash/internal/logger"
	"github.com/rileyhilliard/lbdash/internal/stats"
)

// backend is the balancer's view of one upstream. Fields other than url
// are guarded by Balancer.mu.
type backend struct {
	url      string
	requests int64

	// probed is false until the first health check completes. Unprobed
	// backends stay in rotation but report DOWN.
	probed bool
	up     bool

	latency *float64
	cpu     *float64
	ram     *float64
	upTime  *string
}

// inRotation reports whether Next may pick this backend.
func (be *backend) inRotation() bool {
	return !be.probed || be.up
}

// Balancer hands out backends in round-robin order and tracks what it
// knows about each of them.
type Balancer struct {
	cfg     config.BalancerConfig
	log     logger.Logger
	client  *http.Client
	limiter *rateLimiter

	mu       sync.Mutex
	backends []*backend
	cursor   int
}

// Option configures a Balancer.
type Option func(*Balancer)

// WithLogger sets the logger for probe and request output.
func WithLogger(l logger.Logger) Option {
	return func(b *Balancer) {
		b.log = l
	}
}

// WithHTTPClient overrides the client used for health and metrics probes.
// Probe timeouts are still applied per request through the context.
func WithHTTPClient(hc *http.Client) Option {
	return func(b *Balancer) {
		b.client = hc
	}
}

// New creates a balancer for cfg. The config is validated first.
func New(cfg config.BalancerConfig, opts ...Option) (*Balancer, error) {
	if err := config.ValidateBalancer(cfg); err != nil {
		return nil, err
	}

	b := &Balancer{
		cfg:    cfg,
		log:    logger.Noop(),
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(b)
	}

	b.limiter = newRateLimiter(cfg.StatsRPS, cfg.StatsBurst)
	b.backends = make([]*backend, len(cfg.Backends))
	for i, raw := range cfg.Backends {
		b.backends[i] = &backend{url: config.NormalizeBackend(raw)}
	}
	return b, nil
}

// Next returns the base URL of the backend that should take the next
// request and counts the request against it. Backends whose last health
// check failed are skipped; when every backend is down the rotation
// continues over all of them.
func (b *Balancer) Next() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.backends)
	pick := b.cursor
	for i := 0; i < n; i++ {
		idx := (b.cursor + i) % n
		if b.backends[idx].inRotation() {
			pick = idx
			break
		}
	}

	be := b.backends[pick]
	be.requests++
	b.cursor = (pick + 1) % n
	return be.url
}

// Snapshot returns the current state of every backend in configured
// order, in the shape the dashboard polls.
func (b *Balancer) Snapshot() stats.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := stats.Snapshot{Servers: make([]stats.Server, 0, len(b.backends))}
	for _, be := range b.backends {
		srv := stats.Server{
			URL:      be.url,
			Status:   be.probed && be.up,
			Requests: be.requests,
		}
		if be.latency != nil {
			srv.Latency = stats.Float64(*be.latency)
		}
		if be.cpu != nil {
			srv.CPU = stats.Float64(*be.cpu)
		}
		if be.ram != nil {
			srv.RAM = stats.Float64(*be.ram)
		}
		if be.upTime != nil {
			srv.UpTime = stats.String(*be.upTime)
		}
		snap.Servers = append(snap.Servers, srv)
	}
	return snap
}

// Config returns the config the balancer was created with.
func (b *Balancer) Config() config.BalancerConfig {
	return b.cfg
}
