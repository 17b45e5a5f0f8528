package balancer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// maxMetricsBytes bounds how much of a metrics response is decoded.
const maxMetricsBytes = 1 << 20

var validate = validator.New()

// probeResult is what one round of checks learned about a backend.
type probeResult struct {
	up      bool
	latency time.Duration
	metrics *metricsDoc
	err     error
}

// metricsDoc is the optional telemetry document a backend serves on
// MetricsPath. Unknown fields are ignored. CPU may exceed 100 on
// multi-core hosts that report per-process usage.
type metricsDoc struct {
	CPU    *float64 `json:"cpu" validate:"omitempty,gte=0"`
	RAM    *float64 `json:"ram" validate:"omitempty,gte=0"`
	UpTime *string  `json:"up_time" validate:"omitempty,max=64"`
}

// ProbeAll checks every backend concurrently and records the results.
// It returns once all probes have finished or timed out.
func (b *Balancer) ProbeAll(ctx context.Context) {
	b.mu.Lock()
	targets := make([]*backend, len(b.backends))
	copy(targets, b.backends)
	b.mu.Unlock()

	results := make([]probeResult, len(targets))
	var wg sync.WaitGroup
	for i, be := range targets {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			results[i] = b.probe(ctx, url)
		}(i, be.url)
	}
	wg.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, be := range targets {
		b.apply(be, results[i])
	}
}

// RunProbes calls ProbeAll every ProbeInterval until ctx is done.
func (b *Balancer) RunProbes(ctx context.Context) {
	ticker := time.NewTicker(b.cfg.ProbeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.ProbeAll(ctx)
		}
	}
}

// apply records r on be. Caller holds b.mu.
func (b *Balancer) apply(be *backend, r probeResult) {
	wasUp, wasProbed := be.up, be.probed
	be.probed = true
	be.up = r.up

	if !r.up {
		be.latency = nil
		be.cpu, be.ram, be.upTime = nil, nil, nil
		if !wasProbed || wasUp {
			b.log.Warn("backend %s is down: %v", be.url, r.err)
		}
		return
	}

	ms := float64(r.latency.Microseconds()) / 1000
	be.latency = &ms
	if r.metrics != nil {
		be.cpu, be.ram, be.upTime = r.metrics.CPU, r.metrics.RAM, r.metrics.UpTime
	} else {
		be.cpu, be.ram, be.upTime = nil, nil, nil
	}
	if wasProbed && !wasUp {
		b.log.Info("backend %s is back up", be.url)
	}
}

// probe runs the health check for one backend and, when it passes and a
// metrics path is configured, fetches its telemetry. A failing metrics
// fetch does not mark the backend down.
func (b *Balancer) probe(ctx context.Context, base string) probeResult {
	start := time.Now()
	resp, err := b.get(ctx, base+b.cfg.HealthPath)
	if err != nil {
		return probeResult{err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	latency := time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return probeResult{err: fmt.Errorf("health check returned %s", resp.Status)}
	}

	r := probeResult{up: true, latency: latency}
	if b.cfg.MetricsPath == "" {
		return r
	}

	doc, err := b.fetchMetrics(ctx, base+b.cfg.MetricsPath)
	if err != nil {
		b.log.Debug("metrics for %s unavailable: %v", base, err)
		return r
	}
	r.metrics = doc
	return r
}

func (b *Balancer) fetchMetrics(ctx context.Context, url string) (*metricsDoc, error) {
	resp, err := b.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("metrics returned %s", resp.Status)
	}

	var doc metricsDoc
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxMetricsBytes)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode metrics: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid metrics: %w", err)
	}
	return &doc, nil
}

// get issues a GET bounded by ProbeTimeout.
func (b *Balancer) get(ctx context.Context, url string) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.ProbeTimeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// cancelOnClose releases the request context when the body is closed so
// the timeout covers reading the body too.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
