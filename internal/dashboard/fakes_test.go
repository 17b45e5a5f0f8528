package dashboard

import (
	"context"
	"sync"

	"github.com/rileyhilliard/lbdash/internal/stats"
)

type fakeTable struct {
	renders int
	rows    []Row
}

func (f *fakeTable) Render(rows []Row) {
	f.renders++
	f.rows = rows
}

type fakePie struct {
	cfg     PieConfig
	labels  []string
	values  []float64
	colors  []string
	updates int
	redraws int
}

func (f *fakePie) UpdateSeries(labels []string, values []float64, colors []string) {
	f.updates++
	f.labels, f.values, f.colors = labels, values, colors
}

func (f *fakePie) Redraw() { f.redraws++ }

type fakeLine struct {
	cfg       LineConfig
	samples   []Sample
	evictions int
	redraws   int
}

func (f *fakeLine) AppendSample(s Sample) { f.samples = append(f.samples, s) }

func (f *fakeLine) EvictOldest() {
	if len(f.samples) == 0 {
		return
	}
	f.evictions++
	f.samples = f.samples[1:]
}

func (f *fakeLine) Len() int { return len(f.samples) }

func (f *fakeLine) Redraw() { f.redraws++ }

type fakeFactory struct {
	pies  []*fakePie
	lines map[string][]*fakeLine
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{lines: make(map[string][]*fakeLine)}
}

func (f *fakeFactory) NewPieChart(cfg PieConfig) PieChart {
	p := &fakePie{cfg: cfg, labels: cfg.Labels, values: cfg.Values, colors: cfg.Colors}
	f.pies = append(f.pies, p)
	return p
}

func (f *fakeFactory) NewLineChart(cfg LineConfig) LineChart {
	l := &fakeLine{cfg: cfg}
	f.lines[cfg.ID] = append(f.lines[cfg.ID], l)
	return l
}

type fakeArea struct {
	ids []string
}

func (f *fakeArea) Append(id string, _ LineChart) {
	f.ids = append(f.ids, id)
}

// fakeFetcher returns queued results in order, then repeats the last one.
type fakeFetcher struct {
	mu      sync.Mutex
	results []fetchResult
	calls   int
}

type fetchResult struct {
	snap *stats.Snapshot
	err  error
}

func (f *fakeFetcher) push(snap *stats.Snapshot, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, fetchResult{snap: snap, err: err})
}

func (f *fakeFetcher) Fetch(ctx context.Context) (*stats.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.results) == 0 {
		return nil, context.Canceled
	}
	r := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return r.snap, r.err
}

type harness struct {
	table   *fakeTable
	factory *fakeFactory
	area    *fakeArea
	dash    *Dashboard
}

func newHarness() *harness {
	h := &harness{
		table:   &fakeTable{},
		factory: newFakeFactory(),
		area:    &fakeArea{},
	}
	h.dash = New(Options{Table: h.table, Charts: h.factory, Area: h.area})
	return h
}

func snapshot(servers ...stats.Server) *stats.Snapshot {
	return &stats.Snapshot{Servers: servers}
}

func server(url string, up bool, requests int64) stats.Server {
	return stats.Server{URL: url, Status: up, Requests: requests}
}
