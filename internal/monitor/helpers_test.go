package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/lbdash/internal/stats"
)

// stubFetcher returns a fixed snapshot or error and counts calls.
type stubFetcher struct {
	mu    sync.Mutex
	snap  *stats.Snapshot
	err   error
	calls int
}

func (f *stubFetcher) Fetch(ctx context.Context) (*stats.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.snap, f.err
}

func (f *stubFetcher) set(snap *stats.Snapshot, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap, f.err = snap, err
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, f stats.Fetcher) Model {
	t.Helper()
	return NewModel(context.Background(), Options{
		Fetcher:  f,
		Endpoint: "http://localhost:5000/stats",
		Now:      func() time.Time { return testNow },
	})
}

func server(url string, up bool, requests int64) stats.Server {
	return stats.Server{URL: url, Status: up, Requests: requests}
}

func snapshotOf(servers ...stats.Server) *stats.Snapshot {
	return &stats.Snapshot{Servers: servers}
}

// deliver runs one fetch through Update the way the program would.
func deliver(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.fetchCmd()()
	next, _ := m.Update(msg)
	return next.(Model)
}

func sized(m Model, w, h int) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model)
}
