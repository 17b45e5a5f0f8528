package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/rileyhilliard/lbdash/internal/errors"
	"github.com/rileyhilliard/lbdash/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoller_PollOnce(t *testing.T) {
	h := newHarness()
	f := &fakeFetcher{}
	f.push(snapshot(server("a", true, 5)), nil)

	p := NewPoller(f, h.dash, nil)
	require.True(t, p.PollOnce(context.Background()))

	assert.Equal(t, 1, f.calls)
	assert.Equal(t, 1, h.dash.Applied())
	assert.Equal(t, uint64(1), p.LastApplied())
}

func TestPoller_FailedFetchLeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"network failure", errors.New(errors.ErrFetch, "Stats endpoint unreachable", "")},
		{"decode failure", errors.New(errors.ErrDecode, "Malformed stats body", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			log := logger.NewBufferLogger()
			f := &fakeFetcher{}
			f.push(snapshot(server("a", true, 5), server("b", false, 1)), nil)
			f.push(nil, tt.err)

			p := NewPoller(f, h.dash, log)
			require.True(t, p.PollOnce(context.Background()))

			rowsBefore := h.dash.Rows()
			labelsBefore, valuesBefore := h.dash.Distribution()
			pie := h.factory.pies[0]
			pieRedraws := pie.redraws
			lenA := h.factory.lines["a"][0].Len()
			lenB := h.factory.lines["b"][0].Len()
			renders := h.table.renders

			assert.False(t, p.PollOnce(context.Background()))

			assert.Equal(t, rowsBefore, h.dash.Rows())
			labels, values := h.dash.Distribution()
			assert.Equal(t, labelsBefore, labels)
			assert.Equal(t, valuesBefore, values)
			assert.Equal(t, pieRedraws, pie.redraws)
			assert.Equal(t, lenA, h.factory.lines["a"][0].Len())
			assert.Equal(t, lenB, h.factory.lines["b"][0].Len())
			assert.Equal(t, renders, h.table.renders)
			assert.Equal(t, 1, h.dash.Applied())

			assert.True(t, log.HasLevel("debug"))
			assert.False(t, log.HasLevel("warn"), "failures are not surfaced")
		})
	}
}

func TestPoller_DropsSupersededResults(t *testing.T) {
	h := newHarness()
	p := NewPoller(&fakeFetcher{}, h.dash, nil)

	slow := p.Begin()
	fast := p.Begin()
	require.Less(t, slow, fast)

	assert.True(t, p.Deliver(Result{Seq: fast, Snapshot: snapshot(server("a", true, 10))}))
	assert.False(t, p.Deliver(Result{Seq: slow, Snapshot: snapshot(server("a", true, 3))}))

	assert.Equal(t, fast, p.LastApplied())
	require.Len(t, h.dash.Rows(), 1)
	assert.Equal(t, "10", h.dash.Rows()[0].RequestsText())
	assert.Equal(t, 1, h.factory.lines["a"][0].Len())
}

func TestPoller_DeliverNilSnapshot(t *testing.T) {
	h := newHarness()
	p := NewPoller(&fakeFetcher{}, h.dash, nil)
	assert.False(t, p.Deliver(Result{Seq: p.Begin()}))
	assert.Equal(t, 0, h.dash.Applied())
}

func TestPoller_Run(t *testing.T) {
	h := newHarness()
	f := &fakeFetcher{}
	f.push(snapshot(server("a", true, 1)), nil)

	p := NewPoller(f, h.dash, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return h.dash.Applied() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	chart, ok := h.dash.SeriesChart("a")
	require.True(t, ok)
	assert.GreaterOrEqual(t, chart.Len(), 3)
}
