package balancer

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rileyhilliard/lbdash/internal/config"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBackend serves /health and /stats like the sample backends do.
type fakeBackend struct {
	*httptest.Server
	healthy atomic.Bool
	metrics atomic.Value // string; empty means 404
	hits    atomic.Int64
}

func newFakeBackend(t *testing.T, healthy bool, metrics string) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	fb.healthy.Store(healthy)
	fb.metrics.Store(metrics)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fb.hits.Add(1)
		if !fb.healthy.Load() {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		body := fb.metrics.Load().(string)
		if body == "" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})

	fb.Server = httptest.NewServer(mux)
	t.Cleanup(fb.Close)
	return fb
}

func testConfig(backends ...string) config.BalancerConfig {
	return config.BalancerConfig{
		Listen:        "127.0.0.1:0",
		Backends:      backends,
		HealthPath:    "/health",
		MetricsPath:   "/stats",
		ProbeTimeout:  time.Second,
		ProbeInterval: 20 * time.Millisecond,
		StatsRPS:      100,
		StatsBurst:    100,
	}
}

func newTestBalancer(t *testing.T, cfg config.BalancerConfig, opts ...Option) *Balancer {
	t.Helper()
	b, err := New(cfg, opts...)
	require.NoError(t, err)
	return b
}
