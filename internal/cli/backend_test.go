package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/lbdash/internal/config"
	"github.com/rileyhilliard/lbdash/internal/errors"
	"github.com/rileyhilliard/lbdash/internal/stats"
	"github.com/rileyhilliard/lbdash/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a project config into a fresh working directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := inTempDir(t)
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestBackendAdd(t *testing.T) {
	path := writeConfig(t, "# my balancer\nbalancer:\n  listen: \":5000\"\n")
	var out bytes.Buffer

	require.NoError(t, backendAdd(&out, "", "http://127.0.0.1:5001"))
	assert.Contains(t, out.String(), "Added backend http://127.0.0.1:5001")

	out.Reset()
	require.NoError(t, backendAdd(&out, "", "http://127.0.0.1:5001"))
	assert.Contains(t, out.String(), "already configured")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# my balancer")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://127.0.0.1:5001"}, cfg.Balancer.Backends)
}

func TestBackendAdd_InvalidURL(t *testing.T) {
	writeConfig(t, "balancer: {}\n")

	err := backendAdd(&bytes.Buffer{}, "", "localhost:5001")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestBackendAdd_NoConfig(t *testing.T) {
	inTempDir(t)

	err := backendAdd(&bytes.Buffer{}, "", "http://127.0.0.1:5001")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lbdash init")
}

func TestBackendRemove(t *testing.T) {
	path := writeConfig(t, "balancer:\n  backends:\n    - http://a:1\n    - http://b:2\n")
	var out bytes.Buffer

	require.NoError(t, backendRemove(&out, "", "http://a:1"))
	assert.Contains(t, out.String(), "Removed backend http://a:1")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://b:2"}, cfg.Balancer.Backends)

	err = backendRemove(&out, "", "http://a:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "isn't configured")
}

func TestBackendList_WithoutProbe(t *testing.T) {
	writeConfig(t, "balancer:\n  backends:\n    - http://a:1\n    - http://b:2\n")
	var out bytes.Buffer

	require.NoError(t, backendList(context.Background(), &out, "", false))

	assert.Contains(t, out.String(), "http://a:1")
	assert.Contains(t, out.String(), "http://b:2")
	assert.Contains(t, out.String(), ui.SymbolPending)
}

func TestBackendList_Probe(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			_, _ = w.Write([]byte("OK"))
		case "/stats":
			_, _ = w.Write([]byte(`{"cpu": 42}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer up.Close()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	writeConfig(t, "balancer:\n  backends:\n    - "+up.URL+"\n    - "+down.URL+"\n")
	var out bytes.Buffer

	require.NoError(t, backendList(context.Background(), &out, "", true))

	assert.Contains(t, out.String(), "Probing 2 backends")
	assert.Contains(t, out.String(), "cpu 42.0%")
	assert.Contains(t, out.String(), ui.SymbolFail)
}

func TestBackendList_ProbeAllDown(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	writeConfig(t, "balancer:\n  backends:\n    - "+down.URL+"\n")
	var out bytes.Buffer

	require.NoError(t, backendList(context.Background(), &out, "", true))

	assert.Contains(t, out.String(), ui.SymbolFail+" Probing 1 backends")
	assert.NotContains(t, out.String(), ui.SymbolComplete)
}

func TestCountUp(t *testing.T) {
	assert.Equal(t, 0, countUp(stats.Snapshot{}))
	assert.Equal(t, 1, countUp(stats.Snapshot{Servers: []stats.Server{
		{URL: "http://a:1", Status: true},
		{URL: "http://b:2"},
	}}))
}

func TestBackendRows(t *testing.T) {
	rows := backendRows(stats.Snapshot{Servers: []stats.Server{
		{URL: "http://a:1", Status: true, Latency: stats.Float64(3), RAM: stats.Float64(128), UpTime: stats.String("2h")},
		{URL: "http://b:2", Status: false},
	}})

	require.Len(t, rows, 2)
	assert.Equal(t, ui.BackendUp, rows[0].Status)
	assert.Equal(t, "3 ms", rows[0].Latency)
	assert.Equal(t, "ram 128.0 MB, up 2h", rows[0].Detail)
	assert.Equal(t, ui.BackendDown, rows[1].Status)
	assert.Equal(t, "-", rows[1].Latency)
}
