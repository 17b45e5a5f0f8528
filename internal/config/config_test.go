package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/lbdash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, "http://localhost:5000/stats", cfg.Endpoint)
	assert.Zero(t, cfg.FetchTimeout)

	assert.Equal(t, ":5000", cfg.Balancer.Listen)
	assert.NotNil(t, cfg.Balancer.Backends)
	assert.Empty(t, cfg.Balancer.Backends)
	assert.Equal(t, "/health", cfg.Balancer.HealthPath)
	assert.Equal(t, "/stats", cfg.Balancer.MetricsPath)
	assert.Equal(t, time.Second, cfg.Balancer.ProbeTimeout)
	assert.Equal(t, 2*time.Second, cfg.Balancer.ProbeInterval)
	assert.Equal(t, 10.0, cfg.Balancer.StatsRPS)
	assert.Equal(t, 20, cfg.Balancer.StatsBurst)
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := writeConfig(t, dir, `
version: 1
endpoint: http://lb.internal:5000/stats
fetch_timeout: 3s
balancer:
  listen: ":8080"
  backends:
    - http://10.0.0.1:5001
    - http://10.0.0.2:5002
  health_path: /up
  probe_interval: 5s
`)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://lb.internal:5000/stats", cfg.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, ":8080", cfg.Balancer.Listen)
	assert.Equal(t, []string{"http://10.0.0.1:5001", "http://10.0.0.2:5002"}, cfg.Balancer.Backends)
	assert.Equal(t, "/up", cfg.Balancer.HealthPath)
	assert.Equal(t, 5*time.Second, cfg.Balancer.ProbeInterval)

	// Unset keys keep their defaults
	assert.Equal(t, "/stats", cfg.Balancer.MetricsPath)
	assert.Equal(t, time.Second, cfg.Balancer.ProbeTimeout)
	assert.Equal(t, 20, cfg.Balancer.StatsBurst)
}

func TestLoad_Minimal(t *testing.T) {
	dir := t.TempDir()
	configPath := writeConfig(t, dir, "version: 1\n")

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, DefaultListen, cfg.Balancer.Listen)
	assert.Empty(t, cfg.Balancer.Backends)
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("LBDASH_TEST_HOST", "10.1.2.3")

	dir := t.TempDir()
	configPath := writeConfig(t, dir, `
endpoint: http://${LBDASH_TEST_HOST}:5000/stats
balancer:
  backends:
    - http://${LBDASH_TEST_HOST}:5001
`)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "http://10.1.2.3:5000/stats", cfg.Endpoint)
	assert.Equal(t, []string{"http://10.1.2.3:5001"}, cfg.Balancer.Backends)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := writeConfig(t, dir, "endpoint: [unclosed\n")

	_, err := Load(configPath)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_BadDuration(t *testing.T) {
	dir := t.TempDir()
	configPath := writeConfig(t, dir, "fetch_timeout: soon\n")

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid config format")
}

func TestFind_Explicit(t *testing.T) {
	dir := t.TempDir()
	configPath := writeConfig(t, dir, "version: 1\n")

	path, err := Find(configPath)
	require.NoError(t, err)
	assert.Equal(t, configPath, path)
}

func TestFind_ExplicitMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFind_WalksUpToGitRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
	configPath := writeConfig(t, root, "version: 1\n")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	chdir(t, nested)

	path, err := Find("")
	require.NoError(t, err)

	// Compare resolved paths; TempDir may sit behind a symlink
	want, _ := filepath.EvalSymlinks(configPath)
	got, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, want, got)
}

func TestFindUpward_StopsAtGitRoot(t *testing.T) {
	outer := t.TempDir()
	writeConfig(t, outer, "version: 1\n")

	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))

	assert.Empty(t, findUpward(repo, ""))
}

func TestLoadOrDefault_NoFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
	chdir(t, root)
	t.Setenv("HOME", t.TempDir())

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
}

func TestLoadOrDefault_Global(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
	chdir(t, root)

	home := t.TempDir()
	t.Setenv("HOME", home)
	globalDir := filepath.Join(home, GlobalConfigDir)
	require.NoError(t, os.MkdirAll(globalDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, GlobalConfigFile),
		[]byte("endpoint: http://global:5000/stats\n"), 0644))

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(globalDir, GlobalConfigFile), path)
	assert.Equal(t, "http://global:5000/stats", cfg.Endpoint)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Endpoint = "http://lb:5000/stats"
	cfg.FetchTimeout = 4 * time.Second
	cfg.Balancer.Backends = []string{"http://a:1", "http://b:2"}

	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "probe_interval: 2s")
	assert.Contains(t, string(data), "fetch_timeout: 4s")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestMarshal_OmitsZeroTimeout(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "fetch_timeout")
}
