package config

import (
	"os"

	"github.com/rileyhilliard/lbdash/internal/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape written by Save. Durations are stored as
// strings so the file stays readable.
type fileConfig struct {
	Version      int          `yaml:"version"`
	Endpoint     string       `yaml:"endpoint"`
	FetchTimeout string       `yaml:"fetch_timeout,omitempty"`
	Balancer     fileBalancer `yaml:"balancer"`
}

type fileBalancer struct {
	Listen        string   `yaml:"listen"`
	Backends      []string `yaml:"backends"`
	HealthPath    string   `yaml:"health_path"`
	MetricsPath   string   `yaml:"metrics_path"`
	ProbeTimeout  string   `yaml:"probe_timeout"`
	ProbeInterval string   `yaml:"probe_interval"`
	StatsRPS      float64  `yaml:"stats_rps"`
	StatsBurst    int      `yaml:"stats_burst"`
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	fc := fileConfig{
		Version:  cfg.Version,
		Endpoint: cfg.Endpoint,
		Balancer: fileBalancer{
			Listen:        cfg.Balancer.Listen,
			Backends:      cfg.Balancer.Backends,
			HealthPath:    cfg.Balancer.HealthPath,
			MetricsPath:   cfg.Balancer.MetricsPath,
			ProbeTimeout:  cfg.Balancer.ProbeTimeout.String(),
			ProbeInterval: cfg.Balancer.ProbeInterval.String(),
			StatsRPS:      cfg.Balancer.StatsRPS,
			StatsBurst:    cfg.Balancer.StatsBurst,
		},
	}
	if cfg.FetchTimeout > 0 {
		fc.FetchTimeout = cfg.FetchTimeout.String()
	}
	return yaml.Marshal(&fc)
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to encode config", "")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+path,
			"Check directory permissions")
	}
	return nil
}
