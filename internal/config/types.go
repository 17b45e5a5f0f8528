package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Defaults used when the config file omits a value.
const (
	DefaultEndpoint      = "http://localhost:5000/stats"
	DefaultListen        = ":5000"
	DefaultHealthPath    = "/health"
	DefaultMetricsPath   = "/stats"
	DefaultProbeTimeout  = time.Second
	DefaultProbeInterval = 2 * time.Second
	DefaultStatsRPS      = 10.0
	DefaultStatsBurst    = 20
)

// Config represents the complete .lbdash.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Endpoint is the stats URL the dashboard polls.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// FetchTimeout bounds a single poll. Zero means no timeout.
	FetchTimeout time.Duration `yaml:"fetch_timeout,omitempty" mapstructure:"fetch_timeout"`

	Balancer BalancerConfig `yaml:"balancer" mapstructure:"balancer"`
}

// BalancerConfig controls the round-robin balancer that serves /stats.
type BalancerConfig struct {
	// Listen is the address the balancer binds, e.g. ":5000".
	Listen string `yaml:"listen" mapstructure:"listen"`

	// Backends are base URLs requests are redirected to, in rotation order.
	Backends []string `yaml:"backends" mapstructure:"backends"`

	// HealthPath is probed on each backend; any 2xx marks it up.
	HealthPath string `yaml:"health_path" mapstructure:"health_path"`

	// MetricsPath optionally returns a JSON object with cpu, ram and
	// up_time. Empty disables telemetry probing.
	MetricsPath string `yaml:"metrics_path" mapstructure:"metrics_path"`

	ProbeTimeout  time.Duration `yaml:"probe_timeout" mapstructure:"probe_timeout"`
	ProbeInterval time.Duration `yaml:"probe_interval" mapstructure:"probe_interval"`

	// StatsRPS and StatsBurst rate-limit /stats per client IP.
	StatsRPS   float64 `yaml:"stats_rps" mapstructure:"stats_rps"`
	StatsBurst int     `yaml:"stats_burst" mapstructure:"stats_burst"`
}

// DefaultConfig returns a config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:  CurrentConfigVersion,
		Endpoint: DefaultEndpoint,
		Balancer: BalancerConfig{
			Listen:        DefaultListen,
			Backends:      []string{},
			HealthPath:    DefaultHealthPath,
			MetricsPath:   DefaultMetricsPath,
			ProbeTimeout:  DefaultProbeTimeout,
			ProbeInterval: DefaultProbeInterval,
			StatsRPS:      DefaultStatsRPS,
			StatsBurst:    DefaultStatsBurst,
		},
	}
}
