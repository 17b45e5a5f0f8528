package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rileyhilliard/lbdash/internal/errors"
)

// Validate checks the dashboard side of the config.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but lbdash only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade lbdash or lower the config version.")
	}

	if err := validateURL("endpoint", cfg.Endpoint); err != nil {
		return err
	}

	if cfg.FetchTimeout < 0 {
		return errors.New(errors.ErrConfig,
			"fetch_timeout can't be negative",
			"Use 0 for no timeout, or a duration like 5s.")
	}

	return nil
}

// ValidateBalancer checks the balancer section. It is only required by
// commands that run the balancer.
func ValidateBalancer(b BalancerConfig) error {
	if strings.TrimSpace(b.Listen) == "" {
		return errors.New(errors.ErrConfig,
			"balancer.listen is empty",
			"Set an address like :5000.")
	}

	if len(b.Backends) == 0 {
		return errors.New(errors.ErrConfig,
			"No backends configured",
			"Add backend URLs under balancer.backends or pass --backend.")
	}

	seen := make(map[string]bool, len(b.Backends))
	for i, backend := range b.Backends {
		if err := validateURL(fmt.Sprintf("balancer.backends[%d]", i), backend); err != nil {
			return err
		}
		key := NormalizeBackend(backend)
		if seen[key] {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Backend %s is listed twice", key),
				"Each backend URL must be unique; a trailing / doesn't make it different.")
		}
		seen[key] = true
	}

	if b.HealthPath == "" || !strings.HasPrefix(b.HealthPath, "/") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("balancer.health_path %q must start with /", b.HealthPath),
			"Try /health.")
	}
	if b.MetricsPath != "" && !strings.HasPrefix(b.MetricsPath, "/") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("balancer.metrics_path %q must start with /", b.MetricsPath),
			"Try /stats, or leave it empty to skip telemetry.")
	}

	if b.ProbeTimeout <= 0 || b.ProbeInterval <= 0 {
		return errors.New(errors.ErrConfig,
			"balancer probe_timeout and probe_interval must be positive",
			"Try probe_timeout: 1s and probe_interval: 2s.")
	}

	if b.StatsRPS <= 0 || b.StatsBurst <= 0 {
		return errors.New(errors.ErrConfig,
			"balancer stats_rps and stats_burst must be positive",
			"The dashboard polls every 2s, so stats_rps: 10 is plenty.")
	}

	return nil
}

// NormalizeBackend is the form a backend URL is compared and served in.
func NormalizeBackend(raw string) string {
	return strings.TrimRight(raw, "/")
}

// ValidateBackend checks a single backend base URL.
func ValidateBackend(raw string) error {
	return validateURL("a backend", raw)
}

// validateURL requires an absolute http(s) URL.
func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		cause := err
		if cause == nil {
			cause = fmt.Errorf("%q is not an absolute http(s) URL", raw)
		}
		return errors.WrapWithCode(cause, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid URL for %s", raw, field),
			"Use something like http://localhost:5000/stats.")
	}
	return nil
}
