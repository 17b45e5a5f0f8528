package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandTilde replaces ~ or ~/path with the user's home directory.
// Does not support ~username syntax.
func ExpandTilde(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	return path
}

// Expand replaces ${VAR} references with environment values so URLs like
// http://${LB_HOST}:5000/stats can be shared between machines. Unset
// variables are left as written rather than collapsing to "".
func Expand(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}

	return os.Expand(s, func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return "${" + name + "}"
	})
}

// ExpandConfig expands variables in every URL the config carries.
func ExpandConfig(cfg *Config) {
	cfg.Endpoint = Expand(cfg.Endpoint)
	for i, b := range cfg.Balancer.Backends {
		cfg.Balancer.Backends[i] = Expand(b)
	}
}
