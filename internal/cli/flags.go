package cli

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/lbdash/internal/config"
	"github.com/rileyhilliard/lbdash/internal/errors"
)

// ParseDuration parses a duration flag. Returns zero if the flag is empty.
func ParseDuration(name, flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid duration for %s", flag, name),
			"Try something like 5s, 2m, or 500ms.")
	}
	if d < 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("%s can't be negative", name),
			"Use 0 to disable the timeout.")
	}
	return d, nil
}

// expandAll applies ${VAR} expansion to every value.
func expandAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = config.Expand(v)
	}
	return out
}
