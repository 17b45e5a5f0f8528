package cli

import (
	"fmt"
	"os"

	"github.com/rileyhilliard/lbdash/internal/errors"
	"github.com/rileyhilliard/lbdash/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "lbdash",
	Short: "Round-robin load balancer with a live terminal dashboard",
	Long: `lbdash runs a small round-robin HTTP balancer and a terminal dashboard
that polls its /stats endpoint.

  lbdash balance --backend http://127.0.0.1:5001 --backend http://127.0.0.1:5002
  lbdash monitor --endpoint http://localhost:5000/stats`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || os.Getenv("NO_COLOR") != "" {
			ui.DisableColors()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .lbdash.yaml, then ~/.config/lbdash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for configuration problems and 1 for everything else.
func exitCode(err error) int {
	if errors.IsCode(err, errors.ErrConfig) {
		return 2
	}
	return 1
}

// formatError renders structured errors as-is and gives plain ones
// (usually from cobra flag parsing) the same leading marker.
func formatError(err error) string {
	if errors.CodeOf(err) != "" {
		return err.Error()
	}
	return fmt.Sprintf("%s %s\n", ui.SymbolFail, err)
}
