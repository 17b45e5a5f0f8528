package cli

import (
	"context"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/lbdash/internal/config"
	"github.com/rileyhilliard/lbdash/internal/errors"
	"github.com/rileyhilliard/lbdash/internal/logger"
	"github.com/rileyhilliard/lbdash/internal/monitor"
	"github.com/rileyhilliard/lbdash/internal/stats"
	"github.com/rileyhilliard/lbdash/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// debugLogFile receives log output while the dashboard owns the terminal.
const debugLogFile = "lbdash-debug.log"

var (
	monitorEndpointFlag string
	monitorTimeoutFlag  string
	monitorPlainFlag    bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live dashboard of a stats endpoint",
	Long: `Poll a stats endpoint every 2s and show each server's status, request
count and history. Hover a table row with the mouse for CPU, RAM, latency
and uptime.

When stdout is not a terminal (or with --plain) the table is printed after
every poll instead.

Examples:
  lbdash monitor
  lbdash monitor --endpoint http://lb.internal:5000/stats
  lbdash monitor --plain | tee stats.log`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(cmd.Context(), monitorOptions{
			ConfigPath:   cfgFile,
			Endpoint:     monitorEndpointFlag,
			FetchTimeout: monitorTimeoutFlag,
			Plain:        monitorPlainFlag,
			Out:          cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().StringVar(&monitorEndpointFlag, "endpoint", "", "stats URL to poll (overrides config)")
	monitorCmd.Flags().StringVar(&monitorTimeoutFlag, "fetch-timeout", "", "per-poll timeout, e.g. 1s (default: none)")
	monitorCmd.Flags().BoolVar(&monitorPlainFlag, "plain", false, "print the table after each poll instead of the full-screen dashboard")
}

type monitorOptions struct {
	ConfigPath   string
	Endpoint     string
	FetchTimeout string
	Plain        bool
	Out          io.Writer
}

// resolveMonitorConfig loads config and applies flag overrides.
func resolveMonitorConfig(opts monitorOptions) (*config.Config, error) {
	cfg, _, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.Endpoint != "" {
		cfg.Endpoint = config.Expand(opts.Endpoint)
	}
	if opts.FetchTimeout != "" {
		d, err := ParseDuration("--fetch-timeout", opts.FetchTimeout)
		if err != nil {
			return nil, err
		}
		cfg.FetchTimeout = d
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func monitorCommand(ctx context.Context, opts monitorOptions) error {
	cfg, err := resolveMonitorConfig(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewEnvLogger("[monitor]")
	client := stats.NewClient(cfg.Endpoint,
		stats.WithTimeout(cfg.FetchTimeout),
		stats.WithLogger(log))
	mopts := monitor.Options{
		Fetcher:  client,
		Endpoint: cfg.Endpoint,
		Logger:   log,
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if !opts.Plain && !term.IsTerminal(int(os.Stdout.Fd())) {
		ui.PrintWarning("stdout isn't a terminal, printing plain output")
		opts.Plain = true
	}
	if opts.Plain {
		monitor.RunPlain(ctx, out, mopts)
		return nil
	}

	// The dashboard owns the screen, so log lines go to a file or nowhere.
	if logger.DebugEnabled() {
		f, err := tea.LogToFile(debugLogFile, "lbdash")
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Can't open "+debugLogFile,
				"Run from a writable directory or unset "+logger.DebugEnv+".")
		}
		defer f.Close()
	} else {
		stdlog.SetOutput(io.Discard)
		defer stdlog.SetOutput(os.Stderr)
	}

	if err := monitor.Run(ctx, mopts); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Dashboard exited with an error",
			"Try --plain if your terminal doesn't support the full-screen view.")
	}
	return nil
}
