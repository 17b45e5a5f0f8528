package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rileyhilliard/lbdash/internal/balancer"
	"github.com/rileyhilliard/lbdash/internal/config"
	"github.com/rileyhilliard/lbdash/internal/errors"
	"github.com/rileyhilliard/lbdash/internal/stats"
	"github.com/rileyhilliard/lbdash/internal/ui"
	"github.com/spf13/cobra"
)

var backendProbeFlag bool

var backendCmd = &cobra.Command{
	Use:   "backend",
	Short: "Manage the balancer's backends",
	Long: `Add, remove and list the backend URLs under balancer.backends in the
config file. Comments and ordering in the file are preserved.`,
}

var backendAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a backend URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return backendAdd(cmd.OutOrStdout(), cfgFile, args[0])
	},
}

var backendRemoveCmd = &cobra.Command{
	Use:     "remove <url>",
	Aliases: []string{"rm"},
	Short:   "Remove a backend URL",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return backendRemove(cmd.OutOrStdout(), cfgFile, args[0])
	},
}

var backendListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List backends, optionally health checking them",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return backendList(cmd.Context(), cmd.OutOrStdout(), cfgFile, backendProbeFlag)
	},
}

func init() {
	rootCmd.AddCommand(backendCmd)
	backendCmd.AddCommand(backendAddCmd, backendRemoveCmd, backendListCmd)
	backendListCmd.Flags().BoolVar(&backendProbeFlag, "probe", false, "health check each backend now")
}

// existingConfigPath finds the config file to edit; editing requires one.
func existingConfigPath(explicit string) (string, error) {
	path, err := config.Find(explicit)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'lbdash init' first.")
	}
	return path, nil
}

func backendAdd(w io.Writer, configPath, raw string) error {
	backend := config.Expand(raw)
	if err := config.ValidateBackend(backend); err != nil {
		return err
	}
	backend = config.NormalizeBackend(backend)

	path, err := existingConfigPath(configPath)
	if err != nil {
		return err
	}

	added, err := config.AddBackend(path, backend)
	if err != nil {
		return err
	}
	if !added {
		fmt.Fprintf(w, "%s %s is already configured\n", ui.WarningStyle().Render(ui.SymbolWarning), backend)
		return nil
	}
	fmt.Fprintf(w, "%s Added backend %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), backend)
	return nil
}

func backendRemove(w io.Writer, configPath, raw string) error {
	backend := config.NormalizeBackend(config.Expand(raw))
	path, err := existingConfigPath(configPath)
	if err != nil {
		return err
	}

	removed, err := config.RemoveBackend(path, backend)
	if err != nil {
		return err
	}
	if !removed {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Backend %s isn't configured", backend),
			"Run 'lbdash backend list' to see configured backends.")
	}
	fmt.Fprintf(w, "%s Removed backend %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), backend)
	return nil
}

func backendList(ctx context.Context, w io.Writer, configPath string, probe bool) error {
	cfg, _, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	if !probe || len(cfg.Balancer.Backends) == 0 {
		rows := make([]ui.BackendRow, len(cfg.Balancer.Backends))
		for i, b := range cfg.Balancer.Backends {
			rows[i] = ui.BackendRow{URL: b, Status: ui.BackendUnknown}
		}
		fmt.Fprint(w, ui.RenderBackendTable(rows))
		return nil
	}

	lb, err := balancer.New(cfg.Balancer)
	if err != nil {
		return err
	}

	spinner := ui.NewSpinner(fmt.Sprintf("Probing %d backends", len(cfg.Balancer.Backends)))
	spinner.SetOutput(func(s string) { fmt.Fprint(w, s) })
	spinner.Start()
	lb.ProbeAll(ctx)

	snap := lb.Snapshot()
	if countUp(snap) == 0 {
		spinner.Fail()
	} else {
		spinner.Success()
	}
	fmt.Fprint(w, ui.RenderBackendTable(backendRows(snap)))
	return nil
}

func countUp(snap stats.Snapshot) int {
	n := 0
	for _, srv := range snap.Servers {
		if srv.Status {
			n++
		}
	}
	return n
}

// backendRows converts probe results into table rows.
func backendRows(snap stats.Snapshot) []ui.BackendRow {
	rows := make([]ui.BackendRow, len(snap.Servers))
	for i, srv := range snap.Servers {
		row := ui.BackendRow{URL: srv.URL, Status: ui.BackendDown, Latency: "-"}
		if srv.Status {
			row.Status = ui.BackendUp
			row.Latency = srv.FormatLatency()
			row.Detail = telemetrySummary(srv)
		}
		rows[i] = row
	}
	return rows
}

func telemetrySummary(srv stats.Server) string {
	var parts []string
	if v := srv.FormatCPU(); v != "" {
		parts = append(parts, "cpu "+v)
	}
	if v := srv.FormatRAM(); v != "" {
		parts = append(parts, "ram "+v)
	}
	if v := srv.FormatUpTime(); v != "" {
		parts = append(parts, "up "+v)
	}
	return strings.Join(parts, ", ")
}
