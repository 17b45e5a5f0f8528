package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rileyhilliard/lbdash/internal/balancer"
	"github.com/rileyhilliard/lbdash/internal/config"
	"github.com/rileyhilliard/lbdash/internal/logger"
	"github.com/rileyhilliard/lbdash/internal/ui"
	"github.com/spf13/cobra"
)

var (
	balanceListenFlag   string
	balanceBackendsFlag []string
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Run the round-robin balancer",
	Long: `Redirect requests on / to each backend in turn with a 307, health check
the backends in the background and serve their state on /stats for
'lbdash monitor'.

Backends come from balancer.backends in the config file unless --backend
is given.

Examples:
  lbdash balance
  lbdash balance --listen :8080 --backend http://10.0.0.1:5001 --backend http://10.0.0.2:5001`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return balanceCommand(cmd.Context(), cmd.OutOrStdout(), balanceOptions{
			ConfigPath: cfgFile,
			Listen:     balanceListenFlag,
			Backends:   balanceBackendsFlag,
		})
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVar(&balanceListenFlag, "listen", "", "address to listen on (default :5000)")
	balanceCmd.Flags().StringArrayVar(&balanceBackendsFlag, "backend", nil, "backend base URL, repeatable (overrides config)")
}

type balanceOptions struct {
	ConfigPath string
	Listen     string
	Backends   []string
}

// resolveBalancerConfig loads the balancer section and applies flag overrides.
func resolveBalancerConfig(opts balanceOptions) (config.BalancerConfig, error) {
	cfg, _, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return config.BalancerConfig{}, err
	}

	b := cfg.Balancer
	if opts.Listen != "" {
		b.Listen = opts.Listen
	}
	if len(opts.Backends) > 0 {
		b.Backends = expandAll(opts.Backends)
	}

	if err := config.ValidateBalancer(b); err != nil {
		return config.BalancerConfig{}, err
	}
	return b, nil
}

func balanceCommand(ctx context.Context, out io.Writer, opts balanceOptions) error {
	bcfg, err := resolveBalancerConfig(opts)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	lb, err := balancer.New(bcfg, balancer.WithLogger(logger.NewEnvLogger("[balancer]")))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "%s Balancing %d backends on %s\n",
		ui.SuccessStyle().Render(ui.SymbolSuccess), len(bcfg.Backends), bcfg.Listen)
	fmt.Fprintf(out, "  %s\n\n", ui.MutedStyle().Render("lbdash monitor --endpoint "+statsURL(bcfg.Listen)))

	return lb.Serve(ctx)
}

// statsURL is the /stats URL a local dashboard would poll for listen.
func statsURL(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return "http://" + listen + "/stats"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/stats"
}
