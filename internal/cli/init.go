package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/lbdash/internal/config"
	"github.com/rileyhilliard/lbdash/internal/errors"
	"github.com/rileyhilliard/lbdash/internal/ui"
	"github.com/spf13/cobra"
)

var (
	initForceFlag          bool
	initNonInteractiveFlag bool
	initEndpointFlag       string
	initListenFlag         string
	initBackendsFlag       []string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .lbdash.yaml config in the current directory",
	Long: `Create a .lbdash.yaml config file, prompting for the stats endpoint, the
balancer's listen address and its backends.

Values can also come from flags or the environment (LBDASH_ENDPOINT,
LBDASH_LISTEN, LBDASH_BACKENDS as a comma separated list). Prompts are
skipped with --non-interactive or when CI is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(mergeInitOptions(InitOptions{
			Endpoint:       initEndpointFlag,
			Listen:         initListenFlag,
			Backends:       initBackendsFlag,
			Overwrite:      initForceFlag,
			NonInteractive: initNonInteractiveFlag,
			Out:            cmd.OutOrStdout(),
		}))
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForceFlag, "force", false, "overwrite an existing config without asking")
	initCmd.Flags().BoolVar(&initNonInteractiveFlag, "non-interactive", false, "skip prompts and use flags, env and defaults")
	initCmd.Flags().StringVar(&initEndpointFlag, "endpoint", "", "stats URL the dashboard polls")
	initCmd.Flags().StringVar(&initListenFlag, "listen", "", "balancer listen address")
	initCmd.Flags().StringSliceVar(&initBackendsFlag, "backends", nil, "comma separated backend URLs")
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Endpoint       string
	Listen         string
	Backends       []string
	Overwrite      bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, use defaults
	Out            io.Writer
}

// getInitDefaults reads init values from the environment.
func getInitDefaults() InitOptions {
	opts := InitOptions{
		Endpoint: os.Getenv("LBDASH_ENDPOINT"),
		Listen:   os.Getenv("LBDASH_LISTEN"),
		Backends: splitList(os.Getenv("LBDASH_BACKENDS")),
	}
	if v := os.Getenv("LBDASH_NON_INTERACTIVE"); v == "1" || strings.EqualFold(v, "true") {
		opts.NonInteractive = true
	}
	if os.Getenv("CI") != "" {
		opts.NonInteractive = true
	}
	return opts
}

// mergeInitOptions fills empty flag values from the environment. Flags win.
func mergeInitOptions(opts InitOptions) InitOptions {
	env := getInitDefaults()
	if opts.Endpoint == "" {
		opts.Endpoint = env.Endpoint
	}
	if opts.Listen == "" {
		opts.Listen = env.Listen
	}
	if len(opts.Backends) == 0 {
		opts.Backends = env.Backends
	}
	if env.NonInteractive {
		opts.NonInteractive = true
	}
	return opts
}

// splitList splits a comma or whitespace separated list, dropping blanks.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Init creates a new .lbdash.yaml configuration file.
func Init(opts InitOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	configPath := filepath.Join(".", config.ConfigFileName)

	proceed, err := checkExistingConfig(configPath, opts)
	if err != nil {
		return err
	}
	if !proceed {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	cfg := config.DefaultConfig()
	if opts.NonInteractive {
		applyInitValues(cfg, opts)
	} else if err := promptInitValues(cfg, opts); err != nil {
		return err
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	for _, b := range cfg.Balancer.Backends {
		if err := config.ValidateBackend(b); err != nil {
			return err
		}
	}

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Created %s\n\n", ui.SuccessStyle().Render(ui.SymbolSuccess), configPath)
	fmt.Fprintln(out, "Next steps:")
	if len(cfg.Balancer.Backends) == 0 {
		fmt.Fprintln(out, "  lbdash backend add <url>  - Add a backend")
	}
	fmt.Fprintln(out, "  lbdash balance            - Start the balancer")
	fmt.Fprintln(out, "  lbdash monitor            - Open the dashboard")
	return nil
}

// checkExistingConfig decides whether Init may write configPath.
func checkExistingConfig(configPath string, opts InitOptions) (bool, error) {
	if _, err := os.Stat(configPath); err != nil || opts.Overwrite {
		return true, nil
	}

	if opts.NonInteractive {
		return false, errors.New(errors.ErrConfig,
			fmt.Sprintf("Config file already exists: %s", configPath),
			"Use --force to overwrite")
	}

	var overwrite bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
				Value(&overwrite),
		),
	)
	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Try running with --force to overwrite")
	}
	return overwrite, nil
}

// applyInitValues copies non-empty option values onto cfg.
func applyInitValues(cfg *config.Config, opts InitOptions) {
	if opts.Endpoint != "" {
		cfg.Endpoint = opts.Endpoint
	}
	if opts.Listen != "" {
		cfg.Balancer.Listen = opts.Listen
	}
	if len(opts.Backends) > 0 {
		cfg.Balancer.Backends = opts.Backends
	}
}

func promptInitValues(cfg *config.Config, opts InitOptions) error {
	endpoint := firstNonEmpty(opts.Endpoint, cfg.Endpoint)
	listen := firstNonEmpty(opts.Listen, cfg.Balancer.Listen)
	backends := strings.Join(opts.Backends, ", ")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Stats endpoint").
				Description("The URL 'lbdash monitor' polls every 2s").
				Placeholder(config.DefaultEndpoint).
				Value(&endpoint).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("endpoint is required")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Balancer listen address").
				Placeholder(config.DefaultListen).
				Value(&listen),
			huh.NewText().
				Title("Backends (optional)").
				Description("Base URLs separated by commas or newlines").
				Placeholder("http://127.0.0.1:5001, http://127.0.0.1:5002").
				Value(&backends).
				Validate(func(s string) error {
					for _, b := range splitList(s) {
						if err := config.ValidateBackend(b); err != nil {
							return fmt.Errorf("%q is not an http(s) URL", b)
						}
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}

	applyInitValues(cfg, InitOptions{
		Endpoint: strings.TrimSpace(endpoint),
		Listen:   strings.TrimSpace(listen),
		Backends: splitList(backends),
	})
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
