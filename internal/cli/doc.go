// Package cli implements the lbdash command-line interface.
//
// Each file owns one cobra command and registers it on rootCmd from its
// init function. Commands resolve their settings the same way: load the
// config file (see internal/config for the search order), apply flag
// overrides, then validate before doing any work. The work itself lives
// in other internal packages.
//
// # Command Structure
//
//	lbdash monitor                  - Full-screen stats dashboard (plain table when piped)
//	lbdash balance                  - Round-robin balancer serving /stats
//	lbdash backend [add|remove|list] - Edit or probe balancer.backends
//	lbdash init                     - Create .lbdash.yaml
//	lbdash version                  - Build information
//	lbdash completion <shell>       - Shell completion scripts
//
// # Flag Handling
//
// Global flags (--config, --no-color) are defined on the root command.
// NO_COLOR in the environment has the same effect as --no-color.
//
// Errors returned from RunE are structured errors from internal/errors
// where possible; Execute prints them and exits with status 2 for CONFIG
// errors and 1 otherwise.
package cli
