// Package main is the entry point for the latctl binary.
// It provides a CLI for authoring and checking lattice declaration files.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/polisai/seclib/pkg/config"
)

const defaultLogLevel = "info"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command for latctl
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "latctl",
		Short: "Security lattice authoring tool",
		Long: `latctl checks and inspects security lattice declaration files.

A declaration file lists the security levels and the explicit dominance
edges between them. latctl never adds edges on your behalf: in particular,
transitive chains (A ≥ B, B ≥ C) are reported as warnings until the closing
edge (A ≥ C) is declared.

The lattice file may be given as an argument or come from the application
configuration (--config, or the SECLIB_LATTICE_FILE environment override).

Example:
  latctl validate lattice.yaml
  latctl query lattice.yaml high low
  latctl --config seclib.yaml validate`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file (YAML)")
	rootCmd.PersistentFlags().StringP("log-level", "l", defaultLogLevel, "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newMatrixCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

// loadConfig loads the application configuration named by the --config flag.
// An empty flag still yields the defaults plus SECLIB_* environment
// overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	return config.Load(path)
}

// latticeFile resolves the lattice declaration path: an explicit argument
// wins, otherwise the configured default applies.
func latticeFile(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Lattice.File
}

// newLogger builds the slog logger. The log-level flag, when set, overrides
// the configured level.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		levelName, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return nil, fmt.Errorf("failed to get log-level flag: %w", err)
		}
		switch levelName {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}
