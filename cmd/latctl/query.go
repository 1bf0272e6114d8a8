package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polisai/seclib/pkg/lattice"
	"github.com/polisai/seclib/pkg/telemetry"
)

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query [lattice-file] <candidate> <required>",
		Short: "Ask whether candidate dominates required",
		Long: `Answers with the same deny-by-default rule the library applies at
boundary crossings: undeclared pairs and unknown levels are denied.
Exits non-zero on denial so the command can be used in scripts.
Each attempt is audit-logged with its proof ID.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			path := cfg.Lattice.File
			if len(args) == 3 {
				path = args[0]
				args = args[1:]
			}

			lat, err := lattice.LoadFile(path,
				lattice.WithObserver(telemetry.NewAuditLogger(logger)))
			if err != nil {
				return err
			}

			candidate := lattice.Level(args[0])
			required := lattice.Level(args[1])

			if _, err := lat.Prove(candidate, required); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "denied")
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "granted: %s >= %s\n", candidate, required)
			return nil
		},
	}
}
