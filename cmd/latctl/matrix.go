package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/polisai/seclib/pkg/lattice"
)

func newMatrixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix [lattice-file]",
		Short: "Print the dominance table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			lat, err := lattice.LoadFile(latticeFile(cfg, args))
			if err != nil {
				return err
			}

			levels := lat.Levels()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 0, 2, ' ', 0)

			// Rows are candidates, columns are required levels.
			fmt.Fprint(w, "candidate \\ required")
			for _, r := range levels {
				fmt.Fprintf(w, "\t%s", r)
			}
			fmt.Fprintln(w)

			for _, c := range levels {
				fmt.Fprint(w, c)
				for _, r := range levels {
					mark := "."
					if lat.Dominates(c, r) {
						mark = "x"
					}
					fmt.Fprintf(w, "\t%s", mark)
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}
}
