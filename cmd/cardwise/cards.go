// cmd/cardwise/cards.go
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCardsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "List the card catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, _, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer deps.Close()

			snap := deps.Catalog.Snapshot()
			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tISSUER\tNAME\tFEE\tRENEWAL")
			for _, c := range snap.Cards() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Issuer, c.Name, inr(c.AnnualFee), c.Renewal.Describe())
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d cards, catalog version %d\n", snap.Len(), snap.Version())
			return nil
		},
	}
}
